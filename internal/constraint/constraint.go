// Package constraint defines the unary, binary and structural placement
// rules a solve must satisfy, and the hard-constraint contribution each
// rule makes to the CP-SAT encoding.
package constraint

import (
	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// Kind tags the wire-visible type of a constraint, matching the
// canonical type strings used by the UI.
type Kind string

const (
	KindFrontRows          Kind = "front_rows"
	KindBackRows           Kind = "back_rows"
	KindSoloAtTable        Kind = "solo_table"
	KindEmptyNeighbor      Kind = "empty_neighbor"
	KindNoAdjacentNeighbor Kind = "no_adjacent"
	KindExactSeat          Kind = "exact_seat"
	KindFarApart           Kind = "far_apart"
	KindSameTable          Kind = "same_table"
	KindAdjacent           Kind = "adjacent"
	KindForbidTable        Kind = "forbid_table"
	KindForbidSeat         Kind = "forbid_seat"
	KindPreferTable        Kind = "prefer_table"
)

// Record is the serialized, human- and machine-readable form of a
// constraint, used for echoing back what a solve actually enforced.
type Record struct {
	Kind     Kind     `json:"type"`
	Students []string `json:"students,omitempty"`
	Text     string   `json:"text"`
	Code     string   `json:"code"`
}

// Encoder is the subset of the CP-SAT model builder a constraint needs in
// order to contribute hard clauses beyond plain domain restriction (pairwise
// exclusions, table-level aggregates). Defined here to avoid constraint
// depending on the encode package; internal/encode implements it.
type Encoder interface {
	Forbid(student string, pos model.Position)
	ForbidPair(studentA, studentB string, posA, posB model.Position)
	TableOccupants(x, y int) []model.Position
	// AtMostKOccupied asserts that, among "subject occupies subjectPos"
	// and "someone occupies seat p" for each p in others, at most k hold
	// at once. A no-op if subject has no variable for subjectPos (the
	// term is then always false and the bound holds trivially).
	AtMostKOccupied(subject string, subjectPos model.Position, others []model.Position, k int)
}

// Constraint is satisfied by exactly one kind of placement rule. Allowed
// restricts a single student's domain; EncodeHard contributes anything a
// per-student domain restriction cannot express (pairwise/table-level
// exclusions). Constraints that only restrict single-student domains
// implement EncodeHard as a no-op.
type Constraint interface {
	Kind() Kind
	Involved() []string
	Allowed(student string, room *model.Room) (model.SeatSet, bool)
	Satisfied(a model.Assignment, room *model.Room, g geometry.Geometry, metric geometry.Metric) bool
	Serialize() Record
	// EncodeHard contributes any hard clause that a single-student domain
	// restriction cannot express. allStudents is the full roster of names
	// participating in the solve, for constraints that must reason about
	// students they were not directly given (e.g. SoloAtTable).
	EncodeHard(enc Encoder, room *model.Room, allStudents []string)
}
