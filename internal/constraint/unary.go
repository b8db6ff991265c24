package constraint

import (
	"fmt"

	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

func seatSetForTables(room *model.Room, tables map[[2]int]bool) model.SeatSet {
	set := model.NewSeatSet(room.SeatCount())
	for _, t := range room.Tables() {
		if !tables[t.Key()] {
			continue
		}
		for _, pos := range t.Seats() {
			if idx, ok := room.IndexOf(pos); ok {
				set.Set(idx)
			}
		}
	}
	return set
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FrontRows requires every listed student to occupy a seat among the
// first K visual rows of the room.
type FrontRows struct {
	Students []string
	K        int
	RowOpts  geometry.RowOrderOptions
}

func (c FrontRows) Kind() Kind            { return KindFrontRows }
func (c FrontRows) Involved() []string    { return append([]string(nil), c.Students...) }
func (c FrontRows) EncodeHard(Encoder, *model.Room, []string) {}

func (c FrontRows) Allowed(student string, room *model.Room) (model.SeatSet, bool) {
	if !contains(c.Students, student) {
		return model.SeatSet{}, false
	}
	tables := geometry.FrontTables(room, c.K, c.RowOpts)
	return seatSetForTables(room, tables), true
}

func (c FrontRows) Satisfied(a model.Assignment, room *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	tables := geometry.FrontTables(room, c.K, c.RowOpts)
	for _, st := range c.Students {
		pos, ok := a[st]
		if !ok || !tables[[2]int{pos.X, pos.Y}] {
			return false
		}
	}
	return true
}

func (c FrontRows) Serialize() Record {
	return Record{
		Kind:     KindFrontRows,
		Students: c.Students,
		Text:     fmt.Sprintf("%v must sit in the first %d row(s)", c.Students, c.K),
		Code:     fmt.Sprintf("front_rows(%v,%d)", c.Students, c.K),
	}
}

// BackRows requires every listed student to occupy a seat among the last
// K visual rows of the room.
type BackRows struct {
	Students []string
	K        int
	RowOpts  geometry.RowOrderOptions
}

func (c BackRows) Kind() Kind            { return KindBackRows }
func (c BackRows) Involved() []string    { return append([]string(nil), c.Students...) }
func (c BackRows) EncodeHard(Encoder, *model.Room, []string) {}

func (c BackRows) Allowed(student string, room *model.Room) (model.SeatSet, bool) {
	if !contains(c.Students, student) {
		return model.SeatSet{}, false
	}
	tables := geometry.BackTables(room, c.K, c.RowOpts)
	return seatSetForTables(room, tables), true
}

func (c BackRows) Satisfied(a model.Assignment, room *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	tables := geometry.BackTables(room, c.K, c.RowOpts)
	for _, st := range c.Students {
		pos, ok := a[st]
		if !ok || !tables[[2]int{pos.X, pos.Y}] {
			return false
		}
	}
	return true
}

func (c BackRows) Serialize() Record {
	return Record{
		Kind:     KindBackRows,
		Students: c.Students,
		Text:     fmt.Sprintf("%v must sit in the last %d row(s)", c.Students, c.K),
		Code:     fmt.Sprintf("back_rows(%v,%d)", c.Students, c.K),
	}
}

// ExactSeat locks a student to one specific seat.
type ExactSeat struct {
	Student  string
	Position model.Position
}

func (c ExactSeat) Kind() Kind            { return KindExactSeat }
func (c ExactSeat) Involved() []string    { return []string{c.Student} }
func (c ExactSeat) EncodeHard(Encoder, *model.Room, []string) {}

func (c ExactSeat) Allowed(student string, room *model.Room) (model.SeatSet, bool) {
	if student != c.Student {
		return model.SeatSet{}, false
	}
	set := model.NewSeatSet(room.SeatCount())
	if idx, ok := room.IndexOf(c.Position); ok {
		set.Set(idx)
	}
	return set, true
}

func (c ExactSeat) Satisfied(a model.Assignment, _ *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	pos, ok := a[c.Student]
	return ok && pos == c.Position
}

func (c ExactSeat) Serialize() Record {
	return Record{
		Kind:     KindExactSeat,
		Students: []string{c.Student},
		Text:     fmt.Sprintf("%s must sit exactly at %+v", c.Student, c.Position),
		Code:     fmt.Sprintf("exact_seat(%s,%d,%d,%d)", c.Student, c.Position.X, c.Position.Y, c.Position.Seat),
	}
}

// SoloAtTable requires that no other student shares the student's table.
// Enforced purely through EncodeHard: the student's own domain is
// unrestricted by this constraint, since which table ends up solo depends
// on the solver's choice, not on a fixed set of allowed seats.
type SoloAtTable struct {
	Student string
}

func (c SoloAtTable) Kind() Kind         { return KindSoloAtTable }
func (c SoloAtTable) Involved() []string { return []string{c.Student} }

func (c SoloAtTable) Allowed(student string, _ *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c SoloAtTable) EncodeHard(enc Encoder, room *model.Room, allStudents []string) {
	for _, t := range room.Tables() {
		seats := t.Seats()
		if len(seats) < 2 {
			continue
		}
		for _, other := range allStudents {
			if other == c.Student {
				continue
			}
			for _, posA := range seats {
				for _, posB := range seats {
					if posA == posB {
						continue
					}
					enc.ForbidPair(c.Student, other, posA, posB)
				}
			}
		}
	}
}

func (c SoloAtTable) Satisfied(a model.Assignment, room *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	pos, ok := a[c.Student]
	if !ok {
		return false
	}
	for name, other := range a {
		if name == c.Student {
			continue
		}
		if other.X == pos.X && other.Y == pos.Y {
			return false
		}
	}
	return true
}

func (c SoloAtTable) Serialize() Record {
	return Record{
		Kind:     KindSoloAtTable,
		Students: []string{c.Student},
		Text:     fmt.Sprintf("%s must be alone at their table", c.Student),
		Code:     fmt.Sprintf("solo_table(%s)", c.Student),
	}
}

// adjacentSeatPairs enumerates every pair of seats within the same table
// whose seat indices differ by exactly one.
func adjacentSeatPairs(room *model.Room) [][2]model.Position {
	var out [][2]model.Position
	for _, t := range room.Tables() {
		seats := t.Seats()
		for i := 0; i+1 < len(seats); i++ {
			out = append(out, [2]model.Position{seats[i], seats[i+1]})
		}
	}
	return out
}

// neighborsOf maps every seat to the seats immediately beside it within
// the same table (one or two entries; empty for a capacity-1 table).
func neighborsOf(room *model.Room) map[model.Position][]model.Position {
	out := make(map[model.Position][]model.Position)
	for _, t := range room.Tables() {
		seats := t.Seats()
		for i, pos := range seats {
			var ns []model.Position
			if i > 0 {
				ns = append(ns, seats[i-1])
			}
			if i+1 < len(seats) {
				ns = append(ns, seats[i+1])
			}
			out[pos] = ns
		}
	}
	return out
}

// EmptyNeighbor requires that at least one seat immediately beside the
// student's own remain unoccupied; vacuous on a capacity-1 table, where
// no neighbor exists. Encoded per-seat as x[a][i] + Σ_{j∈N_i} occ[j] ≤
// |N_i|: trivially true wherever the student doesn't sit, and exactly
// "at least one neighbor empty" wherever they do.
type EmptyNeighbor struct {
	Student string
}

func (c EmptyNeighbor) Kind() Kind         { return KindEmptyNeighbor }
func (c EmptyNeighbor) Involved() []string { return []string{c.Student} }

func (c EmptyNeighbor) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c EmptyNeighbor) EncodeHard(enc Encoder, room *model.Room, allStudents []string) {
	for pos, neighbors := range neighborsOf(room) {
		if len(neighbors) == 0 {
			continue
		}
		enc.AtMostKOccupied(c.Student, pos, neighbors, len(neighbors))
	}
}

func (c EmptyNeighbor) Satisfied(a model.Assignment, room *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	pos, ok := a[c.Student]
	if !ok {
		return false
	}
	neighbors := neighborsOf(room)[pos]
	if len(neighbors) == 0 {
		return true
	}
	occupied := make(map[model.Position]bool, len(a))
	for _, p := range a {
		occupied[p] = true
	}
	for _, n := range neighbors {
		if !occupied[n] {
			return true
		}
	}
	return false
}

func (c EmptyNeighbor) Serialize() Record {
	return Record{
		Kind:     KindEmptyNeighbor,
		Students: []string{c.Student},
		Text:     fmt.Sprintf("%s must have an empty neighboring seat", c.Student),
		Code:     fmt.Sprintf("empty_neighbor(%s)", c.Student),
	}
}

// NoAdjacentNeighbor requires that no other student occupy any seat
// immediately adjacent to the student.
type NoAdjacentNeighbor struct {
	Student string
}

func (c NoAdjacentNeighbor) Kind() Kind         { return KindNoAdjacentNeighbor }
func (c NoAdjacentNeighbor) Involved() []string { return []string{c.Student} }

func (c NoAdjacentNeighbor) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c NoAdjacentNeighbor) EncodeHard(enc Encoder, room *model.Room, allStudents []string) {
	for _, pair := range adjacentSeatPairs(room) {
		for _, other := range allStudents {
			if other == c.Student {
				continue
			}
			enc.ForbidPair(c.Student, other, pair[0], pair[1])
			enc.ForbidPair(c.Student, other, pair[1], pair[0])
		}
	}
}

func (c NoAdjacentNeighbor) Satisfied(a model.Assignment, room *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	pos, ok := a[c.Student]
	if !ok {
		return false
	}
	for name, other := range a {
		if name == c.Student {
			continue
		}
		if other.X == pos.X && other.Y == pos.Y && abs(other.Seat-pos.Seat) == 1 {
			return false
		}
	}
	return true
}

func (c NoAdjacentNeighbor) Serialize() Record {
	return Record{
		Kind:     KindNoAdjacentNeighbor,
		Students: []string{c.Student},
		Text:     fmt.Sprintf("%s must not have an adjacent neighbor", c.Student),
		Code:     fmt.Sprintf("no_adjacent(%s)", c.Student),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
