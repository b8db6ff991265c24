// Package encode builds a boolean-circuit encoding of one seating
// assignment problem using github.com/irifrance/gini's incremental
// circuit builder (logic.C), the same machinery used by
// operator-framework's dependency resolver to turn a constraint problem
// into CNF for gini to solve. One Encoder is built fresh for each
// optimization pass: passes freeze prior results through assumptions
// rather than by mutating a shared circuit.
package encode

import (
	"fmt"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"

	"seatplan/internal/model"
)

// Encoder accumulates the boolean variables and hard clauses of one
// seating problem: one variable per (student, allowed seat) pair, an
// exactly-one clause per student, an at-most-one clause per seat, plus
// whatever pairwise or table-level exclusions the constraints add.
type Encoder struct {
	c    *logic.C
	room *model.Room

	studentVars map[string]map[int]z.Lit // student name -> seat index -> var
	seatVars    map[int][]z.Lit          // seat index -> vars of students who may sit there

	mustLits []z.Lit // hard clauses, asserted as assumptions at every solve
}

// New builds the per-student variables and the exactly-one / at-most-one
// structural clauses from the precomputed domains. Seats outside a
// student's domain never get a variable: domain restriction by omission,
// per the original model's BoolVar-per-allowed-seat construction.
func New(room *model.Room, students []model.Student, domains map[string]model.SeatSet) (*Encoder, error) {
	enc := &Encoder{
		c:           logic.NewC(),
		room:        room,
		studentVars: make(map[string]map[int]z.Lit, len(students)),
		seatVars:    make(map[int][]z.Lit),
	}

	for _, st := range students {
		dom, ok := domains[st.Name]
		if !ok || dom.Empty() {
			return nil, fmt.Errorf("encode: student %q has no candidate seat", st.Name)
		}
		vars := make(map[int]z.Lit, dom.Count())
		var atLeastOne []z.Lit
		for _, idx := range dom.Indices() {
			lit := enc.c.Lit()
			vars[idx] = lit
			atLeastOne = append(atLeastOne, lit)
			enc.seatVars[idx] = append(enc.seatVars[idx], lit)
		}
		enc.studentVars[st.Name] = vars

		// at least one seat
		enc.mustLits = append(enc.mustLits, enc.c.Ors(atLeastOne...))
		// at most one seat: every pair of candidate seats is mutually exclusive
		for i := 0; i < len(atLeastOne); i++ {
			for j := i + 1; j < len(atLeastOne); j++ {
				enc.mustLits = append(enc.mustLits, enc.c.Ors(atLeastOne[i].Not(), atLeastOne[j].Not()))
			}
		}
	}

	// at most one student per seat
	for _, vars := range enc.seatVars {
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				enc.mustLits = append(enc.mustLits, enc.c.Ors(vars[i].Not(), vars[j].Not()))
			}
		}
	}

	return enc, nil
}

// C exposes the underlying circuit builder so the solve package can build
// pass-specific objective aggregates (sums over students, over genders,
// over isolation indicators) directly on top of the student variables.
func (e *Encoder) C() *logic.C { return e.c }

// VarOf returns the variable for student sitting at the seat with the
// given room-canonical index, if that seat is in the student's domain.
func (e *Encoder) VarOf(student string, seatIndex int) (z.Lit, bool) {
	lit, ok := e.studentVars[student][seatIndex]
	return lit, ok
}

// VarsOf returns every (seatIndex, lit) pair for a student, in no
// particular order.
func (e *Encoder) VarsOf(student string) map[int]z.Lit {
	return e.studentVars[student]
}

// SeatVars returns the variables of every student who may occupy the
// given seat index.
func (e *Encoder) SeatVars(seatIndex int) []z.Lit {
	return e.seatVars[seatIndex]
}

// Forbid asserts that student may never occupy pos, beyond what their
// precomputed domain already excludes. A no-op if the seat was never
// in the student's domain to begin with.
func (e *Encoder) Forbid(student string, pos model.Position) {
	idx, ok := e.room.IndexOf(pos)
	if !ok {
		return
	}
	if lit, ok := e.VarOf(student, idx); ok {
		e.mustLits = append(e.mustLits, lit.Not())
	}
}

// ForbidPair asserts that studentA at posA and studentB at posB may
// never both hold. A no-op if either combination was already excluded by
// domain restriction.
func (e *Encoder) ForbidPair(studentA, studentB string, posA, posB model.Position) {
	idxA, okA := e.room.IndexOf(posA)
	idxB, okB := e.room.IndexOf(posB)
	if !okA || !okB {
		return
	}
	litA, okA := e.VarOf(studentA, idxA)
	litB, okB := e.VarOf(studentB, idxB)
	if !okA || !okB {
		return
	}
	e.mustLits = append(e.mustLits, e.c.Ors(litA.Not(), litB.Not()))
}

// TableOccupants returns the seats of the table at (x, y).
func (e *Encoder) TableOccupants(x, y int) []model.Position {
	return e.room.SeatsAtTable(x, y)
}

// ToCnf lowers the circuit to CNF on g and returns the hard-clause
// literals that must be assumed true on every Solve call made against g.
func (e *Encoder) ToCnf(g *gini.Gini) []z.Lit {
	e.c.ToCnf(g)
	return append([]z.Lit(nil), e.mustLits...)
}

// Assignment reads back the seat each student occupies from a satisfying
// model, using g.Value to test each candidate variable.
func (e *Encoder) Assignment(g *gini.Gini) model.Assignment {
	out := make(model.Assignment, len(e.studentVars))
	for student, vars := range e.studentVars {
		for idx, lit := range vars {
			if g.Value(lit) {
				out[student] = e.room.SeatAt(idx)
				break
			}
		}
	}
	return out
}
