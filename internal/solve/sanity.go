package solve

import (
	"fmt"

	"seatplan/internal/constraint"
	"seatplan/internal/model"
)

// SanityCheck performs the cheap, purely structural checks that must
// pass before any CP-SAT pass is attempted: enough seats to sit
// everyone, no two exact-seat locks targeting the same seat or
// contradicting each other for one student, and no exact-seat lock
// targeting a seat or table that is itself forbidden.
func SanityCheck(room *model.Room, students []model.Student, constraints []constraint.Constraint) error {
	if room.SeatCount() < len(students) {
		return fmt.Errorf("solve: room has %d seats but %d students must be seated", room.SeatCount(), len(students))
	}

	var exact []constraint.ExactSeat
	var forbiddenSeats = make(map[model.Position]bool)
	var forbiddenTables = make(map[[2]int]bool)

	for _, c := range constraints {
		switch v := c.(type) {
		case constraint.ExactSeat:
			exact = append(exact, v)
		case constraint.ForbidSeat:
			forbiddenSeats[v.Position] = true
		case constraint.ForbidTable:
			forbiddenTables[[2]int{v.X, v.Y}] = true
		}
	}

	byStudent := make(map[string]model.Position)
	bySeat := make(map[model.Position]string)
	for _, e := range exact {
		if prev, ok := byStudent[e.Student]; ok && prev != e.Position {
			return fmt.Errorf("solve: student %q has contradictory exact-seat locks %+v and %+v", e.Student, prev, e.Position)
		}
		byStudent[e.Student] = e.Position

		if other, ok := bySeat[e.Position]; ok && other != e.Student {
			return fmt.Errorf("solve: seat %+v is locked for both %q and %q", e.Position, other, e.Student)
		}
		bySeat[e.Position] = e.Student

		if forbiddenSeats[e.Position] {
			return fmt.Errorf("solve: student %q is locked to forbidden seat %+v", e.Student, e.Position)
		}
		if forbiddenTables[[2]int{e.Position.X, e.Position.Y}] {
			return fmt.Errorf("solve: student %q is locked to a seat on forbidden table (%d,%d)", e.Student, e.Position.X, e.Position.Y)
		}
	}

	return nil
}
