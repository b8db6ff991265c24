package constraint

import (
	"fmt"

	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// ForbidTable removes every seat of one table from every student's
// domain. It has no named students: Involved returns nil and Allowed
// applies unconditionally, matching the structural constraints of the
// original model (no per-student implication).
type ForbidTable struct {
	X, Y int
}

func (c ForbidTable) Kind() Kind         { return KindForbidTable }
func (c ForbidTable) Involved() []string { return nil }

func (c ForbidTable) Allowed(_ string, room *model.Room) (model.SeatSet, bool) {
	set := model.FullSeatSet(room.SeatCount())
	for _, pos := range room.SeatsAtTable(c.X, c.Y) {
		if idx, ok := room.IndexOf(pos); ok {
			set.Clear(idx)
		}
	}
	return set, true
}

func (c ForbidTable) EncodeHard(Encoder, *model.Room, []string) {}

func (c ForbidTable) Satisfied(a model.Assignment, _ *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	for _, pos := range a {
		if pos.X == c.X && pos.Y == c.Y {
			return false
		}
	}
	return true
}

func (c ForbidTable) Serialize() Record {
	return Record{
		Kind: KindForbidTable,
		Text: fmt.Sprintf("table (%d,%d) must stay empty", c.X, c.Y),
		Code: fmt.Sprintf("forbid_table(%d,%d)", c.X, c.Y),
	}
}

// ForbidSeat removes a single seat from every student's domain.
type ForbidSeat struct {
	Position model.Position
}

func (c ForbidSeat) Kind() Kind         { return KindForbidSeat }
func (c ForbidSeat) Involved() []string { return nil }

func (c ForbidSeat) Allowed(_ string, room *model.Room) (model.SeatSet, bool) {
	set := model.FullSeatSet(room.SeatCount())
	if idx, ok := room.IndexOf(c.Position); ok {
		set.Clear(idx)
	}
	return set, true
}

func (c ForbidSeat) EncodeHard(Encoder, *model.Room, []string) {}

func (c ForbidSeat) Satisfied(a model.Assignment, _ *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	for _, pos := range a {
		if pos == c.Position {
			return false
		}
	}
	return true
}

func (c ForbidSeat) Serialize() Record {
	return Record{
		Kind: KindForbidSeat,
		Text: fmt.Sprintf("seat %+v must stay empty", c.Position),
		Code: fmt.Sprintf("forbid_seat(%d,%d,%d)", c.Position.X, c.Position.Y, c.Position.Seat),
	}
}
