package constraint

import (
	"fmt"

	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// PreferTable is a soft hint consumed only by the pass-4 random tiebreak:
// it never restricts a domain and is always considered satisfied, but
// seats at the named table are weighted more favorably when breaking ties
// among otherwise-equal assignments.
type PreferTable struct {
	Student string
	X, Y    int
}

func (c PreferTable) Kind() Kind         { return KindPreferTable }
func (c PreferTable) Involved() []string { return []string{c.Student} }

func (c PreferTable) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c PreferTable) EncodeHard(Encoder, *model.Room, []string) {}

func (c PreferTable) Satisfied(model.Assignment, *model.Room, geometry.Geometry, geometry.Metric) bool {
	return true
}

func (c PreferTable) Serialize() Record {
	return Record{
		Kind:     KindPreferTable,
		Students: []string{c.Student},
		Text:     fmt.Sprintf("%s prefers table (%d,%d)", c.Student, c.X, c.Y),
		Code:     fmt.Sprintf("prefer_table(%s,%d,%d)", c.Student, c.X, c.Y),
	}
}

// Matches reports whether pos is the preferred table for this hint.
func (c PreferTable) Matches(pos model.Position) bool {
	return pos.X == c.X && pos.Y == c.Y
}
