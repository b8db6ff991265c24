package constraint

import (
	"fmt"

	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// FarApart requires two students to sit at least MinDistance apart, under
// Metric (grid Manhattan distance, or pixel Manhattan distance when a
// Geometry is supplied).
type FarApart struct {
	StudentA, StudentB string
	MinDistance        float64
	Metric             geometry.Metric
	Geometry           *geometry.Geometry
	TableOffsets       map[[2]int]geometry.TableOffset
}

func (c FarApart) Kind() Kind         { return KindFarApart }
func (c FarApart) Involved() []string { return []string{c.StudentA, c.StudentB} }

func (c FarApart) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c FarApart) EncodeHard(enc Encoder, room *model.Room, _ []string) {
	seats := room.Seats()
	for _, posA := range seats {
		for _, posB := range seats {
			if posA == posB {
				continue
			}
			if geometry.Distance(posA, posB, c.Metric, c.Geometry, c.TableOffsets) < c.MinDistance {
				enc.ForbidPair(c.StudentA, c.StudentB, posA, posB)
			}
		}
	}
}

func (c FarApart) Satisfied(a model.Assignment, _ *model.Room, g geometry.Geometry, metric geometry.Metric) bool {
	posA, okA := a[c.StudentA]
	posB, okB := a[c.StudentB]
	if !okA || !okB {
		return false
	}
	geom := c.Geometry
	usedMetric := c.Metric
	if geom == nil {
		geom = &g
		usedMetric = metric
	}
	return geometry.Distance(posA, posB, usedMetric, geom, c.TableOffsets) >= c.MinDistance
}

func (c FarApart) Serialize() Record {
	return Record{
		Kind:     KindFarApart,
		Students: []string{c.StudentA, c.StudentB},
		Text:     fmt.Sprintf("%s and %s must be at least %.2f apart", c.StudentA, c.StudentB, c.MinDistance),
		Code:     fmt.Sprintf("far_apart(%s,%s,%.2f)", c.StudentA, c.StudentB, c.MinDistance),
	}
}

// SameTable requires two students to occupy the same table.
type SameTable struct {
	StudentA, StudentB string
}

func (c SameTable) Kind() Kind         { return KindSameTable }
func (c SameTable) Involved() []string { return []string{c.StudentA, c.StudentB} }

func (c SameTable) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c SameTable) EncodeHard(enc Encoder, room *model.Room, _ []string) {
	seats := room.Seats()
	for _, posA := range seats {
		for _, posB := range seats {
			if posA.X != posB.X || posA.Y != posB.Y {
				enc.ForbidPair(c.StudentA, c.StudentB, posA, posB)
			}
		}
	}
}

func (c SameTable) Satisfied(a model.Assignment, _ *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	posA, okA := a[c.StudentA]
	posB, okB := a[c.StudentB]
	return okA && okB && posA.X == posB.X && posA.Y == posB.Y
}

func (c SameTable) Serialize() Record {
	return Record{
		Kind:     KindSameTable,
		Students: []string{c.StudentA, c.StudentB},
		Text:     fmt.Sprintf("%s and %s must share a table", c.StudentA, c.StudentB),
		Code:     fmt.Sprintf("same_table(%s,%s)", c.StudentA, c.StudentB),
	}
}

// Adjacent requires two students to sit at the same table in neighboring
// seats (|seat index difference| == 1).
type Adjacent struct {
	StudentA, StudentB string
}

func (c Adjacent) Kind() Kind         { return KindAdjacent }
func (c Adjacent) Involved() []string { return []string{c.StudentA, c.StudentB} }

func (c Adjacent) Allowed(string, *model.Room) (model.SeatSet, bool) {
	return model.SeatSet{}, false
}

func (c Adjacent) EncodeHard(enc Encoder, room *model.Room, _ []string) {
	seats := room.Seats()
	for _, posA := range seats {
		for _, posB := range seats {
			if posA == posB {
				continue
			}
			if !(posA.X == posB.X && posA.Y == posB.Y && abs(posA.Seat-posB.Seat) == 1) {
				enc.ForbidPair(c.StudentA, c.StudentB, posA, posB)
			}
		}
	}
}

func (c Adjacent) Satisfied(a model.Assignment, _ *model.Room, _ geometry.Geometry, _ geometry.Metric) bool {
	posA, okA := a[c.StudentA]
	posB, okB := a[c.StudentB]
	return okA && okB && posA.X == posB.X && posA.Y == posB.Y && abs(posA.Seat-posB.Seat) == 1
}

func (c Adjacent) Serialize() Record {
	return Record{
		Kind:     KindAdjacent,
		Students: []string{c.StudentA, c.StudentB},
		Text:     fmt.Sprintf("%s and %s must sit next to each other", c.StudentA, c.StudentB),
		Code:     fmt.Sprintf("adjacent(%s,%s)", c.StudentA, c.StudentB),
	}
}
