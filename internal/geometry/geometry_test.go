package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/model"
)

func testRoom(t *testing.T) *model.Room {
	t.Helper()
	room, err := model.NewRoom([][]int{
		{2, 2}, // y=0
		{2, 2}, // y=1
		{2, 2}, // y=2
	})
	require.NoError(t, err)
	return room
}

func TestFrontBackTablesNaturalOrder(t *testing.T) {
	room := testRoom(t)
	opts := RowOrderOptions{}

	front := FrontTables(room, 1, opts)
	require.True(t, front[[2]int{0, 0}])
	require.True(t, front[[2]int{1, 0}])
	require.False(t, front[[2]int{0, 1}])

	back := BackTables(room, 1, opts)
	require.True(t, back[[2]int{0, 2}])
	require.False(t, back[[2]int{0, 0}])
}

func TestFrontTablesVisualRowMapWinsOverRowOrder(t *testing.T) {
	room := testRoom(t)
	// Visually, row y=2 is displayed first despite having the largest y.
	opts := RowOrderOptions{
		VisualRowMap: map[[2]int]int{
			{0, 2}: 0, {1, 2}: 0,
			{0, 0}: 1, {1, 0}: 1,
			{0, 1}: 2, {1, 1}: 2,
		},
		VisualRowOrder: []int{0, 1, 2}, // would say y=0 is front if row map were absent
	}

	front := FrontTables(room, 1, opts)
	require.True(t, front[[2]int{0, 2}], "row map says y=2 is the front row")
	require.False(t, front[[2]int{0, 0}])
}

func TestFrontTablesVisualRowOrderWinsOverPixelAndNatural(t *testing.T) {
	room := testRoom(t)
	geom := &Geometry{TablePitchX: 10, TablePitchY: 10}
	opts := RowOrderOptions{
		VisualRowOrder: []int{2, 1, 0}, // reversed: y=2 is displayed first
		Metric:         MetricPx,
		Geometry:       geom,
	}

	front := FrontTables(room, 1, opts)
	require.True(t, front[[2]int{0, 2}])
	require.False(t, front[[2]int{0, 0}])
}

func TestFrontTablesPixelDerivedOrderWinsOverNatural(t *testing.T) {
	room := testRoom(t)
	geom := &Geometry{TablePitchX: 10, TablePitchY: -10} // inverted: larger y draws higher up
	opts := RowOrderOptions{
		Metric:   MetricPx,
		Geometry: geom,
	}

	front := FrontTables(room, 1, opts)
	require.True(t, front[[2]int{0, 2}], "pixel y is smallest at grid y=2 under inverted pitch")
}

func TestPixelOfAppliesTableOffset(t *testing.T) {
	geom := Geometry{TablePitchX: 100, TablePitchY: 50, SeatPitchX: 10}
	offsets := map[[2]int]TableOffset{{1, 0}: {DX: 5, DY: -3}}

	px, py := PixelOf(model.Position{X: 1, Y: 0, Seat: 1}, geom, offsets)
	require.Equal(t, 100.0+10.0+5.0, px)
	require.Equal(t, -3.0, py)
}

func TestDistanceGridVsPixel(t *testing.T) {
	a := model.Position{X: 0, Y: 0, Seat: 0}
	b := model.Position{X: 2, Y: 1, Seat: 0}

	require.Equal(t, 3.0, Distance(a, b, MetricGrid, nil, nil))

	geom := &Geometry{TablePitchX: 10, TablePitchY: 20}
	require.Equal(t, 40.0, Distance(a, b, MetricPx, geom, nil))
}
