// Package geometry attaches an optional pixel coordinate system to a
// room's grid coordinates, and resolves the visual row ordering used by
// the FrontRows/BackRows constraints.
package geometry

import (
	"sort"

	"seatplan/internal/model"
)

// Metric selects which coordinate system a distance-sensitive constraint
// or objective should use.
type Metric int

const (
	MetricGrid Metric = iota
	MetricPx
)

// Geometry configures the table/seat pixel pitches used to derive pixel
// coordinates from grid coordinates.
type Geometry struct {
	TablePitchX float64
	TablePitchY float64
	SeatPitchX  float64
	SeatOffsetX float64
	SeatOffsetY float64
}

// TableOffset is a per-table pixel nudge layered on top of the regular
// table pitch.
type TableOffset struct {
	DX float64
	DY float64
}

// PixelOf derives the pixel coordinates of pos under geom, applying the
// per-table offset for its table if one is present.
func PixelOf(pos model.Position, geom Geometry, offsets map[[2]int]TableOffset) (px, py float64) {
	px = float64(pos.X)*geom.TablePitchX + geom.SeatOffsetX + float64(pos.Seat)*geom.SeatPitchX
	py = float64(pos.Y)*geom.TablePitchY + geom.SeatOffsetY
	if off, ok := offsets[[2]int{pos.X, pos.Y}]; ok {
		px += off.DX
		py += off.DY
	}
	return px, py
}

// Distance computes the distance between two seats in room under the
// given metric, used identically by the CP-SAT encoder and the final
// validator so the two never drift apart.
func Distance(a, b model.Position, metric Metric, geom *Geometry, offsets map[[2]int]TableOffset) float64 {
	if metric == MetricPx && geom != nil {
		ax, ay := PixelOf(a, *geom, offsets)
		bx, by := PixelOf(b, *geom, offsets)
		return absf(ax-bx) + absf(ay-by)
	}
	return float64(absi(a.X-b.X) + absi(a.Y-b.Y))
}

func absi(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// RowOrderOptions controls row-ordering precedence for FrontRows/BackRows,
// per the priority list: visual row map, then visual row order, then
// pixel-derived ordering, then natural y ordering.
type RowOrderOptions struct {
	VisualRowMap   map[[2]int]int // (x,y) -> visual row index
	VisualRowOrder []int          // permutation of y values, front to back
	Metric         Metric
	Geometry       *Geometry
	TableOffsets   map[[2]int]TableOffset
}

// FrontTables returns the (x,y) keys of every table considered among the
// first k visual rows under opts.
func FrontTables(room *model.Room, k int, opts RowOrderOptions) map[[2]int]bool {
	if opts.VisualRowMap != nil {
		return tablesWithVisualIndex(room, opts.VisualRowMap, func(idx int) bool { return idx < k })
	}
	order := orderedDistinctYs(room, opts)
	if k > len(order) {
		k = len(order)
	}
	if k < 0 {
		k = 0
	}
	return tablesInYs(room, order[:k])
}

// BackTables returns the (x,y) keys of every table considered among the
// last k visual rows under opts.
func BackTables(room *model.Room, k int, opts RowOrderOptions) map[[2]int]bool {
	if opts.VisualRowMap != nil {
		maxIdx := -1
		for _, idx := range opts.VisualRowMap {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
		threshold := maxIdx - k + 1
		return tablesWithVisualIndex(room, opts.VisualRowMap, func(idx int) bool { return idx >= threshold })
	}
	order := orderedDistinctYs(room, opts)
	if k > len(order) {
		k = len(order)
	}
	if k < 0 {
		k = 0
	}
	return tablesInYs(room, order[len(order)-k:])
}

func tablesWithVisualIndex(room *model.Room, rowMap map[[2]int]int, keep func(int) bool) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for _, t := range room.Tables() {
		key := t.Key()
		idx, ok := rowMap[key]
		if ok && keep(idx) {
			out[key] = true
		}
	}
	return out
}

func tablesInYs(room *model.Room, ys []int) map[[2]int]bool {
	want := make(map[int]bool, len(ys))
	for _, y := range ys {
		want[y] = true
	}
	out := make(map[[2]int]bool)
	for _, t := range room.Tables() {
		if want[t.Y] {
			out[t.Key()] = true
		}
	}
	return out
}

// orderedDistinctYs returns the distinct y values present in room, ordered
// front to back per priority 2 (VisualRowOrder), 3 (pixel ordering) or
// 4 (natural y ascending).
func orderedDistinctYs(room *model.Room, opts RowOrderOptions) []int {
	present := make(map[int]bool)
	for _, t := range room.Tables() {
		present[t.Y] = true
	}

	if len(opts.VisualRowOrder) > 0 {
		out := make([]int, 0, len(present))
		seen := make(map[int]bool)
		for _, y := range opts.VisualRowOrder {
			if present[y] && !seen[y] {
				out = append(out, y)
				seen[y] = true
			}
		}
		// Any y not named in the permutation is appended in natural order,
		// after the named rows, so every table still gets an ordering.
		var rest []int
		for y := range present {
			if !seen[y] {
				rest = append(rest, y)
			}
		}
		sort.Ints(rest)
		return append(out, rest...)
	}

	if opts.Metric == MetricPx && opts.Geometry != nil {
		ys := make([]int, 0, len(present))
		for y := range present {
			ys = append(ys, y)
		}
		minPy := make(map[int]float64, len(ys))
		for _, t := range room.Tables() {
			_, py := PixelOf(model.Position{X: t.X, Y: t.Y, Seat: 0}, *opts.Geometry, opts.TableOffsets)
			if cur, ok := minPy[t.Y]; !ok || py < cur {
				minPy[t.Y] = py
			}
		}
		sort.Slice(ys, func(i, j int) bool { return minPy[ys[i]] < minPy[ys[j]] })
		return ys
	}

	ys := make([]int, 0, len(present))
	for y := range present {
		ys = append(ys, y)
	}
	sort.Ints(ys)
	return ys
}
