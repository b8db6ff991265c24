package model

import "fmt"

// Room is constructed from a schema: a sequence of rows, each row a
// sequence of integers. A positive integer c creates a table of capacity
// c at (column_index, row_index); a non-positive integer is a visual gap
// that consumes an x slot but creates no table.
type Room struct {
	schema       [][]int
	tables       []Table
	seats        []Position
	seatIndex    map[Position]int
	capacity     map[[2]int]int
	seatsByTable map[[2]int][]Position
	maxX, maxY   int
}

// NewRoom builds a Room from a schema. Rows may have different lengths;
// an empty schema produces a room with zero seats.
func NewRoom(schema [][]int) (*Room, error) {
	r := &Room{
		capacity:     make(map[[2]int]int),
		seatsByTable: make(map[[2]int][]Position),
		maxX:         -1,
		maxY:         -1,
	}
	r.schema = make([][]int, len(schema))
	for y, row := range schema {
		r.schema[y] = append([]int(nil), row...)
		for x, c := range row {
			if c <= 0 {
				continue
			}
			r.tables = append(r.tables, Table{X: x, Y: y, Capacity: c})
			key := [2]int{x, y}
			if _, dup := r.capacity[key]; dup {
				return nil, fmt.Errorf("model: duplicate table at (%d,%d)", x, y)
			}
			r.capacity[key] = c
			if x > r.maxX {
				r.maxX = x
			}
			if y > r.maxY {
				r.maxY = y
			}
		}
	}

	// Canonical seat order: (y, x, seat), per the construction order above
	// since rows are walked in y order and tables within a row in x order.
	r.seatIndex = make(map[Position]int)
	for _, t := range r.tables {
		seats := t.Seats()
		r.seatsByTable[t.Key()] = seats
		for _, p := range seats {
			r.seatIndex[p] = len(r.seats)
			r.seats = append(r.seats, p)
		}
	}
	return r, nil
}

// Seats returns all seats in the room in canonical (y, x, seat) order.
func (r *Room) Seats() []Position {
	return r.seats
}

// SeatCount returns the total number of seats.
func (r *Room) SeatCount() int {
	return len(r.seats)
}

// Tables returns every table in the room, in construction order.
func (r *Room) Tables() []Table {
	return r.tables
}

// MaxX returns the maximum column index of any table, or -1 if there are none.
func (r *Room) MaxX() int {
	return r.maxX
}

// MaxY returns the maximum row index of any table, or -1 if there are none.
func (r *Room) MaxY() int {
	return r.maxY
}

// CapacityAt returns the capacity of the table at (x, y), and whether one exists.
func (r *Room) CapacityAt(x, y int) (int, bool) {
	c, ok := r.capacity[[2]int{x, y}]
	return c, ok
}

// SeatsAtTable returns the seats of the table at (x, y), or nil if absent.
func (r *Room) SeatsAtTable(x, y int) []Position {
	return r.seatsByTable[[2]int{x, y}]
}

// IndexOf returns the canonical seat index of pos, and whether pos exists
// in this room.
func (r *Room) IndexOf(pos Position) (int, bool) {
	i, ok := r.seatIndex[pos]
	return i, ok
}

// SeatAt returns the Position at canonical index i.
func (r *Room) SeatAt(i int) Position {
	return r.seats[i]
}

// HasTable reports whether a table exists at (x, y).
func (r *Room) HasTable(x, y int) bool {
	_, ok := r.capacity[[2]int{x, y}]
	return ok
}
