// Package registry translates the wire representation of placement
// constraints into internal/constraint values. It replaces the
// decorator-based global factory the spec was ported from with a single
// exhaustive switch: no global registration state, no reflection.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"seatplan/internal/constraint"
	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// Descriptor is the wire shape of one constraint as received from a
// caller. Student, Students, StudentA and StudentB hold roster IDs, not
// names: Translate resolves them through the roster's id -> name map
// before building any constraint. Only the fields relevant to Type are
// read; the rest are ignored. A Type of "" or one starting with "_"
// (batch/objective markers from the UI payload) is skipped without error.
type Descriptor struct {
	Type string `json:"type"`

	Student  string   `json:"student,omitempty"`
	Students []string `json:"students,omitempty"`

	StudentA string `json:"student_a,omitempty"`
	StudentB string `json:"student_b,omitempty"`

	K int `json:"k,omitempty"`

	Key  string `json:"key,omitempty"`
	X    int    `json:"x,omitempty"`
	Y    int    `json:"y,omitempty"`
	Seat int    `json:"seat,omitempty"`

	Distance float64 `json:"distance,omitempty"`
	Metric   string  `json:"metric,omitempty"` // "grid" (default) or "px"
}

// parseKey parses the "x,y,seat" compact key format used to reference a
// single seat, tolerating the alternate shape where X/Y/Seat are given
// as separate fields instead.
func parseKey(key string, x, y, seat int) (model.Position, error) {
	if key == "" {
		return model.Position{X: x, Y: y, Seat: seat}, nil
	}
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return model.Position{}, fmt.Errorf("registry: malformed seat key %q", key)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.Position{}, fmt.Errorf("registry: malformed seat key %q: %w", key, err)
		}
		vals[i] = n
	}
	return model.Position{X: vals[0], Y: vals[1], Seat: vals[2]}, nil
}

func parseMetric(m string) geometry.Metric {
	if m == "px" {
		return geometry.MetricPx
	}
	return geometry.MetricGrid
}

// resolveID looks up one roster id, treating an empty id as "not
// applicable" rather than an error (several descriptor shapes leave
// StudentA/StudentB unset).
func resolveID(idToName map[string]string, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	name, ok := idToName[id]
	if !ok {
		return "", fmt.Errorf("registry: unknown student id %q", id)
	}
	return name, nil
}

// resolveIDs resolves a whole slice of roster ids to names, preserving
// order.
func resolveIDs(idToName map[string]string, ids []string) ([]string, error) {
	names := make([]string, len(ids))
	for i, id := range ids {
		name, err := resolveID(idToName, id)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// Translate converts wire descriptors, a set of forbidden seat keys and a
// map of locked placements into internal constraints. idToName is the
// roster's stable id -> name map; every student reference in descs and
// placements is an id resolved through it, and an unknown id is a
// configuration error. rowOpts supplies the row-order options shared by
// front_rows/back_rows, and its Geometry/TableOffsets are also copied onto
// every far_apart constraint.
func Translate(
	descs []Descriptor,
	idToName map[string]string,
	forbiddenKeys []string,
	placements map[string]string,
	lockPlacements bool,
	rowOpts geometry.RowOrderOptions,
) ([]constraint.Constraint, error) {
	var out []constraint.Constraint
	forbiddenSeats := make(map[model.Position]bool)

	for _, d := range descs {
		if d.Type == "" || strings.HasPrefix(d.Type, "_") {
			continue
		}

		switch constraint.Kind(d.Type) {
		case constraint.KindFrontRows:
			names, err := resolveIDs(idToName, d.Students)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.FrontRows{Students: names, K: d.K, RowOpts: rowOpts})

		case constraint.KindBackRows:
			names, err := resolveIDs(idToName, d.Students)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.BackRows{Students: names, K: d.K, RowOpts: rowOpts})

		case constraint.KindSoloAtTable:
			name, err := resolveID(idToName, d.Student)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.SoloAtTable{Student: name})

		case constraint.KindEmptyNeighbor:
			name, err := resolveID(idToName, d.Student)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.EmptyNeighbor{Student: name})

		case constraint.KindNoAdjacentNeighbor:
			name, err := resolveID(idToName, d.Student)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.NoAdjacentNeighbor{Student: name})

		case constraint.KindExactSeat:
			name, err := resolveID(idToName, d.Student)
			if err != nil {
				return nil, err
			}
			pos, err := parseKey(d.Key, d.X, d.Y, d.Seat)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.ExactSeat{Student: name, Position: pos})

		case constraint.KindSameTable:
			nameA, err := resolveID(idToName, d.StudentA)
			if err != nil {
				return nil, err
			}
			nameB, err := resolveID(idToName, d.StudentB)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.SameTable{StudentA: nameA, StudentB: nameB})

		case constraint.KindAdjacent:
			nameA, err := resolveID(idToName, d.StudentA)
			if err != nil {
				return nil, err
			}
			nameB, err := resolveID(idToName, d.StudentB)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.Adjacent{StudentA: nameA, StudentB: nameB})

		case constraint.KindFarApart:
			nameA, err := resolveID(idToName, d.StudentA)
			if err != nil {
				return nil, err
			}
			nameB, err := resolveID(idToName, d.StudentB)
			if err != nil {
				return nil, err
			}
			dist := d.Distance
			if dist <= 0 {
				dist = 1
			}
			out = append(out, constraint.FarApart{
				StudentA: nameA, StudentB: nameB,
				MinDistance: dist, Metric: parseMetric(d.Metric),
				Geometry: rowOpts.Geometry, TableOffsets: rowOpts.TableOffsets,
			})

		case constraint.KindForbidTable:
			out = append(out, constraint.ForbidTable{X: d.X, Y: d.Y})

		case constraint.KindForbidSeat:
			pos, err := parseKey(d.Key, d.X, d.Y, d.Seat)
			if err != nil {
				return nil, err
			}
			forbiddenSeats[pos] = true
			out = append(out, constraint.ForbidSeat{Position: pos})

		case constraint.KindPreferTable:
			name, err := resolveID(idToName, d.Student)
			if err != nil {
				return nil, err
			}
			out = append(out, constraint.PreferTable{Student: name, X: d.X, Y: d.Y})

		default:
			return nil, fmt.Errorf("registry: unknown constraint type %q", d.Type)
		}
	}

	for _, key := range forbiddenKeys {
		pos, err := parseKey(key, 0, 0, 0)
		if err != nil {
			return nil, err
		}
		if forbiddenSeats[pos] {
			continue
		}
		forbiddenSeats[pos] = true
		out = append(out, constraint.ForbidSeat{Position: pos})
	}

	// placements is "x,y,s" -> student id, per spec: a pre-existing seat
	// assignment keyed by seat, not by student.
	if lockPlacements {
		alreadyExact := make(map[string]bool)
		for _, c := range out {
			if es, ok := c.(constraint.ExactSeat); ok {
				alreadyExact[es.Student] = true
			}
		}
		keys := make([]string, 0, len(placements))
		for key := range placements {
			keys = append(keys, key)
		}
		sortStrings(keys)
		for _, key := range keys {
			name, err := resolveID(idToName, placements[key])
			if err != nil {
				return nil, fmt.Errorf("registry: placement %q: %w", key, err)
			}
			if alreadyExact[name] {
				continue
			}
			pos, err := parseKey(key, 0, 0, 0)
			if err != nil {
				return nil, err
			}
			if forbiddenSeats[pos] {
				return nil, fmt.Errorf("registry: locked placement for %q targets a forbidden seat %+v", name, pos)
			}
			alreadyExact[name] = true
			out = append(out, constraint.ExactSeat{Student: name, Position: pos})
		}
	}

	return out, nil
}

// sortStrings keeps Translate's output order deterministic without
// pulling in sort for what is, at call sites, always a small slice.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
