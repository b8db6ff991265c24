package solve

import (
	"github.com/irifrance/gini/z"

	"seatplan/internal/encode"
	"seatplan/internal/model"
)

// rowDistanceTerms builds the sumY objective terms: each student's
// occupied-seat variable contributes its row index as weight, so the
// resulting cardinality sum approximates sum(y) over the whole
// assignment. Minimizing it biases the solver towards the front rows.
func rowDistanceTerms(enc *encode.Encoder, students []model.Student) []encode.WeightedLit {
	room := enc.Room()
	var terms []encode.WeightedLit
	for _, st := range students {
		for idx, lit := range enc.VarsOf(st.Name) {
			terms = append(terms, encode.WeightedLit{Lit: lit, Weight: room.SeatAt(idx).Y})
		}
	}
	return terms
}

// neighborOccupiedLits returns, for every seat index, a literal true when
// some student sits in an adjacent seat of the same table.
func neighborOccupiedLits(enc *encode.Encoder, adjacency [][2]int) map[int]z.Lit {
	neighbors := make(map[int][]int)
	for _, pair := range adjacency {
		neighbors[pair[0]] = append(neighbors[pair[0]], pair[1])
		neighbors[pair[1]] = append(neighbors[pair[1]], pair[0])
	}
	out := make(map[int]z.Lit, len(neighbors))
	c := enc.C()
	for idx, nbrs := range neighbors {
		var occ []z.Lit
		for _, n := range nbrs {
			occ = append(occ, enc.SeatOccupied(n))
		}
		out[idx] = c.Ors(occ...)
	}
	return out
}

// isolationTerms builds one literal per student, true when that student
// ends up with no occupied neighboring seat.
func isolationTerms(enc *encode.Encoder, students []model.Student, adjacency [][2]int) []encode.WeightedLit {
	c := enc.C()
	hasNeighbor := neighborOccupiedLits(enc, adjacency)

	var terms []encode.WeightedLit
	for _, st := range students {
		var isoAt []z.Lit
		for idx, lit := range enc.VarsOf(st.Name) {
			hn, ok := hasNeighbor[idx]
			if !ok {
				// seat belongs to a capacity-1 table: no neighbor ever exists,
				// so sitting there is unconditionally isolated.
				isoAt = append(isoAt, lit)
				continue
			}
			isoAt = append(isoAt, c.Ands(lit, hn.Not()))
		}
		terms = append(terms, encode.WeightedLit{Lit: c.Ors(isoAt...), Weight: 1})
	}
	return terms
}

// sameGenderAdjacencyTerms builds one literal per adjacent seat pair,
// true when both seats end up occupied by students sharing the same
// known gender. Students of unknown gender never contribute, mirroring
// the original model's _genre_code-gated aggregation.
func sameGenderAdjacencyTerms(enc *encode.Encoder, students []model.Student, adjacency [][2]int) []encode.WeightedLit {
	c := enc.C()
	byGender := map[model.Gender][]model.Student{}
	for _, st := range students {
		if st.Gender == model.GenderUnknown {
			continue
		}
		byGender[st.Gender] = append(byGender[st.Gender], st)
	}

	var terms []encode.WeightedLit
	for _, pair := range adjacency {
		var matches []z.Lit
		for _, group := range byGender {
			for _, sa := range group {
				litA, ok := enc.VarOf(sa.Name, pair[0])
				if !ok {
					continue
				}
				for _, sb := range group {
					if sa.Name == sb.Name {
						continue
					}
					litB, ok := enc.VarOf(sb.Name, pair[1])
					if !ok {
						continue
					}
					matches = append(matches, c.Ands(litA, litB))
				}
			}
		}
		if len(matches) == 0 {
			continue
		}
		terms = append(terms, encode.WeightedLit{Lit: c.Ors(matches...), Weight: 1})
	}
	return terms
}

// complement returns Not(lit) for every term, preserving weights; used to
// turn a "maximize sum of X" pass into the "minimize sum of not-X" shape
// the Leq-based search already knows how to do.
func complement(terms []encode.WeightedLit) []encode.WeightedLit {
	out := make([]encode.WeightedLit, len(terms))
	for i, t := range terms {
		out[i] = encode.WeightedLit{Lit: t.Lit.Not(), Weight: t.Weight}
	}
	return out
}
