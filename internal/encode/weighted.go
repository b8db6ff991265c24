package encode

import (
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"

	"seatplan/internal/model"
)

// WeightedLit is one term of a weighted cardinality sum: Lit contributes
// Weight to the sum whenever it is true.
type WeightedLit struct {
	Lit    z.Lit
	Weight int
}

// CardSortOf builds a counting network over a weighted set of literals by
// repeating each literal Weight times, the same trick operator-framework's
// dependency resolver uses to turn per-item integer weights into a single
// CardSort: the resulting network's Leq(w) literal is true exactly when
// the weighted sum of true items is at most w.
func (e *Encoder) CardSortOf(items []WeightedLit) *logic.CardSort {
	var weights []z.Lit
	for _, it := range items {
		for w := 0; w < it.Weight; w++ {
			weights = append(weights, it.Lit)
		}
	}
	return e.c.CardSort(weights)
}

// Room exposes the room this encoder was built against, for objective
// builders that need seat coordinates.
func (e *Encoder) Room() *model.Room { return e.room }

// SeatOccupied returns a literal true exactly when some student occupies
// the seat with the given index.
func (e *Encoder) SeatOccupied(seatIndex int) z.Lit {
	return e.c.Ors(e.seatVars[seatIndex]...)
}

// AtMostKOccupied asserts, as a hard clause, that the weighted sum of
// "subject sits at subjectPos" plus "someone sits at p" for every p in
// others is at most k: the same per-seat bounded-sum shape EmptyNeighbor
// needs (x[a][i] + Σ occ[j] ≤ |N_i|), built on the same CardSortOf
// counting network the objective passes use. A no-op if subjectPos is
// outside subject's domain, since the term is then always false and the
// bound holds trivially.
func (e *Encoder) AtMostKOccupied(subject string, subjectPos model.Position, others []model.Position, k int) {
	idx, ok := e.room.IndexOf(subjectPos)
	if !ok {
		return
	}
	lit, ok := e.VarOf(subject, idx)
	if !ok {
		return
	}
	terms := []WeightedLit{{Lit: lit, Weight: 1}}
	for _, pos := range others {
		oidx, ok := e.room.IndexOf(pos)
		if !ok {
			continue
		}
		terms = append(terms, WeightedLit{Lit: e.SeatOccupied(oidx), Weight: 1})
	}
	cards := e.CardSortOf(terms)
	e.mustLits = append(e.mustLits, cards.Leq(k))
}
