// Package solve drives the lexicographic, multi-pass optimization over a
// CP-SAT-style encoding built by internal/encode: minimize row distance,
// then (optionally) maximize isolation, then (optionally) minimize
// same-gender adjacency, then (optionally) break remaining ties with a
// seeded random pass, freezing each prior pass's optimum before moving to
// the next.
package solve

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/inter"
	"github.com/irifrance/gini/logic"
	"github.com/irifrance/gini/z"

	"seatplan/internal/constraint"
	"seatplan/internal/encode"
	"seatplan/internal/geometry"
	"seatplan/internal/model"
	"seatplan/internal/precompute"
)

// Sentinel errors. errBudgetExhausted wraps ErrNoSolution so callers that
// only check errors.Is(err, ErrNoSolution) still match a timeout.
var (
	ErrConfiguration = errors.New("solve: configuration error")
	ErrNoSolution    = errors.New("solve: no feasible assignment exists")
)

func errBudgetExhausted() error {
	return fmt.Errorf("solve: time budget exhausted before a solution was found: %w", ErrNoSolution)
}

// Options configures one Solve call. Nothing here is read from the
// environment: callers build it explicitly (seatplan.defaultOptions does
// so from a request's OptionsInput).
type Options struct {
	TimeBudget          time.Duration
	NumWorkers          int
	RandomSeed          int64
	EnableIsolationPass bool
	EnableGenderPass    bool
	// ShuffleStudents randomizes student order before any modeling
	// begins, seeded by RandomSeed. It never changes which students or
	// seats exist, only which of several equally-good solutions a pass
	// is likely to land on first.
	ShuffleStudents bool
	// TiebreakRandom enables the final pass that maximizes a seeded
	// random per-(student,seat) weighted sum once every earlier
	// objective is frozen. When false, the assignment from the last
	// objective pass that actually ran is returned unmodified.
	TiebreakRandom bool
	Metric         geometry.Metric
	Geometry       *geometry.Geometry
	TableOffsets   map[[2]int]geometry.TableOffset
}

// Stats reports what each pass actually achieved, echoed back to callers
// alongside the assignment.
type Stats struct {
	SumY               int
	Isolated           int
	SameGenderAdjacent int
	PassesRun          int
}

// Solve runs SANITY_OK -> DOMAINS_BUILT -> PASS1_OPT -> [PASS2_OPT] ->
// [PASS3_OPT] -> [PASS4_OPT] -> VALIDATED -> DONE against one problem
// instance. domains are precomputed once by the caller
// (internal/precompute); adjacency is computed once here. Both are reused
// identically across every pass. Each
// objective pass reads back its own satisfying assignment immediately
// after finding its optimum, so the assignment from whichever pass ran
// last is always available, whether or not the optional random-tiebreak
// pass runs.
func Solve(
	ctx context.Context,
	room *model.Room,
	students []model.Student,
	constraints []constraint.Constraint,
	domains map[string]model.SeatSet,
	opts Options,
) (model.Assignment, Stats, error) {
	if err := SanityCheck(room, students, constraints); err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if opts.ShuffleStudents {
		rand.New(rand.NewSource(opts.RandomSeed)).Shuffle(len(students), func(i, j int) {
			students[i], students[j] = students[j], students[i]
		})
	}

	names := make([]string, len(students))
	for i, st := range students {
		names[i] = st.Name
	}
	adjacency := precompute.ComputeAdjacency(room)

	numPasses := 1 // pass 1 (row distance) always runs
	if opts.EnableIsolationPass {
		numPasses++
	}
	if opts.EnableGenderPass {
		numPasses++
	}
	if opts.TiebreakRandom {
		numPasses++
	}
	passBudget := opts.TimeBudget / time.Duration(numPasses)

	buildPass := func() (*encode.Encoder, *gini.Gini, []z.Lit, error) {
		enc, err := encode.New(room, students, domains)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		for _, c := range constraints {
			c.EncodeHard(enc, room, names)
		}
		g := gini.New()
		must := enc.ToCnf(g)
		return enc, g, must, nil
	}

	var stats Stats
	var assignment model.Assignment

	// PASS1_OPT: minimize sum of row indices.
	enc1, g1, must1, err := buildPass()
	if err != nil {
		return nil, stats, err
	}
	sumYTerms := rowDistanceTerms(enc1, students)
	sumYCards := enc1.CardSortOf(sumYTerms)
	bestSumY, ok := minimizeLeq(ctx, g1, sumYCards, must1, passBudget)
	if !ok {
		return nil, stats, errBudgetExhausted()
	}
	stats.SumY = bestSumY
	stats.PassesRun++
	assignment = enc1.Assignment(g1)

	bestIsolated := -1
	if opts.EnableIsolationPass {
		enc2, g2, must2, err := buildPass()
		if err != nil {
			return nil, stats, err
		}
		must2 = append(must2, freezeSumY(enc2, students, bestSumY))
		isoTerms := isolationTerms(enc2, students, adjacency)
		// maximize isolation == minimize count of non-isolated students
		notIsoCards := enc2.CardSortOf(complement(isoTerms))
		bestNotIso, ok := minimizeLeq(ctx, g2, notIsoCards, must2, passBudget)
		if !ok {
			return nil, stats, errBudgetExhausted()
		}
		bestIsolated = len(students) - bestNotIso
		stats.Isolated = bestIsolated
		stats.PassesRun++
		assignment = enc2.Assignment(g2)
	}

	bestSameGender := -1
	if opts.EnableGenderPass {
		enc3, g3, must3, err := buildPass()
		if err != nil {
			return nil, stats, err
		}
		must3 = append(must3, freezeSumY(enc3, students, bestSumY))
		if bestIsolated >= 0 {
			must3 = append(must3, freezeIsolation(enc3, students, adjacency, bestIsolated))
		}
		sameTerms := sameGenderAdjacencyTerms(enc3, students, adjacency)
		sameCards := enc3.CardSortOf(sameTerms)
		bestSame, ok := minimizeLeq(ctx, g3, sameCards, must3, passBudget)
		if !ok {
			return nil, stats, errBudgetExhausted()
		}
		bestSameGender = bestSame
		stats.SameGenderAdjacent = bestSameGender
		stats.PassesRun++
		assignment = enc3.Assignment(g3)
	}

	// PASS4_OPT (optional): freeze everything decided so far, then
	// maximize a seeded random per-(student,seat) weighted sum, boosted
	// for any PreferTable hint, to break remaining ties.
	if opts.TiebreakRandom {
		enc4, g4, must4, err := buildPass()
		if err != nil {
			return nil, stats, err
		}
		must4 = append(must4, freezeSumY(enc4, students, bestSumY))
		if bestIsolated >= 0 {
			must4 = append(must4, freezeIsolation(enc4, students, adjacency, bestIsolated))
		}
		if bestSameGender >= 0 {
			must4 = append(must4, freezeSameGender(enc4, students, adjacency, bestSameGender))
		}

		rng := rand.New(rand.NewSource(opts.RandomSeed))
		tiebreak := tiebreakTerms(enc4, students, constraints, rng)
		// maximize Σ w[e,i]·x[e][i] == minimize the complement sum
		notMaxCards := enc4.CardSortOf(complement(tiebreak))
		if _, ok := minimizeLeq(ctx, g4, notMaxCards, must4, passBudget); !ok {
			return nil, stats, errBudgetExhausted()
		}
		stats.PassesRun++
		assignment = enc4.Assignment(g4)
	}

	if err := Validate(assignment, room, students, constraints, domains, geometryOrZero(opts.Geometry), opts.Metric); err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrNoSolution, err)
	}
	return assignment, stats, nil
}

func geometryOrZero(g *geometry.Geometry) geometry.Geometry {
	if g == nil {
		return geometry.Geometry{}
	}
	return *g
}

// freezeSumY reconstructs the row-distance objective on a fresh encoder
// and returns the assumption literal that pins it at or below the value
// a prior pass found.
func freezeSumY(enc *encode.Encoder, students []model.Student, bound int) z.Lit {
	cards := enc.CardSortOf(rowDistanceTerms(enc, students))
	return cards.Leq(bound)
}

func freezeIsolation(enc *encode.Encoder, students []model.Student, adjacency [][2]int, bound int) z.Lit {
	notIso := complement(isolationTerms(enc, students, adjacency))
	cards := enc.CardSortOf(notIso)
	return cards.Leq(len(students) - bound)
}

func freezeSameGender(enc *encode.Encoder, students []model.Student, adjacency [][2]int, bound int) z.Lit {
	cards := enc.CardSortOf(sameGenderAdjacencyTerms(enc, students, adjacency))
	return cards.Leq(bound)
}

// tiebreakTerms builds one weighted term per (student, candidate seat): a
// random positive weight seeded from rng, boosted whenever the seat's
// table matches a PreferTable hint for that student, so the random
// objective nudges towards it without guaranteeing it outright against an
// earlier frozen pass.
func tiebreakTerms(enc *encode.Encoder, students []model.Student, constraints []constraint.Constraint, rng *rand.Rand) []encode.WeightedLit {
	const baseMax = 16
	const preferenceBoost = baseMax * 4

	preferred := make(map[string]map[[2]int]bool)
	for _, c := range constraints {
		p, ok := c.(constraint.PreferTable)
		if !ok {
			continue
		}
		if preferred[p.Student] == nil {
			preferred[p.Student] = make(map[[2]int]bool)
		}
		preferred[p.Student][[2]int{p.X, p.Y}] = true
	}

	room := enc.Room()
	var terms []encode.WeightedLit
	for _, st := range students {
		for idx, lit := range enc.VarsOf(st.Name) {
			w := 1 + rng.Intn(baseMax)
			pos := room.SeatAt(idx)
			if preferred[st.Name][[2]int{pos.X, pos.Y}] {
				w += preferenceBoost
			}
			terms = append(terms, encode.WeightedLit{Lit: lit, Weight: w})
		}
	}
	return terms
}

func minimizeLeq(ctx context.Context, g *gini.Gini, cards *logic.CardSort, must []z.Lit, budget time.Duration) (int, bool) {
	passCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	best := cards.N()
	found := false
	binarySearchLeq(0, cards.N(), func(w int) bool {
		g.Assume(must...)
		if w >= 0 {
			g.Assume(cards.Leq(w))
		}
		result := waitForSolution(passCtx, g.GoSolve())
		if result == gini.Sat {
			found = true
			best = w
			return true
		}
		return false
	})
	if !found {
		// final attempt with no cardinality bound at all, to distinguish
		// "infeasible regardless of objective" from "budget ran out".
		g.Assume(must...)
		if waitForSolution(passCtx, g.GoSolve()) == gini.Sat {
			return cards.N(), true
		}
		return 0, false
	}
	return best, true
}

func waitForSolution(ctx context.Context, gs inter.Solve) int {
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}

func binarySearchLeq(min, max int, f func(int) bool) {
	for {
		x := min + (max-min)/2
		ok := f(x)
		if min >= max {
			if !ok {
				f(-1)
			}
			return
		}
		if ok {
			max = x
		} else {
			min = x + 1
		}
	}
}
