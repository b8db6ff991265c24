// Package seatplan is the public facade of the solver: it accepts wire
// requests, resolves them into the internal domain model, drives a solve
// and reports back a result that never leaks internal types.
package seatplan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"seatplan/internal/constraint"
	"seatplan/internal/geometry"
	"seatplan/internal/model"
	"seatplan/internal/precompute"
	"seatplan/internal/registry"
	"seatplan/internal/solve"
)

// RosterEntry is one student as received from a caller. ID must be
// unique within a Request and is the stable identifier every constraint
// descriptor and placement key refers to; Name is display-only and never
// used to resolve a reference.
type RosterEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

// OptionsInput is the caller-supplied subset of solve.Options; zero
// values are replaced with sane defaults by Solve. RandomSeed and
// TiebreakRandom are pointers so Solve can tell "not specified" from an
// explicit zero/false, matching the wire spec's stated defaults
// (random_seed: null, tiebreak_random: true).
type OptionsInput struct {
	TimeBudget          time.Duration
	NumWorkers          int
	RandomSeed          *int64
	EnableIsolationPass bool
	EnableGenderPass    bool
	// ShuffleStudents randomizes student order before any modeling
	// begins; default false.
	ShuffleStudents bool
	// TiebreakRandom runs the random-weighted tie-break pass once every
	// other objective is frozen; default true if unset.
	TiebreakRandom *bool
	// VaryEachRun requests a fresh random seed on every call when
	// RandomSeed is unset, instead of the fixed fallback seed.
	VaryEachRun    bool
	Metric         string // "grid" (default) or "px"
	Geometry       *geometry.Geometry
	TableOffsets   map[[2]int]geometry.TableOffset
	VisualRowMap   map[[2]int]int
	VisualRowOrder []int
}

// OptionsEcho reports the effective options a solve actually ran with,
// after defaulting, so a caller can tell a default from an explicit
// choice.
type OptionsEcho struct {
	TimeBudget          time.Duration
	NumWorkers          int
	RandomSeed          int64
	EnableIsolationPass bool
	EnableGenderPass    bool
	ShuffleStudents     bool
	TiebreakRandom      bool
}

// Request bundles everything one solve needs. Placements maps a seat key
// ("x,y,seat") to the roster ID pre-assigned to it; LockPlacements turns
// those pre-assignments into hard ExactSeat constraints.
type Request struct {
	Schema          [][]int
	Students        []RosterEntry
	ConstraintsWire []registry.Descriptor
	ForbiddenKeys   []string
	Placements      map[string]string
	LockPlacements  bool
	Options         OptionsInput
}

// Status enumerates the outcome of a Solve call.
type Status string

const (
	StatusOK            Status = "ok"
	StatusInfeasible    Status = "infeasible"
	StatusConfiguration Status = "configuration_error"
)

// Result is everything Solve reports back. SolveID is an opaque,
// per-call identifier useful for correlating a result with the log
// lines Solve emitted while producing it.
type Result struct {
	SolveID    string
	Status     Status
	Assignment model.Assignment
	Stats      solve.Stats
	Echo       OptionsEcho
	Error      string
}

func defaultOptions(in OptionsInput) solve.Options {
	budget := in.TimeBudget
	if budget <= 0 {
		budget = 30 * time.Second
	}
	workers := in.NumWorkers
	if workers <= 0 {
		workers = 8
	}
	metric := geometry.MetricGrid
	if in.Metric == "px" {
		metric = geometry.MetricPx
	}

	var seed int64
	switch {
	case in.RandomSeed != nil:
		seed = *in.RandomSeed
	case in.VaryEachRun:
		seed = time.Now().UnixNano()
	default:
		seed = 0
	}

	tiebreak := true
	if in.TiebreakRandom != nil {
		tiebreak = *in.TiebreakRandom
	}

	return solve.Options{
		TimeBudget:          budget,
		NumWorkers:          workers,
		RandomSeed:          seed,
		EnableIsolationPass: in.EnableIsolationPass,
		EnableGenderPass:    in.EnableGenderPass,
		ShuffleStudents:     in.ShuffleStudents,
		TiebreakRandom:      tiebreak,
		Metric:              metric,
		Geometry:            in.Geometry,
		TableOffsets:        in.TableOffsets,
	}
}

// Solve builds the room and student model from req, translates its wire
// constraints, precomputes domains, and runs the lexicographic solver.
// It never returns an error: every failure mode is reported through
// Result.Status/Error so a caller gets one uniform shape to branch on.
func Solve(ctx context.Context, req Request) Result {
	solveID := uuid.NewString()

	room, err := model.NewRoom(req.Schema)
	if err != nil {
		return configError(solveID, fmt.Errorf("seatplan: invalid room schema: %w", err))
	}

	students := make([]model.Student, 0, len(req.Students))
	knownNames := make(map[string]bool, len(req.Students))
	idToName := make(map[string]string, len(req.Students))
	for _, r := range req.Students {
		if r.ID == "" {
			return configError(solveID, fmt.Errorf("seatplan: student %q has no id", r.Name))
		}
		if _, dup := idToName[r.ID]; dup {
			return configError(solveID, fmt.Errorf("seatplan: duplicate student id %q", r.ID))
		}
		if knownNames[r.Name] {
			return configError(solveID, fmt.Errorf("seatplan: duplicate student name %q", r.Name))
		}
		knownNames[r.Name] = true
		idToName[r.ID] = r.Name
		students = append(students, model.Student{Name: r.Name, Gender: model.ParseGender(r.Gender)})
	}

	rowOpts := geometry.RowOrderOptions{
		VisualRowMap:   req.Options.VisualRowMap,
		VisualRowOrder: req.Options.VisualRowOrder,
		TableOffsets:   req.Options.TableOffsets,
	}
	if req.Options.Metric == "px" {
		rowOpts.Metric = geometry.MetricPx
		rowOpts.Geometry = req.Options.Geometry
	}

	cons, err := registry.Translate(req.ConstraintsWire, idToName, req.ForbiddenKeys, req.Placements, req.LockPlacements, rowOpts)
	if err != nil {
		return configError(solveID, fmt.Errorf("seatplan: %w", err))
	}

	domains, err := precompute.ComputeDomains(room, students, cons)
	if err != nil {
		return configError(solveID, fmt.Errorf("seatplan: %w", err))
	}

	opts := defaultOptions(req.Options)
	log.Printf("seatplan[%s]: solving for %d students, %d seats, %d constraints", solveID, len(students), room.SeatCount(), len(cons))

	assignment, stats, err := solveDomain(ctx, room, students, cons, domains, opts)
	echo := OptionsEcho{
		TimeBudget:          opts.TimeBudget,
		NumWorkers:          opts.NumWorkers,
		RandomSeed:          opts.RandomSeed,
		EnableIsolationPass: opts.EnableIsolationPass,
		EnableGenderPass:    opts.EnableGenderPass,
		ShuffleStudents:     opts.ShuffleStudents,
		TiebreakRandom:      opts.TiebreakRandom,
	}
	if err != nil {
		if errors.Is(err, solve.ErrConfiguration) {
			return Result{SolveID: solveID, Status: StatusConfiguration, Echo: echo, Error: err.Error()}
		}
		log.Printf("seatplan[%s]: solve did not find a feasible assignment: %v", solveID, err)
		return Result{SolveID: solveID, Status: StatusInfeasible, Echo: echo, Error: err.Error()}
	}

	return Result{SolveID: solveID, Status: StatusOK, Assignment: assignment, Stats: stats, Echo: echo}
}

// solveDomain exists so tests can stub the solver boundary without
// constructing a full gini circuit.
var solveDomain = func(
	ctx context.Context,
	room *model.Room,
	students []model.Student,
	cons []constraint.Constraint,
	domains map[string]model.SeatSet,
	opts solve.Options,
) (model.Assignment, solve.Stats, error) {
	return solve.Solve(ctx, room, students, cons, domains, opts)
}

func configError(solveID string, err error) Result {
	log.Printf("seatplan[%s]: configuration error: %v", solveID, err)
	return Result{SolveID: solveID, Status: StatusConfiguration, Error: err.Error()}
}
