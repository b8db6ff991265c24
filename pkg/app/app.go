// Package app wires the seatplan solver into an fx application, the way
// the original service wired its Mongo-backed modules: a small set of
// fx.Provide constructors plus one fx.Invoke that drives the program's
// actual work.
package app

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"

	"seatplan/internal/seatplan"
)

// Module wires one demo request and runs it through the solver on
// startup, logging the resulting assignment (or the reason it failed).
var Module = fx.Module("seatplan",
	fx.Provide(NewSampleRequest),
	fx.Invoke(RunSample),
)

// NewSampleRequest builds a small, always-feasible request so the demo
// binary has something concrete to solve without requiring external
// input wiring.
func NewSampleRequest() seatplan.Request {
	return seatplan.Request{
		Schema: [][]int{
			{2, 2},
			{2, 2},
		},
		Students: []seatplan.RosterEntry{
			{ID: "1", Name: "Alice Martin", Gender: "f"},
			{ID: "2", Name: "Bruno Costa", Gender: "m"},
			{ID: "3", Name: "Chloe Dubois", Gender: "f"},
			{ID: "4", Name: "David Nguyen", Gender: "m"},
		},
		ConstraintsWire: nil,
		Options: seatplan.OptionsInput{
			TimeBudget:          5 * time.Second,
			EnableIsolationPass: true,
			EnableGenderPass:    true,
			RandomSeed:          &sampleSeed,
		},
	}
}

var sampleSeed int64 = 1

// RunSample runs req through the solver and logs the outcome. It takes
// an fx.Lifecycle so the solve happens once the application is fully
// wired, matching the teacher's pattern of registering start hooks
// rather than running blocking work from a provider.
func RunSample(lc fx.Lifecycle, req seatplan.Request) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			result := seatplan.Solve(ctx, req)
			switch result.Status {
			case seatplan.StatusOK:
				log.Printf("seatplan: solved in %d pass(es), sumY=%d isolated=%d same_gender_adjacent=%d",
					result.Stats.PassesRun, result.Stats.SumY, result.Stats.Isolated, result.Stats.SameGenderAdjacent)
				for name, pos := range result.Assignment {
					log.Printf("seatplan: %s -> table(%d,%d) seat %d", name, pos.X, pos.Y, pos.Seat)
				}
			default:
				log.Printf("seatplan: %s: %s", result.Status, result.Error)
			}
			return nil
		},
	})
}
