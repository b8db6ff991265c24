package solve

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"seatplan/internal/constraint"
	"seatplan/internal/geometry"
	"seatplan/internal/model"
)

// Validate re-checks every constraint against a finished assignment,
// independently of whatever the solver believed while building it. It is
// intentionally stricter than the minimum the solver guarantees: every
// violation found is collected and reported, not just the first, since a
// diagnostic that stops at the first problem is strictly less useful than
// one that doesn't.
func Validate(
	a model.Assignment,
	room *model.Room,
	students []model.Student,
	constraints []constraint.Constraint,
	domains map[string]model.SeatSet,
	geom geometry.Geometry,
	metric geometry.Metric,
) error {
	var mu sync.Mutex
	var problems []error

	report := func(err error) {
		mu.Lock()
		problems = append(problems, err)
		mu.Unlock()
	}

	if err := a.Validate(room, students, domains); err != nil {
		report(err)
	}

	var g errgroup.Group
	for _, c := range constraints {
		c := c
		g.Go(func() error {
			if !c.Satisfied(a, room, geom, metric) {
				rec := c.Serialize()
				report(fmt.Errorf("solve: constraint violated: %s", rec.Text))
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(problems) == 0 {
		return nil
	}
	return errors.Join(problems...)
}
