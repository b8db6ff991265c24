package seatplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/constraint"
	"seatplan/internal/model"
	"seatplan/internal/registry"
	"seatplan/internal/solve"
)

func withStubbedSolver(t *testing.T, fn func(ctx context.Context, room *model.Room, students []model.Student, cons []constraint.Constraint, domains map[string]model.SeatSet, opts solve.Options) (model.Assignment, solve.Stats, error)) {
	t.Helper()
	orig := solveDomain
	solveDomain = fn
	t.Cleanup(func() { solveDomain = orig })
}

func TestSolveRejectsInvalidSchema(t *testing.T) {
	res := Solve(context.Background(), Request{Schema: nil, Students: []RosterEntry{{ID: "1", Name: "a"}}})
	require.Equal(t, StatusConfiguration, res.Status)
}

func TestSolveRejectsStudentWithoutID(t *testing.T) {
	res := Solve(context.Background(), Request{
		Schema:   [][]int{{2}},
		Students: []RosterEntry{{Name: "a"}},
	})
	require.Equal(t, StatusConfiguration, res.Status)
}

func TestSolveRejectsDuplicateStudentIDs(t *testing.T) {
	res := Solve(context.Background(), Request{
		Schema:   [][]int{{2}},
		Students: []RosterEntry{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}},
	})
	require.Equal(t, StatusConfiguration, res.Status)
}

func TestSolveRejectsDuplicateStudentNames(t *testing.T) {
	res := Solve(context.Background(), Request{
		Schema:   [][]int{{2}},
		Students: []RosterEntry{{ID: "1", Name: "a"}, {ID: "2", Name: "a"}},
	})
	require.Equal(t, StatusConfiguration, res.Status)
}

func TestSolveRejectsUnknownConstraintStudent(t *testing.T) {
	res := Solve(context.Background(), Request{
		Schema:   [][]int{{2}},
		Students: []RosterEntry{{ID: "1", Name: "a"}},
		ConstraintsWire: []registry.Descriptor{
			{Type: "solo_table", Student: "ghost"},
		},
	})
	require.Equal(t, StatusConfiguration, res.Status)
}

func TestSolveHappyPathReturnsOKOnStubbedSolver(t *testing.T) {
	withStubbedSolver(t, func(ctx context.Context, room *model.Room, students []model.Student, cons []constraint.Constraint, domains map[string]model.SeatSet, opts solve.Options) (model.Assignment, solve.Stats, error) {
		return model.Assignment{"a": {X: 0, Y: 0, Seat: 0}}, solve.Stats{PassesRun: 1}, nil
	})

	res := Solve(context.Background(), Request{
		Schema:   [][]int{{2}},
		Students: []RosterEntry{{ID: "1", Name: "a", Gender: "f"}},
	})
	require.Equal(t, StatusOK, res.Status)
	require.Equal(t, model.Position{X: 0, Y: 0, Seat: 0}, res.Assignment["a"])
	require.Equal(t, 1, res.Stats.PassesRun)
}

func TestSolveReportsInfeasibleWhenSolverFails(t *testing.T) {
	withStubbedSolver(t, func(ctx context.Context, room *model.Room, students []model.Student, cons []constraint.Constraint, domains map[string]model.SeatSet, opts solve.Options) (model.Assignment, solve.Stats, error) {
		return nil, solve.Stats{}, solve.ErrNoSolution
	})

	res := Solve(context.Background(), Request{
		Schema:   [][]int{{1}},
		Students: []RosterEntry{{ID: "1", Name: "a"}},
	})
	require.Equal(t, StatusInfeasible, res.Status)
	require.NotEmpty(t, res.Error)
}
