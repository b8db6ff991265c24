package solve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/constraint"
	"seatplan/internal/model"
)

func TestSanityCheckRejectsTooFewSeats(t *testing.T) {
	room, err := model.NewRoom([][]int{{1}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	require.Error(t, SanityCheck(room, students, nil))
}

func TestSanityCheckRejectsContradictoryExactSeatLocks(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 1}},
	}
	require.Error(t, SanityCheck(room, students, cons))
}

func TestSanityCheckRejectsSharedExactSeatLock(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ExactSeat{Student: "b", Position: model.Position{X: 0, Y: 0, Seat: 0}},
	}
	require.Error(t, SanityCheck(room, students, cons))
}

func TestSanityCheckRejectsLockOnForbiddenSeat(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ForbidSeat{Position: model.Position{X: 0, Y: 0, Seat: 0}},
	}
	require.Error(t, SanityCheck(room, students, cons))
}

func TestSanityCheckRejectsLockOnForbiddenTable(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ForbidTable{X: 0, Y: 0},
	}
	require.Error(t, SanityCheck(room, students, cons))
}

func TestSanityCheckAcceptsConsistentLocks(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ExactSeat{Student: "a", Position: model.Position{X: 0, Y: 0, Seat: 0}},
	}
	require.NoError(t, SanityCheck(room, students, cons))
}
