package precompute

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/constraint"
	"seatplan/internal/model"
)

func TestComputeDomainsIntersectsConstraints(t *testing.T) {
	room, err := model.NewRoom([][]int{{2, 2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "alice"}, {Name: "bob"}}
	cons := []constraint.Constraint{
		constraint.FrontRows{Students: []string{"alice"}, K: 1},
		constraint.ForbidSeat{Position: model.Position{X: 0, Y: 0, Seat: 0}},
	}

	domains, err := ComputeDomains(room, students, cons)
	require.NoError(t, err)

	idxForbidden, _ := room.IndexOf(model.Position{X: 0, Y: 0, Seat: 0})
	require.False(t, domains["alice"].Contains(idxForbidden))
	require.False(t, domains["bob"].Contains(idxForbidden))
	require.Equal(t, room.SeatCount()-1, domains["bob"].Count())
}

func TestComputeDomainsErrorsOnEmptyDomain(t *testing.T) {
	room, err := model.NewRoom([][]int{{1}})
	require.NoError(t, err)
	students := []model.Student{{Name: "alice"}}
	cons := []constraint.Constraint{
		constraint.ExactSeat{Student: "alice", Position: model.Position{X: 0, Y: 0, Seat: 0}},
		constraint.ForbidSeat{Position: model.Position{X: 0, Y: 0, Seat: 0}},
	}
	_, err = ComputeDomains(room, students, cons)
	require.Error(t, err)
}

func TestComputeAdjacencyWithinTablesOnly(t *testing.T) {
	room, err := model.NewRoom([][]int{{3, 2}})
	require.NoError(t, err)
	adj := ComputeAdjacency(room)
	// table at x=0 has 3 seats -> 2 adjacent pairs; table at x=1 has 2 -> 1 pair.
	require.Len(t, adj, 3)
}
