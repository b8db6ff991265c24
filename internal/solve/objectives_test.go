package solve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/encode"
	"seatplan/internal/model"
	"seatplan/internal/precompute"
)

func twoByTwoRoom(t *testing.T) *model.Room {
	t.Helper()
	room, err := model.NewRoom([][]int{{2}, {2}})
	require.NoError(t, err)
	return room
}

func fullDomains(room *model.Room, students []model.Student) map[string]model.SeatSet {
	out := make(map[string]model.SeatSet, len(students))
	for _, st := range students {
		out[st.Name] = model.FullSeatSet(room.SeatCount())
	}
	return out
}

func TestRowDistanceTermsCoverEveryCandidateSeat(t *testing.T) {
	room := twoByTwoRoom(t)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	enc, err := encode.New(room, students, fullDomains(room, students))
	require.NoError(t, err)

	terms := rowDistanceTerms(enc, students)
	require.Len(t, terms, room.SeatCount()*len(students))

	var sawY1 bool
	for _, term := range terms {
		if term.Weight == 1 {
			sawY1 = true
		}
	}
	require.True(t, sawY1, "a seat at y=1 must contribute weight 1")
}

func TestIsolationTermsOneLiteralPerStudent(t *testing.T) {
	room := twoByTwoRoom(t)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	enc, err := encode.New(room, students, fullDomains(room, students))
	require.NoError(t, err)

	adjacency := precompute.ComputeAdjacency(room)
	terms := isolationTerms(enc, students, adjacency)
	require.Len(t, terms, len(students))
	for _, term := range terms {
		require.Equal(t, 1, term.Weight)
	}
}

func TestSameGenderAdjacencyTermsSkipUnknownGender(t *testing.T) {
	room := twoByTwoRoom(t)
	students := []model.Student{
		{Name: "a", Gender: model.GenderFeminine},
		{Name: "b", Gender: model.GenderUnknown},
	}
	enc, err := encode.New(room, students, fullDomains(room, students))
	require.NoError(t, err)

	adjacency := precompute.ComputeAdjacency(room)
	terms := sameGenderAdjacencyTerms(enc, students, adjacency)
	// with only one gendered student, no adjacent pair can match.
	require.Empty(t, terms)
}

func TestComplementNegatesWithoutChangingWeight(t *testing.T) {
	room := twoByTwoRoom(t)
	students := []model.Student{{Name: "a"}}
	enc, err := encode.New(room, students, fullDomains(room, students))
	require.NoError(t, err)

	terms := rowDistanceTerms(enc, students)
	comp := complement(terms)
	require.Len(t, comp, len(terms))
	for i := range terms {
		require.Equal(t, terms[i].Weight, comp[i].Weight)
		require.Equal(t, terms[i].Lit.Not(), comp[i].Lit)
	}
}
