package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seatplan/internal/model"
)

func TestNewBuildsOneVarPerAllowedSeat(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	domains := map[string]model.SeatSet{
		"a": model.FullSeatSet(room.SeatCount()),
		"b": model.FullSeatSet(room.SeatCount()),
	}

	enc, err := New(room, students, domains)
	require.NoError(t, err)
	require.Len(t, enc.VarsOf("a"), 2)
	require.Len(t, enc.VarsOf("b"), 2)
}

func TestNewRejectsEmptyDomain(t *testing.T) {
	room, err := model.NewRoom([][]int{{1}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	domains := map[string]model.SeatSet{"a": model.NewSeatSet(room.SeatCount())}

	_, err = New(room, students, domains)
	require.Error(t, err)
}

func TestVarOfMissingSeatReturnsFalse(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	domain := model.NewSeatSet(room.SeatCount())
	domain.Set(0)
	domains := map[string]model.SeatSet{"a": domain}

	enc, err := New(room, students, domains)
	require.NoError(t, err)

	_, ok := enc.VarOf("a", 1)
	require.False(t, ok)
	_, ok = enc.VarOf("a", 0)
	require.True(t, ok)
}

func TestForbidPairNoopOutsideDomain(t *testing.T) {
	room, err := model.NewRoom([][]int{{2}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}, {Name: "b"}}
	domainA := model.NewSeatSet(room.SeatCount())
	domainA.Set(0)
	domainB := model.NewSeatSet(room.SeatCount())
	domainB.Set(1)
	domains := map[string]model.SeatSet{"a": domainA, "b": domainB}

	enc, err := New(room, students, domains)
	require.NoError(t, err)

	before := len(enc.mustLits)
	enc.ForbidPair("a", "b", model.Position{X: 0, Y: 0, Seat: 1}, model.Position{X: 0, Y: 0, Seat: 1})
	require.Equal(t, before, len(enc.mustLits), "forbidding a seat outside a's domain must be a no-op")

	enc.ForbidPair("a", "b", model.Position{X: 0, Y: 0, Seat: 0}, model.Position{X: 0, Y: 0, Seat: 1})
	require.Equal(t, before+1, len(enc.mustLits))
}

func TestTableOccupantsDelegatesToRoom(t *testing.T) {
	room, err := model.NewRoom([][]int{{3}})
	require.NoError(t, err)
	students := []model.Student{{Name: "a"}}
	domains := map[string]model.SeatSet{"a": model.FullSeatSet(room.SeatCount())}
	enc, err := New(room, students, domains)
	require.NoError(t, err)

	require.Len(t, enc.TableOccupants(0, 0), 3)
}
