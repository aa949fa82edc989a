package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/model"
)

func TestPutMatch_GetMatchRoundTrip(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	want := mustPutMatch(t, s, 7, true, true, 118, 254, 1678, 971, 0, 148)

	got, found, err := s.GetMatch(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)
	assert.Equal(t, 5, got.TeamCount)
	assert.True(t, got.IsTie())
}

func TestGetMatch_NotFound(t *testing.T) {
	s, _ := createTestStore(t)

	got, found, err := s.GetMatch(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, model.Match{}, got)
}

func TestListMatches(t *testing.T) {
	s, rec := createTestStore(t)
	ctx := context.Background()

	mustPutMatch(t, s, 2, false, false)
	mustPutMatch(t, s, 1, true, false, 118)

	matches, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].MatchNum)
	assert.Equal(t, 2, matches[1].MatchNum)
	assert.Contains(t, rec.Filter(audit.SeverityInfo), "Found 2 Matches")
}

func TestUpdateMatch(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()
	m := mustPutMatch(t, s, 1, false, false, 118)

	m.BlueWin = true
	updated, err := s.UpdateMatch(ctx, m)
	require.NoError(t, err)
	assert.True(t, updated)

	got := mustGetMatch(t, s, 1)
	assert.True(t, got.BlueWon())
	assert.Equal(t, 1, got.TeamCount)
}

func TestUpdateMatch_AbsentIsNoOp(t *testing.T) {
	s, rec := createTestStore(t)
	ctx := context.Background()

	updated, err := s.UpdateMatch(ctx, model.NewMatch(5, true, false, [model.RosterSize]int{118}))
	require.NoError(t, err)
	assert.False(t, updated)

	exists, err := s.MatchExists(ctx, 5)
	require.NoError(t, err)
	assert.False(t, exists, "update must not insert")
	assert.Equal(t, []string{"Match 5 doesn't exist. Cannot update."}, rec.Filter(audit.SeverityWarning))
}

func TestDeleteMatch(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()
	mustPutTeam(t, s, createTestTeam(1234, 118))
	mustPutMatch(t, s, 3, false, false, 118)

	require.NoError(t, s.DeleteMatch(ctx, 3))

	exists, err := s.MatchExists(ctx, 3)
	require.NoError(t, err)
	assert.False(t, exists)

	team, found, err := s.GetTeam(ctx, 1234)
	require.NoError(t, err)
	require.True(t, found, "deleting a match leaves teams alone")
	assert.Equal(t, 3, team.MatchNum)
}

func TestPutMatch_RejectsDuplicateTeam(t *testing.T) {
	s, rec := createTestStore(t)
	ctx := context.Background()

	dup := model.NewMatch(1, true, false, [model.RosterSize]int{118, 118})
	err := s.PutMatch(ctx, dup)
	require.ErrorIs(t, err, model.ErrDuplicateTeam)
	assert.Len(t, rec.Filter(audit.SeverityError), 1)

	exists, err := s.MatchExists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateMatch_RejectsDuplicateTeam(t *testing.T) {
	s, _ := createTestStore(t)
	mustPutMatch(t, s, 1, false, false, 118, 254)

	updated, err := s.UpdateMatch(context.Background(),
		model.NewMatch(1, false, false, [model.RosterSize]int{118, 254, 0, 254}))
	require.ErrorIs(t, err, model.ErrDuplicateTeam)
	assert.False(t, updated)
	assert.Equal(t, 2, mustGetMatch(t, s, 1).TeamCount)
}
