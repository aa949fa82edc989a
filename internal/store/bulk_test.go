package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/model"
)

func TestImportTeams_AllocatesFreshUIDs(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	in := []model.Team{createTestTeam(1234, 118), createTestTeam(1234, 254)}
	stored, err := s.ImportTeams(ctx, in)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, stored[0].UID, stored[1].UID)

	for i, team := range stored {
		got, found, err := s.GetTeam(ctx, team.UID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, team, got)

		want := in[i]
		want.UID = team.UID
		assert.Equal(t, want, got)
	}
}

func TestImportTeams_AllOrNothing(t *testing.T) {
	s, _ := createTestStore(t, WithUIDAttempts(1))
	ctx := context.Background()

	// First draw is free, second collides with it and exhausts the single attempt
	s.intN = func(int) int { return 0 }

	_, err := s.ImportTeams(ctx, []model.Team{createTestTeam(0, 118), createTestTeam(0, 254)})
	require.Error(t, err)
	assert.True(t, IsUIDExhausted(err))

	teams, err := s.ListTeams(ctx)
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestImportMatches_Replaces(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()
	mustPutMatch(t, s, 1, false, false, 118)

	replacement := model.NewMatch(1, true, false, [model.RosterSize]int{254, 1678})
	require.NoError(t, s.ImportMatches(ctx, []model.Match{replacement, model.NewMatch(2, false, true, [model.RosterSize]int{})}))

	assert.Equal(t, replacement, mustGetMatch(t, s, 1))
	assert.Equal(t, 0, mustGetMatch(t, s, 2).TeamCount)
}

func TestImportMatches_DuplicateTeamRollsBack(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	err := s.ImportMatches(ctx, []model.Match{
		model.NewMatch(1, false, false, [model.RosterSize]int{118}),
		model.NewMatch(2, true, false, [model.RosterSize]int{118, 118}),
	})
	require.ErrorIs(t, err, model.ErrDuplicateTeam)

	matches, err := s.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
