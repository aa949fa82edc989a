package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/model"
	"github.com/roach88/scout/internal/store"
)

func TestTeamAdd(t *testing.T) {
	dbPath := tempDB(t)

	out, _, err := runScout(t, dbPath, "--format", "json", "team", "add",
		"--team-num", "1678", "--match-num", "12", "--overall", "80", "--hang-attempt", "--penalties", "2")
	require.NoError(t, err)

	var team model.Team
	decodeData(t, out, &team)
	assert.GreaterOrEqual(t, team.UID, store.MinTeamUID)
	assert.LessOrEqual(t, team.UID, store.MaxTeamUID)
	assert.Equal(t, model.Team{
		UID:         team.UID,
		TeamNum:     1678,
		MatchNum:    12,
		HangAttempt: true,
		Penalties:   2,
		Overall:     80,
	}, team)

	seedDB(t, dbPath, func(s *store.Store) {
		got, found, err := s.GetTeam(context.Background(), team.UID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, team, got)
	})
}

func TestTeamGetAndList(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, func(s *store.Store) {
		require.NoError(t, s.PutTeam(context.Background(), model.Team{UID: 1234, TeamNum: 118, HangSuccess: true, Overall: 90}))
		require.NoError(t, s.PutTeam(context.Background(), model.Team{UID: 2345, TeamNum: 254}))
	})

	out, _, err := runScout(t, dbPath, "team", "get", "1234")
	require.NoError(t, err)
	assert.Contains(t, out, "UID")
	assert.Contains(t, out, "1234")
	assert.Contains(t, out, "success")
	assert.NotContains(t, out, "2345")

	out, _, err = runScout(t, dbPath, "--format", "json", "team", "list")
	require.NoError(t, err)
	var teams []model.Team
	decodeData(t, out, &teams)
	require.Len(t, teams, 2)
	assert.Equal(t, 118, teams[0].TeamNum)
	assert.Equal(t, 254, teams[1].TeamNum)
}

func TestTeamList_Empty(t *testing.T) {
	out, _, err := runScout(t, tempDB(t), "team", "list")
	require.NoError(t, err)
	assert.Equal(t, "No teams found.\n", out)
}

func TestTeamGet_Errors(t *testing.T) {
	dbPath := tempDB(t)

	_, _, err := runScout(t, dbPath, "team", "get", "1234")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "not found")

	_, _, err = runScout(t, dbPath, "team", "get", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTeamUpdate_OnlyChangesGivenFlags(t *testing.T) {
	dbPath := tempDB(t)
	before := model.Team{UID: 1234, TeamNum: 118, MatchNum: 4, Overall: 50, DriverSkill: 70, HangAttempt: true}
	seedDB(t, dbPath, func(s *store.Store) {
		require.NoError(t, s.PutTeam(context.Background(), before))
	})

	_, _, err := runScout(t, dbPath, "team", "update", "1234", "--overall", "85", "--hang-attempt=false")
	require.NoError(t, err)

	want := before
	want.Overall = 85
	want.HangAttempt = false
	seedDB(t, dbPath, func(s *store.Store) {
		got, _, err := s.GetTeam(context.Background(), 1234)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestTeamDelete_CascadesIntoRosters(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, func(s *store.Store) {
		ctx := context.Background()
		require.NoError(t, s.PutTeam(ctx, model.Team{UID: 1234, TeamNum: 118}))
		require.NoError(t, s.PutMatch(ctx, model.NewMatch(1, true, false, roster(118, 254))))
	})

	out, _, err := runScout(t, dbPath, "team", "delete", "1234")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted team with uid 1234")

	seedDB(t, dbPath, func(s *store.Store) {
		m, _, err := s.GetMatch(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, m.Contains(118))
		assert.Equal(t, 1, m.TeamCount)
	})

	_, _, err = runScout(t, dbPath, "team", "delete", "1234")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
