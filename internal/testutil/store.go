package testutil

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/model"
	"github.com/roach88/scout/internal/store"
)

// OpenStore opens a store backed by a file in t.TempDir() and closes it
// when the test ends.
//
// Sink traffic is captured by the returned recorder, and uid allocation is
// seeded so the same test allocates the same uids on every run. Extra
// options are applied after these defaults.
func OpenStore(t *testing.T, opts ...store.Option) (*store.Store, *audit.Recorder) {
	t.Helper()

	rec := &audit.Recorder{}
	opts = append([]store.Option{
		store.WithSink(rec),
		store.WithRand(SeededRand()),
	}, opts...)

	s, err := store.Open(filepath.Join(t.TempDir(), "scout.db"), opts...)
	require.NoError(t, err, "open store")
	t.Cleanup(func() { s.Close() })
	return s, rec
}

// SeededRand returns a fixed-seed random source.
func SeededRand() *rand.Rand {
	return rand.New(rand.NewPCG(118, 254))
}

// PutMatch stores a match with the given result and roster. Missing
// trailing slots are empty.
func PutMatch(t *testing.T, s *store.Store, matchNum int, redWin, blueWin bool, slots ...int) model.Match {
	t.Helper()

	var roster [model.RosterSize]int
	copy(roster[:], slots)
	m := model.NewMatch(matchNum, redWin, blueWin, roster)
	require.NoError(t, s.PutMatch(context.Background(), m), "put match %d", matchNum)
	return m
}

// PutTeam stores team as given.
func PutTeam(t *testing.T, s *store.Store, team model.Team) model.Team {
	t.Helper()
	require.NoError(t, s.PutTeam(context.Background(), team), "put team %d", team.UID)
	return team
}

// SampleTeam returns a team with a distinct value in every field.
func SampleTeam(uid, teamNum int) model.Team {
	return model.Team{
		UID:              uid,
		TeamNum:          teamNum,
		MatchNum:         7,
		HangAttempt:      true,
		HangSuccess:      false,
		RobotCycleSpeed:  62,
		CoralPoints:      18,
		Defense:          35,
		AutonomousPoints: 12,
		DriverSkill:      80,
		Penalties:        3,
		Overall:          71,
		RankingPoints:    2,
	}
}
