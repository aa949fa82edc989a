package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/model"
)

// createTestStore opens a store in a temp dir with a seeded uid source and
// a recorder capturing sink traffic.
func createTestStore(t *testing.T, opts ...Option) (*Store, *audit.Recorder) {
	t.Helper()
	rec := &audit.Recorder{}
	path := filepath.Join(t.TempDir(), "test.db")

	opts = append([]Option{WithSink(rec), WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, rec
}

// createTestTeam creates a team with distinct values in every field.
func createTestTeam(uid, teamNum int) model.Team {
	return model.Team{
		UID:              uid,
		TeamNum:          teamNum,
		MatchNum:         3,
		HangAttempt:      true,
		HangSuccess:      true,
		RobotCycleSpeed:  71,
		CoralPoints:      24,
		Defense:          40,
		AutonomousPoints: 15,
		DriverSkill:      88,
		Penalties:        2,
		Overall:          76,
		RankingPoints:    4,
	}
}

// mustPutTeam stores a team or fails the test.
func mustPutTeam(t *testing.T, s *Store, team model.Team) {
	t.Helper()
	if err := s.PutTeam(context.Background(), team); err != nil {
		t.Fatalf("PutTeam() failed: %v", err)
	}
}

// mustPutMatch stores a match with the given roster or fails the test.
func mustPutMatch(t *testing.T, s *Store, matchNum int, redWin, blueWin bool, slots ...int) model.Match {
	t.Helper()
	var roster [model.RosterSize]int
	copy(roster[:], slots)
	m := model.NewMatch(matchNum, redWin, blueWin, roster)
	if err := s.PutMatch(context.Background(), m); err != nil {
		t.Fatalf("PutMatch() failed: %v", err)
	}
	return m
}

// mustGetMatch fetches a match that must exist.
func mustGetMatch(t *testing.T, s *Store, matchNum int) model.Match {
	t.Helper()
	m, found, err := s.GetMatch(context.Background(), matchNum)
	if err != nil {
		t.Fatalf("GetMatch() failed: %v", err)
	}
	if !found {
		t.Fatalf("match %d not found", matchNum)
	}
	return m
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}
