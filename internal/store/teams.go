package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/roach88/scout/internal/model"
)

var (
	teamColumnList = strings.Join(model.TeamColumns, ", ")
	teamSelect     = "SELECT " + teamColumnList + " FROM Teams"
)

// PutTeam inserts a team, replacing any existing record with the same uid.
func (s *Store) PutTeam(ctx context.Context, team model.Team) error {
	_, err := s.exec(ctx, "put team", `
		INSERT OR REPLACE INTO Teams (`+teamColumnList+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, teamArgs(team)...)
	return err
}

// GetTeam returns the team with the given uid.
// found is false if no such team exists.
func (s *Store) GetTeam(ctx context.Context, uid int) (team model.Team, found bool, err error) {
	row := s.queryRow(ctx, teamSelect+" WHERE uid = ?", uid)

	team, err = scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, false, nil
	}
	if err != nil {
		return model.Team{}, false, s.fail("get team", err)
	}
	return team, true, nil
}

// ListTeams returns every team in storage order.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListTeams(ctx context.Context) ([]model.Team, error) {
	rows, err := s.query(ctx, "list teams", teamSelect+" ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, s.fail("scan team", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("iterate teams", err)
	}

	s.info("Found %d Teams", len(teams))
	return teams, nil
}

// UpdateTeam overwrites every field of the team with the same uid.
//
// The update runs unconditionally: updating a uid that is not stored
// affects no rows and is not reported.
func (s *Store) UpdateTeam(ctx context.Context, team model.Team) error {
	_, err := s.exec(ctx, "update team", `
		UPDATE Teams SET
		teamNum = ?, matchNum = ?, hangAttempt = ?, hangSuccess = ?, robotCycleSpeed = ?,
		coralPoints = ?, defense = ?, autonomousPoints = ?, driverSkill = ?, penalties = ?,
		overall = ?, rankingPoints = ?
		WHERE uid = ?
	`, append(teamArgs(team)[1:], team.UID)...)
	return err
}

// DeleteTeam removes the team with the given uid and clears its team
// number from every match roster, in one transaction.
//
// Deleting a uid that is not stored is a no-op.
func (s *Store) DeleteTeam(ctx context.Context, uid int) error {
	return s.withTx(ctx, func(tx *Store) error {
		team, found, err := tx.GetTeam(ctx, uid)
		if err != nil {
			return err
		}
		if !found {
			tx.warn("Team with uid %d doesn't exist. Cannot remove.", uid)
			return nil
		}

		if _, err := tx.exec(ctx, "delete team", "DELETE FROM Teams WHERE uid = ?", uid); err != nil {
			return err
		}

		if _, err := tx.RemoveTeamCascade(ctx, team.TeamNum); err != nil {
			return err
		}

		tx.info("Removed team with team number: %d", team.TeamNum)
		return nil
	})
}

// TeamExists reports whether a team with the given uid is stored.
func (s *Store) TeamExists(ctx context.Context, uid int) (bool, error) {
	return s.exists(ctx, "check team", "SELECT 1 FROM Teams WHERE uid = ? LIMIT 1", uid)
}

// TeamNumberExists reports whether any stored session has the given team
// number.
func (s *Store) TeamNumberExists(ctx context.Context, teamNum int) (bool, error) {
	return s.exists(ctx, "check team number", "SELECT 1 FROM Teams WHERE teamNum = ? LIMIT 1", teamNum)
}

// exists runs a SELECT 1 query and reports whether it found a row.
func (s *Store) exists(ctx context.Context, op, query string, args ...any) (bool, error) {
	var one int
	err := s.queryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.fail(op, err)
	}
	return true, nil
}

// teamArgs returns the team's fields in TeamColumns order.
func teamArgs(t model.Team) []any {
	return []any{
		t.UID,
		t.TeamNum,
		t.MatchNum,
		t.HangAttempt,
		t.HangSuccess,
		t.RobotCycleSpeed,
		t.CoralPoints,
		t.Defense,
		t.AutonomousPoints,
		t.DriverSkill,
		t.Penalties,
		t.Overall,
		t.RankingPoints,
	}
}

// scanTeam scans a row selected with TeamColumns. NULL columns read as zero.
func scanTeam(sc scanner) (model.Team, error) {
	var v [13]sql.NullInt64
	dest := make([]any, len(v))
	for i := range v {
		dest[i] = &v[i]
	}
	if err := sc.Scan(dest...); err != nil {
		return model.Team{}, err
	}

	return model.Team{
		UID:              int(v[0].Int64),
		TeamNum:          int(v[1].Int64),
		MatchNum:         int(v[2].Int64),
		HangAttempt:      v[3].Int64 != 0,
		HangSuccess:      v[4].Int64 != 0,
		RobotCycleSpeed:  int(v[5].Int64),
		CoralPoints:      int(v[6].Int64),
		Defense:          int(v[7].Int64),
		AutonomousPoints: int(v[8].Int64),
		DriverSkill:      int(v[9].Int64),
		Penalties:        int(v[10].Int64),
		Overall:          int(v[11].Int64),
		RankingPoints:    int(v[12].Int64),
	}, nil
}
