package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/roach88/scout/internal/model"
)

var (
	matchColumnList = strings.Join(model.MatchColumns, ", ")
	matchSelect     = "SELECT " + matchColumnList + " FROM Matches"
)

// PutMatch inserts a match, replacing any existing match with the same
// number. A roster that seats one team twice is rejected with
// model.ErrDuplicateTeam.
func (s *Store) PutMatch(ctx context.Context, match model.Match) error {
	if err := match.Validate(); err != nil {
		return s.fail("put match", err)
	}
	_, err := s.exec(ctx, "put match", `
		INSERT OR REPLACE INTO Matches (`+matchColumnList+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, matchArgs(match)...)
	return err
}

// GetMatch returns the match with the given number.
// found is false if no such match exists.
func (s *Store) GetMatch(ctx context.Context, matchNum int) (match model.Match, found bool, err error) {
	row := s.queryRow(ctx, matchSelect+" WHERE matchNum = ?", matchNum)

	match, err = scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, false, nil
	}
	if err != nil {
		return model.Match{}, false, s.fail("get match", err)
	}
	return match, true, nil
}

// ListMatches returns every match in storage order.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := s.query(ctx, "list matches", matchSelect+" ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []model.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, s.fail("scan match", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("iterate matches", err)
	}

	s.info("Found %d Matches", len(matches))
	return matches, nil
}

// UpdateMatch overwrites the result and roster of an existing match.
//
// Unlike UpdateTeam, the match must already be stored: updating an absent
// match is a no-op that returns false.
func (s *Store) UpdateMatch(ctx context.Context, match model.Match) (bool, error) {
	if err := match.Validate(); err != nil {
		return false, s.fail("update match", err)
	}
	exists, err := s.MatchExists(ctx, match.MatchNum)
	if err != nil {
		return false, err
	}
	if !exists {
		s.warn("Match %d doesn't exist. Cannot update.", match.MatchNum)
		return false, nil
	}

	_, err = s.exec(ctx, "update match", `
		UPDATE Matches SET
		redWin = ?, blueWin = ?,
		team1 = ?, team2 = ?, team3 = ?, team4 = ?, team5 = ?, team6 = ?
		WHERE matchNum = ?
	`, append(matchArgs(match)[1:], match.MatchNum)...)
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteMatch removes the match with the given number. Teams only hold a
// scalar match number, so nothing else needs to change.
func (s *Store) DeleteMatch(ctx context.Context, matchNum int) error {
	_, err := s.exec(ctx, "delete match", "DELETE FROM Matches WHERE matchNum = ?", matchNum)
	return err
}

// MatchExists reports whether a match with the given number is stored.
func (s *Store) MatchExists(ctx context.Context, matchNum int) (bool, error) {
	return s.exists(ctx, "check match", "SELECT 1 FROM Matches WHERE matchNum = ? LIMIT 1", matchNum)
}

// matchArgs returns the match's fields in MatchColumns order.
func matchArgs(m model.Match) []any {
	args := []any{m.MatchNum, m.RedWin, m.BlueWin}
	for _, teamNum := range m.Slots {
		args = append(args, teamNum)
	}
	return args
}

// scanMatch scans a row selected with MatchColumns and derives TeamCount
// from the roster. NULL columns read as zero.
func scanMatch(sc scanner) (model.Match, error) {
	var v [3 + model.RosterSize]sql.NullInt64
	dest := make([]any, len(v))
	for i := range v {
		dest[i] = &v[i]
	}
	if err := sc.Scan(dest...); err != nil {
		return model.Match{}, err
	}

	var slots [model.RosterSize]int
	for i := range slots {
		slots[i] = int(v[3+i].Int64)
	}
	return model.NewMatch(int(v[0].Int64), v[1].Int64 != 0, v[2].Int64 != 0, slots), nil
}
