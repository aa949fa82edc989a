package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scout/internal/model"
)

func TestDump_TextValuesAndNulls(t *testing.T) {
	s, _ := createTestStore(t)
	mustPutMatch(t, s, 1, true, false, 118)
	_, err := s.db.Exec("INSERT INTO Matches (matchNum, redWin) VALUES (2, 1)")
	require.NoError(t, err)

	rows, err := s.Dump(context.Background(), model.KindMatch, []string{"matchNum", "redWin", "team1", "team2"})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	text := func(r Row) []any {
		out := make([]any, len(r))
		for i, v := range r {
			if v != nil {
				out[i] = *v
			}
		}
		return out
	}
	assert.Equal(t, []any{"1", "1", "118", "0"}, text(rows[0]))
	assert.Equal(t, []any{"2", "1", nil, nil}, text(rows[1]))
}

func TestDump_RejectsUnknownColumn(t *testing.T) {
	s, _ := createTestStore(t)

	_, err := s.Dump(context.Background(), model.KindTeam, []string{"uid; DROP TABLE Teams"})
	assert.Error(t, err)

	_, err = s.Dump(context.Background(), model.Kind("Robots"), nil)
	assert.Error(t, err)
}

func TestDump_Empty(t *testing.T) {
	s, _ := createTestStore(t)

	rows, err := s.Dump(context.Background(), model.KindTeam, model.TeamColumns)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
