package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		query string
		args  []any
		want  string
	}{
		{
			name:  "no args collapses whitespace",
			query: "SELECT 1\n\t\tFROM Teams\n\t\tWHERE uid = 5",
			want:  "SELECT 1 FROM Teams WHERE uid = 5",
		},
		{
			name:  "ints and bools",
			query: "UPDATE Matches SET redWin = ?, blueWin = ? WHERE matchNum = ?",
			args:  []any{true, false, 12},
			want:  "UPDATE Matches SET redWin = 1, blueWin = 0 WHERE matchNum = 12",
		},
		{
			name:  "strings are quoted and escaped",
			query: "SELECT name FROM sqlite_master WHERE name = ?",
			args:  []any{"it's"},
			want:  "SELECT name FROM sqlite_master WHERE name = 'it''s'",
		},
		{
			name:  "nil renders NULL",
			query: "INSERT INTO t VALUES (?, ?)",
			args:  []any{nil, int64(7)},
			want:  "INSERT INTO t VALUES (NULL, 7)",
		},
		{
			name:  "placeholder in literal untouched",
			query: "SELECT '?' WHERE x = ?",
			args:  []any{3},
			want:  "SELECT '?' WHERE x = 3",
		},
		{
			name:  "whitespace inside literal kept",
			query: "SELECT  'a  b\tc'\n\tWHERE x = ? ",
			args:  []any{"d  e"},
			want:  "SELECT 'a  b\tc' WHERE x = 'd  e'",
		},
		{
			name:  "escaped quote in literal",
			query: "SELECT 'it''s   here'   ,  ?",
			args:  []any{1},
			want:  "SELECT 'it''s   here' , 1",
		},
		{
			name:  "surplus placeholders kept",
			query: "VALUES (?, ?)",
			args:  []any{1},
			want:  "VALUES (1, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.query, tt.args...))
		})
	}
}
