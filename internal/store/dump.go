package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/scout/internal/model"
)

// Row is one table row as text, with nil standing for a NULL value.
type Row []*string

// Dump returns the given columns of every row of the kind's table as text,
// in storage order. Columns must belong to the table.
//
// Dump reads raw column values, so NULLs left by other tools survive; the
// typed getters read them as zero.
func (s *Store) Dump(ctx context.Context, kind model.Kind, columns []string) ([]Row, error) {
	known := kind.Columns()
	if known == nil {
		return nil, s.fail("dump", fmt.Errorf("unknown record kind %q", kind))
	}
	for _, col := range columns {
		if !slices.Contains(known, col) {
			return nil, s.fail("dump", fmt.Errorf("unknown column %q in %s", col, kind))
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(columns, ", "), kind.Table())
	rows, err := s.query(ctx, "dump "+kind.Table(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Row{}
	for rows.Next() {
		vals := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, s.fail("scan "+kind.Table(), err)
		}

		row := make(Row, len(columns))
		for i, v := range vals {
			if v.Valid {
				text := v.String
				row[i] = &text
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("iterate "+kind.Table(), err)
	}

	return out, nil
}
