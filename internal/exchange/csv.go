package exchange

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/scout/internal/model"
)

// nullText stands for an absent value in delimited text.
const nullText = "NULL"

var errNullKey = errors.New("key column cannot be NULL")

// ParseError reports a malformed line in an imported file.
type ParseError struct {
	Line  int    // 1-based line number
	Field string // Column name, empty when the line as a whole is bad
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, field %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError returns true if the error is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func (x *Exchanger) encodeCSV(ctx context.Context, kind model.Kind) ([]byte, error) {
	columns := kind.ExchangeColumns()
	if columns == nil {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}

	rows, err := x.store.Dump(ctx, kind, columns)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = x.separator

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, v := range row {
			if v == nil {
				record[i] = nullText
			} else {
				record[i] = *v
			}
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("encode %s: %w", kind, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}

func (x *Exchanger) readCSV(ctx context.Context, kind model.Kind, r io.Reader) (int, error) {
	columns := kind.ExchangeColumns()
	if columns == nil {
		return 0, fmt.Errorf("unknown record kind %q", kind)
	}

	values, err := parseCSV(r, x.separator, columns)
	if err != nil {
		return 0, err
	}

	switch kind {
	case model.KindTeam:
		teams := make([]model.Team, len(values))
		for i, v := range values {
			teams[i] = teamFromValues(v.vals)
		}
		if _, err := x.store.ImportTeams(ctx, teams); err != nil {
			return 0, err
		}
	case model.KindMatch:
		matches := make([]model.Match, len(values))
		for i, v := range values {
			m := matchFromValues(v.vals)
			if j := m.DuplicateSlot(); j >= 0 {
				return 0, &ParseError{Line: v.line, Field: columns[3+j], Err: m.Validate()}
			}
			matches[i] = m
		}
		if err := x.store.ImportMatches(ctx, matches); err != nil {
			return 0, err
		}
	}
	return len(values), nil
}

// csvRow is one parsed line and where it came from.
type csvRow struct {
	line int
	vals []int
}

// parseCSV reads every line of r as integers in column order. Blank lines
// are skipped and NULL reads as 0, except in the first column, which keys
// the record and must be present.
func parseCSV(r io.Reader, sep rune, columns []string) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []csvRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var ce *csv.ParseError
			if errors.As(err, &ce) {
				return nil, &ParseError{Line: ce.Line, Err: ce.Err}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(record) != len(columns) {
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("got %d fields, want %d", len(record), len(columns)),
			}
		}

		vals := make([]int, len(columns))
		for i, field := range record {
			field = strings.TrimSpace(field)
			if field == nullText {
				if i == 0 {
					return nil, &ParseError{Line: line, Field: columns[i], Err: errNullKey}
				}
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, &ParseError{Line: line, Field: columns[i], Err: err}
			}
			vals[i] = n
		}
		out = append(out, csvRow{line: line, vals: vals})
	}
	return out, nil
}

// teamFromValues builds a team from model.TeamExchangeColumns values.
// The uid is left for the store to allocate.
func teamFromValues(v []int) model.Team {
	return model.Team{
		TeamNum:          v[0],
		MatchNum:         v[1],
		Overall:          v[2],
		HangAttempt:      v[3] != 0,
		HangSuccess:      v[4] != 0,
		RobotCycleSpeed:  v[5],
		CoralPoints:      v[6],
		Defense:          v[7],
		AutonomousPoints: v[8],
		DriverSkill:      v[9],
		Penalties:        v[10],
		RankingPoints:    v[11],
	}
}

// matchFromValues builds a match from model.MatchColumns values.
func matchFromValues(v []int) model.Match {
	var slots [model.RosterSize]int
	copy(slots[:], v[3:])
	return model.NewMatch(v[0], v[1] != 0, v[2] != 0, slots)
}
