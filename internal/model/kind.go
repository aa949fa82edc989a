package model

import (
	"fmt"
	"strings"
)

// Kind names one of the two stored record sets.
type Kind string

const (
	KindTeam  Kind = "Teams"
	KindMatch Kind = "Matches"
)

// Kinds lists every record set in schema order.
var Kinds = []Kind{KindTeam, KindMatch}

// Table returns the SQL table backing the kind.
func (k Kind) Table() string {
	return string(k)
}

// Columns returns the full column list of the kind's table in schema order.
func (k Kind) Columns() []string {
	switch k {
	case KindTeam:
		return TeamColumns
	case KindMatch:
		return MatchColumns
	}
	return nil
}

// ExchangeColumns returns the positional column order used by delimited
// text import and export. Team rows leave out the uid column.
func (k Kind) ExchangeColumns() []string {
	switch k {
	case KindTeam:
		return TeamExchangeColumns
	case KindMatch:
		return MatchColumns
	}
	return nil
}

// ParseKind accepts "teams", "team", "matches" or "match" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teams", "team":
		return KindTeam, nil
	case "matches", "match":
		return KindMatch, nil
	}
	return "", fmt.Errorf("unknown record kind %q: must be teams or matches", s)
}

// TeamColumns is the Teams table layout.
var TeamColumns = []string{
	"uid",
	"teamNum",
	"matchNum",
	"hangAttempt",
	"hangSuccess",
	"robotCycleSpeed",
	"coralPoints",
	"defense",
	"autonomousPoints",
	"driverSkill",
	"penalties",
	"overall",
	"rankingPoints",
}

// TeamExchangeColumns is the delimited text order for team rows.
var TeamExchangeColumns = []string{
	"teamNum",
	"matchNum",
	"overall",
	"hangAttempt",
	"hangSuccess",
	"robotCycleSpeed",
	"coralPoints",
	"defense",
	"autonomousPoints",
	"driverSkill",
	"penalties",
	"rankingPoints",
}

// MatchColumns is the Matches table layout and its delimited text order.
var MatchColumns = []string{
	"matchNum",
	"redWin",
	"blueWin",
	"team1",
	"team2",
	"team3",
	"team4",
	"team5",
	"team6",
}
