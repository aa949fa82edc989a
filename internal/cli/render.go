package cli

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"

	"github.com/roach88/scout/internal/analytics"
	"github.com/roach88/scout/internal/model"
)

// percent formats a 0-100 rate with p's decimal separator.
func percent(p *message.Printer, rate float64) string {
	return p.Sprintf("%.2f%%", rate)
}

// table renders rows under a header with aligned columns.
func table(header []string, rows [][]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return buf.String()
}

var teamHeader = []string{"UID", "TEAM", "MATCH", "HANG", "AUTO", "CORAL", "CYCLE", "DEFENSE", "DRIVER", "PENALTIES", "OVERALL", "RP"}

func teamRow(t model.Team) []string {
	hang := "-"
	switch {
	case t.HangSuccess:
		hang = "success"
	case t.HangAttempt:
		hang = "attempt"
	}
	return []string{
		fmt.Sprint(t.UID),
		fmt.Sprint(t.TeamNum),
		fmt.Sprint(t.MatchNum),
		hang,
		fmt.Sprint(t.AutonomousPoints),
		fmt.Sprint(t.CoralPoints),
		fmt.Sprint(t.RobotCycleSpeed),
		fmt.Sprint(t.Defense),
		fmt.Sprint(t.DriverSkill),
		fmt.Sprint(t.Penalties),
		fmt.Sprint(t.Overall),
		fmt.Sprint(t.RankingPoints),
	}
}

func renderTeams(teams []model.Team) string {
	if len(teams) == 0 {
		return "No teams found."
	}
	rows := make([][]string, len(teams))
	for i, t := range teams {
		rows[i] = teamRow(t)
	}
	return table(teamHeader, rows)
}

var matchHeader = []string{"MATCH", "RESULT", "RED", "BLUE", "TEAMS"}

func matchResult(m model.Match) string {
	switch {
	case m.IsTie():
		return "tie"
	case m.RedWon():
		return "red"
	case m.BlueWon():
		return "blue"
	default:
		return "unplayed"
	}
}

func alliance(slots [model.AllianceSize]int) string {
	parts := make([]string, len(slots))
	for i, teamNum := range slots {
		if teamNum == model.EmptySlot {
			parts[i] = "-"
		} else {
			parts[i] = fmt.Sprint(teamNum)
		}
	}
	return strings.Join(parts, " ")
}

func matchRow(m model.Match) []string {
	return []string{
		fmt.Sprint(m.MatchNum),
		matchResult(m),
		alliance(m.Red()),
		alliance(m.Blue()),
		fmt.Sprintf("%d/%d", m.TeamCount, model.RosterSize),
	}
}

func renderMatches(matches []model.Match) string {
	if len(matches) == 0 {
		return "No matches found."
	}
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = matchRow(m)
	}
	return table(matchHeader, rows)
}

func renderStandings(p *message.Printer, records []analytics.Record) string {
	if len(records) == 0 {
		return "No rostered teams."
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.TeamNum),
			fmt.Sprint(r.Wins),
			fmt.Sprint(r.Played),
			percent(p, r.WinRate),
		}
	}
	return table([]string{"#", "TEAM", "WINS", "PLAYED", "WIN RATE"}, rows)
}

// renderMatchRates lists each occupied slot with its team's win rate.
func renderMatchRates(p *message.Printer, m model.Match, rates [model.RosterSize]float64) string {
	var rows [][]string
	for i, teamNum := range m.Slots {
		if teamNum == model.EmptySlot {
			continue
		}
		side := model.AllianceRed
		if i >= model.AllianceSize {
			side = model.AllianceBlue
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			string(side),
			fmt.Sprint(teamNum),
			percent(p, rates[i]),
		})
	}
	if len(rows) == 0 {
		return fmt.Sprintf("Match %d has no teams.", m.MatchNum)
	}
	return table([]string{"SLOT", "ALLIANCE", "TEAM", "WIN RATE"}, rows)
}
