package analytics

import (
	"cmp"
	"slices"

	"github.com/roach88/scout/internal/model"
)

// Record is one team's participation tally.
type Record struct {
	TeamNum int     `json:"team_num"`
	Played  int     `json:"played"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// Tally counts the matches teamNum played in and how many of them the rule
// credits as wins.
func Tally(matches []model.Match, teamNum int, rule Rule) Record {
	rec := Record{TeamNum: teamNum}
	if teamNum == model.EmptySlot {
		return rec
	}

	for _, m := range matches {
		if !m.Contains(teamNum) {
			continue
		}
		rec.Played++
		if rule.Credits(m, teamNum) {
			rec.Wins++
		}
	}
	rec.WinRate = percent(rec.Wins, rec.Played)
	return rec
}

// WinRate returns the percentage (0-100) of teamNum's matches that the
// rule credits as wins, or 0 if the team played none.
//
// Unplayed matches still count as participation, so a team's rate drops
// as its schedule fills in ahead of results.
func WinRate(matches []model.Match, teamNum int, rule Rule) float64 {
	return Tally(matches, teamNum, rule).WinRate
}

// Standings tallies every team number appearing in any roster, best win
// rate first. Ties are broken by more wins, then lower team number.
func Standings(matches []model.Match, rule Rule) []Record {
	seen := make(map[int]bool)
	var teamNums []int
	for _, m := range matches {
		for _, teamNum := range m.Slots {
			if teamNum == model.EmptySlot || seen[teamNum] {
				continue
			}
			seen[teamNum] = true
			teamNums = append(teamNums, teamNum)
		}
	}

	out := make([]Record, 0, len(teamNums))
	for _, teamNum := range teamNums {
		out = append(out, Tally(matches, teamNum, rule))
	}

	slices.SortFunc(out, func(a, b Record) int {
		if c := cmp.Compare(b.WinRate, a.WinRate); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamNum, b.TeamNum)
	})
	return out
}

func percent(wins, played int) float64 {
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played) * 100
}
