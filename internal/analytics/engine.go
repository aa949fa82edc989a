package analytics

import (
	"context"
	"fmt"

	"github.com/roach88/scout/internal/model"
)

// MatchSource is the read side of the store that analytics needs.
type MatchSource interface {
	ListMatches(ctx context.Context) ([]model.Match, error)
	GetMatch(ctx context.Context, matchNum int) (model.Match, bool, error)
}

// Engine computes win rates against live store contents.
//
// Every call re-reads the match table; nothing is cached between calls.
type Engine struct {
	matches MatchSource
	rule    Rule
}

// New creates an engine reading from src. An empty rule means DefaultRule.
func New(src MatchSource, rule Rule) *Engine {
	if rule == "" {
		rule = DefaultRule
	}
	return &Engine{matches: src, rule: rule}
}

// Rule returns the win rule the engine applies.
func (e *Engine) Rule() Rule {
	return e.rule
}

// WinRate returns teamNum's win percentage over all stored matches.
func (e *Engine) WinRate(ctx context.Context, teamNum int) (float64, error) {
	rec, err := e.Record(ctx, teamNum)
	if err != nil {
		return 0, err
	}
	return rec.WinRate, nil
}

// Record returns teamNum's full tally over all stored matches.
func (e *Engine) Record(ctx context.Context, teamNum int) (Record, error) {
	matches, err := e.matches.ListMatches(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("win rate for team %d: %w", teamNum, err)
	}
	return Tally(matches, teamNum, e.rule), nil
}

// MatchWinRates returns the win rate of each team in the match roster, in
// slot order, with 0 for empty slots. This is the input vector an outcome
// predictor reads. found is false if the match does not exist.
func (e *Engine) MatchWinRates(ctx context.Context, matchNum int) (rates [model.RosterSize]float64, found bool, err error) {
	match, found, err := e.matches.GetMatch(ctx, matchNum)
	if err != nil || !found {
		return rates, found, err
	}

	matches, err := e.matches.ListMatches(ctx)
	if err != nil {
		return rates, false, fmt.Errorf("win rates for match %d: %w", matchNum, err)
	}

	for i, teamNum := range match.Slots {
		if teamNum != model.EmptySlot {
			rates[i] = WinRate(matches, teamNum, e.rule)
		}
	}
	return rates, true, nil
}

// Standings returns every rostered team's tally, best first.
func (e *Engine) Standings(ctx context.Context) ([]Record, error) {
	matches, err := e.matches.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	return Standings(matches, e.rule), nil
}
