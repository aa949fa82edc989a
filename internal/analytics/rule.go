package analytics

import (
	"fmt"

	"github.com/roach88/scout/internal/model"
)

// Rule decides which outright wins credit a team.
type Rule string

const (
	// RuleRedOnly credits a team only when it played on the red alliance
	// and red won outright. Blue-alliance wins never count.
	RuleRedOnly Rule = "red-only"

	// RuleSymmetric credits a team whenever its own alliance won outright.
	RuleSymmetric Rule = "symmetric"
)

// DefaultRule is the rule used when none is configured.
const DefaultRule = RuleRedOnly

// ParseRule maps a rule name to a Rule. The empty string yields
// DefaultRule.
func ParseRule(name string) (Rule, error) {
	switch Rule(name) {
	case "":
		return DefaultRule, nil
	case RuleRedOnly, RuleSymmetric:
		return Rule(name), nil
	default:
		return "", fmt.Errorf("unknown win rule %q (want %q or %q)", name, RuleRedOnly, RuleSymmetric)
	}
}

// Credits reports whether the match counts as a win for teamNum.
// A team that did not play in the match is never credited.
func (r Rule) Credits(m model.Match, teamNum int) bool {
	switch {
	case m.OnRedAlliance(teamNum):
		return m.RedWon()
	case m.OnBlueAlliance(teamNum):
		return r == RuleSymmetric && m.BlueWon()
	default:
		return false
	}
}
