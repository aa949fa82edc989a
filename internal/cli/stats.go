package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scout/internal/analytics"
)

// NewWinRateCommand creates the winrate command.
func NewWinRateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "winrate <team-num>",
		Short: "Show a team's win rate",
		Long: `Show the percentage of a team's matches that it won.

Under the default red-only rule a win only counts when the team was on the
red alliance and red won outright. Use --win-rule symmetric to also count
outright blue wins for blue-alliance teams.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			teamNum, err := intArg("team number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.engine.Record(commandContext(cmd), teamNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to compute win rate", err)
			}

			text := fmt.Sprintf("Team %d: %s (%d of %d matches, %s rule)",
				teamNum, percent(s.printer, rec.WinRate), rec.Wins, rec.Played, s.engine.Rule())
			return s.out.Result(rec, text)
		},
	}
}

// Standings is the JSON form of the standings table.
type Standings struct {
	Rule  string             `json:"rule"`
	Teams []analytics.Record `json:"teams"`
}

// NewStandingsCommand creates the standings command.
func NewStandingsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "standings",
		Short:         "Rank every rostered team by win rate",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.engine.Standings(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitFailure, "failed to compute standings", err)
			}

			data := Standings{Rule: string(s.engine.Rule()), Teams: records}
			return s.out.Result(data, renderStandings(s.printer, records))
		},
	}
}
