package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scout/internal/model"
)

// NewMatchCommand creates the match command group.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Manage matches and their results",
		Long: `Manage matches and their results.

Rosters are changed with the roster command so that team counts stay
consistent.`,
	}

	cmd.AddCommand(newMatchAddCommand(rootOpts))
	cmd.AddCommand(newMatchGetCommand(rootOpts))
	cmd.AddCommand(newMatchListCommand(rootOpts))
	cmd.AddCommand(newMatchUpdateCommand(rootOpts))
	cmd.AddCommand(newMatchDeleteCommand(rootOpts))
	cmd.AddCommand(newMatchRatesCommand(rootOpts))

	return cmd
}

// matchResultFlags holds the result flags shared by add and update.
type matchResultFlags struct {
	RedWin  bool
	BlueWin bool
}

func (f *matchResultFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.RedWin, "red-win", false, "red alliance won (set both for a tie)")
	cmd.Flags().BoolVar(&f.BlueWin, "blue-win", false, "blue alliance won (set both for a tie)")
}

func newMatchAddCommand(rootOpts *RootOptions) *cobra.Command {
	result := &matchResultFlags{}

	cmd := &cobra.Command{
		Use:   "add <match-num>",
		Short: "Add a match with an empty roster",
		Long: `Add a match with an empty roster, replacing any match with the same
number.

Example:
  scout match add 12
  scout match add 12 --red-win`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchNum, err := intArg("match number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			match := model.NewMatch(matchNum, result.RedWin, result.BlueWin, [model.RosterSize]int{})
			if err := s.store.PutMatch(commandContext(cmd), match); err != nil {
				return WrapExitError(ExitFailure, "failed to add match", err)
			}

			return s.out.Result(match, fmt.Sprintf("Added match %d", matchNum))
		},
	}

	result.bind(cmd)

	return cmd
}

func newMatchGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <match-num>",
		Short:         "Show one match",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchNum, err := intArg("match number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			match, found, err := s.store.GetMatch(commandContext(cmd), matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to get match", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("match %d not found", matchNum))
			}

			return s.out.Result(match, renderMatches([]model.Match{match}))
		},
	}
}

func newMatchListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every match",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			matches, err := s.store.ListMatches(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list matches", err)
			}

			return s.out.Result(matches, renderMatches(matches))
		},
	}
}

func newMatchUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	result := &matchResultFlags{}

	cmd := &cobra.Command{
		Use:   "update <match-num>",
		Short: "Record a match result",
		Long: `Record a match result. The roster is left as it is; flags not given
are cleared.

Example:
  scout match update 12 --blue-win`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchNum, err := intArg("match number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			match, found, err := s.store.GetMatch(ctx, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to get match", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("match %d not found", matchNum))
			}

			match.RedWin = result.RedWin
			match.BlueWin = result.BlueWin
			updated, err := s.store.UpdateMatch(ctx, match)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to update match", err)
			}
			if !updated {
				return NewExitError(ExitFailure, fmt.Sprintf("match %d not updated", matchNum))
			}

			return s.out.Result(match, fmt.Sprintf("Match %d result: %s", matchNum, matchResult(match)))
		},
	}

	result.bind(cmd)

	return cmd
}

func newMatchDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <match-num>",
		Short:         "Delete a match",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchNum, err := intArg("match number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			exists, err := s.store.MatchExists(ctx, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to check match", err)
			}
			if !exists {
				return NewExitError(ExitFailure, fmt.Sprintf("match %d not found", matchNum))
			}
			if err := s.store.DeleteMatch(ctx, matchNum); err != nil {
				return WrapExitError(ExitFailure, "failed to delete match", err)
			}

			return s.out.Result(map[string]int{"match_num": matchNum}, fmt.Sprintf("Deleted match %d", matchNum))
		},
	}
}

// MatchRates is the JSON form of a match's per-slot win rates.
type MatchRates struct {
	MatchNum int                       `json:"match_num"`
	Rule     string                    `json:"rule"`
	Slots    [model.RosterSize]int     `json:"slots"`
	WinRates [model.RosterSize]float64 `json:"win_rates"`
}

func newMatchRatesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rates <match-num>",
		Short: "Show the win rate of every team in a match",
		Long: `Show the win rate of every team in a match roster, in slot order.
This is the input an outcome predictor reads for the match.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchNum, err := intArg("match number", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			match, found, err := s.store.GetMatch(ctx, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to get match", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("match %d not found", matchNum))
			}

			rates, _, err := s.engine.MatchWinRates(ctx, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to compute win rates", err)
			}

			data := MatchRates{
				MatchNum: matchNum,
				Rule:     string(s.engine.Rule()),
				Slots:    match.Slots,
				WinRates: rates,
			}
			return s.out.Result(data, renderMatchRates(s.printer, match, rates))
		},
	}
}
