package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRosterCommand creates the roster command group.
func NewRosterCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Add teams to and remove teams from match rosters",
		Long: `Add teams to and remove teams from match rosters.

A roster has six slots: 1-3 are the red alliance, 4-6 the blue alliance.
Teams fill the first free slot, red first.`,
	}

	cmd.AddCommand(newRosterAddCommand(rootOpts))
	cmd.AddCommand(newRosterRemoveCommand(rootOpts))

	return cmd
}

func newRosterAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <uid> <match-num>",
		Short: "Add the team of a record to a match",
		Long: `Add the team number of the record with the given uid to a match roster.

The command fails without changing anything if the match or record is
missing, the team is already in the match, or the match is full.

Example:
  scout roster add 4321 12`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := intArg("uid", args[0])
			if err != nil {
				return err
			}
			matchNum, err := intArg("match number", args[1])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			added, err := s.store.AddTeamToMatch(commandContext(cmd), uid, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to add team to match", err)
			}
			if !added {
				return NewExitError(ExitFailure, fmt.Sprintf("team with uid %d not added to match %d", uid, matchNum))
			}

			return s.out.Result(map[string]int{"uid": uid, "match_num": matchNum},
				fmt.Sprintf("Added team with uid %d to match %d", uid, matchNum))
		},
	}
}

func newRosterRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team-num> <match-num>",
		Short: "Remove a team from a match",
		Long: `Remove a team number from a match roster, freeing its slot.

Example:
  scout roster remove 1678 12`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			teamNum, err := intArg("team number", args[0])
			if err != nil {
				return err
			}
			matchNum, err := intArg("match number", args[1])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := s.store.RemoveTeamFromMatch(commandContext(cmd), teamNum, matchNum)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to remove team from match", err)
			}
			if !removed {
				return NewExitError(ExitFailure, fmt.Sprintf("team %d not removed from match %d", teamNum, matchNum))
			}

			return s.out.Result(map[string]int{"team_num": teamNum, "match_num": matchNum},
				fmt.Sprintf("Removed team %d from match %d", teamNum, matchNum))
		},
	}
}
