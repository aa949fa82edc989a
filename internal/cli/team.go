package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/scout/internal/model"
)

// NewTeamCommand creates the team command group.
func NewTeamCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team performance records",
		Long: `Manage team performance records.

Each record is one scouting session of one team and is identified by a
four-digit uid. Several records may share a team number.`,
	}

	cmd.AddCommand(newTeamAddCommand(rootOpts))
	cmd.AddCommand(newTeamGetCommand(rootOpts))
	cmd.AddCommand(newTeamListCommand(rootOpts))
	cmd.AddCommand(newTeamUpdateCommand(rootOpts))
	cmd.AddCommand(newTeamDeleteCommand(rootOpts))

	return cmd
}

// teamIntFields maps integer team flags to their record fields.
var teamIntFields = []struct {
	name  string
	usage string
	field func(*model.Team) *int
}{
	{"team-num", "team number", func(t *model.Team) *int { return &t.TeamNum }},
	{"match-num", "match the record was taken in (0 for none)", func(t *model.Team) *int { return &t.MatchNum }},
	{"cycle-speed", "robot cycle speed (0-100)", func(t *model.Team) *int { return &t.RobotCycleSpeed }},
	{"coral", "coral points (0-100)", func(t *model.Team) *int { return &t.CoralPoints }},
	{"defense", "defense rating (0-100)", func(t *model.Team) *int { return &t.Defense }},
	{"auto", "autonomous points (0-100)", func(t *model.Team) *int { return &t.AutonomousPoints }},
	{"driver-skill", "driver skill rating (0-100)", func(t *model.Team) *int { return &t.DriverSkill }},
	{"penalties", "penalty count", func(t *model.Team) *int { return &t.Penalties }},
	{"overall", "overall rating (0-100)", func(t *model.Team) *int { return &t.Overall }},
	{"ranking-points", "ranking points", func(t *model.Team) *int { return &t.RankingPoints }},
}

// teamFlags collects team field flags into a scratch record.
type teamFlags struct {
	vals model.Team
}

func (f *teamFlags) bind(fs *pflag.FlagSet) {
	for _, fld := range teamIntFields {
		fs.IntVar(fld.field(&f.vals), fld.name, 0, fld.usage)
	}
	fs.BoolVar(&f.vals.HangAttempt, "hang-attempt", false, "robot attempted to hang")
	fs.BoolVar(&f.vals.HangSuccess, "hang-success", false, "robot hung successfully")
}

// apply copies every flag set on the command line onto t.
func (f *teamFlags) apply(fs *pflag.FlagSet, t *model.Team) {
	for _, fld := range teamIntFields {
		if fs.Changed(fld.name) {
			*fld.field(t) = *fld.field(&f.vals)
		}
	}
	if fs.Changed("hang-attempt") {
		t.HangAttempt = f.vals.HangAttempt
	}
	if fs.Changed("hang-success") {
		t.HangSuccess = f.vals.HangSuccess
	}
}

func newTeamAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &teamFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team record under a new uid",
		Long: `Add a team record. A free uid is allocated automatically.

Example:
  scout team add --team-num 1678 --match-num 12 --overall 80 --hang-attempt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			team := flags.vals
			team.UID, err = s.store.AllocateTeamUID(ctx)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to allocate uid", err)
			}
			if err := s.store.PutTeam(ctx, team); err != nil {
				return WrapExitError(ExitFailure, "failed to add team", err)
			}

			return s.out.Result(team, fmt.Sprintf("Added team %d with uid %d", team.TeamNum, team.UID))
		},
	}

	flags.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("team-num")

	return cmd
}

func newTeamGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <uid>",
		Short:         "Show one team record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := intArg("uid", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			team, found, err := s.store.GetTeam(commandContext(cmd), uid)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to get team", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("team with uid %d not found", uid))
			}

			return s.out.Result(team, renderTeams([]model.Team{team}))
		},
	}
}

func newTeamListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every team record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			teams, err := s.store.ListTeams(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list teams", err)
			}

			return s.out.Result(teams, renderTeams(teams))
		},
	}
}

func newTeamUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &teamFlags{}

	cmd := &cobra.Command{
		Use:   "update <uid>",
		Short: "Change fields of a team record",
		Long: `Change fields of a team record. Only the flags given are changed.

Example:
  scout team update 4321 --overall 90 --penalties 0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := intArg("uid", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			team, found, err := s.store.GetTeam(ctx, uid)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to get team", err)
			}
			if !found {
				return NewExitError(ExitFailure, fmt.Sprintf("team with uid %d not found", uid))
			}

			flags.apply(cmd.Flags(), &team)
			if err := s.store.UpdateTeam(ctx, team); err != nil {
				return WrapExitError(ExitFailure, "failed to update team", err)
			}

			return s.out.Result(team, fmt.Sprintf("Updated team with uid %d", uid))
		},
	}

	flags.bind(cmd.Flags())

	return cmd
}

func newTeamDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uid>",
		Short: "Delete a team record",
		Long: `Delete a team record and clear its team number from every match
roster that holds it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := intArg("uid", args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			exists, err := s.store.TeamExists(ctx, uid)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to check team", err)
			}
			if !exists {
				return NewExitError(ExitFailure, fmt.Sprintf("team with uid %d not found", uid))
			}
			if err := s.store.DeleteTeam(ctx, uid); err != nil {
				return WrapExitError(ExitFailure, "failed to delete team", err)
			}

			return s.out.Result(map[string]int{"uid": uid}, fmt.Sprintf("Deleted team with uid %d", uid))
		},
	}
}

// intArg parses a positional integer argument.
func intArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid %s %q", name, value), err)
	}
	return n, nil
}
