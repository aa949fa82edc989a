package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides the configured database when set
	ConfigPath string
	ShowSQL    bool   // echo the prefixed statement history to stderr
	WinRule    string // overrides the configured win rule when set
	Locale     string // overrides the configured display locale when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the scout CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scout",
		Short: "scout - robotics competition scouting data",
		Long: `Track team performance records and match rosters in a local SQLite
database, compute win rates, and move data in and out as JSON, CSV or QR
images.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, then scout.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default ./scout.yaml if present)")
	cmd.PersistentFlags().BoolVar(&opts.ShowSQL, "show-sql", false, "print executed statements and messages to stderr")
	cmd.PersistentFlags().StringVar(&opts.WinRule, "win-rule", "", "win rule (red-only|symmetric)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "", "locale for displayed numbers, e.g. de or fr-CA (default from config, then en)")

	// Add subcommands
	cmd.AddCommand(NewTeamCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewRosterCommand(opts))
	cmd.AddCommand(NewWinRateCommand(opts))
	cmd.AddCommand(NewStandingsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// Execute runs the scout CLI with os.Args, reports any error in the
// selected output format and returns the process exit code.
func Execute() int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.ErrOrStderr(), Verbose: opts.Verbose}
	if f.Format == "json" {
		f.Writer = cmd.OutOrStdout()
	} else {
		f.Format = "text"
	}

	_ = f.Error(err)
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
