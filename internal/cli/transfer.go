package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scout/internal/model"
)

// NewExportCommand creates the export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export teams or matches to a file",
		Long: `Export teams or matches to a file.

CSV files have no header and use the same column order that import reads.
QR images carry the CSV payload so it can be scanned on another device.`,
	}

	cmd.AddCommand(newExportJSONCommand(rootOpts))
	cmd.AddCommand(newExportCSVCommand(rootOpts))
	cmd.AddCommand(newExportQRCommand(rootOpts))

	return cmd
}

// TransferResult is the JSON form of an export or import outcome.
type TransferResult struct {
	Kind    model.Kind `json:"kind"`
	Path    string     `json:"path"`
	QRPath  string     `json:"qr_path,omitempty"`
	Records int        `json:"records,omitempty"`
}

func newExportJSONCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "json <teams|matches> <path>",
		Short:         "Export as a JSON array of rows",
		Example:       `  scout export json teams teams.json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.exchange.ExportJSON(commandContext(cmd), kind, args[1]); err != nil {
				return WrapExitError(ExitFailure, "export failed", err)
			}

			return s.out.Result(TransferResult{Kind: kind, Path: args[1]},
				fmt.Sprintf("Exported %s to %s", kind, args[1]))
		},
	}
}

func newExportCSVCommand(rootOpts *RootOptions) *cobra.Command {
	var qrPath string

	cmd := &cobra.Command{
		Use:   "csv <teams|matches> <path>",
		Short: "Export as headerless CSV",
		Example: `  scout export csv matches matches.csv
  scout export csv teams teams.csv --qr TeamData.png`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			ctx := commandContext(cmd)

			if qrPath != "" {
				err = s.exchange.ExportCSVWithQR(ctx, kind, args[1], qrPath)
			} else {
				err = s.exchange.ExportCSV(ctx, kind, args[1])
			}
			if err != nil {
				return WrapExitError(ExitFailure, "export failed", err)
			}

			text := fmt.Sprintf("Exported %s to %s", kind, args[1])
			if qrPath != "" {
				text += fmt.Sprintf(" (QR code: %s)", qrPath)
			}
			return s.out.Result(TransferResult{Kind: kind, Path: args[1], QRPath: qrPath}, text)
		},
	}

	cmd.Flags().StringVar(&qrPath, "qr", "", "also write the CSV payload as a QR code PNG to this path")

	return cmd
}

func newExportQRCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "qr <teams|matches> <path>",
		Short:         "Export the CSV payload as a QR code PNG",
		Example:       `  scout export qr matches MatchData.png`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.exchange.ExportCSVQR(commandContext(cmd), kind, args[1]); err != nil {
				return WrapExitError(ExitFailure, "export failed", err)
			}

			return s.out.Result(TransferResult{Kind: kind, QRPath: args[1]},
				fmt.Sprintf("Exported %s as QR code to %s", kind, args[1]))
		},
	}
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <teams|matches> <path>",
		Short: "Import teams or matches from CSV",
		Long: `Import teams or matches from a headerless CSV file in export order.

Every imported team gets a new uid. Matches replace stored matches with the
same number. A malformed line aborts the import before anything is stored.`,
		Example:       `  scout import teams teams.csv`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.exchange.ImportCSV(commandContext(cmd), kind, args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "import failed", err)
			}

			return s.out.Result(TransferResult{Kind: kind, Path: args[1], Records: n},
				fmt.Sprintf("Imported %d %s from %s", n, kind, args[1]))
		},
	}
}

// kindArg parses a record kind argument.
func kindArg(value string) (model.Kind, error) {
	kind, err := model.ParseKind(value)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "invalid record kind", err)
	}
	return kind, nil
}
