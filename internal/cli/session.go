package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/scout/internal/analytics"
	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/config"
	"github.com/roach88/scout/internal/exchange"
	"github.com/roach88/scout/internal/store"
)

// session is everything one command invocation works with.
type session struct {
	logger   *slog.Logger
	store    *store.Store
	engine   *analytics.Engine
	exchange *exchange.Exchanger
	out      *OutputFormatter
	printer  *message.Printer // formats rates in the configured locale
}

// openSession resolves configuration, sets up logging and opens the store.
// Failing to open the store is fatal for the command (ExitCommandError).
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.WinRule != "" {
		if _, err := analytics.ParseRule(opts.WinRule); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --win-rule", err)
		}
		cfg.WinRule = opts.WinRule
	}
	if opts.Locale != "" {
		if _, err := language.Parse(opts.Locale); err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --locale", err)
		}
		cfg.Locale = opts.Locale
	}

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	slogSink := audit.NewSlogSink(logger, "")
	sinks := []audit.Sink{slogSink}
	if opts.ShowSQL {
		sinks = append(sinks, audit.NewWriterSink(out.GetErrWriter()))
	}
	sink := audit.Multi(sinks...)
	log := audit.NewLog(sink)
	slogSink.Session = log.Session()
	out.Session = log.Session()
	out.VerboseLog("Using database %s (win rule %s)", cfg.Database, cfg.Rule())

	logger.Debug("opening database", "path", cfg.Database, "session", log.Session())
	st, err := store.Open(cfg.Database,
		store.WithLog(log),
		store.WithUIDAttempts(cfg.UIDAttempts),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	xchg := exchange.New(st,
		exchange.WithSink(sink),
		exchange.WithSeparator(cfg.SeparatorRune()),
		exchange.WithQRScale(cfg.QRScale),
	)

	return &session{
		logger:   logger,
		store:    st,
		engine:   analytics.New(st, cfg.Rule()),
		exchange: xchg,
		out:      out,
		printer:  message.NewPrinter(cfg.Language()),
	}, nil
}

// Close releases the store.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or a background context outside
// of Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
