package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/atomicstack/list-creation/internal/app"
	"github.com/atomicstack/list-creation/internal/config"
	"github.com/atomicstack/list-creation/internal/logging"
	"github.com/atomicstack/list-creation/internal/logging/events"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// configError marks failures that should exit with status 2.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// runners lets tests replace the program entry points.
type runners struct {
	tui  func(app.Config) error
	dump func(context.Context, app.Config, string) error
}

func defaultRunners() runners {
	return runners{
		tui: app.Run,
		dump: func(ctx context.Context, cfg app.Config, format string) error {
			return app.Dump(ctx, cfg, format, os.Stdout)
		},
	}
}

func newRootCmd(args, environ []string) *cobra.Command {
	return buildRootCmd(args, environ, defaultRunners())
}

func buildRootCmd(args, environ []string, run runners) *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:           "list-creation",
		Short:         "Create a new list by moving items out of two existing lists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.Register(root.PersistentFlags(), environ)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &configError{err: err}
	})
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		resolved, err := flags.Config(args)
		if err != nil {
			return &configError{err: err}
		}
		if err := config.Validate(resolved); err != nil {
			return &configError{err: err}
		}
		cfg = resolved
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		logging.SetSession(uuid.NewString())
		traceStartup(cfg)
		return nil
	}
	root.RunE = func(cmd *cobra.Command, _ []string) error {
		err := run.tui(cfg.App)
		events.App.Exit(err)
		return err
	}

	var format string
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Fetch the lists once and print them grouped by list number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			err := run.dump(ctx, cfg.App, format)
			events.App.Exit(err)
			if errors.Is(err, app.ErrFormat) {
				return &configError{err: err}
			}
			return err
		},
	}
	dump.Flags().StringVarP(&format, "format", "f", app.FormatTable, "output format: table, json or yaml")
	root.AddCommand(dump)
	return root
}
