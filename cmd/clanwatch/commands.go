package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edgard/clanwatch/internal/app"
	"github.com/edgard/clanwatch/internal/config"
	apperrors "github.com/edgard/clanwatch/internal/errors"
	"github.com/edgard/clanwatch/internal/logger"
	"github.com/edgard/clanwatch/internal/scheduler"
	"github.com/edgard/clanwatch/internal/tasks"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "clanwatch",
		Short:         "Report clan members who have not been seen for a while",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default ./config.yaml if present)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to dotenv file (default ./.env if present)")

	root.AddCommand(newRunCmd(opts), newServeCmd(opts))
	return root
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the inactivity report once and print its status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}

			deps, err := tasks.NewTaskDeps(cfg, log)
			if err != nil {
				return fail(log, "Failed to build clients", err)
			}
			report, err := tasks.NewInactivityReport(deps)
			if err != nil {
				return fail(log, "Failed to build inactivity report", err)
			}

			status, err := report.Run(cmd.Context())
			if err != nil {
				return fail(log, "Inactivity report failed", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the inactivity report on its cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}

			deps, err := tasks.NewTaskDeps(cfg, log)
			if err != nil {
				return fail(log, "Failed to build clients", err)
			}
			taskMap, err := tasks.RegisterAllTasks(deps)
			if err != nil {
				return fail(log, "Failed to register tasks", err)
			}
			sched, err := scheduler.New(log, &cfg.Scheduler, taskMap)
			if err != nil {
				return fail(log, "Failed to create scheduler", err)
			}

			return app.New(log, cfg, taskMap, sched).Run(cmd.Context())
		},
	}
}

// setup loads the environment and configuration and installs the logger.
// Configuration errors are reported before any network client exists.
func setup(opts *rootOptions) (*config.Config, *slog.Logger, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, nil, fail(slog.Default(), "Failed to load env file", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, fail(slog.Default(), "Failed to load configuration", err)
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Debug("Configuration loaded",
		"clan_tag", cfg.Clan.Tag,
		"window", cfg.Report.Window,
		"detail", cfg.Report.Detail,
		"notify_kind", cfg.Notify.Kind)

	return cfg, log, nil
}

func fail(log *slog.Logger, msg string, err error) error {
	log.Error(msg, "error", err, "code", apperrors.Code(err))
	return err
}
