package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/greaterdiscord/installer/internal/install"
	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
)

// skipRestart stands in for the restarter under --no-restart. It still reports each
// channel so progress reaches 100.
type skipRestart struct{}

func (skipRestart) Restart(_ context.Context, channels []string, step func()) error {
	for range channels {
		step()
	}
	return nil
}

func newInstallCmd() *cobra.Command {
	var (
		configPath string
		channels   []string
		policy     promptPolicy
		verbose    bool
		noRestart  bool
	)

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, channels)
			if err != nil {
				return err
			}
			fetcher, err := newFetcher(cfg)
			if err != nil {
				return err
			}
			path := logPath()
			logger, closeLog, err := logging.New(cmd.ErrOrStderr(), path, verbose)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			var restarter install.Restarter = skipRestart{}
			if !noRestart {
				restarter = newRestarter(logger)
			}
			reporter := newProgressReporter(cmd.OutOrStdout(), isTerminalWriter(cmd.OutOrStdout()))
			_, runErr := installRun(cmd.Context(), install.Options{
				Config:      cfg.Channels,
				Paths:       cfg.ResolvePaths(),
				AssetName:   cfg.Release.AssetName,
				RedirectURL: cfg.Extensions.RedirectURL,
				Fetcher:     fetcher,
				Prompter:    newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), policy),
				Notifier:    noticeNotifier{out: cmd.ErrOrStderr()},
				Restarter:   restarter,
				Reporter:    reporter,
				Logger:      logger,
				System:      install.RealSystem{},
			})
			reporter.finish()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.InstallLogLocationFmt, path)
			if runErr != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.RedString(messages.InstallFailed))
				return &SilentExitError{Code: 1, Err: runErr}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString(messages.InstallSucceeded))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	cmd.Flags().StringArrayVar(&channels, "channel", nil, messages.InstallFlagChannel)
	cmd.Flags().BoolVarP(&policy.yes, "yes", "y", false, messages.InstallFlagYes)
	cmd.Flags().BoolVar(&policy.noMigrate, "no-migrate", false, messages.InstallFlagNoMigrate)
	cmd.Flags().BoolVar(&policy.noExtensions, "no-extensions", false, messages.InstallFlagNoExtensions)
	cmd.Flags().BoolVar(&verbose, "verbose", false, messages.InstallFlagVerbose)
	cmd.Flags().BoolVar(&noRestart, "no-restart", false, messages.InstallFlagNoRestart)
	return cmd
}
