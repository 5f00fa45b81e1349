package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greaterdiscord/installer/internal/logging"
	"github.com/greaterdiscord/installer/internal/messages"
	"github.com/greaterdiscord/installer/internal/restart"
)

func newRestartCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   messages.RestartUse,
		Short: messages.RestartShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			channels := args
			if len(channels) == 0 {
				cfg, err := loadConfig(configPath, nil)
				if err != nil {
					return err
				}
				channels = cfg.Channels.Channels()
			}
			if len(channels) == 0 {
				return errors.New(messages.RestartNoChannels)
			}
			logger, closeLog, err := logging.New(cmd.ErrOrStderr(), logPath(), false)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			notifier := noticeNotifier{out: cmd.ErrOrStderr()}
			if err := newRestarter(logger).Restart(cmd.Context(), channels, func() {}); err != nil {
				if errors.Is(err, restart.ErrKill) {
					notifier.KillNotice()
				} else {
					notifier.RestartNotice()
				}
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), messages.RestartDone)
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	return cmd
}
