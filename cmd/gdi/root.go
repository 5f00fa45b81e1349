package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/install"
	"github.com/greaterdiscord/installer/internal/messages"
	"github.com/greaterdiscord/installer/internal/release"
	"github.com/greaterdiscord/installer/internal/restart"
	"github.com/greaterdiscord/installer/internal/terminal"
)

const logFileName = "gdi-installer.log"

// Seams replaced in tests.
var (
	isTerminal       = terminal.IsInteractive
	isTerminalWriter = terminal.IsTerminalWriter
	installRun       = install.Run
	newFetcher       = defaultFetcher
	newRestarter     = func(logger *zap.Logger) install.Restarter { return restart.New(logger) }
	logPath          = func() string { return filepath.Join(os.TempDir(), logFileName) }
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.AddCommand(
		newInstallCmd(),
		newPlanCmd(),
		newRestartCmd(),
		newVersionCmd(),
	)
	return cmd
}

func defaultFetcher(cfg *config.Config) (install.Fetcher, error) {
	timeout, err := cfg.Release.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return release.NewClient(cfg.Release.APIURL, cfg.Release.UserAgent, release.WithTimeout(timeout)), nil
}

// loadConfig reads path, or gdi.toml in the working directory when path is empty, or
// falls back to defaults. Every --channel name=dir value is merged over the file.
func loadConfig(path string, channelFlags []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadConfig(path)
	case fileExists(config.DefaultFileName):
		cfg, err = config.LoadConfig(config.DefaultFileName)
	default:
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}
	for _, raw := range channelFlags {
		name, dir, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		dir = strings.TrimSpace(dir)
		if !ok || name == "" || dir == "" {
			return nil, fmt.Errorf(messages.InstallChannelFlagInvalidFmt, raw)
		}
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, err
		}
		cfg.Channels[name] = expanded
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
