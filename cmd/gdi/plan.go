package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/greaterdiscord/installer/internal/config"
	"github.com/greaterdiscord/installer/internal/install"
	"github.com/greaterdiscord/installer/internal/messages"
)

func newPlanCmd() *cobra.Command {
	var (
		configPath   string
		channels     []string
		diffMaxLines int
	)

	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, channels)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), install.RealSystem{}, cfg, diffMaxLines)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", messages.InstallFlagConfig)
	cmd.Flags().StringArrayVar(&channels, "channel", nil, messages.InstallFlagChannel)
	cmd.Flags().IntVar(&diffMaxLines, "diff-lines", install.DefaultDiffMaxLines, messages.PlanFlagDiffLines)
	return cmd
}

// writePlan prints the directories to provision, the package destination and the shim
// diff for every channel.
func writePlan(out io.Writer, sys install.System, cfg *config.Config, diffMaxLines int) error {
	paths := cfg.ResolvePaths()
	if _, err := fmt.Fprintln(out, messages.PlanDirsHeader); err != nil {
		return err
	}
	for _, dir := range paths.Directories() {
		state := messages.PlanDirMissing
		if info, err := sys.Stat(dir); err == nil && info.IsDir() {
			state = messages.PlanDirExists
		}
		if _, err := fmt.Fprintf(out, messages.PlanLineFmt, fmt.Sprintf("%s (%s)", dir, state)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, messages.PlanPackageFmt, paths.PackagePath); err != nil {
		return err
	}

	names := cfg.Channels.Channels()
	previews, err := install.PreviewShims(sys, paths.PackagePath, cfg.Channels.Dirs(), diffMaxLines)
	if err != nil {
		return err
	}
	for i, preview := range previews {
		if _, err := fmt.Fprintf(out, messages.PlanShimHeaderFmt, names[i], preview.Path); err != nil {
			return err
		}
		if preview.Unchanged {
			if _, err := fmt.Fprintln(out, messages.PlanShimUnchanged); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(out, preview.UnifiedDiff); err != nil {
			return err
		}
	}
	return nil
}

