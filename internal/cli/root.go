package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigDir string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "CPA practice management server",
		Long:  "Practice management for CPA firms: clients, projects, document checklists, and the client portal.",
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "config", "directory holding base.yaml and environment overlays")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
