// Package cli provides the command-line interface for nh.
package cli

import (
	"fmt"

	"github.com/runoshun/nh/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupRebuild = "rebuild"
	groupSetup   = "setup"
)

// NewRootCommand creates the root command for nh.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "nh",
		Short: "Nix helper",
		Long: `nh is a helper for common Nix workflows.

It builds NixOS and home-manager configurations from a flake, shows what
changed with a closure differ, and activates the result. Build logs are piped
through nix-output-monitor when it is enabled.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			if verbose {
				c.SetVerbose()
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show the commands being run")

	root.AddGroup(
		&cobra.Group{ID: groupRebuild, Title: "Rebuild Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	osCmd := newOSCommand(c)
	osCmd.GroupID = groupRebuild

	homeCmd := newHomeCommand(c)
	homeCmd.GroupID = groupRebuild

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		osCmd,
		homeCmd,
		editCmd,
		configCmd,
	)

	return root
}
