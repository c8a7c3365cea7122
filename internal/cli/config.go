package cli

import (
	"fmt"

	"github.com/runoshun/nh/internal/app"
	"github.com/runoshun/nh/internal/infra/config"
	"github.com/runoshun/nh/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the nh configuration file and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration.

Shows which config file was loaded and the configuration after applying
defaults and the NH_FLAKE environment variable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.File.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", out.File.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.File.Path)
			}
			_, _ = fmt.Fprintln(w)

			data, err := config.Marshal(out.Config)
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			_, _ = fmt.Fprintln(w, "[Effective config]")
			_, _ = w.Write(data)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Generate a configuration file with default values.

Creates ~/.config/nh/config.toml (or under $XDG_CONFIG_HOME).

Error conditions:
- Target file already exists: error unless --force is given`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{Force: force})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
