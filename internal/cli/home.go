package cli

import (
	"github.com/runoshun/nh/internal/app"
	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase"
	"github.com/spf13/cobra"
)

// newHomeCommand creates the home command.
func newHomeCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Rebuild a home-manager configuration",
		Long: `Rebuild a home-manager configuration from a flake.

The configuration is taken from --configuration, then from the flake fragment,
then the first of "user@host" and "user" found in homeConfigurations.`,
	}

	cmd.AddCommand(
		newHomeActionCommand(c, domain.ActionSwitch, "Build and activate"),
		newHomeActionCommand(c, domain.ActionBuild, "Build and show the changes"),
	)

	return cmd
}

func newHomeActionCommand(c *app.Container, action domain.Action, short string) *cobra.Command {
	var flags rebuildFlags
	var configuration string

	cmd := &cobra.Command{
		Use:   string(action) + " [-- nix-args...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.RebuildHomeUseCase()
			_, err := uc.Execute(cmd.Context(), usecase.RebuildHomeInput{
				Action:        action,
				Flake:         domain.FlakeRef(flags.flake),
				Configuration: configuration,
				ExtraArgs:     args,
				Dry:           flags.dry,
				Ask:           flags.ask,
				NoNom:         flags.noNom,
			})
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", "homeConfigurations attribute to build")

	return cmd
}
