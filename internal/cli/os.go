package cli

import (
	"fmt"

	"github.com/runoshun/nh/internal/app"
	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase"
	"github.com/spf13/cobra"
)

var osActionShort = map[domain.Action]string{
	domain.ActionSwitch: "Build, activate and make it the boot default",
	domain.ActionBoot:   "Build and make it the boot default",
	domain.ActionTest:   "Build and activate until the next reboot",
	domain.ActionBuild:  "Build and show the changes",
}

// newOSCommand creates the os command.
func newOSCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "os",
		Short: "Rebuild a NixOS configuration",
		Long: `Rebuild the NixOS configuration of a host from a flake.

The host is taken from --hostname, then from the flake fragment (path#host),
then from the machine's host name.`,
		// No RunE: shows subcommand list when called without arguments
	}

	for _, action := range domain.AllOSActions() {
		cmd.AddCommand(newOSActionCommand(c, action))
	}

	return cmd
}

func newOSActionCommand(c *app.Container, action domain.Action) *cobra.Command {
	var flags rebuildFlags
	var hostname string

	cmd := &cobra.Command{
		Use:   string(action) + " [-- nix-args...]",
		Short: osActionShort[action],
		Example: fmt.Sprintf(`  nh os %[1]s -f /etc/nixos
  nh os %[1]s -f .#myhost -- --show-trace`, action),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.RebuildOSUseCase()
			_, err := uc.Execute(cmd.Context(), usecase.RebuildOSInput{
				Action:    action,
				Flake:     domain.FlakeRef(flags.flake),
				Hostname:  hostname,
				ExtraArgs: args,
				Dry:       flags.dry,
				Ask:       flags.ask,
				NoNom:     flags.noNom,
			})
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&hostname, "hostname", "H", "", "nixosConfigurations attribute to build")

	return cmd
}
