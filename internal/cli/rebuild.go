package cli

import (
	"github.com/spf13/cobra"
)

// rebuildFlags holds the flags shared by the os and home subcommands.
type rebuildFlags struct {
	flake string
	dry   bool
	ask   bool
	noNom bool
}

func (f *rebuildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.flake, "flake", "f", "", "Flake reference (defaults to NH_FLAKE or 'flake' in config)")
	cmd.Flags().BoolVarP(&f.dry, "dry", "n", false, "Only print what would be done")
	cmd.Flags().BoolVarP(&f.ask, "ask", "a", false, "Ask for confirmation before activating")
	cmd.Flags().BoolVar(&f.noNom, "no-nom", false, "Do not pipe build output through nix-output-monitor")
}
