package cli

import (
	"github.com/runoshun/nh/internal/app"
	"github.com/runoshun/nh/internal/domain"
	"github.com/runoshun/nh/internal/usecase"
	"github.com/spf13/cobra"
)

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var editor string

	cmd := &cobra.Command{
		Use:   "edit [flakeref]",
		Short: "Open a flake in your editor",
		Long: `Open the directory of a flake in $EDITOR.

The fragment of the reference is ignored: "~/dots#host" opens "~/dots".
Without an argument the configured flake is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := domain.FlakeRef(c.Config.Flake)
			if len(args) == 1 {
				ref = domain.FlakeRef(args[0])
			}
			if ref == "" {
				return domain.ErrNoFlake
			}

			uc := c.EditFlakeUseCase()
			_, err := uc.Execute(cmd.Context(), usecase.EditFlakeInput{
				FlakeRef: ref,
				Editor:   editor,
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&editor, "editor", "e", "", "Editor to use instead of $EDITOR")

	return cmd
}
