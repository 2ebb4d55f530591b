package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mobilityos/plansim/internal/usecase"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved planner configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := newContainer(flags)
			if err != nil {
				return err
			}
			defer func() { _ = container.Close() }()

			out, err := container.ShowConfig().Execute(cmd.Context(), usecase.ShowConfigInput{
				Path: container.ConfigPath,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# resolved from %s\n%s", out.Path, out.Resolved)
			return nil
		},
	}
}
