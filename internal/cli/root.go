// Package cli provides the command-line interface for plansim.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mobilityos/plansim/internal/app"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root command for plansim.
func NewRootCommand(version string) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "plansim",
		Short: "Driving scenario selection, replayed offline",
		Long: `plansim replays recorded planning-cycle inputs through the
scenario selection state machine and shows, cycle by cycle, which driving
scenario the motion planner would execute and which rule chose it.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (handled in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "planner configuration file (TOML)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newSimulateCommand(flags),
		newConfigCommand(flags),
	)
	return root
}

// newContainer builds the DI container from the persistent flags.
func newContainer(flags *rootFlags) (*app.Container, error) {
	return app.New(flags.configPath, flags.logLevel)
}
