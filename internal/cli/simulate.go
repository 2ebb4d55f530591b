package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mobilityos/plansim/internal/domain"
	"github.com/mobilityos/plansim/internal/infra/replay"
	"github.com/mobilityos/plansim/internal/tui"
	"github.com/mobilityos/plansim/internal/usecase"
)

// runTUIFunc launches the simulation viewer; tests substitute it.
var runTUIFunc = func(out *usecase.SimulateOutput) error {
	_, err := tea.NewProgram(tui.New(out), tea.WithAltScreen()).Run()
	return err
}

func newSimulateCommand(flags *rootFlags) *cobra.Command {
	var useTUI bool
	var useVoting bool
	var supported []string

	cmd := &cobra.Command{
		Use:   "simulate <recording.yaml>",
		Short: "Replay a recorded drive through the scenario manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := newContainer(flags)
			if err != nil {
				return err
			}
			defer func() { _ = container.Close() }()

			rec, err := replay.Load(args[0])
			if err != nil {
				return err
			}

			if useVoting {
				container.Config.Features.GeometryDispatch = false
			}

			in := usecase.SimulateInput{Recording: rec}
			for _, s := range supported {
				typ := domain.ScenarioType(strings.TrimSpace(s))
				if !typ.IsValid() {
					return fmt.Errorf("unknown scenario type %q", s)
				}
				in.Supported = append(in.Supported, typ)
			}

			out, err := container.Simulate().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if useTUI {
				return runTUIFunc(out)
			}
			printResults(cmd, out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useTUI, "tui", false, "interactive cycle-by-cycle viewer")
	cmd.Flags().BoolVar(&useVoting, "voting", false, "use the legacy preference-voting strategy")
	cmd.Flags().StringSliceVar(&supported, "supported", nil, "restrict the supported scenario set (comma-separated)")
	return cmd
}

func printResults(cmd *cobra.Command, out *usecase.SimulateOutput) {
	w := cmd.OutOrStdout()
	if out.Recording.Name != "" {
		fmt.Fprintf(w, "recording: %s\n", out.Recording.Name)
	}
	fmt.Fprintf(w, "%-6s %-9s %-32s %-15s %s\n", "cycle", "ego_s", "scenario", "rule", "status")
	for _, r := range out.Results {
		fmt.Fprintf(w, "%-6d %-9.2f %-32s %-15s %s\n",
			r.Cycle, r.EgoS, r.Scenario.Display(), r.Rule, r.Status)
	}
	fmt.Fprintf(w, "final: %s\n", out.Final.Display())
}
