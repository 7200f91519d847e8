package main

import (
	"fmt"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/render"
)

func newStepCmd() *cobra.Command {
	var flags scenarioFlags
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Print every expansion of a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := flags.load(cmd)
			if err != nil {
				return err
			}
			grid, err := scenario.BuildGrid()
			if err != nil {
				return err
			}

			options, err := scenario.Options()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			last, err := runStepper(cmd, grid, *scenario.Start, *scenario.Goal, options,
				func(s astar.StepSnapshot[astar.Cell]) {
					if s.Done {
						return
					}
					fmt.Fprintf(out, "step %d: expand %s, open %v\n", s.StepIndex, s.Current, astar.SortedCells(s.Open))
				})
			if err != nil {
				return err
			}
			if !last.Found {
				fmt.Fprintln(out, "No path found.")
				return astar.ErrNoPath
			}
			fmt.Fprintf(out, "step %d: reached goal, path %v\n", last.StepIndex, last.Path)
			fmt.Fprint(out, render.Text(grid, last.Path))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// runStepper drives a grid stepper to completion and returns the final snapshot.
func runStepper(
	cmd *cobra.Command,
	grid *astar.Grid,
	start, goal astar.Cell,
	options []astar.Option,
	onStep func(astar.StepSnapshot[astar.Cell]),
) (astar.StepSnapshot[astar.Cell], error) {
	stepper, err := astar.NewGridStepper(cmd.Context(), grid, start, goal, options...)
	if err != nil {
		return astar.StepSnapshot[astar.Cell]{}, err
	}
	defer stepper.Close()

	for {
		snapshot, err := stepper.Step()
		if err != nil {
			return snapshot, err
		}
		if onStep != nil {
			onStep(snapshot)
		}
		if snapshot.Done {
			return snapshot, nil
		}
	}
}
