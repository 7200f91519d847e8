package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/render"
)

type findResult struct {
	SearchID      string       `json:"searchId"`
	Path          []astar.Cell `json:"path"`
	TotalCost     float64      `json:"totalCost"`
	ExpandedNodes int          `json:"expandedNodes"`
}

func newFindCmd() *cobra.Command {
	var (
		flags  scenarioFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search a scenario and print the path",
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

			result, err := astar.SearchGrid(cmd.Context(), grid, *scenario.Start, *scenario.Goal, options...)
			if errors.Is(err, astar.ErrNoPath) {
				fmt.Fprintln(cmd.OutOrStdout(), "No path found.")
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				fmt.Fprintf(out, "Path found: %d cells, cost %.2f, %d nodes expanded.\n",
					len(result.Path), result.TotalCost, result.ExpandedNodes)
				fmt.Fprint(out, render.Text(grid, result.Path))
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(findResult{
					SearchID:      result.SearchID,
					Path:          result.Path,
					TotalCost:     result.TotalCost,
					ExpandedNodes: result.ExpandedNodes,
				})
			case "geojson":
				s, err := render.GeoJSON(result.Path)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "dot":
				snapshot, err := runStepper(cmd, grid, *scenario.Start, *scenario.Goal, options, nil)
				if err != nil {
					return err
				}
				s, err := render.SearchTree(snapshot.CameFrom, result.Path)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "o", "text", "output format: text, json, geojson or dot")
	return cmd
}
