package main

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/safing/portbase/log"
	"github.com/spf13/cobra"
	"github.com/tevino/abool"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
)

//go:embed reference.yaml
var referenceScenario []byte

// logStarted is set once the portbase logger runs and must be shut down.
var logStarted = abool.New()

// newRootCmd builds the command tree. The logger writes a banner to stdout,
// so it is only started for serve or when --log is given explicitly.
func newRootCmd() *cobra.Command {
	var logLevel string
	rootCmd := &cobra.Command{
		Use:           "astar",
		Short:         "Find shortest paths on occupancy grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetLogLevel(log.ParseLevel(logLevel))
			if cmd.Name() != "serve" && !cmd.Flags().Changed("log") {
				return nil
			}
			if !logStarted.SetToIf(false, true) {
				return nil
			}
			return log.Start()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warning", "log level: trace, debug, info, warning, error")
	rootCmd.AddCommand(newFindCmd(), newStepCmd(), newServeCmd())
	return rootCmd
}

func stopLogging() {
	if logStarted.SetToIf(true, false) {
		log.Shutdown()
	}
}

// scenarioFlags are shared by every command that runs a search.
type scenarioFlags struct {
	file          string
	start         string
	goal          string
	heuristic     string
	maxExpansions int
	timeout       string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "scenario file (YAML or JSON), defaults to the built-in reference grid")
	cmd.Flags().StringVar(&f.start, "start", "", "start cell as row,col")
	cmd.Flags().StringVar(&f.goal, "goal", "", "goal cell as row,col")
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "", "heuristic: euclidean or manhattan")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", 0, "abort after this many expansions (0 = unlimited)")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "abort after this duration, e.g. 500ms")
}

// load reads the scenario and applies flag overrides.
func (f *scenarioFlags) load(cmd *cobra.Command) (*config.Scenario, error) {
	var (
		scenario *config.Scenario
		err      error
	)
	if f.file == "" {
		scenario, err = config.Parse(referenceScenario)
	} else {
		scenario, err = config.Load(f.file)
	}
	if err != nil {
		return nil, err
	}

	if f.start != "" {
		if scenario.Start, err = parseCell(f.start); err != nil {
			return nil, fmt.Errorf("--start: %w", err)
		}
	}
	if f.goal != "" {
		if scenario.Goal, err = parseCell(f.goal); err != nil {
			return nil, fmt.Errorf("--goal: %w", err)
		}
	}
	if cmd.Flags().Changed("heuristic") {
		scenario.Search.Heuristic = f.heuristic
	}
	if cmd.Flags().Changed("max-expansions") {
		scenario.Search.MaxExpansions = f.maxExpansions
	}
	if cmd.Flags().Changed("timeout") {
		scenario.Search.Timeout = f.timeout
	}
	return scenario, nil
}

func parseCell(s string) (*astar.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected row,col, got %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid column: %w", err)
	}
	return &astar.Cell{Row: row, Col: col}, nil
}

func main() {
	err := newRootCmd().Execute()
	stopLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
