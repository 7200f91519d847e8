package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ghodss/yaml"

	astar "github.com/pdrpinto/gridastar"
)

// Scenario describes one search: the grid, its endpoints and search limits.
// Files may be written in YAML or JSON.
type Scenario struct {
	Grid   [][]int      `json:"grid"`
	Start  *astar.Cell  `json:"start,omitempty"`
	Goal   *astar.Cell  `json:"goal,omitempty"`
	Search SearchConfig `json:"search"`
}

// SearchConfig holds the tunable search parameters.
type SearchConfig struct {
	Heuristic     string `json:"heuristic,omitempty"`
	MaxExpansions int    `json:"maxExpansions,omitempty"`
	Timeout       string `json:"timeout,omitempty"`
}

var ErrNoGrid = errors.New("scenario has no grid")

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	scenario, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

// Parse decodes a scenario and fills in defaults: the start is the top left
// cell and the goal the bottom right cell.
func Parse(data []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if len(scenario.Grid) == 0 || len(scenario.Grid[0]) == 0 {
		return nil, ErrNoGrid
	}
	if scenario.Start == nil {
		scenario.Start = &astar.Cell{Row: 0, Col: 0}
	}
	if scenario.Goal == nil {
		scenario.Goal = &astar.Cell{Row: len(scenario.Grid) - 1, Col: len(scenario.Grid[0]) - 1}
	}
	if scenario.Search.MaxExpansions < 0 {
		return nil, fmt.Errorf("maxExpansions must not be negative, got %d", scenario.Search.MaxExpansions)
	}
	if _, err := scenario.timeout(); err != nil {
		return nil, err
	}
	if _, err := astar.HeuristicByName(scenario.Search.Heuristic); err != nil {
		return nil, err
	}
	return scenario, nil
}

// BuildGrid returns the scenario grid.
func (s *Scenario) BuildGrid() (*astar.Grid, error) {
	return astar.NewGrid(s.Grid)
}

// Options translates the search block into search options.
func (s *Scenario) Options() ([]astar.Option, error) {
	heuristic, err := astar.HeuristicByName(s.Search.Heuristic)
	if err != nil {
		return nil, err
	}
	timeout, err := s.timeout()
	if err != nil {
		return nil, err
	}
	return []astar.Option{
		astar.WithHeuristic(heuristic),
		astar.WithMaxExpansions(s.Search.MaxExpansions),
		astar.WithTimeout(timeout),
	}, nil
}

func (s *Scenario) timeout() (time.Duration, error) {
	if s.Search.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Search.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Search.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
