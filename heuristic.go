package astar

import (
	"fmt"
	"math"
	"strings"
)

// Euclidean is the straight-line distance between two cells.
func Euclidean(a, b Cell) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Manhattan is the taxicab distance between two cells. It is still
// admissible because movement is limited to four directions.
func Manhattan(a, b Cell) float64 {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return float64(dr + dc)
}

// HeuristicByName resolves a configured heuristic name.
// The empty string selects Euclidean.
func HeuristicByName(name string) (Heuristic[Cell], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}
