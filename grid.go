package astar

import (
	"errors"
	"fmt"
)

const (
	// Free marks a passable cell.
	Free = 0
	// Obstacle marks an impassable cell.
	Obstacle = 1
)

var (
	ErrInvalidGrid     = errors.New("invalid grid")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// Cell is a (row, column) coordinate on a Grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// down, up, right, left
var gridDirections = [4]Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is a read-only occupancy grid. It is safe for concurrent searches.
type Grid struct {
	rows, cols int
	cells      []uint8
}

// NewGrid copies values into a new Grid. Every row must have the same
// length and every value must be Free or Obstacle.
func NewGrid(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("%w: grid has no cells", ErrInvalidGrid)
	}
	g := &Grid{
		rows:  len(values),
		cols:  len(values[0]),
		cells: make([]uint8, 0, len(values)*len(values[0])),
	}
	for r, row := range values {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidGrid, r, len(row), g.cols)
		}
		for c, v := range row {
			if v != Free && v != Obstacle {
				return nil, fmt.Errorf("%w: value %d at %s", ErrInvalidGrid, v, Cell{r, c})
			}
			g.cells = append(g.cells, uint8(v))
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Value returns the grid value at c. c must be in bounds.
func (g *Grid) Value(c Cell) int {
	return int(g.cells[c.Row*g.cols+c.Col])
}

// Passable reports whether c is in bounds and not an obstacle.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.Value(c) != Obstacle
}

// Validate checks that c can be used as a search endpoint.
func (g *Grid) Validate(c Cell) error {
	switch {
	case !g.InBounds(c):
		return fmt.Errorf("%w: %s is outside the %dx%d grid", ErrInvalidEndpoint, c, g.rows, g.cols)
	case g.Value(c) == Obstacle:
		return fmt.Errorf("%w: %s is an obstacle", ErrInvalidEndpoint, c)
	}
	return nil
}

// Neighbors returns the passable orthogonal neighbors of c.
func (g *Grid) Neighbors(c Cell) []Neighbor[Cell] {
	neighbors := make([]Neighbor[Cell], 0, len(gridDirections))
	for _, d := range gridDirections {
		next := Cell{c.Row + d.Row, c.Col + d.Col}
		if g.Passable(next) {
			neighbors = append(neighbors, Neighbor[Cell]{ID: next, Cost: Euclidean(c, next)})
		}
	}
	return neighbors
}

// Matrix returns a copy of the grid values.
func (g *Grid) Matrix() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		for c := range out[r] {
			out[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return out
}
