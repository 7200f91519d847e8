// Package render turns grids, paths and search trees into text, GeoJSON and
// Graphviz output.
package render

import (
	"fmt"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"

	astar "github.com/pdrpinto/gridastar"
)

const pathMark = "*"

// Text prints grid row by row, marking path cells with an asterisk.
func Text(grid *astar.Grid, path []astar.Cell) string {
	onPath := make(map[astar.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell := astar.Cell{Row: r, Col: c}
			if onPath[cell] {
				b.WriteString(pathMark)
			} else {
				fmt.Fprintf(&b, "%d", grid.Value(cell))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// GeoJSON encodes path as a LineString with x = column and y = row.
// A single-cell path becomes a Point.
func GeoJSON(path []astar.Cell) (string, error) {
	switch len(path) {
	case 0:
		return "", fmt.Errorf("empty path")
	case 1:
		return geojson.NewPoint(cellPoint(path[0])).JSON(), nil
	}
	points := make([]geometry.Point, 0, len(path))
	for _, c := range path {
		points = append(points, cellPoint(c))
	}
	return geojson.NewLineString(geometry.NewLine(points, nil)).JSON(), nil
}

func cellPoint(c astar.Cell) geometry.Point {
	return geometry.Point{X: float64(c.Col), Y: float64(c.Row)}
}

// SearchTree renders the cameFrom links of a search as a Graphviz digraph.
// Edges point from a cell to its predecessor; cells on path are filled.
func SearchTree(cameFrom map[astar.Cell]astar.Cell, path []astar.Cell) (string, error) {
	const graphName = "search"

	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	onPath := make(map[astar.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	nodes := make(map[astar.Cell]bool, len(cameFrom)*2)
	for to, from := range cameFrom {
		nodes[to] = true
		nodes[from] = true
	}
	for _, c := range path {
		nodes[c] = true
	}

	for _, c := range astar.SortedCells(nodes) {
		attrs := map[string]string{"label": fmt.Sprintf("%q", c.String())}
		if onPath[c] {
			attrs["style"] = "filled"
		}
		if err := g.AddNode(graphName, nodeName(c), attrs); err != nil {
			return "", err
		}
	}
	for _, to := range astar.SortedCells(nodes) {
		from, ok := cameFrom[to]
		if !ok {
			continue
		}
		if err := g.AddEdge(nodeName(to), nodeName(from), true, nil); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func nodeName(c astar.Cell) string {
	return fmt.Sprintf("r%d_c%d", c.Row, c.Col)
}
