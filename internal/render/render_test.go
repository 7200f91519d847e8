package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/gridastar"
)

func TestText(t *testing.T) {
	grid, err := astar.NewGrid([][]int{
		{0, 0, 0},
		{1, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	path, err := astar.FindPath(context.Background(), grid, astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 2, Col: 0})
	require.NoError(t, err)

	assert.Equal(t, "* * *\n1 1 *\n* * *\n", Text(grid, path))
	assert.Equal(t, "0 0 0\n1 1 0\n0 0 0\n", Text(grid, nil))
}

func TestGeoJSON(t *testing.T) {
	s, err := GeoJSON([]astar.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}})
	require.NoError(t, err)
	assert.Contains(t, s, `"LineString"`)
	assert.Contains(t, s, "[1,1]")

	s, err = GeoJSON([]astar.Cell{{Row: 2, Col: 3}})
	require.NoError(t, err)
	assert.Contains(t, s, `"Point"`)
	assert.Contains(t, s, "[3,2]")

	_, err = GeoJSON(nil)
	assert.Error(t, err)
}

func TestSearchTree(t *testing.T) {
	a, b, c := astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 0, Col: 1}, astar.Cell{Row: 1, Col: 0}
	cameFrom := map[astar.Cell]astar.Cell{b: a, c: a}

	s, err := SearchTree(cameFrom, []astar.Cell{a, b})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(s), "digraph search"))
	assert.Contains(t, s, "r0_c1->r0_c0")
	assert.Contains(t, s, "r1_c0->r0_c0")
	assert.Contains(t, s, "filled")
}
