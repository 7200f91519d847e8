package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	cameFrom := map[string]string{
		"b": "a",
		"c": "b",
		"d": "c",
		"x": "a",
	}
	predecessor := func(node string) (string, bool) {
		previous, ok := cameFrom[node]
		return previous, ok
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(predecessor, "d", "a"))
	assert.Equal(t, []string{"a"}, ReconstructPath(predecessor, "a", "a"))
	assert.Equal(t, []string{"b", "c"}, ReconstructPath(predecessor, "c", "b"))

	// a broken chain stops at the last known predecessor
	delete(cameFrom, "b")
	assert.Equal(t, []string{"b", "c", "d"}, ReconstructPath(predecessor, "d", "a"))
}

func TestPathCost(t *testing.T) {
	step := func(from, to int) float64 { return float64(to - from) }
	assert.Equal(t, 6.0, PathCost([]int{0, 1, 3, 6}, step))
	assert.Equal(t, 0.0, PathCost([]int{4}, step))
	assert.Equal(t, 0.0, PathCost[int](nil, step))
}
