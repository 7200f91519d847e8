package astar

import (
	"github.com/tidwall/btree"

	"github.com/pdrpinto/gridastar/internal"
)

const cellTreeDegree = 16

// cellItem orders cells row-major inside a btree.
type cellItem Cell

func (c cellItem) Less(than btree.Item, ctx interface{}) bool {
	other := than.(cellItem)
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// SortedCells returns the members of set in row-major order.
func SortedCells(set map[Cell]bool) []Cell {
	tree := btree.New(cellTreeDegree, nil)
	for c, ok := range set {
		if ok {
			tree.ReplaceOrInsert(cellItem(c))
		}
	}
	cells := make([]Cell, 0, tree.Len())
	tree.Ascend(func(item btree.Item) bool {
		cells = append(cells, Cell(item.(cellItem)))
		return true
	})
	return cells
}

// PathCost is the sum of the Euclidean step lengths along path.
func PathCost(path []Cell) float64 {
	return internal.PathCost(path, Euclidean)
}

// IsContiguous reports whether every consecutive pair of path is a pair of
// orthogonal neighbors.
func IsContiguous(path []Cell) bool {
	for i := 1; i < len(path); i++ {
		if Manhattan(path[i-1], path[i]) != 1 {
			return false
		}
	}
	return true
}
