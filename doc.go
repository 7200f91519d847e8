// Package astar finds shortest paths on 2D occupancy grids with A*.
//
// It exposes three entry points:
//
//   - FindPath: search a Grid between two cells and get the path, or ErrNoPath.
//   - Search: run the generic algorithm over any Graph and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Movement is limited to the four orthogonal directions and every step
// costs 1. Each search keeps its state local to the call, so many searches
// may run over the same Grid at once.
package astar
