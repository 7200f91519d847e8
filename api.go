package astar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eapache/go-resiliency/deadline"
	"github.com/rs/xid"
	"github.com/safing/portbase/log"
)

var (
	// ErrNoPath is returned when the open set is exhausted before the goal is reached.
	ErrNoPath = errors.New("no path found")
	// ErrExpansionLimit is returned when a search expands more nodes than allowed.
	ErrExpansionLimit = errors.New("expansion limit reached")
	// ErrTimeout is returned when a search runs longer than allowed.
	ErrTimeout = errors.New("search timed out")
)

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	SearchID      string
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	// Heuristic is used by FindPath and SearchGrid. Defaults to Euclidean.
	Heuristic Heuristic[Cell]
	// MaxExpansions caps the number of expanded nodes. Zero means no cap.
	MaxExpansions int
	// Timeout bounds the wall time of a search. Zero means no bound.
	Timeout time.Duration
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic sets the heuristic used for grid searches.
func WithHeuristic(heuristic Heuristic[Cell]) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithMaxExpansions aborts the search with ErrExpansionLimit after n expansions.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithTimeout aborts the search with ErrTimeout after d.
func WithTimeout(d time.Duration) Option {
	return func(options *Options) { options.Timeout = d }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Heuristic: Euclidean,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Euclidean
	}
	return searchOptions
}

// FindPath returns the shortest path from start to goal on grid, both ends
// included. It returns ErrInvalidEndpoint if an endpoint is out of bounds or
// blocked, and ErrNoPath if the goal cannot be reached.
func FindPath(ctx context.Context, grid *Grid, start, goal Cell, options ...Option) ([]Cell, error) {
	result, err := SearchGrid(ctx, grid, start, goal, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// SearchGrid is like FindPath but returns the full search Result.
func SearchGrid(ctx context.Context, grid *Grid, start, goal Cell, options ...Option) (Result[Cell], error) {
	if grid == nil {
		return Result[Cell]{}, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if err := grid.Validate(start); err != nil {
		return Result[Cell]{}, fmt.Errorf("start: %w", err)
	}
	if err := grid.Validate(goal); err != nil {
		return Result[Cell]{}, fmt.Errorf("goal: %w", err)
	}
	searchOptions := applyOptions(options)
	return Search[Cell](ctx, grid, start, goal, searchOptions.Heuristic, options...)
}

// Search executes the A* search algorithm on graph.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)
	searchID := xid.New().String()

	if searchOptions.Timeout <= 0 {
		return search(contextObject, nil, searchID, graph, startNode, goalNode, heuristic, searchOptions)
	}

	var result Result[NodeType]
	err := deadline.New(searchOptions.Timeout).Run(func(stopper <-chan struct{}) error {
		var searchErr error
		result, searchErr = search(contextObject, stopper, searchID, graph, startNode, goalNode, heuristic, searchOptions)
		return searchErr
	})
	if errors.Is(err, deadline.ErrTimedOut) {
		log.Debugf("astar: search %s timed out after %s", searchID, searchOptions.Timeout)
		return Result[NodeType]{SearchID: searchID}, fmt.Errorf("%w after %s", ErrTimeout, searchOptions.Timeout)
	}
	return result, err
}

func search[NodeType comparable](
	contextObject context.Context,
	stopper <-chan struct{},
	searchID string,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	searchOptions Options,
) (Result[NodeType], error) {
	state := newSearchState(startNode, goalNode, heuristic)
	log.Tracef("astar: search %s started from %v to %v", searchID, startNode, goalNode)

	expandedNodes := 0
	for state.openSet.Len() > 0 {
		select {
		case <-contextObject.Done():
			return Result[NodeType]{SearchID: searchID, ExpandedNodes: expandedNodes}, contextObject.Err()
		case <-stopper:
			return Result[NodeType]{SearchID: searchID, ExpandedNodes: expandedNodes}, ErrTimeout
		default:
		}
		if searchOptions.MaxExpansions > 0 && expandedNodes >= searchOptions.MaxExpansions {
			log.Debugf("astar: search %s stopped after %d expansions", searchID, expandedNodes)
			return Result[NodeType]{SearchID: searchID, ExpandedNodes: expandedNodes},
				fmt.Errorf("%w: %d nodes", ErrExpansionLimit, searchOptions.MaxExpansions)
		}

		currentNode, _, err := state.openSet.Dequeue()
		if err != nil {
			// The loop guard makes this unreachable.
			panic(fmt.Sprintf("astar: search %s: %s", searchID, err))
		}

		// Skip if already closed
		if state.closedSet[currentNode] {
			continue
		}
		state.closedSet[currentNode] = true
		expandedNodes++

		// Goal check
		if currentNode == goalNode {
			result := Result[NodeType]{
				SearchID:      searchID,
				Path:          state.path(currentNode),
				TotalCost:     state.gScore[currentNode],
				ExpandedNodes: expandedNodes,
				Found:         true,
			}
			log.Tracef("astar: search %s found path of %d nodes (cost %.2f, %d expanded)",
				searchID, len(result.Path), result.TotalCost, expandedNodes)
			return result, nil
		}

		state.expand(currentNode, graph.Neighbors(currentNode))
	}

	log.Tracef("astar: search %s exhausted open set after %d expansions", searchID, expandedNodes)
	return Result[NodeType]{
		SearchID:      searchID,
		ExpandedNodes: expandedNodes,
	}, ErrNoPath
}
