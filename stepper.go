package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/safing/portbase/log"
	"github.com/tevino/abool"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	StepIndex int
}

// Stepper runs a search one expansion at a time, for visualisation and
// debugging. Step must not be called concurrently; Done and Found may be
// read from other goroutines while a Step is running.
type Stepper[NodeType comparable] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	graph   Graph[NodeType]
	state   *searchState[NodeType]
	options Options

	stepCount int
	current   NodeType
	path      []NodeType
	done      *abool.AtomicBool
	found     *abool.AtomicBool
}

// NewStepper creates a new stepper using the same expansion logic as Search.
// MaxExpansions and Timeout are honored; the timeout starts now.
func NewStepper[NodeType comparable](
	parent context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	stepOptions := applyOptions(options)

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if stepOptions.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, stepOptions.Timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	return &Stepper[NodeType]{
		ctx:     ctx,
		cancel:  cancel,
		graph:   graph,
		state:   newSearchState(startNode, goalNode, heuristic),
		options: stepOptions,
		current: startNode,
		done:    abool.New(),
		found:   abool.New(),
	}
}

// NewGridStepper validates the grid and endpoints and returns a Stepper over
// grid. The heuristic is taken from the options, as in SearchGrid.
func NewGridStepper(parent context.Context, grid *Grid, start, goal Cell, options ...Option) (*Stepper[Cell], error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if err := grid.Validate(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := grid.Validate(goal); err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	stepOptions := applyOptions(options)
	return NewStepper[Cell](parent, grid, start, goal, stepOptions.Heuristic, options...), nil
}

// Close stops the stepper. Further steps return the context error.
func (s *Stepper[NodeType]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Done reports whether the search has finished.
func (s *Stepper[NodeType]) Done() bool { return s.done.IsSet() }

// Found reports whether the search reached the goal.
func (s *Stepper[NodeType]) Found() bool { return s.found.IsSet() }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, Step keeps returning the final snapshot.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.done.IsSet() {
		return s.snapshot(), nil
	}
	if err := s.ctx.Err(); err != nil {
		s.done.Set()
		if errors.Is(err, context.DeadlineExceeded) && s.options.Timeout > 0 {
			err = fmt.Errorf("%w after %s", ErrTimeout, s.options.Timeout)
		}
		return s.snapshot(), err
	}
	if s.options.MaxExpansions > 0 && s.stepCount >= s.options.MaxExpansions {
		s.done.Set()
		log.Debugf("astar: stepper stopped after %d expansions", s.stepCount)
		return s.snapshot(), fmt.Errorf("%w: %d nodes", ErrExpansionLimit, s.options.MaxExpansions)
	}

	for {
		if s.state.openSet.Len() == 0 {
			s.done.Set()
			log.Tracef("astar: stepper exhausted open set after %d steps", s.stepCount)
			return s.snapshot(), nil
		}

		current, _, err := s.state.openSet.Dequeue()
		if err != nil {
			return StepSnapshot[NodeType]{}, err
		}
		if s.state.closedSet[current] {
			continue
		}
		s.stepCount++
		s.current = current
		s.state.closedSet[current] = true

		if current == s.state.goal {
			s.path = s.state.path(current)
			s.found.Set()
			s.done.Set()
			return s.snapshot(), nil
		}

		s.state.expand(current, s.graph.Neighbors(current))
		return s.snapshot(), nil
	}
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	return StepSnapshot[NodeType]{
		Current:   s.current,
		Open:      s.state.openNodes(),
		Closed:    copyBoolMap(s.state.closedSet),
		CameFrom:  copyCameFrom(s.state.cameFrom),
		Done:      s.done.IsSet(),
		Found:     s.found.IsSet(),
		Path:      append([]NodeType(nil), s.path...),
		StepIndex: s.stepCount,
	}
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
