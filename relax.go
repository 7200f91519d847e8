package astar

import "github.com/pdrpinto/gridastar/internal"

// relaxProposal is a candidate improvement of the best known path to ToNode.
type relaxProposal[NodeType comparable] struct {
	FromNode NodeType
	ToNode   NodeType
	GScore   float64
	FCost    float64
}

func propose[NodeType comparable](
	fromNode NodeType,
	neighbor Neighbor[NodeType],
	currentGScore float64,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
) relaxProposal[NodeType] {
	tentativeG := currentGScore + neighbor.Cost
	return relaxProposal[NodeType]{
		FromNode: fromNode,
		ToNode:   neighbor.ID,
		GScore:   tentativeG,
		FCost:    tentativeG + heuristic(neighbor.ID, goalNode),
	}
}

// searchState is the bookkeeping of a single search. It is never shared
// between searches.
type searchState[NodeType comparable] struct {
	start     NodeType
	goal      NodeType
	heuristic Heuristic[NodeType]

	openSet   *PriorityQueue[NodeType, float64]
	closedSet map[NodeType]bool
	cameFrom  map[NodeType]NodeType
	gScore    map[NodeType]float64
	fScore    map[NodeType]float64
}

func newSearchState[NodeType comparable](start, goal NodeType, heuristic Heuristic[NodeType]) *searchState[NodeType] {
	s := &searchState[NodeType]{
		start:     start,
		goal:      goal,
		heuristic: heuristic,
		openSet:   NewPriorityQueue[NodeType, float64](),
		closedSet: make(map[NodeType]bool),
		cameFrom:  make(map[NodeType]NodeType),
		gScore:    map[NodeType]float64{start: 0},
		fScore:    map[NodeType]float64{start: heuristic(start, goal)},
	}
	s.openSet.Enqueue(start, s.fScore[start])
	return s
}

// expand relaxes every neighbor of current that is not closed yet.
func (s *searchState[NodeType]) expand(current NodeType, neighbors []Neighbor[NodeType]) {
	currentG := s.gScore[current]
	for _, neighbor := range neighbors {
		if s.closedSet[neighbor.ID] {
			continue
		}
		s.relax(propose(current, neighbor, currentG, s.goal, s.heuristic))
	}
}

// relax records p if it improves the known cost of p.ToNode. A node that is
// already queued gets its priority lowered instead of a second entry.
func (s *searchState[NodeType]) relax(p relaxProposal[NodeType]) bool {
	if gPrev, ok := s.gScore[p.ToNode]; ok && p.GScore >= gPrev {
		return false
	}
	s.cameFrom[p.ToNode] = p.FromNode
	s.gScore[p.ToNode] = p.GScore
	s.fScore[p.ToNode] = p.FCost
	if !s.openSet.Contains(p.ToNode) {
		s.openSet.Enqueue(p.ToNode, p.FCost)
	} else {
		s.openSet.Update(p.ToNode, p.FCost)
	}
	return true
}

func (s *searchState[NodeType]) predecessor(node NodeType) (NodeType, bool) {
	previous, ok := s.cameFrom[node]
	return previous, ok
}

// path rebuilds the best known path from the start to node.
func (s *searchState[NodeType]) path(node NodeType) []NodeType {
	return internal.ReconstructPath(s.predecessor, node, s.start)
}

func (s *searchState[NodeType]) openNodes() map[NodeType]bool {
	items := s.openSet.items()
	m := make(map[NodeType]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}
