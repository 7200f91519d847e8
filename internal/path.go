package internal

// ReconstructPath walks predecessor links from goal back to start and
// returns the nodes in start to goal order. The walk stops early at a node
// without a predecessor.
func ReconstructPath[NodeType comparable](
	predecessor func(NodeType) (NodeType, bool),
	goal NodeType,
	start NodeType,
) []NodeType {
	length := 1
	for node := goal; node != start; length++ {
		previous, ok := predecessor(node)
		if !ok {
			break
		}
		node = previous
	}

	path := make([]NodeType, length)
	node := goal
	for i := length - 1; i >= 0; i-- {
		path[i] = node
		node, _ = predecessor(node)
	}
	return path
}

// PathCost sums the cost of every step of path.
func PathCost[NodeType comparable](path []NodeType, stepCost func(from, to NodeType) float64) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += stepCost(path[i-1], path[i])
	}
	return total
}
