package search

import (
	"fmt"
	"strings"

	"navmesh-planner/geometry"
	"navmesh-planner/graph"
)

// Heuristic selects the cost estimate A* uses between a node and the target.
type Heuristic int

const (
	// Euclidean is the straight-line distance between node positions.
	Euclidean Heuristic = iota
	// EuclideanSquared is the squared straight-line distance. It is cheaper
	// but overestimates, so A* may return a non-optimal path.
	EuclideanSquared
	// Manhattan is the sum of per-axis distances.
	Manhattan
	// Zero always estimates 0, which turns A* into Dijkstra.
	Zero
)

var heuristicNames = [...]string{
	Euclidean:        "euclidean",
	EuclideanSquared: "euclidean_squared",
	Manhattan:        "manhattan",
	Zero:             "zero",
}

var heuristicFuncs = [...]func(a, b graph.Node) float64{
	Euclidean: func(a, b graph.Node) float64 {
		return geometry.Distance(a.Position, b.Position)
	},
	EuclideanSquared: func(a, b graph.Node) float64 {
		return geometry.SquaredDistance(a.Position, b.Position)
	},
	Manhattan: func(a, b graph.Node) float64 {
		return geometry.ManhattanDistance(a.Position, b.Position)
	},
	Zero: func(graph.Node, graph.Node) float64 {
		return 0
	},
}

// String returns the configuration name of the heuristic.
func (h Heuristic) String() string {
	if h < 0 || int(h) >= len(heuristicNames) {
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
	return heuristicNames[h]
}

// Estimate returns the heuristic cost from node to target. Missing nodes
// estimate 0.
func (h Heuristic) Estimate(g *graph.Graph, node, target int) float64 {
	if h < 0 || int(h) >= len(heuristicFuncs) {
		return 0
	}
	a, okA := g.Node(node)
	b, okB := g.Node(target)
	if !okA || !okB {
		return 0
	}
	return heuristicFuncs[h](a, b)
}

// ParseHeuristic maps a configuration name onto a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for h, n := range heuristicNames {
		if n == name {
			return Heuristic(h), nil
		}
	}
	return Euclidean, fmt.Errorf("unknown heuristic %q", name)
}
