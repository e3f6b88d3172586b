package search

import (
	"navmesh-planner/graph"
)

// AStar finds the cheapest path between two nodes, ordering the frontier by
// F = G + H where G is the accumulated edge cost and H the heuristic
// estimate to the target.
type AStar struct {
	Graph     *graph.Graph
	Source    int
	Target    int
	Heuristic Heuristic
	Found     bool

	cost     map[int]float64    // G per node
	frontier map[int]graph.Edge // best edge found so far into each node
	tree     map[int]graph.Edge // shortest-path tree
	settled  map[int]struct{}
	order    []graph.Edge
}

// NewAStar creates an A* search using the Euclidean heuristic.
func NewAStar(g *graph.Graph, source, target int) *AStar {
	a := &AStar{Graph: g, Source: source, Target: target, Heuristic: Euclidean}
	a.Clear()
	return a
}

// Search computes the shortest path using A*.
//
// Stale queue entries are skipped when popped (lazy deletion): once a node
// is in the shortest-path tree every later entry for it is discarded.
func (a *AStar) Search() bool {
	a.Clear()
	if a.Graph == nil || !a.Graph.HasNode(a.Source) {
		return false
	}

	openSet := newFrontierQueue()
	a.cost[a.Source] = 0
	openSet.push(a.Source, 0)

	var outgoing []graph.Edge
	for {
		current, ok := openSet.pop()
		if !ok {
			break
		}
		if _, done := a.settled[current.index]; done {
			continue
		}
		a.settled[current.index] = struct{}{}

		if edge, ok := a.frontier[current.index]; ok {
			a.tree[current.index] = edge
			a.order = append(a.order, edge)
		}

		// Check if we reached the goal
		if current.index == a.Target {
			a.Found = true
			return true
		}

		// Explore neighbors
		outgoing = a.Graph.EdgesOf(current.index, outgoing[:0])
		for _, edge := range outgoing {
			tentativeG := a.cost[current.index] + edge.Cost
			h := a.Heuristic.Estimate(a.Graph, edge.To, a.Target)

			known, queued := a.cost[edge.To]
			if !queued || tentativeG < known {
				a.cost[edge.To] = tentativeG
				a.frontier[edge.To] = edge
				openSet.push(edge.To, tentativeG+h)
			}
		}
	}

	return false
}

// Path returns the node indices from Source to Target.
func (a *AStar) Path() []int {
	if !a.Found || a.Target == graph.InvalidIndex {
		return nil
	}
	return walkBack(a.Source, a.Target, func(i int) (int, bool) {
		e, ok := a.tree[i]
		return e.From, ok
	}, len(a.tree))
}

// SearchTree returns the shortest-path tree edges in settle order.
func (a *AStar) SearchTree() []graph.Edge {
	return append([]graph.Edge(nil), a.order...)
}

// Cost returns the accumulated cost of the found path.
func (a *AStar) Cost() (float64, bool) {
	if !a.Found {
		return 0, false
	}
	return a.cost[a.Target], true
}

// Clear resets all search state.
func (a *AStar) Clear() {
	a.Found = false
	a.cost = make(map[int]float64)
	a.frontier = make(map[int]graph.Edge)
	a.tree = make(map[int]graph.Edge)
	a.settled = make(map[int]struct{})
	a.order = nil
}
