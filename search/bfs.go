package search

import (
	"navmesh-planner/graph"
)

// BFS is an unweighted breadth-first search. Its path has the fewest edges
// of any path between source and target.
type BFS struct {
	Graph  *graph.Graph
	Source int
	Target int
	Found  bool

	route   map[int]int // node -> predecessor
	visited map[int]struct{}
	tree    []graph.Edge
}

// NewBFS creates a breadth-first search.
func NewBFS(g *graph.Graph, source, target int) *BFS {
	b := &BFS{Graph: g, Source: source, Target: target}
	b.Clear()
	return b
}

// Search runs the algorithm. A node's predecessor is fixed the first time it
// is discovered.
func (b *BFS) Search() bool {
	b.Clear()
	if b.Graph == nil || !b.Graph.HasNode(b.Source) {
		return false
	}

	queue := []graph.Edge{{From: b.Source, To: b.Source}}
	b.visited[b.Source] = struct{}{}

	var outgoing []graph.Edge
	for head := 0; head < len(queue); head++ {
		next := queue[head]
		b.route[next.To] = next.From
		if head > 0 {
			b.tree = append(b.tree, next)
		}

		if next.To == b.Target {
			b.Found = true
			return true
		}

		outgoing = b.Graph.EdgesOf(next.To, outgoing[:0])
		for _, edge := range outgoing {
			if _, seen := b.visited[edge.To]; seen {
				continue
			}
			b.visited[edge.To] = struct{}{}
			queue = append(queue, edge)
		}
	}

	return false
}

// Path returns the node indices from Source to Target.
func (b *BFS) Path() []int {
	if !b.Found || b.Target == graph.InvalidIndex {
		return nil
	}
	return walkBack(b.Source, b.Target, func(i int) (int, bool) {
		p, ok := b.route[i]
		return p, ok
	}, len(b.route))
}

// SearchTree returns the spanning tree edges in discovery order.
func (b *BFS) SearchTree() []graph.Edge {
	return append([]graph.Edge(nil), b.tree...)
}

// Clear resets all search state.
func (b *BFS) Clear() {
	b.Found = false
	b.route = make(map[int]int)
	b.visited = make(map[int]struct{})
	b.tree = nil
}
