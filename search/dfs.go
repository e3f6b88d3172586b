package search

import (
	"navmesh-planner/graph"
)

// DFS is an unweighted depth-first search. It finds some path, not
// necessarily the one with the fewest edges.
type DFS struct {
	Graph  *graph.Graph
	Source int
	Target int
	Found  bool

	route   map[int]int
	visited map[int]struct{}
	tree    []graph.Edge
}

// NewDFS creates a depth-first search.
func NewDFS(g *graph.Graph, source, target int) *DFS {
	d := &DFS{Graph: g, Source: source, Target: target}
	d.Clear()
	return d
}

// Search runs the algorithm. A node is expanded the first time it is popped;
// later stack entries for it are dropped.
func (d *DFS) Search() bool {
	d.Clear()
	if d.Graph == nil || !d.Graph.HasNode(d.Source) {
		return false
	}

	stack := []graph.Edge{{From: d.Source, To: d.Source}}
	first := true

	var outgoing []graph.Edge
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := d.visited[next.To]; seen {
			continue
		}
		d.visited[next.To] = struct{}{}
		d.route[next.To] = next.From
		if !first {
			d.tree = append(d.tree, next)
		}
		first = false

		if next.To == d.Target {
			d.Found = true
			return true
		}

		outgoing = d.Graph.EdgesOf(next.To, outgoing[:0])
		for _, edge := range outgoing {
			if _, seen := d.visited[edge.To]; !seen {
				stack = append(stack, edge)
			}
		}
	}

	return false
}

// Path returns the node indices from Source to Target.
func (d *DFS) Path() []int {
	if !d.Found || d.Target == graph.InvalidIndex {
		return nil
	}
	return walkBack(d.Source, d.Target, func(i int) (int, bool) {
		p, ok := d.route[i]
		return p, ok
	}, len(d.route))
}

// SearchTree returns the spanning tree edges in visit order.
func (d *DFS) SearchTree() []graph.Edge {
	return append([]graph.Edge(nil), d.tree...)
}

// Clear resets all search state.
func (d *DFS) Clear() {
	d.Found = false
	d.route = make(map[int]int)
	d.visited = make(map[int]struct{})
	d.tree = nil
}
