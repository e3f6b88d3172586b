package search

import (
	"navmesh-planner/graph"
)

// Dijkstra finds the cheapest path between two nodes ordered purely by
// accumulated cost.
type Dijkstra struct {
	Graph  *graph.Graph
	Source int
	Target int
	Found  bool

	cost     map[int]float64
	frontier map[int]graph.Edge
	tree     map[int]graph.Edge
	visited  map[int]struct{}
	order    []graph.Edge
}

// NewDijkstra creates a Dijkstra search.
func NewDijkstra(g *graph.Graph, source, target int) *Dijkstra {
	d := &Dijkstra{Graph: g, Source: source, Target: target}
	d.Clear()
	return d
}

// Search runs the algorithm. With Target set to graph.InvalidIndex the whole
// reachable component is settled, which is how cost tables are built.
func (d *Dijkstra) Search() bool {
	d.Clear()
	if d.Graph == nil || !d.Graph.HasNode(d.Source) {
		return false
	}

	queue := newFrontierQueue()
	d.cost[d.Source] = 0
	queue.push(d.Source, 0)

	var outgoing []graph.Edge
	for {
		current, ok := queue.pop()
		if !ok {
			break
		}
		if _, seen := d.visited[current.index]; seen {
			continue
		}
		d.visited[current.index] = struct{}{}

		if edge, ok := d.frontier[current.index]; ok {
			d.tree[current.index] = edge
			d.order = append(d.order, edge)
		}

		if current.index == d.Target {
			d.Found = true
			return true
		}

		outgoing = d.Graph.EdgesOf(current.index, outgoing[:0])
		for _, edge := range outgoing {
			if _, seen := d.visited[edge.To]; seen {
				continue
			}
			g := d.cost[current.index] + edge.Cost
			known, queued := d.cost[edge.To]
			if !queued || g < known {
				d.cost[edge.To] = g
				d.frontier[edge.To] = edge
				queue.push(edge.To, g)
			}
		}
	}

	return false
}

// Path returns the node indices from Source to Target.
func (d *Dijkstra) Path() []int {
	if !d.Found || d.Target == graph.InvalidIndex {
		return nil
	}
	return walkBack(d.Source, d.Target, func(i int) (int, bool) {
		e, ok := d.tree[i]
		return e.From, ok
	}, len(d.tree))
}

// SearchTree returns the shortest-path tree edges in settle order.
func (d *Dijkstra) SearchTree() []graph.Edge {
	return append([]graph.Edge(nil), d.order...)
}

// Cost returns the accumulated cost of the found path.
func (d *Dijkstra) Cost() (float64, bool) {
	if !d.Found {
		return 0, false
	}
	return d.cost[d.Target], true
}

// CostTo returns the settled cost of any node reached by the last Search.
func (d *Dijkstra) CostTo(index int) (float64, bool) {
	if _, ok := d.visited[index]; !ok {
		return 0, false
	}
	return d.cost[index], true
}

// Clear resets all search state.
func (d *Dijkstra) Clear() {
	d.Found = false
	d.cost = make(map[int]float64)
	d.frontier = make(map[int]graph.Edge)
	d.tree = make(map[int]graph.Edge)
	d.visited = make(map[int]struct{})
	d.order = nil
}
