package navmesh

import (
	"fmt"
	"math"

	"navmesh-planner/graph"
	"navmesh-planner/search"
)

// CostTable holds the shortest region-graph path cost between every pair of
// regions. Unreachable pairs hold +Inf.
type CostTable struct {
	size  int
	costs []float64
}

// NewCostTable runs Dijkstra from every region of m.
func NewCostTable(m *NavMesh) *CostTable {
	return newCostTable(m.Graph(), m.RegionCount())
}

func newCostTable(g *graph.Graph, size int) *CostTable {
	t := &CostTable{size: size, costs: make([]float64, size*size)}
	for from := 0; from < size; from++ {
		d := search.NewDijkstra(g, from, graph.InvalidIndex)
		d.Search()
		for to := 0; to < size; to++ {
			c, ok := d.CostTo(to)
			if !ok {
				c = math.Inf(1)
			}
			t.costs[from*size+to] = c
		}
	}
	return t
}

// Size returns the number of regions covered.
func (t *CostTable) Size() int {
	return t.size
}

// Cost returns the path cost between two regions.
func (t *CostTable) Cost(from, to int) (float64, error) {
	if from < 0 || from >= t.size || to < 0 || to >= t.size {
		return 0, fmt.Errorf("cost %d -> %d: %w", from, to, ErrUnknownIndex)
	}
	return t.costs[from*t.size+to], nil
}
