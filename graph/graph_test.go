package graph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodes(g *Graph, n int) {
	for i := 0; i < n; i++ {
		g.AddNode(Node{Index: i, Position: mgl64.Vec3{float64(i), 0, 0}})
	}
}

func TestAddEdgeUndirectedMirrors(t *testing.T) {
	g := New()
	nodes(g, 3)

	before := g.EdgeCount()
	g.AddEdge(Edge{From: 0, To: 1, Cost: 2.5})

	assert.Equal(t, before+2, g.EdgeCount())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 0))

	e, ok := g.Edge(1, 0)
	require.True(t, ok)
	assert.Equal(t, Edge{From: 1, To: 0, Cost: 2.5}, e)

	g.RemoveEdge(0, 1)
	assert.Equal(t, before, g.EdgeCount())
	assert.False(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(1, 0))
}

func TestUndirectedPropertyAllPairs(t *testing.T) {
	for u := 0; u < 4; u++ {
		for v := 0; v < 4; v++ {
			g := New()
			nodes(g, 4)
			g.AddEdge(Edge{From: 1, To: 2, Cost: 1})
			nodesBefore, edgesBefore := g.NodeCount(), g.EdgeCount()

			g.AddEdge(Edge{From: u, To: v, Cost: 3})
			require.Equal(t, edgesBefore+2, g.EdgeCount(), "u=%d v=%d", u, v)
			e1, ok1 := g.Edge(u, v)
			e2, ok2 := g.Edge(v, u)
			require.True(t, ok1)
			require.True(t, ok2)
			if !(u == 1 && v == 2) && !(u == 2 && v == 1) {
				assert.Equal(t, 3.0, e1.Cost)
				assert.Equal(t, 3.0, e2.Cost)
			}

			g.RemoveEdge(u, v)
			if u == v || (u == 1 && v == 2) || (u == 2 && v == 1) {
				// removal drops every parallel entry between the pair
				continue
			}
			assert.Equal(t, edgesBefore, g.EdgeCount())
			assert.Equal(t, nodesBefore, g.NodeCount())
		}
	}
}

func TestDigraphDoesNotMirror(t *testing.T) {
	g := NewDigraph()
	nodes(g, 2)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})

	assert.Equal(t, 1, g.EdgeCount())
	assert.True(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(1, 0))
}

func TestAddEdgeNeedsBothNodes(t *testing.T) {
	g := New()
	nodes(g, 2)

	g.AddEdge(Edge{From: 0, To: 5, Cost: 1})
	g.AddEdge(Edge{From: 5, To: 0, Cost: 1})
	g.AddEdge(Edge{From: -1, To: 0, Cost: 1})

	assert.False(t, g.HasEdge(0, 5))
	assert.False(t, g.HasEdge(5, 0))
	assert.False(t, g.HasNode(5))
	assert.Zero(t, g.EdgeCount())
	assert.Empty(t, g.EdgesOf(0, nil))

	g.RemoveNode(1)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})
	assert.Zero(t, g.EdgeCount())
}

func TestRemoveNodeUndirected(t *testing.T) {
	g := New()
	nodes(g, 4)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})
	g.AddEdge(Edge{From: 1, To: 2, Cost: 1})
	g.AddEdge(Edge{From: 2, To: 3, Cost: 1})

	g.RemoveNode(1)

	assert.Equal(t, 3, g.NodeCount())
	assert.False(t, g.HasNode(1))
	assert.False(t, g.HasEdge(0, 1))
	assert.False(t, g.HasEdge(2, 1))
	assert.True(t, g.HasEdge(2, 3))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestRemoveNodeDigraph(t *testing.T) {
	g := NewDigraph()
	nodes(g, 3)
	g.AddEdge(Edge{From: 0, To: 2, Cost: 1})
	g.AddEdge(Edge{From: 1, To: 2, Cost: 1})
	g.AddEdge(Edge{From: 2, To: 0, Cost: 1})

	g.RemoveNode(2)

	assert.Equal(t, 0, g.EdgeCount())
	assert.Equal(t, 2, g.NodeCount())
}

func TestAbsentQueries(t *testing.T) {
	g := New()

	_, ok := g.Node(7)
	assert.False(t, ok)
	_, ok = g.Edge(7, 8)
	assert.False(t, ok)
	_, ok = g.Node(-1)
	assert.False(t, ok)
	assert.Empty(t, g.EdgesOf(7, nil))
	assert.False(t, g.HasEdge(-3, 0))

	g.RemoveNode(5)
	g.RemoveEdge(5, 6)
	assert.Equal(t, 0, g.NodeCount())
}

func TestBulkExport(t *testing.T) {
	g := New()
	nodes(g, 3)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})
	g.AddEdge(Edge{From: 0, To: 2, Cost: 1})

	buf := make([]Node, 0, 8)
	buf = g.Nodes(buf)
	require.Len(t, buf, 3)
	assert.Equal(t, 2, buf[2].Index)

	edges := g.EdgesOf(0, nil)
	assert.Len(t, edges, 2)

	// caller-supplied prefix is preserved
	edges = g.EdgesOf(1, []Edge{{From: 9, To: 9}})
	assert.Len(t, edges, 2)
}

func TestClear(t *testing.T) {
	g := NewDigraph()
	nodes(g, 3)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})
	g.Clear()

	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.True(t, g.Digraph)
}

func TestLines(t *testing.T) {
	g := New()
	nodes(g, 3)
	g.AddEdge(Edge{From: 0, To: 1, Cost: 1})
	g.AddEdge(Edge{From: 1, To: 2, Cost: 1})

	assert.Len(t, g.Lines(), 2)
}

func TestGridLayout(t *testing.T) {
	g := GridLayout(10, 2)

	assert.Equal(t, 9, g.NodeCount())
	// 12 undirected relations
	assert.Equal(t, 24, g.EdgeCount())

	n, ok := g.Node(0)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{-5, 0, -5}, n.Position)

	e, ok := g.Edge(4, 5)
	require.True(t, ok)
	assert.Equal(t, 5.0, e.Cost)

	assert.Equal(t, 0, GridLayout(10, 0).NodeCount())
}
