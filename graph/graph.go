// Package graph provides a directed or undirected adjacency structure keyed
// by dense integer node indices.
package graph

import (
	"github.com/go-gl/mathgl/mgl64"
)

// InvalidIndex marks an unset node index.
const InvalidIndex = -1

// Node is a vertex of the graph. Position is optional and only used by
// spatial heuristics.
type Node struct {
	Index    int        `json:"index"`
	Position mgl64.Vec3 `json:"position"`
}

// Edge represents a connection between two nodes with a cost
type Edge struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Cost float64 `json:"cost"`
}

// Graph represents a graph for pathfinding.
//
// Nodes and adjacency lists live in slices indexed by node index, so indices
// should be allocated densely from zero. In an undirected graph every edge is
// stored twice, once per direction.
type Graph struct {
	Digraph bool

	nodes   []Node
	present []bool
	edges   [][]Edge
	count   int
}

// New returns an empty undirected graph.
func New() *Graph {
	return &Graph{}
}

// NewDigraph returns an empty directed graph.
func NewDigraph() *Graph {
	return &Graph{Digraph: true}
}

func (g *Graph) grow(index int) {
	for len(g.nodes) <= index {
		g.nodes = append(g.nodes, Node{Index: len(g.nodes)})
		g.present = append(g.present, false)
		g.edges = append(g.edges, nil)
	}
}

// AddNode inserts node, replacing any node stored under the same index.
// Negative indices are ignored.
func (g *Graph) AddNode(node Node) *Graph {
	if node.Index < 0 {
		return g
	}
	g.grow(node.Index)
	if !g.present[node.Index] {
		g.count++
	}
	g.nodes[node.Index] = node
	g.present[node.Index] = true
	return g
}

// AddEdge appends edge to the adjacency list of edge.From. In an undirected
// graph the mirrored edge is appended to edge.To as well. Edges touching a
// node that was never added are ignored.
func (g *Graph) AddEdge(edge Edge) *Graph {
	if !g.HasNode(edge.From) || !g.HasNode(edge.To) {
		return g
	}
	g.edges[edge.From] = append(g.edges[edge.From], edge)

	if !g.Digraph {
		g.edges[edge.To] = append(g.edges[edge.To], Edge{From: edge.To, To: edge.From, Cost: edge.Cost})
	}
	return g
}

// Node returns the node stored under index.
func (g *Graph) Node(index int) (Node, bool) {
	if !g.HasNode(index) {
		return Node{}, false
	}
	return g.nodes[index], true
}

// Edge returns the first edge from -> to.
func (g *Graph) Edge(from, to int) (Edge, bool) {
	if from < 0 || from >= len(g.edges) {
		return Edge{}, false
	}
	for _, e := range g.edges[from] {
		if e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// Nodes appends every node to dst in index order and returns the result.
func (g *Graph) Nodes(dst []Node) []Node {
	for i, ok := range g.present {
		if ok {
			dst = append(dst, g.nodes[i])
		}
	}
	return dst
}

// EdgesOf appends the outgoing edges of index to dst and returns the result.
func (g *Graph) EdgesOf(index int, dst []Edge) []Edge {
	if index < 0 || index >= len(g.edges) {
		return dst
	}
	return append(dst, g.edges[index]...)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return g.count
}

// EdgeCount returns the number of stored edges. Undirected relations count
// twice.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, list := range g.edges {
		n += len(list)
	}
	return n
}

// RemoveNode deletes the node and every edge that touches it.
//
// For digraphs this scans all adjacency lists, which is O(V·E); it is meant
// for offline graph maintenance only.
func (g *Graph) RemoveNode(index int) *Graph {
	if !g.HasNode(index) {
		return g
	}

	if g.Digraph {
		for from := range g.edges {
			if from == index {
				continue
			}
			g.edges[from] = dropEdgesTo(g.edges[from], index)
		}
	} else {
		for _, e := range g.edges[index] {
			if e.To != index {
				g.edges[e.To] = dropEdgesTo(g.edges[e.To], index)
			}
		}
	}

	g.edges[index] = nil
	g.nodes[index] = Node{Index: index}
	g.present[index] = false
	g.count--
	return g
}

// RemoveEdge deletes from -> to; for undirected graphs to -> from as well.
func (g *Graph) RemoveEdge(from, to int) *Graph {
	if from < 0 || from >= len(g.edges) {
		return g
	}
	g.edges[from] = dropEdgesTo(g.edges[from], to)
	if !g.Digraph && to >= 0 && to < len(g.edges) {
		g.edges[to] = dropEdgesTo(g.edges[to], from)
	}
	return g
}

// HasNode reports whether a node is stored under index.
func (g *Graph) HasNode(index int) bool {
	return index >= 0 && index < len(g.present) && g.present[index]
}

// HasEdge reports whether an edge from -> to exists.
func (g *Graph) HasEdge(from, to int) bool {
	_, ok := g.Edge(from, to)
	return ok
}

// Clear removes all nodes and edges. The Digraph flag is kept.
func (g *Graph) Clear() *Graph {
	g.nodes = nil
	g.present = nil
	g.edges = nil
	g.count = 0
	return g
}

// Lines returns each stored relation as a point pair for visualization.
// Mirrored edges of an undirected graph are reported once.
func (g *Graph) Lines() [][2]mgl64.Vec3 {
	lines := make([][2]mgl64.Vec3, 0)
	for from, list := range g.edges {
		for _, e := range list {
			if !g.Digraph && e.To < from {
				continue
			}
			a, okA := g.Node(e.From)
			b, okB := g.Node(e.To)
			if okA && okB {
				lines = append(lines, [2]mgl64.Vec3{a.Position, b.Position})
			}
		}
	}
	return lines
}

func dropEdgesTo(list []Edge, to int) []Edge {
	out := list[:0]
	for _, e := range list {
		if e.To != to {
			out = append(out, e)
		}
	}
	return out
}
