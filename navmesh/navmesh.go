// Package navmesh builds a navigation mesh of convex regions from polygons
// and answers containment, path and movement queries against it.
//
// The mesh is built once with FromPolygons and queried repeatedly. A built
// mesh that is no longer modified may be queried from several goroutines;
// building, clearing and UpdateSpatialIndex need exclusive access.
package navmesh

import (
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
	"navmesh-planner/graph"
	"navmesh-planner/search"
)

// Default tolerances.
const (
	DefaultEpsilonCoplanarTest = 1e-3
	DefaultEpsilonContainsTest = 1.0
	DefaultEpsilonPointEqual   = 1e-9
)

// NavMesh owns the half-edge arena, the active regions and the region graph.
type NavMesh struct {
	// EpsilonCoplanarTest bounds the plane distance of vertices of a merged
	// region.
	EpsilonCoplanarTest float64
	// EpsilonContainsTest bounds the plane distance of a point that counts as
	// inside a region.
	EpsilonContainsTest float64
	// EpsilonPointEqual is the per-axis tolerance used when matching shared
	// edges and shared vertices.
	EpsilonPointEqual float64
	// MergeConvexRegions enables the greedy merge of adjacent polygons.
	MergeConvexRegions bool
	// Heuristic is used by FindPath.
	Heuristic search.Heuristic
	// SpatialIndex, when set, narrows RegionForPoint to the candidates it
	// returns. Populate it with UpdateSpatialIndex.
	SpatialIndex SpatialIndex

	edges    []HalfEdge
	regions  []*Region
	vertices []mgl64.Vec3 // node index -> shared vertex position
	graph    *graph.Graph
}

// New returns an empty mesh with default tolerances.
func New() *NavMesh {
	return &NavMesh{
		EpsilonCoplanarTest: DefaultEpsilonCoplanarTest,
		EpsilonContainsTest: DefaultEpsilonContainsTest,
		EpsilonPointEqual:   DefaultEpsilonPointEqual,
		MergeConvexRegions:  true,
		Heuristic:           search.Euclidean,
		graph:               graph.NewDigraph(),
	}
}

// mergeCandidate is a twinned edge pair, keyed by squared length.
type mergeCandidate struct {
	edge int
	cost float64
}

// FromPolygons replaces the mesh with one built from polygons.
//
// Each polygon must be convex, planar and wound with an upward normal.
// Polygons with fewer than three vertices or no supporting plane are
// skipped. Degenerate input yields a degenerate mesh, never an error.
//
// Twin matching is a brute-force O(n²) pass over all half-edges; this is a
// load-time operation.
func (m *NavMesh) FromPolygons(polygons []geometry.Polygon) *NavMesh {
	m.Clear()

	// 1. arena and initial regions
	for i, poly := range polygons {
		n := len(poly.Vertices)
		plane, ok := poly.Plane()
		if n < 3 || !ok {
			slog.Debug("navmesh: skipping degenerate polygon", "polygon", i, "vertices", n)
			continue
		}

		base := len(m.edges)
		regionIndex := len(m.regions)
		for j, v := range poly.Vertices {
			m.edges = append(m.edges, HalfEdge{
				Vertex:    v,
				Next:      base + (j+1)%n,
				Prev:      base + (j+n-1)%n,
				Twin:      none,
				Region:    regionIndex,
				NodeIndex: none,
			})
		}
		m.regions = append(m.regions, &Region{Index: regionIndex, Edge: base, Plane: plane})
	}

	// 2. twin references
	candidates := m.linkTwins()

	// 3. longest shared boundaries first
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].cost > candidates[j].cost
	})

	// 4. greedy convex merge
	merged := 0
	if m.MergeConvexRegions {
		for _, c := range candidates {
			if m.tryMerge(c.edge) {
				merged++
			}
		}
	}
	m.compact()

	// 5. post-merge centroids and contours
	for _, r := range m.regions {
		r.refresh(m)
	}

	// 6. shared vertex ids
	m.assignNodeIndices()

	// 7. region graph
	m.buildGraph()

	slog.Debug("navmesh built",
		"polygons", len(polygons),
		"regions", len(m.regions),
		"merged", merged,
		"half_edges", len(m.edges),
		"shared_vertices", len(m.vertices),
		"graph_edges", m.graph.EdgeCount(),
	)
	return m
}

// linkTwins pairs every half-edge with the half-edge running the opposite
// way between the same two points.
func (m *NavMesh) linkTwins() []mergeCandidate {
	var candidates []mergeCandidate
	eps := m.EpsilonPointEqual

	for i := range m.edges {
		if m.edges[i].Twin != none {
			continue
		}
		tail, head := m.tail(i), m.head(i)
		for j := i + 1; j < len(m.edges); j++ {
			if m.edges[j].Twin != none {
				continue
			}
			if geometry.PointsEqual(tail, m.head(j), eps) && geometry.PointsEqual(head, m.tail(j), eps) {
				m.edges[i].Twin = j
				m.edges[j].Twin = i
				candidates = append(candidates, mergeCandidate{edge: i, cost: m.segment(i).SquaredLength()})
				break
			}
		}
	}
	return candidates
}

// compact drops merged-away regions and spliced-out half-edges and renumbers
// the survivors densely.
func (m *NavMesh) compact() {
	edgeIndex := make([]int, len(m.edges))
	liveEdges := m.edges[:0:0]
	for i, e := range m.edges {
		if e.Region == none {
			edgeIndex[i] = none
			continue
		}
		edgeIndex[i] = len(liveEdges)
		liveEdges = append(liveEdges, e)
	}

	regionIndex := make([]int, len(m.regions))
	liveRegions := m.regions[:0:0]
	for i, r := range m.regions {
		if r == nil {
			regionIndex[i] = none
			continue
		}
		regionIndex[i] = len(liveRegions)
		r.Index = len(liveRegions)
		r.Edge = edgeIndex[r.Edge]
		liveRegions = append(liveRegions, r)
	}

	remap := func(i int) int {
		if i == none {
			return none
		}
		return edgeIndex[i]
	}
	for i := range liveEdges {
		e := &liveEdges[i]
		e.Next = remap(e.Next)
		e.Prev = remap(e.Prev)
		e.Twin = remap(e.Twin)
		e.Region = regionIndex[e.Region]
	}

	m.edges = liveEdges
	m.regions = liveRegions
}

// assignNodeIndices gives geometrically coincident vertices of shared edges
// one id. An edge and its twin's successor both start at the edge's tail.
func (m *NavMesh) assignNodeIndices() {
	m.vertices = m.vertices[:0]
	for _, r := range m.regions {
		for _, id := range m.loop(r.Edge) {
			e := &m.edges[id]
			if e.Twin == none {
				continue
			}
			origin := m.tail(id)

			index := none
			for v, pos := range m.vertices {
				if geometry.PointsEqual(pos, origin, m.EpsilonPointEqual) {
					index = v
					break
				}
			}
			if index == none {
				index = len(m.vertices)
				m.vertices = append(m.vertices, origin)
			}

			e.NodeIndex = index
			m.edges[m.edges[e.Twin].Next].NodeIndex = index
		}
	}
}

// buildGraph creates one node per region at its centroid and a directed edge
// per shared boundary, weighted by centroid distance.
func (m *NavMesh) buildGraph() {
	g := graph.NewDigraph()
	for _, r := range m.regions {
		g.AddNode(graph.Node{Index: r.Index, Position: r.Centroid})
	}
	for _, r := range m.regions {
		for _, id := range m.loop(r.Edge) {
			e := m.edges[id]
			if e.Twin == none {
				continue
			}
			to := m.edges[e.Twin].Region
			if to == r.Index || g.HasEdge(r.Index, to) {
				continue
			}
			cost := geometry.Distance(r.Centroid, m.regions[to].Centroid)
			g.AddEdge(graph.Edge{From: r.Index, To: to, Cost: cost})
		}
	}
	m.graph = g
}

// Clear drops all regions, half-edges and graph content. An attached spatial
// index stays attached but is emptied.
func (m *NavMesh) Clear() *NavMesh {
	m.edges = nil
	m.regions = nil
	m.vertices = nil
	if m.graph == nil {
		m.graph = graph.NewDigraph()
	}
	m.graph.Clear()
	if m.SpatialIndex != nil {
		m.SpatialIndex.Reset()
	}
	return m
}

// Graph returns the region adjacency graph.
func (m *NavMesh) Graph() *graph.Graph {
	return m.graph
}

// Regions returns the active regions. The slice is shared.
func (m *NavMesh) Regions() []*Region {
	return m.regions
}

// RegionCount returns the number of active regions.
func (m *NavMesh) RegionCount() int {
	return len(m.regions)
}

// Region returns the region with the given node index, or nil.
func (m *NavMesh) Region(index int) *Region {
	if index < 0 || index >= len(m.regions) {
		return nil
	}
	return m.regions[index]
}

// VertexCount returns the number of unified shared-vertex ids.
func (m *NavMesh) VertexCount() int {
	return len(m.vertices)
}

// VertexPosition returns the position behind a shared-vertex id.
func (m *NavMesh) VertexPosition(index int) (mgl64.Vec3, bool) {
	if index < 0 || index >= len(m.vertices) {
		return mgl64.Vec3{}, false
	}
	return m.vertices[index], true
}
