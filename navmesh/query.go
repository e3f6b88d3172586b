package navmesh

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
	"navmesh-planner/search"
)

// ClosestRegion returns the region whose centroid is nearest to point, or
// nil for an empty mesh.
func (m *NavMesh) ClosestRegion(point mgl64.Vec3) *Region {
	var closest *Region
	best := math.Inf(1)
	for _, r := range m.regions {
		d := geometry.SquaredDistance(point, r.Centroid)
		if d < best {
			best = d
			closest = r
		}
	}
	return closest
}

// RandomRegion returns a uniformly chosen region, or nil for an empty mesh.
func (m *NavMesh) RandomRegion() *Region {
	if len(m.regions) == 0 {
		return nil
	}
	return m.regions[rand.IntN(len(m.regions))]
}

// RegionForPoint returns the first region containing point, or nil. With a
// spatial index attached only its candidates are tested.
func (m *NavMesh) RegionForPoint(point mgl64.Vec3, epsilon float64) *Region {
	regions := m.regions
	if m.SpatialIndex != nil {
		regions = m.SpatialIndex.Candidates(point)
	}
	for _, r := range regions {
		if r.Contains(point, epsilon) {
			return r
		}
	}
	return nil
}

// resolveRegion finds the region holding point, falling back to the closest
// one by centroid distance.
func (m *NavMesh) resolveRegion(point mgl64.Vec3) *Region {
	if r := m.RegionForPoint(point, m.EpsilonContainsTest); r != nil {
		return r
	}
	return m.ClosestRegion(point)
}

// FindPath returns a smoothed path from one point to another. Points off the
// mesh are routed from or to their closest region. The result is empty when
// the regions are not connected or the mesh is empty.
func (m *NavMesh) FindPath(from, to mgl64.Vec3) []mgl64.Vec3 {
	fromRegion := m.resolveRegion(from)
	toRegion := m.resolveRegion(to)
	if fromRegion == nil || toRegion == nil {
		return nil
	}

	if fromRegion == toRegion {
		return []mgl64.Vec3{from, to}
	}

	regions, ok := m.RegionPath(fromRegion, toRegion)
	if !ok {
		return nil
	}

	corridor := NewCorridor()
	corridor.Push(from, from)
	for i := 0; i+1 < len(regions); i++ {
		left, right, ok := m.PortalEdge(regions[i], regions[i+1])
		if !ok {
			return nil
		}
		corridor.Push(left, right)
	}
	corridor.Push(to, to)

	return corridor.Generate()
}

// RegionPath runs A* over the region graph and returns the regions visited.
func (m *NavMesh) RegionPath(from, to *Region) ([]*Region, bool) {
	astar := search.NewAStar(m.graph, from.Index, to.Index)
	astar.Heuristic = m.Heuristic
	if !astar.Search() {
		return nil, false
	}

	path := astar.Path()
	regions := make([]*Region, len(path))
	for i, index := range path {
		regions[i] = m.regions[index]
	}
	return regions, true
}

// PortalEdge returns the shared boundary between two adjacent regions as
// seen when walking from a into b. Left is the tail of a's boundary edge and
// right its head.
func (m *NavMesh) PortalEdge(a, b *Region) (left, right mgl64.Vec3, ok bool) {
	for _, id := range m.loop(a.Edge) {
		e := m.edges[id]
		if e.Twin != none && m.edges[e.Twin].Region == b.Index {
			return m.tail(id), e.Vertex, true
		}
	}
	return mgl64.Vec3{}, mgl64.Vec3{}, false
}
