package navmesh

import (
	"log/slog"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// SpatialIndex buckets regions by location so RegionForPoint can skip a full
// scan. Candidates may return regions that do not contain the point; it must
// not omit one that does.
type SpatialIndex interface {
	Reset()
	Add(r *Region)
	Candidates(point mgl64.Vec3) []*Region
}

// UpdateSpatialIndex empties the attached index and adds every region. It is
// a no-op without an index.
func (m *NavMesh) UpdateSpatialIndex() *NavMesh {
	if m.SpatialIndex == nil {
		return m
	}
	m.SpatialIndex.Reset()
	for _, r := range m.regions {
		m.SpatialIndex.Add(r)
	}
	slog.Debug("navmesh: spatial index updated", "regions", len(m.regions))
	return m
}

// queryTolerance is the half extent of the box used for point lookups. The
// tree's intersection test is strict, so a point query needs some volume.
const queryTolerance = 1e-9

// regionEntry wraps a region for R-tree storage.
type regionEntry struct {
	region *Region
	bbox   rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *regionEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// RTreeIndex keeps region bounds in a 3-D R-tree.
type RTreeIndex struct {
	// Margin pads region bounds vertically. Keep it at least the mesh's
	// EpsilonContainsTest so points slightly off a flat region still reach
	// it.
	Margin float64

	minChildren, maxChildren int
	tree                     *rtreego.Rtree
}

// NewRTreeIndex creates an empty index. Non-positive children counts fall
// back to 25 and 50.
func NewRTreeIndex(minChildren, maxChildren int, margin float64) *RTreeIndex {
	if minChildren <= 0 {
		minChildren = 25
	}
	if maxChildren <= minChildren {
		maxChildren = 2 * minChildren
	}
	idx := &RTreeIndex{Margin: margin, minChildren: minChildren, maxChildren: maxChildren}
	idx.Reset()
	return idx
}

// Reset drops all entries.
func (idx *RTreeIndex) Reset() {
	idx.tree = rtreego.NewTree(3, idx.minChildren, idx.maxChildren)
}

// Add inserts the padded bounds of r.
func (idx *RTreeIndex) Add(r *Region) {
	bbox, err := regionRect(r.Bounds(), idx.Margin)
	if err != nil {
		slog.Debug("navmesh: region not indexed", "region", r.Index, "err", err)
		return
	}
	idx.tree.Insert(&regionEntry{region: r, bbox: bbox})
}

// Candidates returns the regions whose padded bounds contain point.
func (idx *RTreeIndex) Candidates(point mgl64.Vec3) []*Region {
	query := rtreego.Point{point.X(), point.Y(), point.Z()}.ToRect(queryTolerance)
	results := idx.tree.SearchIntersect(query)

	regions := make([]*Region, 0, len(results))
	for _, item := range results {
		regions = append(regions, item.(*regionEntry).region)
	}
	return regions
}

// Size returns the number of indexed regions.
func (idx *RTreeIndex) Size() int {
	return idx.tree.Size()
}

// regionRect converts a region's bounding box into an R-tree rectangle,
// padding Y by margin and every axis by the query tolerance.
func regionRect(b geometry.BBox, margin float64) (rtreego.Rect, error) {
	b = b.Expand(queryTolerance)
	b.Min[1] -= margin
	b.Max[1] += margin
	return rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.X(), b.Min.Y(), b.Min.Z()},
		rtreego.Point{b.Max.X(), b.Max.Y(), b.Max.Z()},
	)
}
