package navmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// Cell is one bucket of a CellSpaceIndex.
type Cell struct {
	Bounds  geometry.BBox
	Entries []*Region
}

// CellSpaceIndex partitions a box into a uniform grid of cells. A region is
// listed in every cell its bounds touch.
type CellSpaceIndex struct {
	Bounds                 geometry.BBox
	CellsX, CellsY, CellsZ int
	Cells                  []Cell
	// Margin pads region bounds vertically before bucketing.
	Margin float64

	cellSize mgl64.Vec3
}

// NewCellSpaceIndex splits bounds into cellsX*cellsY*cellsZ cells. Counts
// below one are raised to one.
func NewCellSpaceIndex(bounds geometry.BBox, cellsX, cellsY, cellsZ int, margin float64) *CellSpaceIndex {
	idx := &CellSpaceIndex{
		Bounds: bounds,
		CellsX: max(cellsX, 1),
		CellsY: max(cellsY, 1),
		CellsZ: max(cellsZ, 1),
		Margin: margin,
	}
	size := bounds.Size()
	idx.cellSize = mgl64.Vec3{
		size.X() / float64(idx.CellsX),
		size.Y() / float64(idx.CellsY),
		size.Z() / float64(idx.CellsZ),
	}

	idx.Cells = make([]Cell, idx.CellsX*idx.CellsY*idx.CellsZ)
	for x := 0; x < idx.CellsX; x++ {
		for y := 0; y < idx.CellsY; y++ {
			for z := 0; z < idx.CellsZ; z++ {
				lo := bounds.Min.Add(mgl64.Vec3{
					float64(x) * idx.cellSize.X(),
					float64(y) * idx.cellSize.Y(),
					float64(z) * idx.cellSize.Z(),
				})
				idx.Cells[idx.cellIndex(x, y, z)].Bounds = geometry.BBox{Min: lo, Max: lo.Add(idx.cellSize)}
			}
		}
	}
	return idx
}

func (idx *CellSpaceIndex) cellIndex(x, y, z int) int {
	return x*idx.CellsY*idx.CellsZ + y*idx.CellsZ + z
}

// axisIndex maps a coordinate onto a cell column, clamping to the grid.
func axisIndex(v, lo, size float64, cells int) int {
	if size <= 0 {
		return 0
	}
	i := int(math.Floor((v - lo) / size))
	return min(max(i, 0), cells-1)
}

// IndexForPosition returns the id of the cell holding point. Points outside
// the partitioned box map to the nearest border cell.
func (idx *CellSpaceIndex) IndexForPosition(point mgl64.Vec3) int {
	x := axisIndex(point.X(), idx.Bounds.Min.X(), idx.cellSize.X(), idx.CellsX)
	y := axisIndex(point.Y(), idx.Bounds.Min.Y(), idx.cellSize.Y(), idx.CellsY)
	z := axisIndex(point.Z(), idx.Bounds.Min.Z(), idx.cellSize.Z(), idx.CellsZ)
	return idx.cellIndex(x, y, z)
}

// Reset empties every cell.
func (idx *CellSpaceIndex) Reset() {
	for i := range idx.Cells {
		idx.Cells[i].Entries = nil
	}
}

// Add lists r in every cell its padded bounds overlap.
func (idx *CellSpaceIndex) Add(r *Region) {
	b := r.Bounds()
	b.Min[1] -= idx.Margin
	b.Max[1] += idx.Margin

	lo := idx.IndexForPosition(b.Min)
	hi := idx.IndexForPosition(b.Max)
	loX, loY, loZ := idx.cellCoords(lo)
	hiX, hiY, hiZ := idx.cellCoords(hi)

	for x := loX; x <= hiX; x++ {
		for y := loY; y <= hiY; y++ {
			for z := loZ; z <= hiZ; z++ {
				cell := &idx.Cells[idx.cellIndex(x, y, z)]
				cell.Entries = append(cell.Entries, r)
			}
		}
	}
}

func (idx *CellSpaceIndex) cellCoords(i int) (x, y, z int) {
	z = i % idx.CellsZ
	y = (i / idx.CellsZ) % idx.CellsY
	x = i / (idx.CellsY * idx.CellsZ)
	return x, y, z
}

// Candidates returns the entries of the cell holding point.
func (idx *CellSpaceIndex) Candidates(point mgl64.Vec3) []*Region {
	return idx.Cells[idx.IndexForPosition(point)].Entries
}
