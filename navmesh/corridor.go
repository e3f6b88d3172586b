package navmesh

import (
	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
)

// Portal is one left/right vertex pair of a corridor.
type Portal struct {
	Left, Right mgl64.Vec3
}

// Corridor collects portals between adjacent regions and pulls the shortest
// polyline through them (the simple stupid funnel algorithm).
type Corridor struct {
	portals []Portal
}

// NewCorridor returns an empty corridor.
func NewCorridor() *Corridor {
	return &Corridor{}
}

// Push appends a portal.
func (c *Corridor) Push(left, right mgl64.Vec3) *Corridor {
	c.portals = append(c.portals, Portal{Left: left, Right: right})
	return c
}

// Len returns the number of portals.
func (c *Corridor) Len() int {
	return len(c.portals)
}

// Portals returns a copy of the pushed portals.
func (c *Corridor) Portals() []Portal {
	return append([]Portal(nil), c.portals...)
}

// Generate returns the path through the corridor. The first portal's left
// vertex starts it and the last portal's left vertex ends it. Apexes lying on
// the straight line between their neighbours are dropped.
func (c *Corridor) Generate() []mgl64.Vec3 {
	if len(c.portals) == 0 {
		return nil
	}

	apex := c.portals[0].Left
	left := c.portals[0].Left
	right := c.portals[0].Right
	apexIndex, leftIndex, rightIndex := 0, 0, 0

	path := []mgl64.Vec3{apex}

	for i := 1; i < len(c.portals); i++ {
		pl := c.portals[i].Left
		pr := c.portals[i].Right

		// right side
		if geometry.Area(apex, right, pr) <= 0 {
			if apex == right || geometry.Area(apex, left, pr) > 0 {
				right = pr
				rightIndex = i
			} else {
				path = append(path, left)
				apex = left
				apexIndex = leftIndex
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}

		// left side
		if geometry.Area(apex, left, pl) >= 0 {
			if apex == left || geometry.Area(apex, right, pl) < 0 {
				left = pl
				leftIndex = i
			} else {
				path = append(path, right)
				apex = right
				apexIndex = rightIndex
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}
	}

	end := c.portals[len(c.portals)-1].Left
	if path[len(path)-1] != end {
		path = append(path, end)
	}

	// portals that pinch to points on a straight line commit their apexes
	return geometry.DouglasPeucker(path, collinearTolerance)
}

// collinearTolerance is the distance under which a committed apex counts as
// lying on the straight line through its neighbours.
const collinearTolerance = 1e-12
