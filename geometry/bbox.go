package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BBox represents an axis-aligned bounding box
type BBox struct {
	Min, Max mgl64.Vec3
}

// EmptyBBox returns a box that contains nothing; extending it with a point
// yields that point's box.
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// BoundsOf calculates the bounding box of a set of points.
func BoundsOf(points []mgl64.Vec3) BBox {
	b := EmptyBBox()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box holds no point.
func (b BBox) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the box to include p.
func (b BBox) Extend(p mgl64.Vec3) BBox {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Expand pads the box by margin on every side.
func (b BBox) Expand(margin float64) BBox {
	m := mgl64.Vec3{margin, margin, margin}
	return BBox{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Size returns the extent of the box along each axis.
func (b BBox) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p lies inside or on the box.
func (b BBox) ContainsPoint(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(o BBox) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}
