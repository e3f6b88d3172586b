package geometry

import "github.com/go-gl/mathgl/mgl64"

// SimplifyPolygon reduces polygon complexity using the Douglas-Peucker
// algorithm on the closed contour. Polygons that would drop below three
// vertices are returned unchanged.
//
// Removing a vertex from a shared edge breaks the match with the neighbour's
// copy of that edge, so this is only safe on polygons that share no
// subdivided edges.
func SimplifyPolygon(polygon Polygon, epsilon float64) Polygon {
	n := len(polygon.Vertices)
	if n <= 3 {
		return polygon
	}

	// close the ring so the last edge is considered, then reopen it
	closed := append(append([]mgl64.Vec3(nil), polygon.Vertices...), polygon.Vertices[0])
	simplified := DouglasPeucker(closed, epsilon)
	simplified = simplified[:len(simplified)-1]
	if len(simplified) < 3 {
		return polygon
	}
	return Polygon{Vertices: simplified}
}

// SimplifyPolygons simplifies multiple polygons.
func SimplifyPolygons(polygons []Polygon, epsilon float64) []Polygon {
	simplified := make([]Polygon, len(polygons))
	for i, poly := range polygons {
		simplified[i] = SimplifyPolygon(poly, epsilon)
	}
	return simplified
}

// DouglasPeucker simplifies an open polyline. Interior points closer than
// epsilon to the line through their surviving neighbours are dropped; the
// end points are always kept.
func DouglasPeucker(points []mgl64.Vec3, epsilon float64) []mgl64.Vec3 {
	if len(points) <= 2 {
		return points
	}

	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := DouglasPeucker(points[:index+1], epsilon)
		right := DouglasPeucker(points[index:], epsilon)

		result := make([]mgl64.Vec3, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		return append(result, right...)
	}

	return []mgl64.Vec3{points[0], points[end]}
}

// perpendicularDistance returns the distance from point to the line through
// lineStart and lineEnd. A degenerate line falls back to point distance.
func perpendicularDistance(point, lineStart, lineEnd mgl64.Vec3) float64 {
	s := LineSegment{From: lineStart, To: lineEnd}
	t := s.ClosestPointToPointParameter(point, false)
	return Distance(s.At(t), point)
}
