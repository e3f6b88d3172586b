package graph

import "github.com/go-gl/mathgl/mgl64"

// GridLayout builds an undirected square grid on the XZ plane, centered on
// the origin. size is the side length and segments the number of cells per
// side, so the graph holds (segments+1)² nodes. Orthogonal neighbours are
// connected with their Euclidean distance as cost.
func GridLayout(size float64, segments int) *Graph {
	g := New()
	if segments < 1 {
		return g
	}

	step := size / float64(segments)
	half := size / 2
	side := segments + 1

	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			g.AddNode(Node{
				Index:    z*side + x,
				Position: mgl64.Vec3{float64(x)*step - half, 0, float64(z)*step - half},
			})
		}
	}

	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			index := z*side + x
			if x+1 < side {
				g.AddEdge(Edge{From: index, To: index + 1, Cost: step})
			}
			if z+1 < side {
				g.AddEdge(Edge{From: index, To: index + side, Cost: step})
			}
		}
	}
	return g
}
