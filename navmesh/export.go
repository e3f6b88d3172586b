package navmesh

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"navmesh-planner/geometry"
	"navmesh-planner/graph"
)

// RegionSnapshot is the serialized form of one region.
type RegionSnapshot struct {
	Index      int          `json:"index"`
	Centroid   mgl64.Vec3   `json:"centroid"`
	Contour    []mgl64.Vec3 `json:"contour"`
	Neighbours []int        `json:"neighbours"`
}

// Snapshot is a JSON-friendly copy of a built mesh: its regions and the
// region graph.
type Snapshot struct {
	Regions        []RegionSnapshot `json:"regions"`
	Edges          []graph.Edge     `json:"edges"`
	HalfEdges      int              `json:"halfEdges"`
	SharedVertices int              `json:"sharedVertices"`
}

// Export captures the current mesh.
func (m *NavMesh) Export() *Snapshot {
	s := &Snapshot{
		Regions:        make([]RegionSnapshot, 0, len(m.regions)),
		HalfEdges:      len(m.edges),
		SharedVertices: len(m.vertices),
	}

	var edges []graph.Edge
	for _, r := range m.regions {
		edges = m.graph.EdgesOf(r.Index, edges[:0])
		neighbours := make([]int, 0, len(edges))
		for _, e := range edges {
			neighbours = append(neighbours, e.To)
			s.Edges = append(s.Edges, e)
		}
		s.Regions = append(s.Regions, RegionSnapshot{
			Index:      r.Index,
			Centroid:   r.Centroid,
			Contour:    append([]mgl64.Vec3(nil), r.contour...),
			Neighbours: neighbours,
		})
	}
	return s
}

// Polygons returns the region contours, ready for FromPolygons.
func (s *Snapshot) Polygons() []geometry.Polygon {
	polygons := make([]geometry.Polygon, len(s.Regions))
	for i, r := range s.Regions {
		polygons[i] = geometry.NewPolygon(r.Contour...)
	}
	return polygons
}

// Lines returns the region graph edges as centroid pairs for drawing.
func (s *Snapshot) Lines() [][2]mgl64.Vec3 {
	lines := make([][2]mgl64.Vec3, 0, len(s.Edges))
	for _, e := range s.Edges {
		if e.From > e.To || e.To >= len(s.Regions) || e.From < 0 {
			continue
		}
		lines = append(lines, [2]mgl64.Vec3{s.Regions[e.From].Centroid, s.Regions[e.To].Centroid})
	}
	return lines
}

// SaveSnapshot serializes the snapshot to a JSON file.
func SaveSnapshot(s *Snapshot, filename string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal navmesh: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	slog.Info("navmesh saved", "file", filename, "regions", len(s.Regions), "bytes", len(data))
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal navmesh: %w", err)
	}
	for i, r := range s.Regions {
		if r.Index != i {
			return nil, fmt.Errorf("region %d stored at position %d: %w", r.Index, i, ErrUnknownIndex)
		}
	}

	slog.Info("navmesh loaded", "file", filename, "regions", len(s.Regions))
	return &s, nil
}
