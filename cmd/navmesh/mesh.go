package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"navmesh-planner/geometry"
	"navmesh-planner/internal/config"
	"navmesh-planner/navmesh"
	"navmesh-planner/search"
)

// loadPolygons reads the configured source: a directory of .geojson files,
// a single .geojson file, or a snapshot written by "inspect --save".
func loadPolygons(cfg config.MeshConfig) ([]geometry.Polygon, error) {
	info, err := os.Stat(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("mesh source: %w", err)
	}

	var polygons []geometry.Polygon
	switch {
	case info.IsDir():
		polygons, err = navmesh.LoadGeoJSONDir(cfg.Source, cfg.ElevationKey)
	case strings.EqualFold(filepath.Ext(cfg.Source), ".json"):
		var s *navmesh.Snapshot
		s, err = navmesh.LoadSnapshot(cfg.Source)
		if err == nil {
			polygons = s.Polygons()
		}
	default:
		polygons, err = navmesh.LoadGeoJSONFile(cfg.Source, cfg.ElevationKey)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SimplifyEpsilon > 0 {
		polygons = geometry.SimplifyPolygons(polygons, cfg.SimplifyEpsilon)
	}
	return polygons, nil
}

// newMesh returns an empty mesh tuned and indexed per cfg.
func newMesh(cfg config.Planner) (*navmesh.NavMesh, error) {
	h, err := search.ParseHeuristic(cfg.Search.Heuristic)
	if err != nil {
		return nil, err
	}

	m := navmesh.New()
	m.EpsilonCoplanarTest = cfg.Mesh.EpsilonCoplanarTest
	m.EpsilonContainsTest = cfg.Mesh.EpsilonContainsTest
	m.EpsilonPointEqual = cfg.Mesh.EpsilonPointEqual
	m.MergeConvexRegions = cfg.Mesh.MergeConvexRegions
	m.Heuristic = h
	return m, nil
}

// buildMesh builds m from polygons and fills its spatial index. The cell
// grid is sized from the polygons' bounds, so the index is attached here
// rather than in newMesh.
func buildMesh(m *navmesh.NavMesh, cfg config.SpatialIndexConfig, polygons []geometry.Polygon) {
	start := time.Now()
	m.FromPolygons(polygons)
	meshBuildDuration.Observe(time.Since(start).Seconds())
	meshRegions.Set(float64(m.RegionCount()))

	switch strings.ToLower(cfg.Kind) {
	case config.IndexRTree:
		m.SpatialIndex = navmesh.NewRTreeIndex(cfg.MinChildren, cfg.MaxChildren, m.EpsilonContainsTest)
	case config.IndexCells:
		bounds := geometry.EmptyBBox()
		for _, r := range m.Regions() {
			b := r.Bounds()
			bounds = bounds.Extend(b.Min).Extend(b.Max)
		}
		if bounds.IsEmpty() {
			bounds = geometry.BBox{}
		}
		m.SpatialIndex = navmesh.NewCellSpaceIndex(bounds.Expand(m.EpsilonContainsTest),
			cfg.CellsX, cfg.CellsY, cfg.CellsZ, m.EpsilonContainsTest)
	default:
		m.SpatialIndex = nil
	}
	m.UpdateSpatialIndex()

	slog.Info("navmesh ready",
		"polygons", len(polygons),
		"regions", m.RegionCount(),
		"graph_edges", m.Graph().EdgeCount(),
		"index", cfg.Kind,
		"took", time.Since(start),
	)
}

// loadMesh loads the configured source and builds a mesh from it.
func loadMesh(cfg config.Planner) (*navmesh.NavMesh, error) {
	polygons, err := loadPolygons(cfg.Mesh)
	if err != nil {
		return nil, err
	}
	m, err := newMesh(cfg)
	if err != nil {
		return nil, err
	}
	buildMesh(m, cfg.SpatialIndex, polygons)
	return m, nil
}
