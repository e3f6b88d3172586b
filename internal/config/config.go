package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"navmesh-planner/search"
)

// Spatial index kinds.
const (
	IndexNone  = "none"
	IndexRTree = "rtree"
	IndexCells = "cells"
)

// Planner holds all configuration for the navmesh planner.
type Planner struct {
	Mesh         MeshConfig         `yaml:"mesh"`
	SpatialIndex SpatialIndexConfig `yaml:"spatial_index"`
	Search       SearchConfig       `yaml:"search"`
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
}

// MeshConfig controls how polygons are loaded and merged.
type MeshConfig struct {
	// Source is a .geojson file, a directory of them, or a snapshot .json.
	Source       string `yaml:"source"`
	ElevationKey string `yaml:"elevation_key"`

	EpsilonCoplanarTest float64 `yaml:"epsilon_coplanar_test"`
	EpsilonContainsTest float64 `yaml:"epsilon_contains_test"`
	EpsilonPointEqual   float64 `yaml:"epsilon_point_equal"`
	MergeConvexRegions  bool    `yaml:"merge_convex_regions"`

	// SimplifyEpsilon > 0 runs Douglas-Peucker on every input polygon.
	SimplifyEpsilon float64 `yaml:"simplify_epsilon"`
}

// SpatialIndexConfig selects and sizes the region index.
type SpatialIndexConfig struct {
	Kind string `yaml:"kind"` // none, rtree or cells

	// rtree
	MinChildren int `yaml:"min_children"`
	MaxChildren int `yaml:"max_children"`

	// cells
	CellsX int `yaml:"cells_x"`
	CellsY int `yaml:"cells_y"`
	CellsZ int `yaml:"cells_z"`
}

// SearchConfig configures region path search.
type SearchConfig struct {
	Heuristic string `yaml:"heuristic"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	BindAddress  string        `yaml:"bind_address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.Port)
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SlogLevel maps Level onto slog; unknown names mean info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DefaultPlanner returns Planner config with sensible defaults.
func DefaultPlanner() Planner {
	return Planner{
		Mesh: MeshConfig{
			Source:              "navmesh",
			ElevationKey:        "elevation",
			EpsilonCoplanarTest: 1e-3,
			EpsilonContainsTest: 1,
			EpsilonPointEqual:   1e-9,
			MergeConvexRegions:  true,
		},
		SpatialIndex: SpatialIndexConfig{
			Kind:        IndexRTree,
			MinChildren: 25,
			MaxChildren: 50,
			CellsX:      16,
			CellsY:      1,
			CellsZ:      16,
		},
		Search: SearchConfig{
			Heuristic: "euclidean",
		},
		Server: ServerConfig{
			BindAddress:  "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks values that cannot be repaired with a default.
func (p Planner) Validate() error {
	switch strings.ToLower(p.SpatialIndex.Kind) {
	case IndexNone, IndexRTree, IndexCells:
	default:
		return fmt.Errorf("spatial_index.kind %q: want none, rtree or cells", p.SpatialIndex.Kind)
	}
	if p.Mesh.EpsilonCoplanarTest < 0 || p.Mesh.EpsilonContainsTest < 0 || p.Mesh.EpsilonPointEqual < 0 {
		return fmt.Errorf("mesh epsilons must not be negative")
	}
	if _, err := search.ParseHeuristic(p.Search.Heuristic); err != nil {
		return fmt.Errorf("search.heuristic: %w", err)
	}
	if p.Server.Port < 0 || p.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", p.Server.Port)
	}
	switch p.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", p.Log.Format)
	}
	return nil
}

// LoadPlanner loads planner config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPlanner(path string) (Planner, error) {
	cfg := DefaultPlanner()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
