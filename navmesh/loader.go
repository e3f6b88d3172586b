package navmesh

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"navmesh-planner/geometry"
)

// DefaultElevationKey is the feature property read as the polygon's height.
const DefaultElevationKey = "elevation"

// LoadGeoJSON reads walkable polygons from a GeoJSON feature collection.
//
// GeoJSON x and y map onto the mesh's X and Z axes; Y is taken from the
// elevationKey property of each feature and defaults to 0. Only the outer
// ring of each Polygon or MultiPolygon member is used. Rings are rewound so
// that their normal points up.
func LoadGeoJSON(r io.Reader, elevationKey string) ([]geometry.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	if elevationKey == "" {
		elevationKey = DefaultElevationKey
	}

	var polygons []geometry.Polygon
	for i, feature := range fc.Features {
		y, _ := feature.Properties[elevationKey].(float64)

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = appendRing(polygons, g, y)
		case orb.MultiPolygon:
			for _, p := range g {
				polygons = appendRing(polygons, p, y)
			}
		default:
			slog.Debug("geojson: skipping feature", "feature", i, "type", feature.Geometry.GeoJSONType())
		}
	}

	if len(polygons) == 0 {
		return nil, ErrNoPolygons
	}
	return polygons, nil
}

// appendRing converts the outer ring of p.
func appendRing(dst []geometry.Polygon, p orb.Polygon, y float64) []geometry.Polygon {
	if len(p) == 0 {
		return dst
	}
	ring := p[0]
	if len(ring) > 1 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 {
		return dst
	}

	poly := geometry.Polygon{Vertices: make([]mgl64.Vec3, 0, len(ring))}
	for _, pt := range ring {
		poly.Vertices = append(poly.Vertices, mgl64.Vec3{pt.X(), y, pt.Y()})
	}
	if poly.SignedArea() < 0 {
		poly = poly.Reversed()
	}
	return append(dst, poly)
}

// LoadGeoJSONFile reads polygons from one GeoJSON file.
func LoadGeoJSONFile(path, elevationKey string) ([]geometry.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	polygons, err := LoadGeoJSON(f, elevationKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return polygons, nil
}

// LoadGeoJSONDir reads every *.geojson file in dir. Files that fail to load
// are logged and skipped.
func LoadGeoJSONDir(dir, elevationKey string) ([]geometry.Polygon, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	slog.Info("loading walkable polygons", "dir", dir, "files", len(files))

	var all []geometry.Polygon
	for _, file := range files {
		polygons, err := LoadGeoJSONFile(file, elevationKey)
		if err != nil {
			slog.Warn("failed to load polygons", "file", file, "err", err)
			continue
		}
		all = append(all, polygons...)
		slog.Info("loaded polygons", "file", filepath.Base(file), "count", len(polygons))
	}

	if len(all) == 0 {
		return nil, ErrNoPolygons
	}
	return all, nil
}
