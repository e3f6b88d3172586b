package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navmesh-planner/geometry"
	"navmesh-planner/internal/config"
	"navmesh-planner/navmesh"
)

// fourTriangles fans a 1x2 rectangle out from its centre.
func fourTriangles() []geometry.Polygon {
	a, b := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}
	c, d := mgl64.Vec3{1, 0, 2}, mgl64.Vec3{0, 0, 2}
	m := mgl64.Vec3{0.5, 0, 1}
	return []geometry.Polygon{
		geometry.NewPolygon(a, d, m),
		geometry.NewPolygon(d, c, m),
		geometry.NewPolygon(c, b, m),
		geometry.NewPolygon(b, a, m),
	}
}

func testServer(t *testing.T) (*server, http.Handler) {
	t.Helper()
	cfg := config.DefaultPlanner()
	m, err := newMesh(cfg)
	require.NoError(t, err)
	buildMesh(m, cfg.SpatialIndex, fourTriangles())
	s := newServer(cfg, m)
	return s, s.routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestRouteHandler(t *testing.T) {
	_, h := testServer(t)

	rec := do(t, h, http.MethodPost, "/route", RouteRequest{
		Start: mgl64.Vec3{0, 0, 1.5},
		End:   mgl64.Vec3{0.9, 0, 0.9},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []mgl64.Vec3{{0, 0, 1.5}, {0.5, 0, 1}, {0.9, 0, 0.9}}, resp.Path)
	want := geometry.Distance(resp.Path[0], resp.Path[1]) + geometry.Distance(resp.Path[1], resp.Path[2])
	assert.InDelta(t, want, resp.Distance, 1e-12)
}

func TestRouteHandlerRejects(t *testing.T) {
	_, h := testServer(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/route", nil).Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/route", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/route", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "POST, GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

	empty := newServer(config.DefaultPlanner(), navmesh.New()).routes()
	rec = do(t, empty, http.MethodPost, "/route", RouteRequest{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRegionHandler(t *testing.T) {
	_, h := testServer(t)

	var resp RegionResponse
	rec := do(t, h, http.MethodPost, "/region", RegionRequest{Point: mgl64.Vec3{0.8, 0, 0.5}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Equal(t, 1, resp.Index)
	assert.Len(t, resp.Contour, 4)

	resp = RegionResponse{}
	rec = do(t, h, http.MethodPost, "/region", RegionRequest{Point: mgl64.Vec3{-5, 0, 0.5}})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.True(t, resp.Closest)
	assert.Equal(t, 0, resp.Index)

	tight := 0.0
	resp = RegionResponse{}
	rec = do(t, h, http.MethodPost, "/region", RegionRequest{Point: mgl64.Vec3{0.8, 0.5, 0.5}, Epsilon: &tight})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
}

func TestBuildHandler(t *testing.T) {
	s, h := testServer(t)
	strip := []geometry.Polygon{geometry.NewPolygon(
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{3, 0, 1}, mgl64.Vec3{3, 0, 0},
	)}

	rec := do(t, h, http.MethodPost, "/build", BuildRequest{Polygons: strip})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 2, s.current().RegionCount())

	rec = do(t, h, http.MethodPost, "/build", BuildRequest{Polygons: strip, Force: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.current().RegionCount())
	assert.NotNil(t, s.current().SpatialIndex)
}

func TestBuildHandlerConcurrentBuildsConflict(t *testing.T) {
	cfg := config.DefaultPlanner()
	h := newServer(cfg, navmesh.New()).routes()

	const builders = 8
	codes := make([]int, builders)
	var wg sync.WaitGroup
	for i := 0; i < builders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(t, h, http.MethodPost, "/build", BuildRequest{Polygons: fourTriangles()}).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		if code == http.StatusOK {
			ok++
			continue
		}
		assert.Equal(t, http.StatusConflict, code)
	}
	assert.Equal(t, 1, ok)
}

func TestGraphAndHealthHandlers(t *testing.T) {
	_, h := testServer(t)

	rec := do(t, h, http.MethodGet, "/graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var graphResp struct {
		Lines      [][2]mgl64.Vec3 `json:"lines"`
		NumRegions int             `json:"numRegions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &graphResp))
	assert.Len(t, graphResp.Lines, 1)
	assert.Equal(t, 2, graphResp.NumRegions)

	rec = do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)

	rec = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "navmesh_regions")
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in   string
		want mgl64.Vec3
		err  bool
	}{
		{"1,2,3", mgl64.Vec3{1, 2, 3}, false},
		{" 0.5, 0 ,-1.25", mgl64.Vec3{0.5, 0, -1.25}, false},
		{"1,2", mgl64.Vec3{}, true},
		{"a,b,c", mgl64.Vec3{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMeshSources(t *testing.T) {
	dir := t.TempDir()
	geo := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
	  {"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[5,0],[6,0],[6,1],[5,1],[5,0]]]}}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "floor.geojson"), []byte(geo), 0o644))

	cfg := config.DefaultPlanner()
	cfg.SpatialIndex.Kind = config.IndexCells

	cfg.Mesh.Source = dir
	m, err := loadMesh(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RegionCount())
	assert.IsType(t, &navmesh.CellSpaceIndex{}, m.SpatialIndex)
	assert.Equal(t, 2, connectedComponents(navmesh.NewCostTable(m)))

	snapshotPath := filepath.Join(dir, "mesh.json")
	require.NoError(t, navmesh.SaveSnapshot(m.Export(), snapshotPath))

	cfg.Mesh.Source = snapshotPath
	cfg.SpatialIndex.Kind = config.IndexNone
	m, err = loadMesh(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RegionCount())
	assert.Nil(t, m.SpatialIndex)

	cfg.Mesh.Source = filepath.Join(dir, "floor.geojson")
	cfg.Mesh.SimplifyEpsilon = 0.01
	m, err = loadMesh(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RegionCount())

	cfg.Mesh.Source = filepath.Join(dir, "missing")
	_, err = loadMesh(cfg)
	assert.Error(t, err)
}
