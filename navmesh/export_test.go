package navmesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSnapshot(t *testing.T) {
	m := New().FromPolygons(fourTriangles())
	s := m.Export()

	require.Len(t, s.Regions, 2)
	assert.Len(t, s.Edges, 2)
	assert.Equal(t, 8, s.HalfEdges)
	assert.Equal(t, 3, s.SharedVertices)
	assert.Equal(t, []int{1}, s.Regions[0].Neighbours)
	assert.Equal(t, []int{0}, s.Regions[1].Neighbours)
	assert.Equal(t, m.Region(0).Contour(), s.Regions[0].Contour)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, [2]mgl64.Vec3{m.Region(0).Centroid, m.Region(1).Centroid}, lines[0])
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := New().FromPolygons(fourTriangles())
	file := filepath.Join(t.TempDir(), "mesh.json")

	require.NoError(t, SaveSnapshot(m.Export(), file))
	loaded, err := LoadSnapshot(file)
	require.NoError(t, err)

	rebuilt := New().FromPolygons(loaded.Polygons())
	assert.Equal(t, m.RegionCount(), rebuilt.RegionCount())
	assert.Equal(t, m.Graph().EdgeCount(), rebuilt.Graph().EdgeCount())
	assert.Equal(t,
		m.FindPath(mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{0.9, 0, 0.9}),
		rebuilt.FindPath(mgl64.Vec3{0, 0, 1.5}, mgl64.Vec3{0.9, 0, 0.9}),
	)
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSnapshot(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"regions":[{"index":3}]}`), 0o644))
	_, err = LoadSnapshot(bad)
	assert.ErrorIs(t, err, ErrUnknownIndex)
}
