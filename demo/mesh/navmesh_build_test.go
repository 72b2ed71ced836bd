package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navpath/debug_utils"
	"navpath/demo/config"
	"navpath/detour"
)

func TestBuildNavMesh(t *testing.T) {
	geom := NewMeshLoaderObj(1)
	require.NoError(t, geom.LoadReader(strings.NewReader(`
v 0 0 0
v 1 0 0
v 0 0 1
v 0 1 0
f 1 2 3
f 1 2 4
`)))

	nav, err := BuildNavMesh(geom, 45)
	require.NoError(t, err)
	require.Equal(t, 2, nav.GetTriCount())
	assert.Equal(t, config.SAMPLE_POLYFLAGS_WALK, nav.GetTriByRef(0).Flags)
	assert.Equal(t, config.SAMPLE_POLYFLAGS_DISABLED, nav.GetTriByRef(1).Flags)
	assert.Equal(t, detour.DtTriRef(1), nav.GetTriByRef(0).Neis[0], "the wall shares the 1-2 edge")

	_, err = BuildNavMesh(NewMeshLoaderObj(1), 45)
	assert.Error(t, err)
}

func TestLoadNavMesh(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "strip.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(stripObj(3)), 0o644))

	cfg := config.Default()
	nav, err := LoadNavMesh(cfg, objPath)
	require.NoError(t, err)
	assert.Equal(t, 6, nav.GetTriCount())
	assert.Equal(t, 8, nav.GetVertCount())

	require.NoError(t, nav.SetTriArea(2, uint8(config.SAMPLE_POLYAREA_WATER)))
	binPath := filepath.Join(dir, "strip.BIN")
	require.NoError(t, os.WriteFile(binPath, nav.ToBin(), 0o644))

	restored, err := LoadNavMesh(cfg, binPath)
	require.NoError(t, err)
	assert.Equal(t, nav.GetTriCount(), restored.GetTriCount())
	assert.Equal(t, config.SAMPLE_POLYAREA_WATER, restored.GetTriByRef(2).Area)
	assert.Equal(t, nav.GetTriByRef(5).Neis, restored.GetTriByRef(5).Neis)

	_, err = LoadNavMesh(cfg, filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
	_, err = LoadNavMesh(cfg, filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)
}

func TestObjDumpRoundTrip(t *testing.T) {
	geom := NewMeshLoaderObj(1)
	require.NoError(t, geom.LoadReader(strings.NewReader(stripObj(2))))
	nav, err := BuildNavMesh(geom, 45)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, debug_utils.DuDumpNavMeshToObj(nav, &buf))

	again := NewMeshLoaderObj(1)
	require.NoError(t, again.LoadReader(&buf))
	assert.Equal(t, geom.GetVerts(), again.GetVerts())
	assert.Equal(t, geom.GetTris(), again.GetTris())
}
