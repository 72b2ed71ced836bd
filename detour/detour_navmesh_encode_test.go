package detour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navpath/common/rw"
)

func TestNavMeshSnapshot(t *testing.T) {
	m := newStripMesh(t, 3)
	require.NoError(t, m.SetTriFlags(2, 0x10))
	require.NoError(t, m.SetTriArea(4, 3))

	data := m.ToBin()
	assert.Len(t, data, 16+24*m.GetVertCount()+15*m.GetTriCount())

	// Indices, flags and areas follow the vertices as separate arrays.
	flagsAt := 16 + 24*m.GetVertCount() + 12*m.GetTriCount()
	areasAt := flagsAt + 2*m.GetTriCount()
	assert.Equal(t, []byte{0x10, 0x00}, data[flagsAt+2*2:flagsAt+2*3])
	assert.Equal(t, byte(3), data[areasAt+4])

	got, err := NewDtNavMeshFromBin(data)
	require.NoError(t, err)
	assert.Equal(t, m.GetVertCount(), got.GetVertCount())
	if diff := cmp.Diff(m.m_tris, got.m_tris, cmpopts.IgnoreUnexported(DtTriangle{})); diff != "" {
		t.Errorf("triangles mismatch (-want +got):\n%s", diff)
	}

	gotMin, gotMax := got.GetBounds()
	wantMin, wantMax := m.GetBounds()
	assert.Equal(t, wantMin, gotMin)
	assert.Equal(t, wantMax, gotMax)
	assert.Len(t, got.QueryTriangles(got.GetTriByRef(0).Center(), DT_DEFAULT_HALF_EXTENTS), 6)
}

func TestNavMeshHeader(t *testing.T) {
	w := rw.NewBinWriter()
	(&DtNavMeshHeader{Magic: DT_NAVMESH_MAGIC, Version: DT_NAVMESH_VERSION, VertCount: 3, TriCount: 1}).ToBin(w)

	h := (&DtNavMeshHeader{}).FromBin(rw.NewBinReader(w.GetWriteBytes()))
	assert.Equal(t, &DtNavMeshHeader{Magic: DT_NAVMESH_MAGIC, Version: DT_NAVMESH_VERSION, VertCount: 3, TriCount: 1}, h)
}

func TestNavMeshSnapshotErrors(t *testing.T) {
	data := newStripMesh(t, 1).ToBin()
	corrupt := func(f func(b []byte) []byte) []byte {
		return f(append([]byte(nil), data...))
	}

	for name, b := range map[string][]byte{
		"empty":          nil,
		"short header":   data[:10],
		"wrong magic":    corrupt(func(b []byte) []byte { b[0] ^= 0xff; return b }),
		"wrong version":  corrupt(func(b []byte) []byte { b[4] = 9; return b }),
		"truncated":      data[:len(data)-1],
		"trailing bytes": append(append([]byte(nil), data...), 0),
		"bad index":      corrupt(func(b []byte) []byte { b[16+24*4] = 99; return b }),
		"bad area":       corrupt(func(b []byte) []byte { b[len(b)-1] = DT_MAX_AREAS; return b }),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewDtNavMeshFromBin(b)
			assert.Error(t, err)
		})
	}
}
