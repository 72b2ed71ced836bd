package detour

import (
	"github.com/pkg/errors"

	"navpath/common"
	"navpath/common/rw"
)

const (
	DT_NAVMESH_MAGIC   = 'N'<<24 | 'P'<<16 | 'T'<<8 | 'M' ///< 'NPTM' identifies a navmesh snapshot.
	DT_NAVMESH_VERSION = 1
)

// DtNavMeshHeader precedes the snapshot payload.
type DtNavMeshHeader struct {
	Magic     int32 ///< Snapshot magic number.
	Version   int32 ///< Snapshot format version number.
	VertCount int32 ///< The number of vertices.
	TriCount  int32 ///< The number of triangles.
}

func (h *DtNavMeshHeader) ToBin(w *rw.ReaderWriter) {
	w.WriteInt32(h.Magic)
	w.WriteInt32(h.Version)
	w.WriteInt32(h.VertCount)
	w.WriteInt32(h.TriCount)
}

func (h *DtNavMeshHeader) FromBin(r *rw.ReaderWriter) *DtNavMeshHeader {
	h.Magic = r.ReadInt32()
	h.Version = r.ReadInt32()
	h.VertCount = r.ReadInt32()
	h.TriCount = r.ReadInt32()
	return h
}

// ToBin writes the mesh geometry together with the current triangle flags
// and areas. Adjacency and the spatial index are rebuilt on load.
func (m *DtNavMesh) ToBin() (res []byte) {
	w := rw.NewBinWriter()
	header := &DtNavMeshHeader{
		Magic:     DT_NAVMESH_MAGIC,
		Version:   DT_NAVMESH_VERSION,
		VertCount: int32(len(m.m_verts)),
		TriCount:  int32(len(m.m_tris)),
	}
	header.ToBin(w)
	for _, v := range m.m_verts {
		w.WriteFloat64s(v[:])
	}
	for _, tri := range m.m_tris {
		w.WriteInt32s(tri.Idx[:])
	}
	for _, tri := range m.m_tris {
		w.WriteUInt16(tri.Flags)
	}
	for _, tri := range m.m_tris {
		w.WriteUInt8(tri.Area)
	}
	return w.GetWriteBytes()
}

// NewDtNavMeshFromBin restores a mesh written by DtNavMesh.ToBin.
func NewDtNavMeshFromBin(data []byte) (*DtNavMesh, error) {
	r := rw.NewBinReader(data)
	header := (&DtNavMeshHeader{}).FromBin(r)
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "navmesh header")
	}
	if header.Magic != DT_NAVMESH_MAGIC {
		return nil, errors.Errorf("navmesh: wrong magic number %#x", header.Magic)
	}
	if header.Version != DT_NAVMESH_VERSION {
		return nil, errors.Errorf("navmesh: unsupported version %d", header.Version)
	}
	// 24 bytes per vertex, 15 per triangle.
	if header.VertCount < 0 || header.TriCount < 0 ||
		int64(r.Size()) != 24*int64(header.VertCount)+15*int64(header.TriCount) {
		return nil, errors.Errorf("navmesh: %d vertices and %d triangles do not match %d payload bytes",
			header.VertCount, header.TriCount, r.Size())
	}

	verts := make([]common.Vec3, header.VertCount)
	for i := range verts {
		r.ReadFloat64s(verts[i][:])
	}
	tris := make([]int32, 3*header.TriCount)
	r.ReadInt32s(tris)
	flags := make([]uint16, header.TriCount)
	r.ReadUInt16s(flags)
	areas := make([]uint8, header.TriCount)
	r.ReadUInt8s(areas)
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(err, "navmesh payload")
	}

	m, err := NewDtNavMesh(verts, tris)
	if err != nil {
		return nil, err
	}
	for i, tri := range m.m_tris {
		tri.Flags = flags[i]
		if areas[i] >= DT_MAX_AREAS {
			return nil, errors.Errorf("navmesh: triangle %d has area %d", i, areas[i])
		}
		tri.Area = areas[i]
	}
	return m, nil
}
