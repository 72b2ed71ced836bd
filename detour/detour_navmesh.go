package detour

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"navpath/common"
)

// DtTriRef identifies a triangle of a DtNavMesh.
type DtTriRef int32

const (
	DT_NULL_TRI DtTriRef = -1

	DT_TRI_WALKABLE uint16 = 0x01 ///< Default flag of every triangle.

	DT_MAX_AREAS = 64 ///< Number of area types a filter can price.

	dtTreeMinChildren = 25
	dtTreeMaxChildren = 50
	dtBoundsEps       = 1e-6
)

// DtTriangle is one cell of the navigation mesh. Edge i runs from Verts[i]
// to Verts[(i+1)%3] and is shared with Neis[i], or DT_NULL_TRI on a border.
type DtTriangle struct {
	Ref   DtTriRef
	Verts [3]common.Vec3
	Idx   [3]int32
	Neis  [3]DtTriRef
	Flags uint16
	Area  uint8

	center common.Vec3
	bounds rtreego.Rect
}

func (t *DtTriangle) Center() common.Vec3 { return t.center }

// Bounds implements rtreego.Spatial over the triangle's x/z extent.
func (t *DtTriangle) Bounds() rtreego.Rect { return t.bounds }

// PortalTo returns the edge shared with other.
func (t *DtTriangle) PortalTo(other *DtTriangle) (common.LineSegment, bool) {
	if other == nil {
		return common.LineSegment{}, false
	}
	for i, nei := range t.Neis {
		if nei == other.Ref {
			return common.LineSegment{A: t.Verts[i], B: t.Verts[common.Next(i, 3)]}, true
		}
	}
	return common.LineSegment{}, false
}

// Height returns the surface height under pos, and false when pos lies
// outside the triangle on the x/z plane.
func (t *DtTriangle) Height(pos common.Vec3) (float64, bool) {
	return dtClosestHeightPointTriangle(pos, t.Verts[0], t.Verts[1], t.Verts[2])
}

// DtNavMesh is a triangle mesh with edge adjacency and an R-tree over the
// triangles for position queries. Geometry is fixed after construction;
// flags and areas may change between queries but not during one.
type DtNavMesh struct {
	m_verts []common.Vec3
	m_tris  []*DtTriangle
	m_tree  *rtreego.Rtree
	m_bmin  common.Vec3
	m_bmax  common.Vec3
}

type edgeKey struct{ a, b int32 }

func makeEdgeKey(a, b int32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type edgeOwner struct {
	ref  DtTriRef
	edge int
}

// NewDtNavMesh links the triangles given as vertex index triples. Edges are
// matched by their vertex indices; an edge with more than two owners only
// links the first two.
func NewDtNavMesh(verts []common.Vec3, tris []int32) (*DtNavMesh, error) {
	if len(tris) == 0 || len(tris)%3 != 0 {
		return nil, errors.Wrapf(ErrInvalidParam, "triangle index count %d", len(tris))
	}
	m := &DtNavMesh{
		m_verts: slices.Clone(verts),
		m_tris:  make([]*DtTriangle, 0, len(tris)/3),
		m_bmin:  common.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64},
		m_bmax:  common.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64},
	}
	owners := make(map[edgeKey]edgeOwner, len(tris))
	spatials := make([]rtreego.Spatial, 0, len(tris)/3)

	for i := 0; i < len(tris); i += 3 {
		tri := &DtTriangle{
			Ref:   DtTriRef(len(m.m_tris)),
			Neis:  [3]DtTriRef{DT_NULL_TRI, DT_NULL_TRI, DT_NULL_TRI},
			Flags: DT_TRI_WALKABLE,
		}
		for j := 0; j < 3; j++ {
			vi := tris[i+j]
			if vi < 0 || int(vi) >= len(verts) {
				return nil, errors.Wrapf(ErrInvalidParam, "triangle %d: vertex index %d out of range", tri.Ref, vi)
			}
			if !common.Visfinite(verts[vi]) {
				return nil, errors.Wrapf(ErrInvalidParam, "vertex %d is not finite", vi)
			}
			tri.Idx[j] = vi
			tri.Verts[j] = verts[vi]
		}
		tri.center = common.Centroid(tri.Verts[:]...)
		bounds, err := triBounds(tri.Verts)
		if err != nil {
			return nil, errors.Wrapf(err, "triangle %d bounds", tri.Ref)
		}
		tri.bounds = bounds

		for j := 0; j < 3; j++ {
			key := makeEdgeKey(tri.Idx[j], tri.Idx[common.Next(j, 3)])
			owner, ok := owners[key]
			if !ok {
				owners[key] = edgeOwner{ref: tri.Ref, edge: j}
				continue
			}
			if owner.ref == DT_NULL_TRI || owner.ref == tri.Ref {
				continue
			}
			m.m_tris[owner.ref].Neis[owner.edge] = tri.Ref
			tri.Neis[j] = owner.ref
			owners[key] = edgeOwner{ref: DT_NULL_TRI}
		}

		for _, v := range tri.Verts {
			m.m_bmin = common.Vec3{min(m.m_bmin[0], v[0]), min(m.m_bmin[1], v[1]), min(m.m_bmin[2], v[2])}
			m.m_bmax = common.Vec3{max(m.m_bmax[0], v[0]), max(m.m_bmax[1], v[1]), max(m.m_bmax[2], v[2])}
		}
		m.m_tris = append(m.m_tris, tri)
		spatials = append(spatials, tri)
	}

	m.m_tree = rtreego.NewTree(2, dtTreeMinChildren, dtTreeMaxChildren, spatials...)
	return m, nil
}

func triBounds(verts [3]common.Vec3) (rtreego.Rect, error) {
	minX, minZ := verts[0][0], verts[0][2]
	maxX, maxZ := minX, minZ
	for _, v := range verts[1:] {
		minX, maxX = min(minX, v[0]), max(maxX, v[0])
		minZ, maxZ = min(minZ, v[2]), max(maxZ, v[2])
	}
	return rtreego.NewRect(
		rtreego.Point{minX, minZ},
		[]float64{max(maxX-minX, dtBoundsEps), max(maxZ-minZ, dtBoundsEps)},
	)
}

func (m *DtNavMesh) GetTriCount() int { return len(m.m_tris) }

func (m *DtNavMesh) GetVertCount() int { return len(m.m_verts) }

func (m *DtNavMesh) GetBounds() (bmin, bmax common.Vec3) { return m.m_bmin, m.m_bmax }

func (m *DtNavMesh) IsValidTriRef(ref DtTriRef) bool {
	return ref >= 0 && int(ref) < len(m.m_tris)
}

// GetTriByRef returns the triangle for ref, or nil when ref is invalid.
func (m *DtNavMesh) GetTriByRef(ref DtTriRef) *DtTriangle {
	if !m.IsValidTriRef(ref) {
		return nil
	}
	return m.m_tris[ref]
}

// GetTrisByRefs resolves a corridor of refs. Invalid refs are a caller defect.
func (m *DtNavMesh) GetTrisByRefs(refs []DtTriRef) []*DtTriangle {
	tris := make([]*DtTriangle, len(refs))
	for i, ref := range refs {
		tris[i] = m.GetTriByRef(ref)
		dtAssertTrue(tris[i] != nil, "invalid triangle ref %d at corridor index %d", ref, i)
	}
	return tris
}

func (m *DtNavMesh) SetTriFlags(ref DtTriRef, flags uint16) error {
	tri := m.GetTriByRef(ref)
	if tri == nil {
		return errors.Wrapf(ErrInvalidParam, "triangle ref %d", ref)
	}
	tri.Flags = flags
	return nil
}

func (m *DtNavMesh) SetTriArea(ref DtTriRef, area uint8) error {
	tri := m.GetTriByRef(ref)
	if tri == nil || area >= DT_MAX_AREAS {
		return errors.Wrapf(ErrInvalidParam, "triangle ref %d area %d", ref, area)
	}
	tri.Area = area
	return nil
}

// QueryTriangles returns the triangles whose x/z bounds overlap the box
// center±halfExtents. The y extent is ignored here; callers filter by height.
func (m *DtNavMesh) QueryTriangles(center, halfExtents common.Vec3) []*DtTriangle {
	rect, err := rtreego.NewRect(
		rtreego.Point{center[0] - halfExtents[0], center[2] - halfExtents[2]},
		[]float64{max(2*halfExtents[0], dtBoundsEps), max(2*halfExtents[2], dtBoundsEps)},
	)
	if err != nil {
		return nil
	}
	found := m.m_tree.SearchIntersect(rect)
	tris := make([]*DtTriangle, 0, len(found))
	for _, s := range found {
		tris = append(tris, s.(*DtTriangle))
	}
	return tris
}

// ClosestPoint returns pos projected onto the triangle surface when it lies
// inside on the x/z plane, otherwise the closest point on its boundary.
func (t *DtTriangle) ClosestPoint(pos common.Vec3) common.Vec3 {
	if h, ok := t.Height(pos); ok {
		return common.Vec3{pos[0], h, pos[2]}
	}
	bestDist := math.MaxFloat64
	var best common.Vec3
	for i := range t.Verts {
		p, q := t.Verts[i], t.Verts[common.Next(i, 3)]
		s, d := dtDistancePtSegSqr2D(pos, p, q)
		if d < bestDist {
			bestDist = d
			best = p.Add(q.Sub(p).Mul(s))
		}
	}
	return best
}
