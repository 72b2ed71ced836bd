package mesh

import (
	"bufio"
	"io"
	"math"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"navpath/common"
)

const maxFaceVerts = 32

// MeshLoaderObj reads the vertices and faces of a Wavefront OBJ file.
// Polygonal faces are fanned into triangles; normals and texture
// coordinates are ignored.
type MeshLoaderObj struct {
	m_filename string
	m_scale    float64
	m_verts    []common.Vec3
	m_tris     []int32
	m_normals  []common.Vec3
}

func NewMeshLoaderObj(scale float64) *MeshLoaderObj {
	if scale <= 0 {
		scale = 1
	}
	return &MeshLoaderObj{m_scale: scale}
}

func (m *MeshLoaderObj) GetVerts() []common.Vec3   { return m.m_verts }
func (m *MeshLoaderObj) GetNormals() []common.Vec3 { return m.m_normals }
func (m *MeshLoaderObj) GetTris() []int32          { return m.m_tris }
func (m *MeshLoaderObj) GetVertCount() int         { return len(m.m_verts) }
func (m *MeshLoaderObj) GetTriCount() int          { return len(m.m_tris) / 3 }
func (m *MeshLoaderObj) GetFileName() string       { return m.m_filename }

func (m *MeshLoaderObj) Load(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return errors.Wrap(err, "open mesh")
	}
	defer f.Close()
	if err := m.LoadReader(f); err != nil {
		return errors.Wrapf(err, "load %s", p)
	}
	m.m_filename = path.Base(p)
	return nil
}

func (m *MeshLoaderObj) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := m.parseRow(strings.Fields(row)); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read mesh")
	}
	m.calcNormals()
	return nil
}

func (m *MeshLoaderObj) parseRow(ss []string) error {
	switch ss[0] {
	case "v":
		return m.parseVertex(ss[1:])
	case "f":
		return m.parseFace(ss[1:])
	}
	// vn, vt, o, g, s, usemtl and friends carry nothing we need.
	return nil
}

func (m *MeshLoaderObj) parseVertex(ss []string) error {
	if len(ss) < 3 {
		return errors.Errorf("vertex needs 3 coordinates, got %d", len(ss))
	}
	var v common.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(ss[i], 64)
		if err != nil {
			return errors.Wrap(err, "vertex")
		}
		v[i] = f * m.m_scale
	}
	m.m_verts = append(m.m_verts, v)
	return nil
}

func (m *MeshLoaderObj) parseFace(ss []string) error {
	vertCount := int32(len(m.m_verts))
	getV := func(v string) (int32, error) {
		vi, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return 0, errors.Wrap(err, "face")
		}
		if vi < 0 {
			return int32(vi) + vertCount, nil
		}
		return int32(vi) - 1, nil
	}
	data := make([]int32, 0, min(len(ss), maxFaceVerts))
	for _, s := range ss {
		// Only the position index of v/vt/vn is used.
		vs := strings.Split(s, "/")
		vi, err := getV(vs[0])
		if err != nil {
			return err
		}
		data = append(data, vi)
		if len(data) >= maxFaceVerts {
			break
		}
	}
	for i := 2; i < len(data); i++ {
		a := data[0]
		b := data[i-1]
		c := data[i]
		if a < 0 || a >= vertCount || b < 0 || b >= vertCount || c < 0 || c >= vertCount {
			continue
		}
		m.m_tris = append(m.m_tris, a, b, c)
	}
	return nil
}

func (m *MeshLoaderObj) calcNormals() {
	m.m_normals = make([]common.Vec3, m.GetTriCount())
	for i := range m.m_normals {
		v0 := m.m_verts[m.m_tris[i*3]]
		v1 := m.m_verts[m.m_tris[i*3+1]]
		v2 := m.m_verts[m.m_tris[i*3+2]]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if d := n.Len(); d > 0 {
			n = n.Mul(1.0 / d)
		}
		m.m_normals[i] = n
	}
}

// SteepTris reports for each triangle whether its slope exceeds
// walkableSlopeAngle degrees. Faces are accepted with either winding.
func (m *MeshLoaderObj) SteepTris(walkableSlopeAngle float64) []bool {
	walkableThr := math.Cos(walkableSlopeAngle / 180.0 * math.Pi)
	steep := make([]bool, len(m.m_normals))
	for i, n := range m.m_normals {
		steep[i] = math.Abs(n[1]) <= walkableThr
	}
	return steep
}
