package debug_utils

import (
	"navpath/common"
)

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
)

func (p DuDebugDrawPrimitives) String() string {
	switch p {
	case DU_DRAW_POINTS:
		return "points"
	case DU_DRAW_LINES:
		return "lines"
	case DU_DRAW_TRIS:
		return "tris"
	}
	return "unknown"
}

// DuDebugDraw receives primitives as vertex runs. Lines take two vertices
// per segment and triangles three.
type DuDebugDraw interface {
	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float64)

	/// Submit a vertex
	///  @param pos [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex(pos common.Vec3, color Colorb)

	/// End drawing primitives.
	End()

	/// Compute a color for given area.
	AreaToCol(area int) Colorb
}

// DuDebugDrawBase discards everything. Embed it to implement only the
// methods a renderer needs.
type DuDebugDrawBase struct {
}

func (d *DuDebugDrawBase) Begin(prim DuDebugDrawPrimitives, size ...float64) {}
func (d *DuDebugDrawBase) Vertex(pos common.Vec3, color Colorb)             {}
func (d *DuDebugDrawBase) End()                                             {}

func (d *DuDebugDrawBase) AreaToCol(area int) Colorb {
	if area == 0 {
		// Treat zero area type as default.
		return DuRGBA(0, 192, 255, 255)
	}
	return DuIntToCol(area, 255)
}

func DuAppendCross(dd DuDebugDraw, pos common.Vec3, s float64, col Colorb) {
	dd.Vertex(pos.Sub(common.Vec3{s, 0, 0}), col)
	dd.Vertex(pos.Add(common.Vec3{s, 0, 0}), col)
	dd.Vertex(pos.Sub(common.Vec3{0, s, 0}), col)
	dd.Vertex(pos.Add(common.Vec3{0, s, 0}), col)
	dd.Vertex(pos.Sub(common.Vec3{0, 0, s}), col)
	dd.Vertex(pos.Add(common.Vec3{0, 0, s}), col)
}

func DuDebugDrawCross(dd DuDebugDraw, pos common.Vec3, size float64, col Colorb, lineWidth float64) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCross(dd, pos, size, col)
	dd.End()
}
