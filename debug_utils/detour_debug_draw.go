package debug_utils

import (
	"navpath/common"
	"navpath/detour"
)

const (
	DU_DRAWNAVMESH_PORTALS     = 0x01
	DU_DRAWNAVMESH_BOUNDARIES  = 0x02
	DU_DRAWNAVMESH_EXCLUDED    = 0x04
	DU_DRAWNAVMESH_COLOR_FLAGS = 0x08
)

var (
	duBoundaryCol = DuRGBA(0, 48, 64, 220)
	duPortalCol   = DuRGBA(0, 48, 64, 32)
	duCorridorCol = DuRGBA(255, 196, 0, 64)
	duPathCol     = DuRGBA(64, 16, 0, 220)
	duExcludedCol = DuRGBA(0, 0, 0, 128)
	duPartialCol  = DuRGBA(255, 0, 0, 220)
)

const duMarkerSize = 0.5

// DuDebugDrawNavMesh draws every triangle colored by area. Triangles the
// filter rejects are drawn dark when DU_DRAWNAVMESH_EXCLUDED is set and
// skipped otherwise.
func DuDebugDrawNavMesh(dd DuDebugDraw, mesh *detour.DtNavMesh, filter *detour.DtQueryFilter, flags int) {
	if dd == nil || mesh == nil {
		return
	}

	dd.Begin(DU_DRAW_TRIS)
	for i := 0; i < mesh.GetTriCount(); i++ {
		tri := mesh.GetTriByRef(detour.DtTriRef(i))
		col := DuTransCol(dd.AreaToCol(int(tri.Area)), 64)
		if flags&DU_DRAWNAVMESH_COLOR_FLAGS != 0 {
			col = DuIntToCol(int(tri.Flags), 64)
		}
		if filter != nil && !filter.PassFilter(tri) {
			if flags&DU_DRAWNAVMESH_EXCLUDED == 0 {
				continue
			}
			col = duExcludedCol
		}
		for _, v := range tri.Verts {
			dd.Vertex(v, col)
		}
	}
	dd.End()

	if flags&DU_DRAWNAVMESH_BOUNDARIES != 0 {
		drawTriEdges(dd, mesh, duBoundaryCol, 2.5, false)
	}
	if flags&DU_DRAWNAVMESH_PORTALS != 0 {
		drawTriEdges(dd, mesh, duPortalCol, 1.5, true)
	}
}

// drawTriEdges draws the shared edges when inner is set, the border edges
// otherwise. Shared edges are drawn once, from the lower ref.
func drawTriEdges(dd DuDebugDraw, mesh *detour.DtNavMesh, col Colorb, linew float64, inner bool) {
	dd.Begin(DU_DRAW_LINES, linew)
	for i := 0; i < mesh.GetTriCount(); i++ {
		tri := mesh.GetTriByRef(detour.DtTriRef(i))
		for j, nei := range tri.Neis {
			if inner {
				if nei == detour.DT_NULL_TRI || nei < tri.Ref {
					continue
				}
			} else if nei != detour.DT_NULL_TRI {
				continue
			}
			dd.Vertex(tri.Verts[j], col)
			dd.Vertex(tri.Verts[common.Next(j, 3)], col)
		}
	}
	dd.End()
}

// DuDebugDrawCorridor highlights the triangles of a corridor.
func DuDebugDrawCorridor(dd DuDebugDraw, mesh *detour.DtNavMesh, corridor []detour.DtTriRef, col Colorb) {
	if dd == nil || mesh == nil {
		return
	}

	dd.Begin(DU_DRAW_TRIS)
	for _, ref := range corridor {
		tri := mesh.GetTriByRef(ref)
		if tri == nil {
			continue
		}
		for _, v := range tri.Verts {
			dd.Vertex(v, col)
		}
	}
	dd.End()
}

// DuDebugDrawStraightPath draws the path from start through the waypoints,
// marking every waypoint with a point.
func DuDebugDrawStraightPath(dd DuDebugDraw, start common.Vec3, path detour.StraightPath, col Colorb) {
	if dd == nil || len(path) == 0 {
		return
	}

	dd.Begin(DU_DRAW_LINES, 2.0)
	prev := start
	for _, wp := range path {
		dd.Vertex(prev, col)
		dd.Vertex(wp.Pos, col)
		prev = wp.Pos
	}
	dd.End()

	dd.Begin(DU_DRAW_POINTS, 6.0)
	dd.Vertex(start, DuDarkenCol(col))
	for _, wp := range path {
		dd.Vertex(wp.Pos, col)
	}
	dd.End()
}
