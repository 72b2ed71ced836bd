package debug_utils

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"navpath/common"
	"navpath/detour"
)

// DuDumpQueryGeoJSON renders the mesh, the corridor and the straight path of
// a query result as a GeoJSON feature collection on the x/z plane.
func DuDumpQueryGeoJSON(mesh *detour.DtNavMesh, filter *detour.DtQueryFilter, res *detour.QueryResult) ([]byte, error) {
	if mesh == nil || res == nil {
		return nil, errors.New("duDumpQueryGeoJSON: input is nil")
	}
	dd := NewDuGeoJSONDraw()

	dd.SetLabel("navmesh")
	DuDebugDrawNavMesh(dd, mesh, filter, DU_DRAWNAVMESH_BOUNDARIES|DU_DRAWNAVMESH_EXCLUDED)

	dd.SetLabel("corridor")
	DuDebugDrawCorridor(dd, mesh, res.Path.Corridor, duCorridorCol)

	dd.SetLabel("path")
	DuDebugDrawStraightPath(dd, res.StartPos, res.Waypoints, duPathCol)

	dd.SetLabel("start")
	DuDebugDrawCross(dd, res.StartPos, duMarkerSize, duPathCol, 2.0)

	// A partial path ends short of the goal; mark its end apart.
	endCol := duPathCol
	if res.Path.Partial {
		endCol = DuLerpCol(duPathCol, duPartialCol, 192)
	}
	dd.SetLabel("end")
	DuDebugDrawCross(dd, res.EndPos, duMarkerSize, endCol, 2.0)

	data, err := dd.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal geojson")
	}
	return data, nil
}

// DuDumpNavMeshToObj writes the mesh as a Wavefront OBJ file.
func DuDumpNavMeshToObj(mesh *detour.DtNavMesh, w io.Writer) error {
	if w == nil {
		return errors.New("duDumpNavMeshToObj: input IO is null")
	}
	bw := &objWriter{w: w}

	bw.printf("# navpath navmesh\n")
	bw.printf("o NavMesh\n")
	bw.printf("\n")

	// Emit the vertices referenced by triangles in index order.
	verts := make(map[int32]common.Vec3)
	maxIdx := int32(-1)
	for i := 0; i < mesh.GetTriCount(); i++ {
		tri := mesh.GetTriByRef(detour.DtTriRef(i))
		for j, idx := range tri.Idx {
			verts[idx] = tri.Verts[j]
			maxIdx = max(maxIdx, idx)
		}
	}
	for i := int32(0); i <= maxIdx; i++ {
		v := verts[i]
		bw.printf("v %f %f %f\n", v[0], v[1], v[2])
	}

	bw.printf("\n")

	for i := 0; i < mesh.GetTriCount(); i++ {
		tri := mesh.GetTriByRef(detour.DtTriRef(i))
		bw.printf("f %d %d %d\n", tri.Idx[0]+1, tri.Idx[1]+1, tri.Idx[2]+1)
	}
	return bw.err
}

type objWriter struct {
	w   io.Writer
	err error
}

func (o *objWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}
