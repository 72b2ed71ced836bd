package mesh

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"navpath/demo/config"
	"navpath/detour"
)

// BuildNavMesh links the loaded triangles into a navmesh. Triangles steeper
// than walkableSlopeAngle are flagged disabled rather than dropped so that
// triangle refs match face order.
func BuildNavMesh(geom *MeshLoaderObj, walkableSlopeAngle float64) (*detour.DtNavMesh, error) {
	if geom.GetTriCount() == 0 {
		return nil, errors.New("buildNavigation: input mesh has no triangles")
	}
	nav, err := detour.NewDtNavMesh(geom.GetVerts(), geom.GetTris())
	if err != nil {
		return nil, errors.Wrap(err, "buildNavigation")
	}
	for i, steep := range geom.SteepTris(walkableSlopeAngle) {
		flags := config.SAMPLE_POLYFLAGS_WALK
		if steep {
			flags = config.SAMPLE_POLYFLAGS_DISABLED
		}
		if err := nav.SetTriFlags(detour.DtTriRef(i), flags); err != nil {
			return nil, err
		}
	}
	return nav, nil
}

// LoadNavMesh reads a navmesh snapshot (.bin) or builds one from an OBJ file.
func LoadNavMesh(cfg *config.Config, p string) (*detour.DtNavMesh, error) {
	if strings.EqualFold(filepath.Ext(p), ".bin") {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrap(err, "read navmesh")
		}
		return detour.NewDtNavMeshFromBin(data)
	}
	geom := NewMeshLoaderObj(cfg.Scale)
	if err := geom.Load(p); err != nil {
		return nil, err
	}
	return BuildNavMesh(geom, cfg.WalkableSlopeAngle)
}
