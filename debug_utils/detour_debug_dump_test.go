package debug_utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navpath/common"
	"navpath/detour"
)

func TestDuDumpQueryGeoJSON(t *testing.T) {
	m := newStrip(t, 1)
	q, err := detour.NewDtNavMeshQuery(m)
	require.NoError(t, err)
	res, err := q.FindWaypoints(context.Background(), common.Vec3{0, 0, 0.3}, common.Vec3{0, 0, 0.7}, nil)
	require.NoError(t, err)
	require.Equal(t, []detour.DtTriRef{0, 1}, res.Path.Corridor)

	data, err := DuDumpQueryGeoJSON(m, nil, res)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, f := range fc.Features {
		kinds[f.Properties.MustString("kind")]++
	}
	assert.Equal(t, map[string]int{
		"navmesh":  2 + 4,
		"corridor": 2,
		"path":     1 + 2,
		"start":    3,
		"end":      3,
	}, kinds)

	first := fc.Features[0]
	poly, ok := first.Geometry.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Ring{{1, 0}, {-1, 0}, {-1, 1}, {1, 0}}, poly[0])
	assert.Contains(t, first.Properties, "fill")
}

func TestDuDumpQueryGeoJSONNil(t *testing.T) {
	_, err := DuDumpQueryGeoJSON(nil, nil, &detour.QueryResult{})
	assert.Error(t, err)
	_, err = DuDumpQueryGeoJSON(newStrip(t, 1), nil, nil)
	assert.Error(t, err)
}

func TestDuDumpNavMeshToObj(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DuDumpNavMeshToObj(newStrip(t, 1), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"# navpath navmesh",
		"o NavMesh",
		"",
		"v 1.000000 0.000000 0.000000",
		"v -1.000000 0.000000 0.000000",
		"v 1.000000 0.000000 1.000000",
		"v -1.000000 0.000000 1.000000",
		"",
		"f 1 2 4",
		"f 1 4 3",
	}, lines)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestDuDumpNavMeshToObjWriteError(t *testing.T) {
	assert.EqualError(t, DuDumpNavMeshToObj(newStrip(t, 1), failingWriter{}), "disk full")
	assert.Error(t, DuDumpNavMeshToObj(newStrip(t, 1), nil))
}
