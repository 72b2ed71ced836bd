package mesh

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"navpath/common"
	"navpath/demo/config"
	"navpath/detour"
)

const stripCases = `
# queries along the strip
s strip
f strip.obj
pf 0 0 0.3 0 0 3.7
pf 0 0 0.3 0 0 3.7 0x1 10
pf 50 0 50 0 0 0.5
`

func TestTestCaseLoad(t *testing.T) {
	tc := NewTestCase()
	require.NoError(t, tc.LoadReader(strings.NewReader(stripCases)))

	assert.Equal(t, "strip", tc.GetSampleName())
	assert.Equal(t, "strip.obj", tc.GetGeomFileName())
	require.Len(t, tc.GetTests(), 3)

	first := tc.GetTests()[0]
	assert.Equal(t, TEST_PATHFIND, first.Type)
	assert.Equal(t, common.Vec3{0, 0, 0.3}, first.Spos)
	assert.Equal(t, common.Vec3{0, 0, 3.7}, first.Epos)
	assert.Zero(t, first.IncludeFlags)

	second := tc.GetTests()[1]
	assert.Equal(t, uint16(0x01), second.IncludeFlags)
	assert.Equal(t, uint16(0x10), second.ExcludeFlags)
}

func TestTestCaseLoadErrors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown row": "xx 1 2 3\n",
		"no name":     "s\n",
		"no file":     "f\n",
		"few fields":  "pf 0 0 0 1 1\n",
		"flag count":  "pf 0 0 0 1 1 1 0x1\n",
		"bad number":  "pf 0 0 0 1 y 1\n",
		"bad include": "pf 0 0 0 1 1 1 zz 0\n",
		"bad exclude": "pf 0 0 0 1 1 1 0 10000\n",
	} {
		t.Run(name, func(t *testing.T) {
			err := NewTestCase().LoadReader(strings.NewReader(src))
			assert.ErrorContains(t, err, "line 1")
		})
	}
	assert.Error(t, NewTestCase().Load("does-not-exist.txt"))
}

func newStripQuery(t *testing.T) (*detour.DtNavMeshQuery, *detour.DtQueryFilter) {
	t.Helper()
	geom := NewMeshLoaderObj(1)
	require.NoError(t, geom.LoadReader(strings.NewReader(stripObj(4))))
	nav, err := BuildNavMesh(geom, 45)
	require.NoError(t, err)

	cfg := config.Default()
	q, err := detour.NewDtNavMeshQuery(nav, cfg.Query.Options(zaptest.NewLogger(t))...)
	require.NoError(t, err)
	filter, err := cfg.Query.Filter()
	require.NoError(t, err)
	return q, filter
}

func TestDoTests(t *testing.T) {
	q, filter := newStripQuery(t)
	tc := NewTestCase()
	require.NoError(t, tc.LoadReader(strings.NewReader(stripCases)))

	require.NoError(t, tc.DoTests(context.Background(), q, filter, zaptest.NewLogger(t)))

	tests := tc.GetTests()
	for _, test := range tests[:2] {
		require.NoError(t, test.Err)
		require.NotNil(t, test.Result)
		assert.Len(t, test.Result.Path.Corridor, 8)
		assert.False(t, test.Result.Path.Partial)
		assert.Equal(t, []common.Vec3{{0, 0, 3.7}}, test.Result.Waypoints.Positions())
		assert.Equal(t, test.FindNearestTriTime+test.FindPathTime+test.FindStraightPathTime, test.Total())
	}
	assert.ErrorIs(t, tests[2].Err, detour.ErrNoTriangle)
	assert.Nil(t, tests[2].Result)

	nearest, path, straight := tc.Histories()
	assert.Equal(t, 3, nearest.GetSampleCount())
	assert.Equal(t, 2, path.GetSampleCount())
	assert.Equal(t, 2, straight.GetSampleCount())

	// A second run starts from clean results.
	require.NoError(t, tc.DoTests(context.Background(), q, filter, nil))
	assert.Equal(t, 6, nearest.GetSampleCount())
	assert.NoError(t, tests[0].Err)
}

func TestDoTestsPerTestFlags(t *testing.T) {
	q, filter := newStripQuery(t)
	tc := NewTestCase()
	// Only swimmable triangles are allowed, and the strip has none.
	require.NoError(t, tc.LoadReader(strings.NewReader("pf 0 0 0.3 0 0 3.7 2 0\n")))

	require.NoError(t, tc.DoTests(context.Background(), q, filter, nil))
	assert.ErrorIs(t, tc.GetTests()[0].Err, detour.ErrNoTriangle)
}

func TestDoTestsErrors(t *testing.T) {
	q, filter := newStripQuery(t)
	tc := NewTestCase()
	require.NoError(t, tc.LoadReader(strings.NewReader(stripCases)))

	assert.ErrorIs(t, tc.DoTests(context.Background(), nil, filter, nil), detour.ErrInvalidParam)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tc.DoTests(ctx, q, filter, nil), context.Canceled)
}
