package mesh

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"navpath/common"
	"navpath/detour"
)

type TestType int

const (
	TEST_PATHFIND TestType = iota
)

// Test is one "pf" row of a test case file. Flags of zero fall back to the
// filter the tests are run with.
type Test struct {
	Type         TestType
	Spos         common.Vec3
	Epos         common.Vec3
	IncludeFlags uint16
	ExcludeFlags uint16

	Result *detour.QueryResult
	Err    error

	FindNearestTriTime   time.Duration
	FindPathTime         time.Duration
	FindStraightPathTime time.Duration
}

func (t *Test) Total() time.Duration {
	return t.FindNearestTriTime + t.FindPathTime + t.FindStraightPathTime
}

// TestCase is a scripted list of queries against one mesh file:
//
//	s <sample name>
//	f <mesh file>
//	pf sx sy sz ex ey ez [includeFlags excludeFlags]
//
// Flags are hexadecimal. Lines starting with # are comments.
type TestCase struct {
	m_sampleName   string
	m_geomFileName string
	m_tests        []*Test

	m_nearestHistory  *common.ValueHistory
	m_pathHistory     *common.ValueHistory
	m_straightHistory *common.ValueHistory
}

func NewTestCase() *TestCase {
	return &TestCase{
		m_nearestHistory:  common.NewValueHistory(),
		m_pathHistory:     common.NewValueHistory(),
		m_straightHistory: common.NewValueHistory(),
	}
}

func (t *TestCase) GetSampleName() string   { return t.m_sampleName }
func (t *TestCase) GetGeomFileName() string { return t.m_geomFileName }
func (t *TestCase) GetTests() []*Test       { return t.m_tests }

// Histories returns the timing histories of the nearest triangle lookups,
// the corridor searches and the funnel runs, in milliseconds.
func (t *TestCase) Histories() (nearest, path, straight *common.ValueHistory) {
	return t.m_nearestHistory, t.m_pathHistory, t.m_straightHistory
}

func (t *TestCase) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open test case")
	}
	defer f.Close()
	if err := t.LoadReader(f); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

func (t *TestCase) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := t.parseRow(strings.Fields(row)); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return errors.Wrap(scanner.Err(), "read test case")
}

func (t *TestCase) parseRow(ss []string) error {
	switch ss[0] {
	case "s":
		// Sample name.
		if len(ss) < 2 {
			return errors.New("missing sample name")
		}
		t.m_sampleName = ss[1]
	case "f":
		// File name.
		if len(ss) < 2 {
			return errors.New("missing mesh file name")
		}
		t.m_geomFileName = ss[1]
	case "pf":
		// Pathfind test.
		test, err := parsePathfind(ss[1:])
		if err != nil {
			return errors.Wrap(err, "pathfind test")
		}
		t.m_tests = append(t.m_tests, test)
	default:
		return errors.Errorf("unknown row type %q", ss[0])
	}
	return nil
}

func parsePathfind(ss []string) (*Test, error) {
	if len(ss) != 6 && len(ss) != 8 {
		return nil, errors.Errorf("expected 6 coordinates and optional flags, got %d fields", len(ss))
	}
	test := &Test{Type: TEST_PATHFIND}
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(ss[i], 64)
		if err != nil {
			return nil, err
		}
		if i < 3 {
			test.Spos[i] = v
		} else {
			test.Epos[i-3] = v
		}
	}
	if len(ss) == 8 {
		include, err := strconv.ParseUint(strings.TrimPrefix(ss[6], "0x"), 16, 16)
		if err != nil {
			return nil, errors.Wrap(err, "include flags")
		}
		exclude, err := strconv.ParseUint(strings.TrimPrefix(ss[7], "0x"), 16, 16)
		if err != nil {
			return nil, errors.Wrap(err, "exclude flags")
		}
		test.IncludeFlags = uint16(include)
		test.ExcludeFlags = uint16(exclude)
	}
	return test, nil
}

func (t *TestCase) resetTimes() {
	for _, iter := range t.m_tests {
		iter.FindNearestTriTime = 0
		iter.FindPathTime = 0
		iter.FindStraightPathTime = 0
		iter.Result = nil
		iter.Err = nil
	}
}

// DoTests runs every test against navquery. A failing test records its
// error and does not stop the run; only context cancellation does.
func (t *TestCase) DoTests(ctx context.Context, navquery *detour.DtNavMeshQuery, defaultFilter *detour.DtQueryFilter, logger *zap.Logger) error {
	if navquery == nil {
		return errors.Wrap(detour.ErrInvalidParam, "nil query")
	}
	if defaultFilter == nil {
		defaultFilter = detour.NewDtQueryFilter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t.resetTimes()

	for _, iter := range t.m_tests {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "run tests")
		}

		filter := *defaultFilter
		if iter.IncludeFlags != 0 || iter.ExcludeFlags != 0 {
			filter.SetIncludeFlags(iter.IncludeFlags)
			filter.SetExcludeFlags(iter.ExcludeFlags)
		}

		// Find start points
		findNearestTriStart := time.Now()
		startRef, startPos, err := navquery.FindNearestTri(iter.Spos, &filter)
		if err == nil {
			var endRef detour.DtTriRef
			var endPos common.Vec3
			endRef, endPos, err = navquery.FindNearestTri(iter.Epos, &filter)
			iter.Result = &detour.QueryResult{StartRef: startRef, EndRef: endRef, StartPos: startPos, EndPos: endPos}
		}
		iter.FindNearestTriTime = time.Since(findNearestTriStart)
		t.m_nearestHistory.AddDuration(iter.FindNearestTriTime)
		if err != nil {
			iter.Err = err
			iter.Result = nil
			continue
		}
		res := iter.Result

		// Find path
		findPathStart := time.Now()
		res.Path, err = navquery.FindPath(ctx, res.StartRef, res.EndRef, res.StartPos, res.EndPos, &filter)
		iter.FindPathTime = time.Since(findPathStart)
		res.SearchTime = iter.FindPathTime
		t.m_pathHistory.AddDuration(iter.FindPathTime)
		if err != nil {
			iter.Err = err
			continue
		}
		if res.Path.Partial {
			last := navquery.GetAttachedNavMesh().GetTriByRef(res.Path.Corridor[len(res.Path.Corridor)-1])
			res.EndPos = last.ClosestPoint(res.EndPos)
		}

		// Find straight path
		res.Waypoints, iter.FindStraightPathTime, err = navquery.FindStraightPath(res.StartPos, res.EndPos, res.Path.Corridor)
		res.SmoothTime = iter.FindStraightPathTime
		t.m_straightHistory.AddDuration(iter.FindStraightPathTime)
		if err != nil {
			iter.Err = err
		}
	}

	logger.Info("test results", zap.String("sample", t.m_sampleName), zap.String("mesh", t.m_geomFileName))
	for n, iter := range t.m_tests {
		fields := []zap.Field{
			zap.Int("index", n),
			zap.Duration("total", iter.Total()),
			zap.Duration("tri", iter.FindNearestTriTime),
			zap.Duration("search", iter.FindPathTime),
			zap.Duration("straight", iter.FindStraightPathTime),
		}
		if iter.Err != nil {
			fields = append(fields, zap.Error(iter.Err))
		} else {
			fields = append(fields,
				zap.Int("corridor", len(iter.Result.Path.Corridor)),
				zap.Int("waypoints", len(iter.Result.Waypoints)),
				zap.Bool("partial", iter.Result.Path.Partial))
		}
		logger.Info("test", fields...)
	}
	return nil
}
