package detour

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"navpath/common"
)

const (
	H_SCALE = 0.999 // Search heuristic scale.

	DT_DEFAULT_MAX_NODES = 2048
)

var DT_DEFAULT_HALF_EXTENTS = common.Vec3{2, 4, 2}

type NavMeshQuery interface {
	// / Finds the triangle nearest to the specified position.
	// /  @param[in]		center		The center of the search box. [(x, y, z)]
	// /  @param[in]		filter		The triangle filter to apply to the query.
	// / @returns The reference of the nearest triangle and the nearest point on it.
	FindNearestTri(center common.Vec3, filter *DtQueryFilter) (DtTriRef, common.Vec3, error)

	// / Finds a corridor from the start triangle to the end triangle.
	// /  @param[in]		startRef	The reference id of the start triangle.
	// /  @param[in]		endRef		The reference id of the end triangle.
	// /  @param[in]		startPos	A position within the start triangle. [(x, y, z)]
	// /  @param[in]		endPos		A position within the end triangle. [(x, y, z)]
	// /  @param[in]		filter		The triangle filter to apply to the query.
	// / If the end triangle cannot be reached, the corridor leads to the
	// / triangle nearest to it and the result is marked partial.
	FindPath(ctx context.Context, startRef, endRef DtTriRef, startPos, endPos common.Vec3, filter *DtQueryFilter) (PathResult, error)

	// / Finds the straight path from the start to the end position within the corridor.
	// /  @param[in]		startPos	Path start position. [(x, y, z)]
	// /  @param[in]		endPos		Path end position. [(x, y, z)]
	// /  @param[in]		corridor	Triangle references from start to end.
	FindStraightPath(startPos, endPos common.Vec3, corridor []DtTriRef) (StraightPath, time.Duration, error)

	// / Runs the nearest triangle lookups, the corridor search and the funnel in one call.
	FindWaypoints(ctx context.Context, startPos, endPos common.Vec3, filter *DtQueryFilter) (*QueryResult, error)
}

var _ NavMeshQuery = (*DtNavMeshQuery)(nil)

type DtQueryFilter struct {
	m_areaCost     [DT_MAX_AREAS]float64 ///< Cost per area type.
	m_includeFlags uint16                ///< Flags for triangles that can be visited.
	m_excludeFlags uint16                ///< Flags for triangles that should not be visited.
}

func NewDtQueryFilter() *DtQueryFilter {
	filter := &DtQueryFilter{m_includeFlags: 0xffff}
	for i := range filter.m_areaCost {
		filter.m_areaCost[i] = 1.0
	}
	return filter
}

func (filter *DtQueryFilter) GetAreaCost(i int) float64       { return filter.m_areaCost[i] }
func (filter *DtQueryFilter) SetAreaCost(i int, cost float64) { filter.m_areaCost[i] = cost }
func (filter *DtQueryFilter) GetIncludeFlags() uint16         { return filter.m_includeFlags }
func (filter *DtQueryFilter) SetIncludeFlags(flags uint16)    { filter.m_includeFlags = flags }
func (filter *DtQueryFilter) GetExcludeFlags() uint16         { return filter.m_excludeFlags }
func (filter *DtQueryFilter) SetExcludeFlags(flags uint16)    { filter.m_excludeFlags = flags }

func (filter *DtQueryFilter) getCost(pa, pb common.Vec3, tri *DtTriangle) float64 {
	return common.Vdist(pa, pb) * filter.m_areaCost[tri.Area]
}

func (filter *DtQueryFilter) PassFilter(tri *DtTriangle) bool {
	return (tri.Flags&filter.m_includeFlags) != 0 && (tri.Flags&filter.m_excludeFlags) == 0
}

// PathResult is the outcome of a corridor search.
type PathResult struct {
	Corridor   []DtTriRef
	Partial    bool // the corridor ends at the triangle nearest to the goal
	OutOfNodes bool // the node pool ran out during the search
	Expanded   int
}

// QueryResult bundles every stage of FindWaypoints.
type QueryResult struct {
	StartRef   DtTriRef
	EndRef     DtTriRef
	StartPos   common.Vec3
	EndPos     common.Vec3
	Path       PathResult
	Waypoints  StraightPath
	SearchTime time.Duration
	SmoothTime time.Duration
}

// DtNavMeshQuery runs path queries against a DtNavMesh. Every query builds
// its own open list and node pool, so a DtNavMeshQuery can serve concurrent
// callers as long as the mesh is not modified meanwhile.
type DtNavMeshQuery struct {
	m_nav         *DtNavMesh
	m_maxNodes    int
	m_halfExtents common.Vec3
	m_logger      *zap.Logger
}

type QueryOption func(q *DtNavMeshQuery)

// WithMaxNodes bounds the number of triangles a single search may visit.
func WithMaxNodes(maxNodes int) QueryOption {
	return func(q *DtNavMeshQuery) { q.m_maxNodes = maxNodes }
}

// WithHalfExtents sets the search box used to find the triangle under a position.
func WithHalfExtents(halfExtents common.Vec3) QueryOption {
	return func(q *DtNavMeshQuery) { q.m_halfExtents = halfExtents }
}

func WithLogger(logger *zap.Logger) QueryOption {
	return func(q *DtNavMeshQuery) { q.m_logger = logger }
}

func NewDtNavMeshQuery(nav *DtNavMesh, options ...QueryOption) (*DtNavMeshQuery, error) {
	if nav == nil {
		return nil, errors.Wrap(ErrInvalidParam, "nil navmesh")
	}
	q := &DtNavMeshQuery{
		m_nav:         nav,
		m_maxNodes:    DT_DEFAULT_MAX_NODES,
		m_halfExtents: DT_DEFAULT_HALF_EXTENTS,
		m_logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(q)
	}
	if q.m_maxNodes <= 0 {
		return nil, errors.Wrapf(ErrInvalidParam, "max nodes %d", q.m_maxNodes)
	}
	if q.m_halfExtents[0] < 0 || q.m_halfExtents[1] < 0 || q.m_halfExtents[2] < 0 {
		return nil, errors.Wrapf(ErrInvalidParam, "half extents %v", q.m_halfExtents)
	}
	if q.m_logger == nil {
		q.m_logger = zap.NewNop()
	}
	return q, nil
}

func (q *DtNavMeshQuery) GetAttachedNavMesh() *DtNavMesh { return q.m_nav }

// FindNearestTri prefers a triangle lying directly under or over center
// within the vertical half extent, closest in height. Otherwise it picks the
// triangle with the closest boundary point.
func (q *DtNavMeshQuery) FindNearestTri(center common.Vec3, filter *DtQueryFilter) (DtTriRef, common.Vec3, error) {
	if !common.Visfinite(center) {
		return DT_NULL_TRI, center, errors.Wrapf(ErrInvalidParam, "position %v", center)
	}
	if filter == nil {
		filter = NewDtQueryFilter()
	}

	nearestRef := DT_NULL_TRI
	var nearestPt common.Vec3
	nearestDist := math.MaxFloat64
	overPoly := false

	for _, tri := range q.m_nav.QueryTriangles(center, q.m_halfExtents) {
		if !filter.PassFilter(tri) {
			continue
		}
		closest := tri.ClosestPoint(center)
		d := common.VdistSqr(center, closest)
		inside := false
		if h, ok := tri.Height(center); ok {
			dy := math.Abs(h - center[1])
			if dy > q.m_halfExtents[1] {
				continue
			}
			inside = true
			d = dy * dy
		}
		// Triangles under the position beat triangles beside it.
		if overPoly && !inside {
			continue
		}
		if (inside && !overPoly) || d < nearestDist {
			nearestDist = d
			nearestRef = tri.Ref
			nearestPt = closest
			overPoly = inside
		}
	}

	if nearestRef == DT_NULL_TRI {
		return DT_NULL_TRI, center, errors.Wrapf(ErrNoTriangle, "position %v", center)
	}
	return nearestRef, nearestPt, nil
}

// FindPath is an A* search over the triangle adjacency graph. Node positions
// are the midpoints of the edges the search entered through.
func (q *DtNavMeshQuery) FindPath(ctx context.Context, startRef, endRef DtTriRef,
	startPos, endPos common.Vec3, filter *DtQueryFilter) (PathResult, error) {
	// Validate input
	if !q.m_nav.IsValidTriRef(startRef) || !q.m_nav.IsValidTriRef(endRef) ||
		!common.Visfinite(startPos) || !common.Visfinite(endPos) {
		return PathResult{}, errors.Wrapf(ErrInvalidParam, "find path %d -> %d", startRef, endRef)
	}
	if filter == nil {
		filter = NewDtQueryFilter()
	}

	if startRef == endRef {
		return PathResult{Corridor: []DtTriRef{startRef}}, nil
	}

	nodePool := NewDtNodePool(q.m_maxNodes)
	openList := NewDtSortedNodeList[*DtNode](min(q.m_maxNodes, 256))

	startNode := nodePool.GetNode(startRef)
	startNode.Pos = startPos
	startNode.Cost = 0
	startNode.Total = common.Vdist(startPos, endPos) * H_SCALE
	startNode.Flags = DT_NODE_OPEN
	openList.InsertSorted(startNode)

	lastBestNode := startNode
	lastBestNodeCost := startNode.Total

	outOfNodes := false
	expanded := 0

	for {
		if err := ctx.Err(); err != nil {
			return PathResult{}, errors.Wrap(err, "find path")
		}

		// Remove node from open list and put it in closed list.
		bestNode, ok := openList.PopMin()
		if !ok {
			break
		}
		bestNode.Flags &^= DT_NODE_OPEN
		bestNode.Flags |= DT_NODE_CLOSED
		expanded++

		// Reached the goal, stop searching.
		if bestNode.Id == endRef {
			lastBestNode = bestNode
			break
		}

		bestTri := q.m_nav.m_tris[bestNode.Id]
		parentRef := DT_NULL_TRI
		if bestNode.Parent != nil {
			parentRef = bestNode.Parent.Id
		}

		for _, neighbourRef := range bestTri.Neis {
			// Skip borders and do not expand back to where we came from.
			if neighbourRef == DT_NULL_TRI || neighbourRef == parentRef {
				continue
			}
			neighbourTri := q.m_nav.m_tris[neighbourRef]
			if !filter.PassFilter(neighbourTri) {
				continue
			}

			neighbourNode := nodePool.GetNode(neighbourRef)
			if neighbourNode == nil {
				outOfNodes = true
				continue
			}

			// If the node is visited the first time, calculate node position.
			if neighbourNode.Flags == 0 {
				portal, _ := bestTri.PortalTo(neighbourTri)
				neighbourNode.Pos = portal.Midpoint()
			}

			// Calculate cost and heuristic.
			var cost, heuristic float64
			if neighbourRef == endRef {
				// Special case for last node.
				curCost := filter.getCost(bestNode.Pos, neighbourNode.Pos, bestTri)
				endCost := filter.getCost(neighbourNode.Pos, endPos, neighbourTri)
				cost = bestNode.Cost + curCost + endCost
				heuristic = 0
			} else {
				curCost := filter.getCost(bestNode.Pos, neighbourNode.Pos, bestTri)
				cost = bestNode.Cost + curCost
				heuristic = common.Vdist(neighbourNode.Pos, endPos) * H_SCALE
			}
			total := cost + heuristic

			// The node is already open or closed and the new result is worse, skip.
			if neighbourNode.Flags&(DT_NODE_OPEN|DT_NODE_CLOSED) != 0 && total >= neighbourNode.Total {
				continue
			}

			// The weight is about to change, take the node out while it
			// still sorts under its old one.
			if neighbourNode.Flags&DT_NODE_OPEN != 0 {
				openList.Remove(neighbourNode)
			}

			neighbourNode.Parent = bestNode
			neighbourNode.Flags &^= DT_NODE_CLOSED
			neighbourNode.Flags |= DT_NODE_OPEN
			neighbourNode.Cost = cost
			neighbourNode.Total = total
			openList.InsertSorted(neighbourNode)

			// Update nearest node to target so far.
			if heuristic < lastBestNodeCost {
				lastBestNodeCost = heuristic
				lastBestNode = neighbourNode
			}
		}
	}

	result := PathResult{
		Corridor:   q.getPathToNode(lastBestNode, nodePool.GetNodeCount()),
		Partial:    lastBestNode.Id != endRef,
		OutOfNodes: outOfNodes,
		Expanded:   expanded,
	}
	q.m_logger.Debug("find path",
		zap.Int32("start", int32(startRef)),
		zap.Int32("end", int32(endRef)),
		zap.Int("corridor", len(result.Corridor)),
		zap.Int("expanded", expanded),
		zap.Bool("partial", result.Partial),
		zap.Bool("outOfNodes", outOfNodes))
	return result, nil
}

func (q *DtNavMeshQuery) getPathToNode(endNode *DtNode, maxLen int) []DtTriRef {
	var path []DtTriRef
	for node := endNode; node != nil; node = node.Parent {
		path = append(path, node.Id)
		dtAssertTrue(len(path) <= maxLen, "cycle in search tree at triangle %d", node.Id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindStraightPath smooths a corridor into waypoints. The last waypoint is
// endPos, the start position is not included.
func (q *DtNavMeshQuery) FindStraightPath(startPos, endPos common.Vec3, corridor []DtTriRef) (StraightPath, time.Duration, error) {
	if len(corridor) == 0 || !common.Visfinite(startPos) || !common.Visfinite(endPos) {
		return nil, 0, errors.Wrap(ErrInvalidParam, "find straight path")
	}
	for i, ref := range corridor {
		if !q.m_nav.IsValidTriRef(ref) {
			return nil, 0, errors.Wrapf(ErrInvalidParam, "corridor index %d: triangle ref %d", i, ref)
		}
	}

	traverser := NewTriangleTraverser(startPos, endPos, q.m_nav.GetTrisByRefs(corridor))
	waypoints := traverser.TraverseTriangles()
	return StraightPath(waypoints), traverser.StopWatch().Elapsed(), nil
}

// FindWaypoints snaps both positions onto the mesh, searches a corridor and
// smooths it. When the goal is unreachable the path ends at the point of the
// corridor's last triangle closest to endPos.
func (q *DtNavMeshQuery) FindWaypoints(ctx context.Context, startPos, endPos common.Vec3, filter *DtQueryFilter) (*QueryResult, error) {
	if filter == nil {
		filter = NewDtQueryFilter()
	}
	startRef, startPt, err := q.FindNearestTri(startPos, filter)
	if err != nil {
		return nil, errors.Wrap(err, "start")
	}
	endRef, endPt, err := q.FindNearestTri(endPos, filter)
	if err != nil {
		return nil, errors.Wrap(err, "end")
	}

	res := &QueryResult{StartRef: startRef, EndRef: endRef, StartPos: startPt, EndPos: endPt}

	searchStart := time.Now()
	res.Path, err = q.FindPath(ctx, startRef, endRef, startPt, endPt, filter)
	if err != nil {
		return nil, err
	}
	res.SearchTime = time.Since(searchStart)

	if res.Path.Partial {
		last := q.m_nav.GetTriByRef(res.Path.Corridor[len(res.Path.Corridor)-1])
		res.EndPos = last.ClosestPoint(endPt)
	}

	res.Waypoints, res.SmoothTime, err = q.FindStraightPath(res.StartPos, res.EndPos, res.Path.Corridor)
	if err != nil {
		return nil, err
	}

	q.m_logger.Debug("find waypoints",
		zap.Int("waypoints", len(res.Waypoints)),
		zap.Duration("search", res.SearchTime),
		zap.Duration("smooth", res.SmoothTime))
	return res, nil
}
