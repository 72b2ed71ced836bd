package detour

import (
	"fmt"

	"navpath/common"
)

// TransitionType tells the movement system how to reach a waypoint.
type TransitionType int32

const (
	TransitionWalk TransitionType = iota
	TransitionJump
	TransitionClimb
	TransitionSwim
)

func (t TransitionType) String() string {
	switch t {
	case TransitionWalk:
		return "walk"
	case TransitionJump:
		return "jump"
	case TransitionClimb:
		return "climb"
	case TransitionSwim:
		return "swim"
	}
	return fmt.Sprintf("transition(%d)", int32(t))
}

// Waypoint is a corner of the smoothed path and how to move onto it.
type Waypoint struct {
	Pos        common.Vec3
	Transition TransitionType
}

// Triangle is a mesh cell as seen by the funnel: its centroid and the edge
// it shares with a neighbouring cell.
type Triangle[T any] interface {
	Center() common.Vec3
	PortalTo(other T) (common.LineSegment, bool)
}

// funnelState is the visibility cone anchored at the current apex. The
// bound indices record the triangle at which each bound was last set, which
// is where the walk resumes after a turn.
type funnelState struct {
	apex       common.Vec3
	hasCone    bool
	left       common.Vec3
	right      common.Vec3
	leftIndex  int
	rightIndex int
}

// TriangleTraverser turns a corridor of adjacent triangles into the shortest
// waypoint path from start to target that stays inside the corridor.
//
// A traverser serves a single call and must not be shared between goroutines.
type TriangleTraverser[T Triangle[T]] struct {
	startPos  common.Vec3
	targetPos common.Vec3
	triangles []T

	waypoints  []Waypoint
	funnel     funnelState
	index      int
	iterations int

	portalLeft  common.Vec3
	portalRight common.Vec3

	stopWatch *common.StopWatch
}

// NewTriangleTraverser prepares a walk from startPos to targetPos through
// triangles, ordered from the start triangle to the target triangle.
func NewTriangleTraverser[T Triangle[T]](startPos, targetPos common.Vec3, triangles []T) *TriangleTraverser[T] {
	return &TriangleTraverser[T]{
		startPos:  startPos,
		targetPos: targetPos,
		triangles: triangles,
		stopWatch: common.NewStopWatch("triangleTraverser"),
	}
}

// Waypoints returns the result of the last traversal.
func (t *TriangleTraverser[T]) Waypoints() []Waypoint { return t.waypoints }

func (t *TriangleTraverser[T]) StopWatch() *common.StopWatch { return t.stopWatch }

// Iterations is the number of triangle steps taken by the last traversal,
// counting steps repeated after a turn.
func (t *TriangleTraverser[T]) Iterations() int { return t.iterations }

// TraverseTriangles runs the funnel over the corridor and returns the
// waypoints. The start position is never part of the result and the last
// waypoint is always the target. An empty corridor or a pair of consecutive
// triangles without a shared edge is a caller defect and panics.
func (t *TriangleTraverser[T]) TraverseTriangles() []Waypoint {
	dtAssertTrue(len(t.triangles) > 0, "empty triangle sequence")

	t.stopWatch.Start()
	defer t.stopWatch.Stop()

	t.waypoints = t.waypoints[:0]
	t.funnel = funnelState{apex: t.startPos}
	t.iterations = 0

	if len(t.triangles) == 1 {
		t.waypoints = append(t.waypoints, Waypoint{Pos: t.targetPos, Transition: TransitionWalk})
		return t.waypoints
	}

	for t.index = 0; t.index < len(t.triangles); t.index++ {
		t.iterations++
		t.traverseTriangle()
	}
	return t.waypoints
}

func (t *TriangleTraverser[T]) traverseTriangle() {
	f := &t.funnel

	if t.index == len(t.triangles)-1 {
		// A target outside the cone bends around one bound and ends the walk.
		if f.hasCone {
			towardsLeft := f.left.Sub(f.apex)
			towardsRight := f.right.Sub(f.apex)
			towardsTarget := t.targetPos.Sub(f.apex)

			if common.IsLeftOf(towardsRight, towardsTarget, false) { // right curve
				t.waypoints = append(t.waypoints, Waypoint{Pos: f.right, Transition: TransitionWalk})
			} else if common.IsLeftOf(towardsTarget, towardsLeft, false) { // left curve
				t.waypoints = append(t.waypoints, Waypoint{Pos: f.left, Transition: TransitionWalk})
			}
		}
		t.waypoints = append(t.waypoints, Waypoint{Pos: t.targetPos, Transition: TransitionWalk})
		return
	}

	t.findPortalEndpoints(t.triangles[t.index], t.triangles[t.index+1])

	// first portal, or first portal after a corner
	if !f.hasCone {
		f.hasCone = true
		f.left, f.right = t.portalLeft, t.portalRight
		f.leftIndex, f.rightIndex = t.index, t.index
		return
	}

	towardsLeft := f.left.Sub(f.apex)
	towardsRight := f.right.Sub(f.apex)
	towardsPortalLeft := t.portalLeft.Sub(f.apex)
	towardsPortalRight := t.portalRight.Sub(f.apex)

	// A bound sitting on the apex has no direction to compare against.
	boundOnApex := common.Vequal(f.left, f.apex) || common.Vequal(f.right, f.apex)

	// Collinear counts as inside here; the cone may shrink to a ray.
	if !boundOnApex {
		if common.IsLeftOf(towardsRight, towardsPortalLeft, false) { // right turn
			t.turn(f.right, f.rightIndex)
			return
		}
		if common.IsLeftOf(towardsPortalRight, towardsLeft, false) { // left turn
			t.turn(f.left, f.leftIndex)
			return
		}
	}

	// confine the cone, collinear counts as narrowing
	if common.IsLeftOf(towardsLeft, towardsPortalLeft, true) {
		f.left = t.portalLeft
		f.leftIndex = t.index
	}
	if common.IsLeftOf(towardsPortalRight, towardsRight, true) {
		f.right = t.portalRight
		f.rightIndex = t.index
	}
}

// turn emits a corner, moves the apex onto it and rewinds the walk to the
// triangle at which the corner became a bound. The loop increment resumes
// at the portal after it.
func (t *TriangleTraverser[T]) turn(corner common.Vec3, boundIndex int) {
	t.waypoints = append(t.waypoints, Waypoint{Pos: corner, Transition: TransitionWalk})
	t.funnel = funnelState{apex: corner}
	t.index = boundIndex
}

// findPortalEndpoints orders the shared edge of from and to into left and
// right as seen from the centroid of from.
func (t *TriangleTraverser[T]) findPortalEndpoints(from, to T) {
	portal, ok := from.PortalTo(to)
	dtAssertTrue(ok, "triangles %d and %d are not adjacent", t.index, t.index+1)

	t.portalLeft, t.portalRight = portal.A, portal.B

	center := from.Center()
	if common.IsLeftOf(t.portalRight.Sub(center), t.portalLeft.Sub(center), false) {
		t.portalLeft, t.portalRight = t.portalRight, t.portalLeft
	}
}
