package detour

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"navpath/common"
)

var (
	ErrInvalidParam = errors.New("invalid param")
	ErrNoTriangle   = errors.New("no triangle near position")
)

func dtAssertTrue(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("detour: "+format, args...))
	}
}

// dtClosestHeightPointTriangle returns the height of triangle abc at the
// x/z position of p, and false when p lies outside the triangle.
func dtClosestHeightPointTriangle(p, a, b, c common.Vec3) (h float64, ok bool) {
	const EPS = 1e-6
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	// Compute scaled barycentric coordinates
	denom := v0[0]*v1[2] - v0[2]*v1[0]
	if math.Abs(denom) < EPS {
		return h, false
	}
	u := v1[2]*v2[0] - v1[0]*v2[2]
	v := v0[0]*v2[2] - v0[2]*v2[0]

	if denom < 0 {
		denom = -denom
		u = -u
		v = -v
	}

	// If point lies inside the triangle, return interpolated ycoord.
	if u >= 0.0 && v >= 0.0 && (u+v) <= denom {
		h = a[1] + (v0[1]*u+v1[1]*v)/denom
		return h, true
	}
	return h, false
}

// dtDistancePtSegSqr2D returns the squared x/z distance from pt to segment
// pq and the parameter t of the closest point along pq.
func dtDistancePtSegSqr2D(pt, p, q common.Vec3) (t, d float64) {
	pqx := q[0] - p[0]
	pqz := q[2] - p[2]
	dx := pt[0] - p[0]
	dz := pt[2] - p[2]
	d = pqx*pqx + pqz*pqz
	t = pqx*dx + pqz*dz
	if d > 0 {
		t /= d
	}
	t = max(0, min(1, t))
	dx = p[0] + t*pqx - pt[0]
	dz = p[2] + t*pqz - pt[2]
	return t, dx*dx + dz*dz
}
