package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec3 = mgl64.Vec3

// LineSegment is an edge between two points. The endpoint order carries no meaning.
type LineSegment struct {
	A, B Vec3
}

// Midpoint returns the point halfway between the endpoints.
func (s LineSegment) Midpoint() Vec3 {
	return s.A.Add(s.B).Mul(0.5)
}

// Length returns the euclidean length of the segment.
func (s LineSegment) Length() float64 {
	return s.B.Sub(s.A).Len()
}

// / Returns the square of the value.
// / @param[in]		a	The value.
// / @return The square of the value.
func Sqr[T IT](a T) T {
	return a * a
}

// / Returns the absolute value.
// / @param[in]		a	The value.
// / @return The absolute value of the specified value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// / Returns the distance between two points.
// / @param[in]		v1	A point. [(x, y, z)]
// / @param[in]		v2	A point. [(x, y, z)]
// / @return The distance between the two points.
func Vdist(v1, v2 Vec3) float64 {
	return v2.Sub(v1).Len()
}

// / Returns the square of the distance between two points.
func VdistSqr(v1, v2 Vec3) float64 {
	d := v2.Sub(v1)
	return d.Dot(d)
}

// / Derives the distance between the specified points on the xz-plane.
// /  @param[in]		v1	A point. [(x, y, z)]
// /  @param[in]		v2	A point. [(x, y, z)]
// / @return The distance between the point on the xz-plane.
// /
// / The vectors are projected onto the xz-plane, so the y-values are ignored.
func Vdist2D(v1, v2 Vec3) float64 {
	dx := v2[0] - v1[0]
	dz := v2[2] - v1[2]
	return math.Sqrt(dx*dx + dz*dz)
}

// Vequal reports exact value equality of two points.
func Vequal(p0, p1 Vec3) bool {
	return p0 == p1
}

// / Checks that the specified vector's components are all finite.
// /  @param[in]		v	A point. [(x, y, z)]
// / @return True if all of the point's components are finite, i.e. not NaN
// / or any of the infinities.
func Visfinite(v Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// CrossY returns the y component of u × v, the signed orientation of the
// two vectors projected onto the horizontal plane.
func CrossY(u, v Vec3) float64 {
	return u.Cross(v)[1]
}

// IsLeftOf reports whether v1 lies to the left of v2 on the horizontal plane.
// Collinear or zero-length vectors produce a zero cross product, in which case
// onZero is returned.
func IsLeftOf(v1, v2 Vec3, onZero bool) bool {
	crossY := CrossY(v1, v2)
	if crossY == 0 {
		return onZero
	}
	return crossY < 0
}

// / Derives the signed xz-plane area of the triangle ABC, or the relationship of line AB to point C.
// /  @param[in]		a		Vertex A. [(x, y, z)]
// /  @param[in]		b		Vertex B. [(x, y, z)]
// /  @param[in]		c		Vertex C. [(x, y, z)]
// / @return The signed xz-plane area of the triangle.
func TriArea2D(a, b, c Vec3) float64 {
	abx := b[0] - a[0]
	abz := b[2] - a[2]
	acx := c[0] - a[0]
	acz := c[2] - a[2]
	return acx*abz - abx*acz
}

// Centroid returns the arithmetic mean of the given points.
func Centroid(points ...Vec3) (c Vec3) {
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(points)))
}
