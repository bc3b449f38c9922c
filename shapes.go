package epicycle

import "math"

// CirclePoints returns n points on a circle of the given radius around the
// origin, starting at angle 0 and proceeding counter-clockwise. The first and
// last points coincide, closing the outline.
func CirclePoints(n int, radius float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point(VecFromAngle(closedAngle(i, n)).Mul(radius))
	}
	return pts
}

// SquarePoints returns n points on the outline of an axis-aligned square
// centered on the origin with the given half side length. Point i lies where
// the ray at angle 2π·i/(n-1) crosses the outline, so points are denser near
// the corners. The first and last points coincide.
func SquarePoints(n int, half float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		v := VecFromAngle(closedAngle(i, n))
		pts[i] = Point(v.Mul(half / max(math.Abs(v.X), math.Abs(v.Y))))
	}
	return pts
}

func closedAngle(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n-1)
}
