package epicycle

import "iter"

// Line represents a line segment between two boundary vertices.
type Line struct {
	/// The line's start point.
	P0 Point
	/// The line's end point.
	P1 Point
}

// Eval returns the point at parameter t ∈ [0, 1] along the line.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Subdivide yields n evenly spaced points along the line, excluding P0 and
// including P1. The last point is P1 exactly, without rounding error.
func (l Line) Subdivide(n int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i := 1; i < n; i++ {
			if !yield(l.Eval(float64(i) / float64(n))) {
				return
			}
		}
		if n > 0 {
			yield(l.P1)
		}
	}
}
