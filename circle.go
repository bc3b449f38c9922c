package epicycle

import "math"

// Circle describes one epicycle of a frame: a circle centered at the tip of
// the previous epicycle, and the current angle of the vector it carries.
type Circle struct {
	Center Point
	Radius float64
	// Phase is the angle of the circle's vector, in radians. It is not
	// reduced modulo 2π.
	Phase float64
}

// Tip returns the end of the circle's vector, which is the center of the next
// circle in the chain.
func (c Circle) Tip() Point {
	return c.Center.Translate(VecFromAngle(c.Phase).Mul(c.Radius))
}

// Arm returns the circle's vector as a line from its center to its tip.
func (c Circle) Arm() Line {
	return Line{P0: c.Center, P1: c.Tip()}
}

func (c Circle) IsInf() bool {
	return c.Center.IsInf() || math.IsInf(c.Radius, 0) || math.IsInf(c.Phase, 0)
}

func (c Circle) IsNaN() bool {
	return c.Center.IsNaN() || math.IsNaN(c.Radius) || math.IsNaN(c.Phase)
}
