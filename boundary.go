package epicycle

import (
	"fmt"
	"iter"
	"math"

	"github.com/jbeda/geom"
)

// Boundary is a fixed-length, closed sequence of samples describing a planar
// curve. The sample following the last one is the first one.
//
// The zero value is an empty boundary. Boundaries are immutable; all accessors
// return copies.
type Boundary struct {
	samples []complex128
}

// NewBoundary returns a boundary holding exactly the given points, without
// resampling. It fails if pts is empty or contains NaN or infinite
// coordinates.
func NewBoundary(pts []Point) (Boundary, error) {
	if len(pts) == 0 {
		return Boundary{}, fmt.Errorf("epicycle: boundary has no points: %w", ErrInvalidInput)
	}
	if err := checkFinite(pts); err != nil {
		return Boundary{}, err
	}
	samples := make([]complex128, len(pts))
	for i, pt := range pts {
		samples[i] = pt.Complex()
	}
	return Boundary{samples}, nil
}

// Resample normalizes a raw polygon into a boundary of exactly n samples.
//
// If raw has at least n points, it is decimated: sample i is raw[(len(raw)-1)*i/(n-1)],
// so that the first and last samples are exactly the first and last points of
// raw. Otherwise it is interpolated: every vertex j of raw is placed at sample
// (n-1)*j/(len(raw)-1), and the samples between two consecutive vertices are
// evenly spaced along the segment joining them.
//
// Resample fails with [ErrInvalidInput] if n < 2, if raw has fewer than 2
// points, or if any coordinate is NaN or infinite.
func Resample(raw []Point, n int) (Boundary, error) {
	if n < 2 {
		return Boundary{}, fmt.Errorf("epicycle: target length %d is less than 2: %w", n, ErrInvalidInput)
	}
	if len(raw) < 2 {
		return Boundary{}, fmt.Errorf("epicycle: boundary has %d points, need at least 2: %w", len(raw), ErrInvalidInput)
	}
	if err := checkFinite(raw); err != nil {
		return Boundary{}, err
	}

	last := len(raw) - 1
	samples := make([]complex128, 0, n)
	if len(raw) >= n {
		for i := range n {
			samples = append(samples, raw[last*i/(n-1)].Complex())
		}
	} else {
		samples = append(samples, raw[0].Complex())
		prev := 0
		for j := 1; j <= last; j++ {
			target := (n - 1) * j / last
			for pt := range (Line{raw[j-1], raw[j]}).Subdivide(target - prev) {
				samples = append(samples, pt.Complex())
			}
			prev = target
		}
	}
	return Boundary{samples}, nil
}

func checkFinite(pts []Point) error {
	for i, pt := range pts {
		if pt.IsNaN() || pt.IsInf() {
			return fmt.Errorf("epicycle: point %d %v is not finite: %w", i, pt, ErrInvalidInput)
		}
	}
	return nil
}

// Len returns the number of samples.
func (b Boundary) Len() int { return len(b.samples) }

// At returns sample i. Indices wrap around, so At(Len()) is At(0) and At(-1)
// is the last sample. At panics on an empty boundary.
func (b Boundary) At(i int) Point {
	n := len(b.samples)
	i %= n
	if i < 0 {
		i += n
	}
	return PointFromComplex(b.samples[i])
}

// Points returns a copy of the samples as points.
func (b Boundary) Points() []Point {
	out := make([]Point, len(b.samples))
	for i, c := range b.samples {
		out[i] = PointFromComplex(c)
	}
	return out
}

// Samples returns a copy of the samples as complex numbers.
func (b Boundary) Samples() []complex128 {
	out := make([]complex128, len(b.samples))
	copy(out, b.samples)
	return out
}

// All yields the index and position of every sample, in order.
func (b Boundary) All() iter.Seq2[int, Point] {
	return func(yield func(int, Point) bool) {
		for i, c := range b.samples {
			if !yield(i, PointFromComplex(c)) {
				return
			}
		}
	}
}

// Bounds returns the smallest axis-aligned rectangle containing all samples.
// The bounds of an empty boundary are the zero rectangle.
func (b Boundary) Bounds() geom.Rect {
	if len(b.samples) == 0 {
		return geom.Rect{}
	}
	first := geom.Coord{X: real(b.samples[0]), Y: imag(b.samples[0])}
	r := geom.Rect{Min: first, Max: first}
	for _, c := range b.samples[1:] {
		r.ExpandToContainCoord(geom.Coord{X: real(c), Y: imag(c)})
	}
	return r
}

// Fit returns a copy of the boundary, uniformly scaled and translated so that
// its bounds are centered in dst and fill it along the constraining axis.
// The aspect ratio is preserved. A boundary without extent in either
// direction is only moved to the center of dst.
//
// Fit is useful for sources whose coordinates are not in drawing units, such
// as geographic outlines in degrees.
func (b Boundary) Fit(dst geom.Rect) Boundary {
	if len(b.samples) == 0 {
		return b
	}
	src := b.Bounds()
	w, h := src.Width(), src.Height()
	var scale float64
	switch {
	case w == 0 && h == 0:
		scale = 1
	case w == 0:
		scale = dst.Height() / h
	case h == 0:
		scale = dst.Width() / w
	default:
		scale = math.Min(dst.Width()/w, dst.Height()/h)
	}

	srcCenter := complex((src.Min.X+src.Max.X)/2, (src.Min.Y+src.Max.Y)/2)
	dstCenter := complex((dst.Min.X+dst.Max.X)/2, (dst.Min.Y+dst.Max.Y)/2)
	samples := make([]complex128, len(b.samples))
	for i, c := range b.samples {
		samples[i] = dstCenter + (c-srcCenter)*complex(scale, 0)
	}
	return Boundary{samples}
}
