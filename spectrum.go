package epicycle

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/cmplxs"
)

// Component is one bin of a boundary's discrete Fourier spectrum, in polar
// form.
type Component struct {
	// Frequency is the signed angular velocity of the component, in
	// revolutions per traversal of the boundary. Bins 0 through N/2 keep
	// their index; higher bins k are mapped to k-N and rotate clockwise.
	Frequency int
	// Magnitude is the normalized amplitude |X[k]|, the radius of the
	// component's epicycle.
	Magnitude float64
	// Phase is arg(X[k]), in (-π, π].
	Phase float64
}

// Coefficient returns the component as the complex coefficient X[k].
func (c Component) Coefficient() complex128 {
	return cmplx.Rect(c.Magnitude, c.Phase)
}

// Vector returns the component's vector at the given global phase, that is,
// rotated by Frequency·phase from its initial position.
func (c Component) Vector(phase float64) (Vec2, float64) {
	cur := float64(c.Frequency)*phase + c.Phase
	return VecFromAngle(cur).Mul(c.Magnitude), cur
}

// Spectrum is the spectral model of a boundary. It is either full, with one
// component per DFT bin in ascending bin order, or reduced, holding only the
// components with the largest magnitudes.
//
// Spectra are immutable and may be shared between engines.
type Spectrum struct {
	components []Component
	n          int
	reduced    bool
}

type analyzeOptions struct {
	transform Transform
}

// AnalyzeOption configures [Analyze].
type AnalyzeOption func(*analyzeOptions)

// WithTransform selects the Fourier transform implementation. The default is
// [GonumFFT]. A nil transform selects the default.
func WithTransform(t Transform) AnalyzeOption {
	return func(o *analyzeOptions) {
		if t != nil {
			o.transform = t
		}
	}
}

// Analyze computes the full spectrum of b using the normalized forward
// discrete Fourier transform
//
//	X[k] = (1/N) · Σ x[n]·e^(-2πikn/N),  k = 0…N-1
//
// Because of the 1/N normalization, summing X[k]·e^(2πikt/N) over all bins
// reproduces sample t exactly (up to rounding), and each magnitude is directly
// the radius of an epicycle.
//
// Analyze fails with [ErrInvalidInput] if b is empty.
func Analyze(b Boundary, opts ...AnalyzeOption) (Spectrum, error) {
	o := analyzeOptions{transform: GonumFFT}
	for _, opt := range opts {
		opt(&o)
	}

	n := b.Len()
	if n == 0 {
		return Spectrum{}, fmt.Errorf("epicycle: cannot analyze an empty boundary: %w", ErrInvalidInput)
	}

	coeffs := o.transform.Forward(b.Samples())
	if len(coeffs) != n {
		return Spectrum{}, fmt.Errorf("epicycle: transform returned %d coefficients for %d samples: %w",
			len(coeffs), n, ErrInvalidInput)
	}
	cmplxs.ScaleReal(1/float64(n), coeffs)

	components := make([]Component, n)
	for k, x := range coeffs {
		components[k] = Component{
			Frequency: signedFrequency(k, n),
			Magnitude: cmplx.Abs(x),
			Phase:     normalizePhase(cmplx.Phase(x)),
		}
	}

	Logger().Debug("analyzed boundary",
		zap.Int("samples", n),
		zap.Float64("dc", components[0].Magnitude))
	return Spectrum{components: components, n: n}, nil
}

// signedFrequency maps bin k of an n-point transform to its signed frequency.
func signedFrequency(k, n int) int {
	if k <= n/2 {
		return k
	}
	return k - n
}

// normalizePhase maps an angle returned by cmplx.Phase into (-π, π] and
// turns negative zero into positive zero.
func normalizePhase(phase float64) float64 {
	if phase <= -math.Pi {
		return math.Pi
	}
	if phase == 0 {
		return 0
	}
	return phase
}

// Reduce returns a spectrum containing only the ceil(r·N) components with the
// largest magnitudes, where N is [Spectrum.SampleLen]. Products exceeding an
// integer by at most 1e-9 count as that integer, so that ratios computed as
// k/N retain exactly k components. Components of equal
// magnitude are ordered by ascending frequency. The retained components keep
// their original frequencies and are stored in order of decreasing magnitude.
//
// This is a simplification by magnitude, not a low-pass filter: a
// high-frequency component survives if it is large enough, and a
// low-frequency one is dropped if it is small.
//
// Reducing an already reduced spectrum selects from its remaining components.
// Reduce fails with [ErrInvalidInput] unless 0 < r ≤ 1.
func (s Spectrum) Reduce(r float64) (Spectrum, error) {
	if !(r > 0 && r <= 1) {
		return Spectrum{}, fmt.Errorf("epicycle: retention ratio %g is outside (0, 1]: %w", r, ErrInvalidInput)
	}
	if len(s.components) == 0 {
		return Spectrum{}, fmt.Errorf("epicycle: cannot reduce an empty spectrum: %w", ErrInvalidInput)
	}

	// The small bias keeps ratios like 0.07 from retaining one extra
	// component when 0.07·100 rounds to 7.000000000000001.
	keep := int(math.Ceil(r*float64(s.n) - 1e-9))
	keep = max(1, min(keep, len(s.components)))

	sorted := slices.Clone(s.components)
	slices.SortStableFunc(sorted, func(a, b Component) int {
		if c := cmp.Compare(b.Magnitude, a.Magnitude); c != 0 {
			return c
		}
		return cmp.Compare(a.Frequency, b.Frequency)
	})

	out := Spectrum{
		components: slices.Clip(sorted[:keep]),
		n:          s.n,
		reduced:    true,
	}
	Logger().Debug("reduced spectrum",
		zap.Float64("ratio", r),
		zap.Int("retained", keep),
		zap.Int("samples", s.n))
	return out, nil
}

// Len returns the number of retained components.
func (s Spectrum) Len() int { return len(s.components) }

// SampleLen returns the length N of the boundary the spectrum was computed
// from. It does not change under [Spectrum.Reduce].
func (s Spectrum) SampleLen() int { return s.n }

// Reduced reports whether the spectrum was produced by [Spectrum.Reduce].
func (s Spectrum) Reduced() bool { return s.reduced }

// Components returns a copy of the retained components, in stored order.
func (s Spectrum) Components() []Component {
	return slices.Clone(s.components)
}

// Component returns the i'th retained component.
func (s Spectrum) Component(i int) Component {
	return s.components[i]
}

// Eval evaluates the inverse transform of the retained components at time
// t, where t = k/N corresponds to sample k and t = 1 completes one
// traversal. For a full spectrum, Eval(k/N) reproduces sample k.
func (s Spectrum) Eval(t float64) Point {
	return s.chain(2*math.Pi*t, nil)
}

// chain walks the retained components in stored order at the given global
// phase, placing each vector at the tip of the previous one. If emit is
// non-nil it is called with every component's circle. chain returns the tip
// of the last vector.
func (s Spectrum) chain(phase float64, emit func(Circle)) Point {
	var center Point
	for _, c := range s.components {
		v, cur := c.Vector(phase)
		if emit != nil {
			emit(Circle{Center: center, Radius: c.Magnitude, Phase: cur})
		}
		center = center.Translate(v)
	}
	return center
}
