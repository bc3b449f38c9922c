package epicycle

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform computes the unnormalized forward discrete Fourier transform
//
//	X[k] = Σ x[n]·e^(-2πikn/N)
//
// of a complex sequence. Implementations must not modify seq.
type Transform interface {
	Forward(seq []complex128) []complex128
}

// TransformFunc adapts an ordinary function to the [Transform] interface.
type TransformFunc func(seq []complex128) []complex128

func (f TransformFunc) Forward(seq []complex128) []complex128 { return f(seq) }

var (
	// GonumFFT computes the transform with gonum's FFTPACK port. It
	// supports sequences of any length and is the default.
	GonumFFT Transform = TransformFunc(gonumForward)

	// DSPFFT computes the transform with go-dsp, which uses a radix-2
	// algorithm for power-of-two lengths and Bluestein's algorithm
	// otherwise.
	DSPFFT Transform = TransformFunc(fft.FFT)

	// NaiveDFT evaluates the defining sum directly in O(N²). It exists as a
	// reference for the fast transforms.
	NaiveDFT Transform = TransformFunc(naiveForward)
)

var transforms = map[string]Transform{
	"gonum": GonumFFT,
	"dsp":   DSPFFT,
	"naive": NaiveDFT,
}

// TransformByName returns the transform registered under name, which is one
// of "gonum", "dsp", or "naive".
func TransformByName(name string) (Transform, error) {
	if t, ok := transforms[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("epicycle: unknown transform %q (have %v): %w", name, TransformNames(), ErrInvalidInput)
}

// TransformNames returns the names accepted by [TransformByName], sorted.
func TransformNames() []string {
	return slices.Sorted(maps.Keys(transforms))
}

func gonumForward(seq []complex128) []complex128 {
	if len(seq) == 0 {
		return nil
	}
	return fourier.NewCmplxFFT(len(seq)).Coefficients(nil, seq)
}

func naiveForward(seq []complex128) []complex128 {
	n := len(seq)
	out := make([]complex128, n)
	for k := range n {
		var sum complex128
		for j, x := range seq {
			// Reduce k*j modulo n first to keep the angle small and exact
			// in its integer part.
			s, c := math.Sincos(-2 * math.Pi * float64(k*j%n) / float64(n))
			sum += x * complex(c, s)
		}
		out[k] = sum
	}
	return out
}
