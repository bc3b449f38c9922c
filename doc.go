// Package epicycle approximates closed planar curves with chains of rotating
// vectors, also known as epicycles, and animates the approximation frame by
// frame.
//
// Every vector in the chain corresponds to one component of the curve's
// discrete Fourier spectrum: its length is the component's magnitude, it
// starts at the component's phase, and it turns at the component's signed
// frequency. Placing each vector at the tip of the previous one and letting
// time run through one period makes the tip of the last vector trace the
// original curve.
//
// # Pipeline
//
// Turning a curve into an animation happens in three steps:
//
//   - [Resample] normalizes a raw polygon of any length into a [Boundary] of
//     exactly N samples, by decimation or by linear interpolation.
//   - [Analyze] computes the normalized discrete Fourier transform of the
//     boundary, yielding a [Spectrum] with one [Component] per bin.
//     [Spectrum.Reduce] optionally keeps only the largest components.
//   - [NewEngine] creates an [Engine] which, on every call to [Engine.Tick],
//     advances the chain by one sample and returns a [Frame] holding the
//     chain's circles and the orbit traced so far.
//
// [New] performs all three steps according to a [Config].
//
// # Simplification
//
// Reducing a spectrum is a simplification by magnitude and not a low-pass
// filter. The retained components are the ones with the largest radii,
// regardless of their frequency, which is what matters visually: a small
// number of large circles captures the overall shape, and the many small
// circles only add detail.
//
// # Completion
//
// One traversal of the curve takes exactly N ticks, where N is the length of
// the boundary the spectrum was computed from, even if the spectrum was
// reduced. Completion is detected by counting ticks, not by comparing the
// accumulated phase against 2π, which would be subject to rounding error.
// After completion the engine keeps its trail and ticks do nothing.
//
// # Rendering
//
// The package does not draw. Frames are plain data; a [Sink] consumes them
// and [Play] drives an engine into a sink until it completes. Hosts with
// their own frame loop call [Engine.Tick] once per frame instead.
//
// # Transforms
//
// The Fourier transform is pluggable via [Transform]. [GonumFFT], the
// default, and [DSPFFT] are fast transforms for sequences of any length;
// [NaiveDFT] evaluates the definition directly and serves as a reference.
//
// # Coordinates
//
// Points are interchangeable with complex numbers, with X as the real and Y
// as the imaginary part. Positive frequencies rotate counter-clockwise in a
// y-up coordinate system. Use [Boundary.Fit] to map sources in other units,
// such as geographic coordinates, into drawing space.
package epicycle
