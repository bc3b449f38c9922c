package epicycle

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
)

// State is the mutable part of an animation.
type State struct {
	// Phase is the global phase 2π·Ticks/N of the most recent tick.
	Phase float64
	// Ticks is the number of ticks that advanced the animation.
	Ticks int
	// Trail holds the tip of the epicycle chain after every tick.
	Trail []Point
	// Completed is set once Ticks reaches N; it is never cleared except by
	// [Engine.Reset].
	Completed bool
}

// Frame is the output of one tick.
type Frame struct {
	// Circles holds one circle per retained component, in the spectrum's
	// stored order, each centered at the tip of the previous one. It is
	// empty once the animation has completed.
	Circles []Circle
	// Trail is the orbit traced so far. It shares memory with the engine and
	// must not be modified; it remains valid across later ticks.
	Trail []Point
}

// finite reports whether every circle and the trail's newest point are
// finite.
func (fr Frame) finite() bool {
	for _, c := range fr.Circles {
		if c.IsNaN() || c.IsInf() {
			return false
		}
	}
	if len(fr.Trail) > 0 {
		tip := fr.Trail[len(fr.Trail)-1]
		return !tip.IsNaN() && !tip.IsInf()
	}
	return true
}

// Engine animates a chain of epicycles driven by a spectrum. Each call to
// [Engine.Tick] advances the animation by one sample of the original boundary,
// so a full traversal takes exactly N ticks, where N is the spectrum's
// [Spectrum.SampleLen], regardless of how many components were retained.
//
// An Engine is not safe for concurrent use. Independent engines, including
// engines sharing one spectrum, may be used from different goroutines.
type Engine struct {
	spectrum Spectrum
	state    State
}

// NewEngine returns an engine in its initial, running state. It fails with
// [ErrInvalidInput] if s has no components, such as the zero Spectrum.
func NewEngine(s Spectrum) (*Engine, error) {
	if s.SampleLen() == 0 || s.Len() == 0 {
		return nil, fmt.Errorf("epicycle: cannot animate an empty spectrum: %w", ErrInvalidInput)
	}
	return &Engine{spectrum: s}, nil
}

// Spectrum returns the spectrum driving the engine.
func (e *Engine) Spectrum() Spectrum { return e.spectrum }

// Tick advances the animation by one step and returns the resulting frame.
//
// After tick t (counting from 1), the last point of the trail is the
// reconstruction of sample t mod N; for a full spectrum the trail thus
// visits samples 1, 2, …, N-1, 0. Once N ticks have happened the engine is
// completed, and further calls only return the unchanged trail.
func (e *Engine) Tick() Frame {
	if e.state.Completed {
		return Frame{Trail: slices.Clip(e.state.Trail)}
	}

	n := e.spectrum.SampleLen()
	e.state.Ticks++
	e.state.Phase = 2 * math.Pi * float64(e.state.Ticks) / float64(n)

	circles := make([]Circle, 0, e.spectrum.Len())
	tip := e.spectrum.chain(e.state.Phase, func(c Circle) {
		circles = append(circles, c)
	})
	e.state.Trail = append(e.state.Trail, tip)

	if e.state.Ticks == n {
		e.state.Completed = true
		Logger().Debug("animation completed",
			zap.Int("ticks", e.state.Ticks),
			zap.Int("components", e.spectrum.Len()))
	}
	return Frame{Circles: circles, Trail: slices.Clip(e.state.Trail)}
}

// Completed reports whether the animation has finished one full traversal.
func (e *Engine) Completed() bool { return e.state.Completed }

// State returns a snapshot of the animation state. The snapshot does not
// share memory with the engine.
func (e *Engine) State() State {
	st := e.state
	st.Trail = slices.Clone(e.state.Trail)
	return st
}

// Reset returns the engine to its initial state, discarding the trail.
// Frames returned before the reset remain valid.
func (e *Engine) Reset() {
	Logger().Debug("animation reset", zap.Int("ticks", e.state.Ticks))
	e.state = State{}
}

// Sink consumes the frames of an animation, typically by drawing them.
type Sink interface {
	Render(Frame) error
}

// SinkFunc adapts an ordinary function to the [Sink] interface.
type SinkFunc func(Frame) error

func (f SinkFunc) Render(fr Frame) error { return f(fr) }

// Play ticks e until it completes, handing every frame to s. It returns the
// number of frames rendered. If s returns an error, playback stops and the
// error is returned; the engine keeps the state it had after the failed
// frame's tick.
//
// A frame containing NaN or infinite coordinates, as produced by spectra of
// boundaries whose coordinates overflow during analysis, is not rendered.
// Play stops with an error wrapping [ErrInvalidInput] instead.
func Play(e *Engine, s Sink) (int, error) {
	var rendered int
	for !e.Completed() {
		fr := e.Tick()
		if !fr.finite() {
			Logger().Warn("non-finite frame", zap.Int("tick", e.state.Ticks))
			return rendered, fmt.Errorf("epicycle: tick %d produced a non-finite frame: %w", e.state.Ticks, ErrInvalidInput)
		}
		if err := s.Render(fr); err != nil {
			Logger().Warn("rendering failed", zap.Int("tick", e.state.Ticks), zap.Error(err))
			return rendered, fmt.Errorf("epicycle: rendering tick %d: %w", e.state.Ticks, err)
		}
		rendered++
	}
	Logger().Info("playback finished",
		zap.Int("frames", rendered),
		zap.Int("trail", len(e.state.Trail)))
	return rendered, nil
}
