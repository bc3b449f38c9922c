package epicycle

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Default configuration values.
const (
	DefaultTargetLength   = 128
	DefaultRetentionRatio = 1.0
	DefaultTransform      = "gonum"
)

// Config controls how [New] turns a raw boundary into an animation.
type Config struct {
	// TargetLength is the number of samples N the boundary is resampled to.
	// It must be at least 2.
	TargetLength int
	// RetentionRatio is the fraction of spectral components kept, in
	// (0, 1]. 1 keeps the full spectrum.
	RetentionRatio float64
	// Transform names the Fourier transform backend, see [TransformByName].
	Transform string
}

// DefaultConfig returns the configuration used by [New] when no options are
// given.
func DefaultConfig() Config {
	return Config{
		TargetLength:   DefaultTargetLength,
		RetentionRatio: DefaultRetentionRatio,
		Transform:      DefaultTransform,
	}
}

// Validate reports every problem with c. The returned error wraps
// [ErrInvalidInput]; use [multierr.Errors] to list the individual problems.
func (c Config) Validate() error {
	var err error
	if c.TargetLength < 2 {
		err = multierr.Append(err, fmt.Errorf("epicycle: target length %d is less than 2: %w", c.TargetLength, ErrInvalidInput))
	}
	if !(c.RetentionRatio > 0 && c.RetentionRatio <= 1) {
		err = multierr.Append(err, fmt.Errorf("epicycle: retention ratio %g is outside (0, 1]: %w", c.RetentionRatio, ErrInvalidInput))
	}
	if _, terr := TransformByName(c.Transform); terr != nil {
		err = multierr.Append(err, terr)
	}
	return err
}

// Option configures [New].
type Option func(*Config)

// WithConfig replaces the whole configuration. Options given after it still
// apply.
func WithConfig(c Config) Option {
	return func(o *Config) {
		*o = c
	}
}

// WithTargetLength sets the number of samples the boundary is resampled to.
func WithTargetLength(n int) Option {
	return func(o *Config) {
		o.TargetLength = n
	}
}

// WithRetentionRatio sets the fraction of spectral components to keep.
func WithRetentionRatio(r float64) Option {
	return func(o *Config) {
		o.RetentionRatio = r
	}
}

// WithTransformName selects the Fourier transform backend by name.
func WithTransformName(name string) Option {
	return func(o *Config) {
		o.Transform = name
	}
}

// Animation bundles the products of [New]: the resampled boundary and the
// engine animating it. The spectrum driving the engine is available via
// [Engine.Spectrum].
type Animation struct {
	Boundary Boundary
	*Engine
}

// New resamples raw, analyzes it and returns a ready-to-run animation.
//
// Construction either fully succeeds or fails without returning a partially
// built animation. Every failure wraps [ErrInvalidInput].
//
// Example:
//
//	anim, err := epicycle.New(points,
//		epicycle.WithTargetLength(256),
//		epicycle.WithRetentionRatio(0.1))
//	if err != nil {
//		return err
//	}
//	for !anim.Completed() {
//		frame := anim.Tick()
//		draw(frame.Circles, frame.Trail)
//	}
func New(raw []Point, opts ...Option) (*Animation, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transform, err := TransformByName(cfg.Transform)
	if err != nil {
		return nil, err
	}

	b, err := Resample(raw, cfg.TargetLength)
	if err != nil {
		return nil, err
	}
	s, err := Analyze(b, WithTransform(transform))
	if err != nil {
		return nil, err
	}
	if cfg.RetentionRatio < 1 {
		if s, err = s.Reduce(cfg.RetentionRatio); err != nil {
			return nil, err
		}
	}
	e, err := NewEngine(s)
	if err != nil {
		return nil, err
	}

	Logger().Debug("built animation",
		zap.Int("raw_points", len(raw)),
		zap.Int("samples", b.Len()),
		zap.Int("components", s.Len()),
		zap.String("transform", cfg.Transform))
	return &Animation{Boundary: b, Engine: e}, nil
}
