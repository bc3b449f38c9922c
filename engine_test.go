package epicycle

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func mustEngine(t *testing.T, s Spectrum) *Engine {
	t.Helper()
	e, err := NewEngine(s)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEngineUnitSquare(t *testing.T) {
	e := mustEngine(t, mustAnalyze(t, unitSquare))

	for i := 1; i <= 4; i++ {
		if e.Completed() {
			t.Fatalf("completed before tick %d", i)
		}
		fr := e.Tick()
		if len(fr.Circles) != 4 {
			t.Errorf("tick %d: got %d circles, want 4", i, len(fr.Circles))
		}
		if len(fr.Trail) != i {
			t.Fatalf("tick %d: got trail of length %d", i, len(fr.Trail))
		}
		// Tick i reconstructs sample i mod 4.
		assertNear(t, fr.Trail[i-1], unitSquare[i%4], 1e-12)
	}
	if !e.Completed() {
		t.Error("not completed after 4 ticks")
	}

	st := e.State()
	if st.Ticks != 4 || !st.Completed {
		t.Errorf("got state %+v", st)
	}
	if math.Abs(st.Phase-2*math.Pi) > 1e-15 {
		t.Errorf("got final phase %g, want 2π", st.Phase)
	}
}

func TestEngineCircleChain(t *testing.T) {
	s := mustAnalyze(t, SquarePoints(12, 5))
	e := mustEngine(t, s)
	fr := e.Tick()

	if len(fr.Circles) != s.Len() {
		t.Fatalf("got %d circles, want %d", len(fr.Circles), s.Len())
	}
	if fr.Circles[0].Center != (Point{}) {
		t.Errorf("chain starts at %v, want the origin", fr.Circles[0].Center)
	}
	phase := 2 * math.Pi / float64(s.SampleLen())
	for i, c := range fr.Circles {
		comp := s.Component(i)
		if c.Radius != comp.Magnitude {
			t.Errorf("circle %d: got radius %g, want %g", i, c.Radius, comp.Magnitude)
		}
		if want := float64(comp.Frequency)*phase + comp.Phase; math.Abs(c.Phase-want) > 1e-12 {
			t.Errorf("circle %d: got phase %g, want %g", i, c.Phase, want)
		}
		if c.IsNaN() || c.IsInf() {
			t.Errorf("circle %d is not finite: %v", i, c)
		}
		// Every circle is centered on the tip of the previous one.
		if i > 0 {
			assertNear(t, c.Center, fr.Circles[i-1].Tip(), 1e-12)
		}
	}
	assertNear(t, fr.Trail[0], fr.Circles[len(fr.Circles)-1].Tip(), 1e-12)
}

func TestEngineCompletion(t *testing.T) {
	s := mustAnalyze(t, CirclePoints(40, 3))
	e := mustEngine(t, s)
	for range s.SampleLen() {
		e.Tick()
	}
	if !e.Completed() {
		t.Fatal("not completed after N ticks")
	}
	before := e.State()

	for range 5 {
		fr := e.Tick()
		if len(fr.Circles) != 0 {
			t.Errorf("got %d circles after completion, want none", len(fr.Circles))
		}
		diff(t, before.Trail, fr.Trail)
	}
	diff(t, before, e.State())
}

func TestEngineReducedCompletion(t *testing.T) {
	s := mustAnalyze(t, SquarePoints(64, 1))
	r, err := s.Reduce(0.1)
	if err != nil {
		t.Fatal(err)
	}
	e := mustEngine(t, r)
	var n int
	for !e.Completed() {
		fr := e.Tick()
		if len(fr.Circles) != r.Len() {
			t.Fatalf("got %d circles, want %d", len(fr.Circles), r.Len())
		}
		n++
	}
	// A reduced spectrum still takes one tick per original sample.
	if n != 64 {
		t.Errorf("completed after %d ticks, want 64", n)
	}
}

func TestEngineDeterminism(t *testing.T) {
	s := mustAnalyze(t, SquarePoints(33, 7))
	r, err := s.Reduce(0.3)
	if err != nil {
		t.Fatal(err)
	}
	for _, sp := range []Spectrum{s, r} {
		e1 := mustEngine(t, sp)
		e2 := mustEngine(t, sp)
		for range 20 {
			e1.Tick()
			e2.Tick()
		}
		t1, t2 := e1.State().Trail, e2.State().Trail
		if !slices.Equal(t1, t2) {
			t.Errorf("engines diverged:\n%v\n%v", t1, t2)
		}
	}
}

func TestEngineFullTraversal(t *testing.T) {
	b, err := Resample(SquarePoints(37, 50), 64)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Analyze(b)
	if err != nil {
		t.Fatal(err)
	}
	e := mustEngine(t, s)
	var fr Frame
	for !e.Completed() {
		fr = e.Tick()
	}
	for i, pt := range fr.Trail {
		assertNear(t, pt, b.At(i+1), 1e-9)
	}
}

func TestEngineTrailIsStable(t *testing.T) {
	e := mustEngine(t, mustAnalyze(t, unitSquare))
	first := e.Tick()
	kept := slices.Clone(first.Trail)
	e.Tick()
	e.Tick()
	diff(t, kept, first.Trail)

	// Appending to a frame's trail must not corrupt the engine.
	_ = append(first.Trail, Pt(99, 99))
	if got := e.State().Trail[1]; got == Pt(99, 99) {
		t.Error("appending to a frame's trail modified the engine's trail")
	}

	// Snapshots don't share memory with the engine.
	st := e.State()
	st.Trail[0] = Pt(-5, -5)
	if e.State().Trail[0] == Pt(-5, -5) {
		t.Error("State returned the engine's own trail")
	}
}

func TestEngineReset(t *testing.T) {
	e := mustEngine(t, mustAnalyze(t, unitSquare))
	for !e.Completed() {
		e.Tick()
	}
	done := e.State()
	e.Reset()
	diff(t, State{}, e.State())
	for !e.Completed() {
		e.Tick()
	}
	diff(t, done, e.State())
}

func TestNewEngineInvalid(t *testing.T) {
	if _, err := NewEngine(Spectrum{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got error %v, want ErrInvalidInput", err)
	}
}

type recordingSink struct {
	frames []Frame
	failAt int
}

func (r *recordingSink) Render(fr Frame) error {
	r.frames = append(r.frames, fr)
	if len(r.frames) == r.failAt {
		return errors.New("display lost")
	}
	return nil
}

func TestPlay(t *testing.T) {
	e := mustEngine(t, mustAnalyze(t, CirclePoints(16, 1)))
	var sink recordingSink
	n, err := Play(e, &sink)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16 || len(sink.frames) != 16 {
		t.Errorf("rendered %d frames (sink saw %d), want 16", n, len(sink.frames))
	}
	for i, fr := range sink.frames {
		if len(fr.Trail) != i+1 {
			t.Errorf("frame %d has a trail of %d points", i, len(fr.Trail))
		}
	}

	// Playing a completed engine renders nothing.
	if n, err := Play(e, &sink); n != 0 || err != nil {
		t.Errorf("got (%d, %v), want (0, nil)", n, err)
	}
}

func TestPlaySinkError(t *testing.T) {
	e := mustEngine(t, mustAnalyze(t, CirclePoints(16, 1)))
	sink := recordingSink{failAt: 3}
	n, err := Play(e, &sink)
	if err == nil {
		t.Fatal("expected an error")
	}
	if n != 2 {
		t.Errorf("rendered %d frames, want 2", n)
	}
	if e.State().Ticks != 3 || e.Completed() {
		t.Errorf("got state %+v after failure", e.State())
	}

	var frames int
	rest, err := Play(e, SinkFunc(func(Frame) error {
		frames++
		return nil
	}))
	if err != nil || rest != 13 || frames != 13 {
		t.Errorf("resumed playback rendered %d frames (%d seen, err %v), want 13", rest, frames, err)
	}
}

func TestPlayNonFinite(t *testing.T) {
	// The DC bin overflows: 1.7e308 + 1.7e308 is +Inf.
	huge := []Point{Pt(1.7e308, 0), Pt(1.7e308, 0)}
	e := mustEngine(t, mustAnalyze(t, huge, WithTransform(NaiveDFT)))
	var sink recordingSink
	n, err := Play(e, &sink)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got error %v, want ErrInvalidInput", err)
	}
	if n != 0 || len(sink.frames) != 0 {
		t.Errorf("rendered %d frames (sink saw %d), want none", n, len(sink.frames))
	}

	if !(Frame{}).finite() {
		t.Error("empty frame is not finite")
	}
	fr := Frame{Trail: []Point{Pt(0, 0), Pt(math.NaN(), 0)}}
	if fr.finite() {
		t.Error("frame with a NaN trail tip is finite")
	}
}
