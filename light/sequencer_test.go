package light

import (
	"errors"
	"testing"
	"time"
)

func newTestSequencer(t *testing.T, pixels int, params Params) (*Sequencer, *Memory, *[]time.Duration) {
	t.Helper()
	strip := NewMemory(pixels)
	seq, err := NewSequencer(strip, params)
	if err != nil {
		t.Fatalf("NewSequencer: %v", err)
	}
	var sleeps []time.Duration
	seq.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return seq, strip, &sleeps
}

func uniformLevel(t *testing.T, frame []Color) uint8 {
	t.Helper()
	for i, c := range frame {
		if c != frame[0] {
			t.Fatalf("pixel %d is %v, pixel 0 is %v", i, c, frame[0])
		}
	}
	return frame[0].R
}

func TestFadeIn_Levels(t *testing.T) {
	seq, strip, sleeps := newTestSequencer(t, DefaultPixels, Params{})

	if err := seq.FadeIn(); err != nil {
		t.Fatalf("FadeIn: %v", err)
	}

	frames := strip.Frames()
	if len(frames) != 11 {
		t.Fatalf("Expected 11 frames, got %d", len(frames))
	}
	want := []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for i, f := range frames {
		if got := uniformLevel(t, f); got != want[i] {
			t.Errorf("frame %d: level %d, want %d", i, got, want[i])
		}
	}
	if len(*sleeps) != 11 || (*sleeps)[0] != 20*time.Millisecond {
		t.Errorf("Expected 11 sleeps of 20ms, got %v", *sleeps)
	}
}

func TestFadeOut_Levels(t *testing.T) {
	seq, strip, _ := newTestSequencer(t, 8, Params{Steps: 4, Dim: 10})

	if err := seq.FadeOut(); err != nil {
		t.Fatalf("FadeOut: %v", err)
	}

	want := []uint8{10, 7, 5, 2, 0}
	frames := strip.Frames()
	if len(frames) != len(want) {
		t.Fatalf("Expected %d frames, got %d", len(want), len(frames))
	}
	for i, f := range frames {
		if got := uniformLevel(t, f); got != want[i] {
			t.Errorf("frame %d: level %d, want %d", i, got, want[i])
		}
	}
}

func TestFadeInFadeOut_RoundTrip(t *testing.T) {
	for _, params := range []Params{{}, {Rest: 3}, {Steps: 7, Dim: 40, Rest: 1}} {
		seq, strip, _ := newTestSequencer(t, DefaultPixels, params)

		if err := seq.Rest(); err != nil {
			t.Fatalf("Rest: %v", err)
		}
		before := append([]Color(nil), strip.Last()...)

		if err := seq.FadeIn(); err != nil {
			t.Fatalf("FadeIn: %v", err)
		}
		if err := seq.FadeOut(); err != nil {
			t.Fatalf("FadeOut: %v", err)
		}

		after := strip.Last()
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("params %+v: pixel %d was %v before, %v after", params, i, before[i], after[i])
			}
		}
	}
}

func TestMove_AtMostTwoAboveBaseline(t *testing.T) {
	for _, n := range []int{24, 7, 2, 1} {
		seq, strip, sleeps := newTestSequencer(t, n, Params{})
		dim := seq.Params().Dim

		if err := seq.Move(); err != nil {
			t.Fatalf("Move: %v", err)
		}

		half := n / 2
		frames := strip.Frames()
		if len(frames) != half+2 {
			t.Fatalf("n=%d: expected %d frames, got %d", n, half+2, len(frames))
		}
		if len(*sleeps) != half {
			t.Errorf("n=%d: expected %d sleeps, got %d", n, half, len(*sleeps))
		}

		for fi, f := range frames {
			var lit []int
			for i, c := range f {
				if c.Level() > dim {
					lit = append(lit, i)
				}
				if c.Level() < dim {
					t.Errorf("n=%d frame %d: pixel %d below baseline", n, fi, i)
				}
			}
			if len(lit) > 2 {
				t.Errorf("n=%d frame %d: %d pixels above baseline", n, fi, len(lit))
			}
			// Frames 1..half light step i and its opposite.
			if fi >= 1 && fi <= half {
				i := fi - 1
				if len(lit) != 2 || lit[0] != i || lit[1] != i+half {
					t.Errorf("n=%d frame %d: lit %v, want [%d %d]", n, fi, lit, i, i+half)
				}
			}
		}

		for i, c := range strip.Last() {
			if c != Gray(dim) {
				t.Errorf("n=%d: pixel %d ends at %v, want baseline", n, i, c)
			}
		}
	}
}

func TestMove_BrightLevel(t *testing.T) {
	seq, strip, _ := newTestSequencer(t, 4, Params{})

	if err := seq.Move(); err != nil {
		t.Fatalf("Move: %v", err)
	}
	frame := strip.Frames()[1]
	if frame[0] != Gray(127) || frame[2] != Gray(127) {
		t.Errorf("Expected pixels 0 and 2 at 127, got %v", frame)
	}
	if frame[1] != Gray(10) || frame[3] != Gray(10) {
		t.Errorf("Expected pixels 1 and 3 at baseline, got %v", frame)
	}
}

func TestReadFeedback_Order(t *testing.T) {
	seq, strip, _ := newTestSequencer(t, 6, Params{Steps: 2})

	if err := seq.ReadFeedback(); err != nil {
		t.Fatalf("ReadFeedback: %v", err)
	}

	// fade-in 0,5,10 | move base, 3 sweep frames, final | fade-out 10,5,0
	var levels []uint8
	for _, f := range strip.Frames() {
		levels = append(levels, f[5].Level())
	}
	want := []uint8{0, 5, 10, 10, 10, 10, 127, 10, 10, 5, 0}
	if len(levels) != len(want) {
		t.Fatalf("Expected %d frames, got %d (%v)", len(want), len(levels), levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("pixel 5 levels %v, want %v", levels, want)
		}
	}
}

type failingStrip struct {
	*Memory
	err error
}

func (f *failingStrip) Show() error { return f.err }

func TestSequencer_StripErrorPropagates(t *testing.T) {
	boom := errors.New("bus error")
	seq, err := NewSequencer(&failingStrip{Memory: NewMemory(4), err: boom}, Params{})
	if err != nil {
		t.Fatal(err)
	}
	seq.sleep = func(time.Duration) {}

	for name, fn := range map[string]func() error{
		"FadeIn":       seq.FadeIn,
		"FadeOut":      seq.FadeOut,
		"Move":         seq.Move,
		"ReadFeedback": seq.ReadFeedback,
		"Rest":         seq.Rest,
		"Blank":        seq.Blank,
	} {
		if err := fn(); !errors.Is(err, boom) {
			t.Errorf("%s: expected bus error, got %v", name, err)
		}
	}
}

func TestNewSequencer_InvalidParams(t *testing.T) {
	tests := []Params{
		{Steps: -1},
		{Rest: 20, Dim: 10},
		{Dim: 200, Bright: 100},
		{StepDelay: -time.Millisecond},
	}
	for _, p := range tests {
		if _, err := NewSequencer(NewMemory(4), p); err == nil {
			t.Errorf("params %+v: expected error", p)
		}
	}
}

func TestFadeOut_EndsAtRest(t *testing.T) {
	if DefaultParams().Rest != 0 {
		t.Fatalf("Expected default rest 0, got %d", DefaultParams().Rest)
	}
	for _, rest := range []uint8{0, 3} {
		seq, strip, _ := newTestSequencer(t, 4, Params{Rest: rest})
		if err := seq.FadeOut(); err != nil {
			t.Fatalf("FadeOut: %v", err)
		}
		frames := strip.Frames()
		if got := uniformLevel(t, frames[len(frames)-1]); got != rest {
			t.Errorf("rest %d: last level %d", rest, got)
		}
	}
}
