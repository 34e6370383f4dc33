package light

import (
	"fmt"
	"time"
)

// Params are the animation constants.
type Params struct {
	Steps     int           `yaml:"steps"`      // fade steps, default 10
	StepDelay time.Duration `yaml:"step_delay"` // per step, default 20ms
	Rest      uint8         `yaml:"rest"`       // level at the end of a fade-out, default 0
	Dim       uint8         `yaml:"dim"`        // fade ceiling and move baseline, default 10
	Bright    uint8         `yaml:"bright"`     // move highlight, default 127
}

// DefaultParams returns the animation constants of the ring. Rest is 0, so
// the ring ends fully off after a fade-out; set rest for a dim idle glow.
func DefaultParams() Params {
	return Params{
		Steps:     10,
		StepDelay: 20 * time.Millisecond,
		Rest:      0,
		Dim:       10,
		Bright:    127,
	}
}

// withDefaults fills unset fields from DefaultParams.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Steps == 0 {
		p.Steps = d.Steps
	}
	if p.StepDelay == 0 {
		p.StepDelay = d.StepDelay
	}
	if p.Dim == 0 {
		p.Dim = d.Dim
	}
	if p.Bright == 0 {
		p.Bright = d.Bright
	}
	return p
}

func (p Params) validate() error {
	if p.Steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", p.Steps)
	}
	if p.StepDelay < 0 {
		return fmt.Errorf("negative step delay %v", p.StepDelay)
	}
	if p.Rest > p.Dim {
		return fmt.Errorf("rest level %d above dim level %d", p.Rest, p.Dim)
	}
	if p.Dim >= p.Bright {
		return fmt.Errorf("dim level %d not below bright level %d", p.Dim, p.Bright)
	}
	return nil
}

// Sequencer plays the feedback animations on a strip.
//
// Every animation blocks until its last frame is shown. The sequencer owns
// the strip buffer while an animation runs and must not be used from more
// than one goroutine.
type Sequencer struct {
	strip  Strip
	params Params
	sleep  func(time.Duration)
}

// NewSequencer creates a Sequencer. Zero fields in params take the defaults.
func NewSequencer(strip Strip, params Params) (*Sequencer, error) {
	params = params.withDefaults()
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("animation params: %w", err)
	}
	return &Sequencer{
		strip:  strip,
		params: params,
		sleep:  time.Sleep,
	}, nil
}

// Params returns the effective animation constants.
func (s *Sequencer) Params() Params {
	return s.params
}

// fadeLevel is the fill level at step of a fade-in.
func (s *Sequencer) fadeLevel(step int) uint8 {
	p := s.params
	span := int(p.Dim) - int(p.Rest)
	return uint8(int(p.Rest) + span*step/p.Steps)
}

func (s *Sequencer) fillShow(level uint8) error {
	s.strip.Fill(Gray(level))
	return s.strip.Show()
}

// FadeIn ramps every pixel from the rest level up to the dim level in
// Steps+1 frames.
func (s *Sequencer) FadeIn() error {
	for step := 0; step <= s.params.Steps; step++ {
		if err := s.fillShow(s.fadeLevel(step)); err != nil {
			return fmt.Errorf("fade in: %w", err)
		}
		s.sleep(s.params.StepDelay)
	}
	return nil
}

// FadeOut ramps every pixel from the dim level down to the rest level in
// Steps+1 frames.
func (s *Sequencer) FadeOut() error {
	for step := 0; step <= s.params.Steps; step++ {
		if err := s.fillShow(s.fadeLevel(s.params.Steps - step)); err != nil {
			return fmt.Errorf("fade out: %w", err)
		}
		s.sleep(s.params.StepDelay)
	}
	return nil
}

// Move sweeps a pair of diametrically opposite bright pixels around the
// first half of the strip over a dim baseline. At most two pixels are above
// the baseline in any frame and the strip ends at the baseline.
func (s *Sequencer) Move() error {
	dim := Gray(s.params.Dim)
	bright := Gray(s.params.Bright)

	if err := s.fillShow(s.params.Dim); err != nil {
		return fmt.Errorf("move: %w", err)
	}

	half := s.strip.Len() / 2
	for i := 0; i < half; i++ {
		opposite := i + half
		if err := s.setPair(i, opposite, bright); err != nil {
			return fmt.Errorf("move: %w", err)
		}
		if err := s.strip.Show(); err != nil {
			return fmt.Errorf("move: %w", err)
		}
		s.sleep(s.params.StepDelay)
		if err := s.setPair(i, opposite, dim); err != nil {
			return fmt.Errorf("move: %w", err)
		}
	}

	if err := s.strip.Show(); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	return nil
}

func (s *Sequencer) setPair(i, j int, c Color) error {
	if err := s.strip.Set(i, c); err != nil {
		return err
	}
	return s.strip.Set(j, c)
}

// ReadFeedback plays the successful read animation: FadeIn, Move, FadeOut.
func (s *Sequencer) ReadFeedback() error {
	if err := s.FadeIn(); err != nil {
		return err
	}
	if err := s.Move(); err != nil {
		return err
	}
	return s.FadeOut()
}

// Rest shows the rest level on every pixel.
func (s *Sequencer) Rest() error {
	if err := s.fillShow(s.params.Rest); err != nil {
		return fmt.Errorf("rest: %w", err)
	}
	return nil
}

// Blank turns every pixel off.
func (s *Sequencer) Blank() error {
	s.strip.Fill(Off)
	if err := s.strip.Show(); err != nil {
		return fmt.Errorf("blank: %w", err)
	}
	return nil
}
