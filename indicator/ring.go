package indicator

import (
	"fmt"
	"log"

	"rfidosc/light"
	"rfidosc/tags"
)

// Animator plays the ring animations. *light.Sequencer implements it.
type Animator interface {
	FadeIn() error
	Move() error
	FadeOut() error
	Rest() error
	Blank() error
}

// Ring implements Indicator with the LED ring animations.
type Ring struct {
	anim  Animator
	strip light.Strip
}

// NewRing creates a Ring playing on strip.
func NewRing(strip light.Strip, params light.Params) (*Ring, error) {
	seq, err := light.NewSequencer(strip, params)
	if err != nil {
		return nil, fmt.Errorf("init ring: %w", err)
	}
	return &Ring{anim: seq, strip: strip}, nil
}

// Idle implements Indicator.Idle.
func (r *Ring) Idle() error {
	return r.anim.Rest()
}

// Matched implements Indicator.Matched: fade in, move, fade out.
func (r *Ring) Matched(rec tags.Record, address string) error {
	if err := r.anim.FadeIn(); err != nil {
		return err
	}
	if err := r.anim.Move(); err != nil {
		return err
	}
	return r.anim.FadeOut()
}

// Unknown implements Indicator.Unknown: fade out only.
func (r *Ring) Unknown(uid tags.UID) error {
	return r.anim.FadeOut()
}

// Shutdown implements Indicator.Shutdown.
func (r *Ring) Shutdown() {
	if err := r.anim.Blank(); err != nil {
		log.Printf("Ring shutdown: %v", err)
	}
}

// Release implements Indicator.Release.
func (r *Ring) Release() error {
	if r.strip == nil {
		return nil
	}
	return r.strip.Close()
}
