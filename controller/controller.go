// Package controller runs the poll loop: read a tag, notify, play feedback.
package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"rfidosc/feedback"
	"rfidosc/indicator"
	"rfidosc/reader"
	"rfidosc/tags"
)

// Params holds the poll loop timing.
type Params struct {
	Timeout  time.Duration `yaml:"timeout"`  // bounded reader wait, default 500ms
	Interval time.Duration `yaml:"interval"` // pause between polls, default 100ms
}

// DefaultParams returns the poll timing of the device script.
func DefaultParams() Params {
	return Params{
		Timeout:  500 * time.Millisecond,
		Interval: 100 * time.Millisecond,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.Timeout <= 0 {
		p.Timeout = d.Timeout
	}
	if p.Interval <= 0 {
		p.Interval = d.Interval
	}
	return p
}

// Controller holds the hardware handles and tables the loop works on.
type Controller struct {
	reader     reader.TagReader
	registry   *tags.Registry
	dispatcher *feedback.Dispatcher
	indicator  indicator.Indicator
	params     Params

	sleep func(context.Context, time.Duration)
}

// New creates a Controller. Zero Params fields take their defaults.
func New(r reader.TagReader, reg *tags.Registry, d *feedback.Dispatcher, ind indicator.Indicator, params Params) *Controller {
	return &Controller{
		reader:     r,
		registry:   reg,
		dispatcher: d,
		indicator:  ind,
		params:     params.withDefaults(),
		sleep:      sleepCtx,
	}
}

// Params returns the effective poll timing.
func (c *Controller) Params() Params {
	return c.params
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Run polls until ctx is cancelled or a reader, transport or strip error
// occurs. Cancellation returns nil.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.indicator.Idle(); err != nil {
		return fmt.Errorf("idle indicator: %w", err)
	}
	log.Printf("Polling reader every %v (timeout %v), %d tags registered",
		c.params.Interval, c.params.Timeout, c.registry.Len())

	for {
		if ctx.Err() != nil {
			return nil
		}

		uid, err := c.reader.Read(ctx, c.params.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read tag: %w", err)
		}

		if len(uid) > 0 {
			if err := c.HandleUID(uid); err != nil {
				return err
			}
		}
		c.sleep(ctx, c.params.Interval)
	}
}

// HandleUID runs one poll body for a UID: match, dispatch, then feedback.
// An empty UID is ignored. It always runs to completion.
func (c *Controller) HandleUID(uid tags.UID) error {
	if len(uid) == 0 {
		return nil
	}

	rec, ok := c.registry.Match(uid)
	if !ok {
		fmt.Printf("Unknown tag detected with UID: %s\n", uid)
		fmt.Printf("Tag UID: %s\n", uid.Hex())

		if _, err := c.dispatcher.DispatchUnknown(uid); err != nil {
			return err
		}
		if err := c.indicator.Unknown(uid); err != nil {
			return fmt.Errorf("unknown tag feedback: %w", err)
		}
		return c.idle()
	}

	fmt.Printf("Tag %d detected. %s\n", rec.ID, rec.Label)
	msg, sent, err := c.dispatcher.Dispatch(rec)
	if err != nil {
		return err
	}
	address := ""
	if sent {
		address = msg.Address
	}
	if err := c.indicator.Matched(rec, address); err != nil {
		return fmt.Errorf("tag %d feedback: %w", rec.ID, err)
	}
	return c.idle()
}

func (c *Controller) idle() error {
	if err := c.indicator.Idle(); err != nil {
		return fmt.Errorf("idle indicator: %w", err)
	}
	return nil
}
