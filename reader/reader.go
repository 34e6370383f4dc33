package reader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rfidosc/tags"
)

// ErrNoReader is returned by New for an unknown reader type.
var ErrNoReader = errors.New("no such reader type")

// TagReader is the interface for all tag/card reader implementations.
type TagReader interface {
	// Read waits up to timeout for a tag, or until ctx is cancelled.
	// A nil UID with a nil error means no tag was presented.
	Read(ctx context.Context, timeout time.Duration) (tags.UID, error)

	// Close releases any resources held by the reader.
	Close() error
}

// Config holds common configuration for reader implementations.
type Config struct {
	Type    string `yaml:"type"`    // "pn532-i2c" (default), "pn532-hsu", "wiegand", "keyboard", "serial", "fifo"
	Device  string `yaml:"device"`  // e.g., "/dev/i2c-1", "/dev/serial0", "/dev/input/event0", fifo path
	Address int    `yaml:"address"` // I2C address, default 0x24
	Baud    int    `yaml:"baud"`    // baud rate for serial devices
	Format  string `yaml:"format"`  // keyboard digits, e.g. "10h", "8d"

	// PN532 RSTPDN line, pulsed before the first command when set.
	ResetChip string `yaml:"reset_chip"` // e.g. "gpiochip0"
	ResetLine *int   `yaml:"reset_line"`
}

// New creates a TagReader based on the provided configuration.
func New(cfg Config) (TagReader, error) {
	switch cfg.Type {
	case "", "pn532", "pn532-i2c":
		if cfg.Device == "" {
			cfg.Device = "/dev/i2c-1"
		}
		return NewPN532(cfg)
	case "pn532-hsu":
		return NewPN532(cfg)
	case "wiegand":
		return NewWiegand(cfg.Device, cfg.Baud)
	case "keyboard", "10h-kbd":
		return NewKeyboard(cfg.Device, cfg.Format)
	case "serial":
		return NewSerial(cfg.Device)
	case "fifo":
		return NewFIFO(cfg.Device)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoReader, cfg.Type)
	}
}

// waitCtx derives the per-read context; a deadline that expires is a
// timeout, not an error.
func waitCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// timedOut reports whether err came from the per-read deadline rather than
// the caller's context.
func timedOut(parent context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil
}
