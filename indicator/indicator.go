package indicator

import (
	"fmt"

	"rfidosc/light"
	"rfidosc/tags"
	"rfidosc/video"
)

// Indicator is the interface for read feedback implementations (LED ring,
// status LEDs, screen). Every method blocks until its feedback has been
// shown; an error is a hardware fault.
type Indicator interface {
	// Idle returns the indicator to its resting state.
	Idle() error

	// Matched plays the feedback for a registered tag.
	// address is the notification sent for it, empty if none was sent.
	Matched(rec tags.Record, address string) error

	// Unknown plays the feedback for a tag that is not registered.
	Unknown(uid tags.UID) error

	// Shutdown sets the indicator to shutdown state.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// LED ring or strip driven by the light sequencer.
	Strip light.Config `yaml:"strip"`

	// GPIO status LED pins (nil = not configured)
	GreenPin   *uint8 `yaml:"green_pin"`
	RedPin     *uint8 `yaml:"red_pin"`
	GPIODriver string `yaml:"gpio_driver"` // "govattu" (default) or "gpiomem"

	// Video framebuffer display (true = enabled)
	VideoEnabled bool         `yaml:"video_enabled"`
	Video        video.Config `yaml:"video"`
}

// New creates an Indicator based on the provided configuration.
// The ring is always present; status LEDs and the screen are added in front
// of it so they change state before the ring animation starts.
func New(cfg Config) (Indicator, error) {
	var indicators []Indicator

	if cfg.GreenPin != nil || cfg.RedPin != nil {
		gpio, err := NewGPIO(cfg.GPIODriver, cfg.GreenPin, cfg.RedPin)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, gpio)
	}

	if cfg.VideoEnabled {
		if !video.ScreenSupported() {
			return nil, video.ErrScreenNotCompiled
		}
		vid, err := NewVideo(cfg.Video)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, vid)
	}

	strip, err := light.New(cfg.Strip)
	if err != nil {
		return nil, fmt.Errorf("init strip: %w", err)
	}
	ring, err := NewRing(strip, cfg.Strip.Animation)
	if err != nil {
		strip.Close()
		return nil, err
	}
	indicators = append(indicators, ring)

	if len(indicators) == 1 {
		return indicators[0], nil
	}
	return &Multi{indicators: indicators}, nil
}
