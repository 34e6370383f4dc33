//go:build screen

package indicator

import (
	"rfidosc/tags"
	"rfidosc/video"
)

// VideoIndicator wraps video.Display to implement Indicator.
type VideoIndicator struct {
	d *video.Display
}

// NewVideo creates a new video-based indicator.
func NewVideo(cfg video.Config) (*VideoIndicator, error) {
	d, err := video.New(cfg)
	if err != nil {
		return nil, err
	}
	return &VideoIndicator{d: d}, nil
}

// Idle implements Indicator.Idle.
func (vi *VideoIndicator) Idle() error {
	vi.d.Idle()
	return nil
}

// Matched implements Indicator.Matched.
func (vi *VideoIndicator) Matched(rec tags.Record, address string) error {
	label := rec.Label
	if label == "" {
		label = "Tag " + rec.UID.Hex()
	}
	vi.d.Matched(label, address)
	return nil
}

// Unknown implements Indicator.Unknown.
func (vi *VideoIndicator) Unknown(uid tags.UID) error {
	vi.d.Unknown(uid.Hex())
	return nil
}

// Shutdown implements Indicator.Shutdown.
func (vi *VideoIndicator) Shutdown() {
	vi.d.Shutdown()
}

// Release implements Indicator.Release.
func (vi *VideoIndicator) Release() error {
	return vi.d.Release()
}
