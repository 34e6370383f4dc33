//go:build !screen

package indicator

import (
	"rfidosc/tags"
	"rfidosc/video"
)

// NewVideo returns an error when screen support is not compiled in.
func NewVideo(cfg video.Config) (*VideoIndicator, error) {
	return nil, video.ErrScreenNotCompiled
}

// VideoIndicator is a stub when screen support is not compiled in.
type VideoIndicator struct{}

func (vi *VideoIndicator) Idle() error                                   { return nil }
func (vi *VideoIndicator) Matched(rec tags.Record, address string) error { return nil }
func (vi *VideoIndicator) Unknown(uid tags.UID) error                    { return nil }
func (vi *VideoIndicator) Shutdown()                                     {}
func (vi *VideoIndicator) Release() error                                { return nil }
