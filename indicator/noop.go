package indicator

import "rfidosc/tags"

// Noop implements Indicator but does nothing.
// Used by commands that send notifications without local feedback.
type Noop struct{}

// Idle implements Indicator.Idle.
func (n *Noop) Idle() error { return nil }

// Matched implements Indicator.Matched.
func (n *Noop) Matched(rec tags.Record, address string) error { return nil }

// Unknown implements Indicator.Unknown.
func (n *Noop) Unknown(uid tags.UID) error { return nil }

// Shutdown implements Indicator.Shutdown.
func (n *Noop) Shutdown() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}
