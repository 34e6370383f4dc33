package indicator

import "rfidosc/tags"

// Multi combines multiple Indicator implementations.
// They are driven one after another, in order; the first error stops the fan-out.
type Multi struct {
	indicators []Indicator
}

// NewMulti creates a Multi indicator.
func NewMulti(indicators ...Indicator) *Multi {
	return &Multi{indicators: indicators}
}

// Idle implements Indicator.Idle.
func (m *Multi) Idle() error {
	for _, ind := range m.indicators {
		if err := ind.Idle(); err != nil {
			return err
		}
	}
	return nil
}

// Matched implements Indicator.Matched.
func (m *Multi) Matched(rec tags.Record, address string) error {
	for _, ind := range m.indicators {
		if err := ind.Matched(rec, address); err != nil {
			return err
		}
	}
	return nil
}

// Unknown implements Indicator.Unknown.
func (m *Multi) Unknown(uid tags.UID) error {
	for _, ind := range m.indicators {
		if err := ind.Unknown(uid); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown implements Indicator.Shutdown.
func (m *Multi) Shutdown() {
	for _, ind := range m.indicators {
		ind.Shutdown()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
