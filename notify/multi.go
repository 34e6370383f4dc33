package notify

import "errors"

// Multi combines multiple Notifier implementations.
// Every notifier is tried in order; the errors are joined.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a Multi notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify implements Notifier.Notify.
func (m *Multi) Notify(ev Event) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Notifier.Close.
func (m *Multi) Close() error {
	var lastErr error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
