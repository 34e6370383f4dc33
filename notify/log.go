package notify

import "log"

// Log implements Notifier by only logging the message.
// Used for dry runs without a remote listener.
type Log struct{}

// Notify implements Notifier.Notify.
func (Log) Notify(ev Event) error {
	log.Printf("notify (dry run): %s", ev.Message)
	return nil
}

// Close implements Notifier.Close.
func (Log) Close() error {
	return nil
}
