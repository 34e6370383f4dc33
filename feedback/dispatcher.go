package feedback

import (
	"fmt"
	"log"

	"rfidosc/notify"
	"rfidosc/tags"
)

// Dispatcher resolves tags against a Table and hands the message to a Notifier.
type Dispatcher struct {
	table    *Table
	notifier notify.Notifier
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(table *Table, notifier notify.Notifier) *Dispatcher {
	return &Dispatcher{table: table, notifier: notifier}
}

// Dispatch sends the notification for a matched tag. A tag with no route is
// logged and nothing is sent. Transport errors are returned unchanged in
// meaning; the caller decides whether they are fatal.
func (d *Dispatcher) Dispatch(rec tags.Record) (notify.Message, bool, error) {
	route, ok := d.table.Resolve(rec.ID)
	if !ok {
		log.Printf("Tag %d has no route, nothing sent", rec.ID)
		return notify.Message{}, false, nil
	}

	if route.Note != "" {
		fmt.Printf("sent tag %d (%s)\n", rec.ID, route.Note)
	}
	ev := notify.Event{Message: route.Message, Tag: &rec, UID: rec.UID}
	if err := d.notifier.Notify(ev); err != nil {
		return route.Message, true, fmt.Errorf("dispatch tag %d: %w", rec.ID, err)
	}
	return route.Message, true, nil
}

// DispatchUnknown sends the fixed error notification for an unregistered UID.
func (d *Dispatcher) DispatchUnknown(uid tags.UID) (notify.Message, error) {
	msg := d.table.Unknown()
	if err := d.notifier.Notify(notify.Event{Message: msg, UID: uid}); err != nil {
		return msg, fmt.Errorf("dispatch unknown tag: %w", err)
	}
	return msg, nil
}

// Table returns the dispatch table.
func (d *Dispatcher) Table() *Table {
	return d.table
}
