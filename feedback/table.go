// Package feedback maps recognised tags to the notification sent for them.
package feedback

import (
	"fmt"

	"rfidosc/notify"
)

// Route sends one message for any of a set of tag ids.
// Tags in the same route are interchangeable physical tokens.
type Route struct {
	Tags    []int          `yaml:"tags"`
	Message notify.Message `yaml:",inline"`
	Note    string         `yaml:"note"`
}

// Table is the static tag id -> message mapping plus the message sent
// for tags that are not in the registry.
type Table struct {
	routes  []Route
	byTag   map[int]int // tag id -> index into routes
	unknown notify.Message
}

// ErrorAddress is the address of the notification sent for unknown tags.
const ErrorAddress = "/4/multitoggle/2/8"

// NewTable builds a table. A tag id may appear in at most one route, and
// every message needs an address.
func NewTable(routes []Route, unknown notify.Message) (*Table, error) {
	if unknown.Address == "" {
		return nil, fmt.Errorf("unknown-tag message has no address")
	}

	t := &Table{
		routes:  make([]Route, 0, len(routes)),
		byTag:   make(map[int]int),
		unknown: unknown,
	}
	for i, r := range routes {
		if r.Message.Address == "" {
			return nil, fmt.Errorf("route %d: no address", i)
		}
		if len(r.Tags) == 0 {
			return nil, fmt.Errorf("route %d (%s): no tags", i, r.Message.Address)
		}
		for _, id := range r.Tags {
			if prev, ok := t.byTag[id]; ok {
				return nil, fmt.Errorf("tag %d routed to both %s and %s", id, t.routes[prev].Message.Address, r.Message.Address)
			}
			t.byTag[id] = len(t.routes)
		}
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// DefaultRoutes is the dispatch table of the installation.
func DefaultRoutes() []Route {
	return []Route{
		{Tags: []int{1, 3}, Message: notify.Message{Address: "/4/multitoggle/2/1", Value: 1.0}, Note: "increase intensity"},
		{Tags: []int{2, 4}, Message: notify.Message{Address: "/4/multitoggle/2/2", Value: 1.0}, Note: "decrease intensity"},
		{Tags: []int{6, 7}, Message: notify.Message{Address: "/4/multitoggle/2/3", Value: 1.0}, Note: "crickets"},
		{Tags: []int{5}, Message: notify.Message{Address: "/4/multitoggle/2/7", Value: 1.0}, Note: "mario"},
	}
}

// DefaultUnknown is sent when a tag is not in the registry.
func DefaultUnknown() notify.Message {
	return notify.Message{Address: ErrorAddress, Value: 1.0}
}

// DefaultTable returns the table of DefaultRoutes and DefaultUnknown.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRoutes(), DefaultUnknown())
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the route for a tag id.
func (t *Table) Resolve(id int) (Route, bool) {
	i, ok := t.byTag[id]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Unknown returns the message for unregistered tags.
func (t *Table) Unknown() notify.Message {
	return t.unknown
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
