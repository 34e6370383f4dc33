package notify

import (
	"fmt"

	"github.com/hypebeast/go-osc/osc"
)

// DefaultOSCPort is the port the remote OSC listener is expected on.
const DefaultOSCPort = 5005

// OSC implements Notifier by sending one OSC message per event over UDP.
type OSC struct {
	client *osc.Client
	host   string
	port   int
}

// NewOSC creates a new OSC notifier. Port 0 selects DefaultOSCPort.
func NewOSC(host string, port int) *OSC {
	if port == 0 {
		port = DefaultOSCPort
	}
	return &OSC{
		client: osc.NewClient(host, port),
		host:   host,
		port:   port,
	}
}

// Notify implements Notifier.Notify.
func (o *OSC) Notify(ev Event) error {
	return o.Send(ev.Message)
}

// Send sends m as an OSC message with a single float32 argument.
func (o *OSC) Send(m Message) error {
	msg := osc.NewMessage(m.Address)
	msg.Append(m.Value)
	if err := o.client.Send(msg); err != nil {
		return fmt.Errorf("send %s to %s:%d: %w", m.Address, o.host, o.port, err)
	}
	return nil
}

// Addr returns the remote host:port.
func (o *OSC) Addr() string {
	return fmt.Sprintf("%s:%d", o.host, o.port)
}

// Close implements Notifier.Close.
func (o *OSC) Close() error {
	return nil
}
