// Package notify delivers tag notifications to remote listeners.
package notify

import (
	"fmt"
	"log"

	"rfidosc/mqtt"
	"rfidosc/tags"
)

// Message is an OSC style notification: an address pattern and one float argument.
type Message struct {
	Address string  `yaml:"address"`
	Value   float32 `yaml:"value"`
}

func (m Message) String() string {
	return fmt.Sprintf("%s %g", m.Address, m.Value)
}

// Event is a Message together with the read that caused it.
// Tag is nil when the UID was not in the registry.
type Event struct {
	Message
	Tag *tags.Record
	UID tags.UID
}

// Notifier is the interface for notification transports.
// Notify is fire-and-forget: no acknowledgement and no retry.
type Notifier interface {
	Notify(ev Event) error

	// Close releases any resources held by the transport.
	Close() error
}

// OSCConfig holds the remote OSC listener address.
type OSCConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port messages are sent to.
func (c OSCConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultOSCPort
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// Config holds configuration for notifier implementations.
type Config struct {
	OSC  OSCConfig   `yaml:"osc"`
	MQTT mqtt.Config `yaml:"mqtt"`

	// Topic prefix for the MQTT mirror; events go to <prefix>/<client_id>/tag.
	TopicPrefix string `yaml:"topic_prefix"`
}

// New creates a Notifier based on the provided configuration.
// Returns a Multi notifier if both OSC and MQTT are configured, with the OSC
// transport first, and a Log notifier if neither is.
func New(cfg Config, clientID string) (Notifier, error) {
	var notifiers []Notifier

	if cfg.OSC.Host != "" {
		notifiers = append(notifiers, NewOSC(cfg.OSC.Host, cfg.OSC.Port))
	} else {
		log.Println("OSC disabled (no host configured)")
	}

	if cfg.MQTT.Host != "" {
		m, err := NewMQTT(cfg.MQTT, clientID, cfg.TopicPrefix)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, m)
	}

	if len(notifiers) == 0 {
		return Log{}, nil
	}
	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return &Multi{notifiers: notifiers}, nil
}
