package notify

import (
	"encoding/json"
	"fmt"
	"log"

	"rfidosc/mqtt"
)

const defaultTopicPrefix = "rfidosc"

// tagPayload is the JSON body published for every event.
type tagPayload struct {
	ID      int     `json:"id,omitempty"`
	Label   string  `json:"label,omitempty"`
	Known   bool    `json:"known"`
	UID     string  `json:"uid"`
	Address string  `json:"address"`
	Value   float32 `json:"value"`
}

// MQTT implements Notifier by mirroring events to an MQTT broker.
type MQTT struct {
	client *mqtt.Client
	topic  string
}

// NewMQTT creates the MQTT mirror and starts connecting in the background.
func NewMQTT(cfg mqtt.Config, clientID, prefix string) (*MQTT, error) {
	if clientID == "" {
		return nil, fmt.Errorf("mqtt: client_id missing in config")
	}
	if prefix == "" {
		prefix = defaultTopicPrefix
	}

	status := fmt.Sprintf("%s/%s/status", prefix, clientID)
	c, err := mqtt.New(cfg, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("init mqtt: %w", err)
	}

	go func() {
		if err := c.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()

	return &MQTT{
		client: c,
		topic:  fmt.Sprintf("%s/%s/tag", prefix, clientID),
	}, nil
}

// Notify implements Notifier.Notify. Delivery is best effort; broker
// trouble is logged by the client and never returned.
func (m *MQTT) Notify(ev Event) error {
	body, err := json.Marshal(payloadFor(ev))
	if err != nil {
		return fmt.Errorf("encode mqtt payload: %w", err)
	}
	m.client.Publish(m.topic, body)
	return nil
}

// Close implements Notifier.Close.
func (m *MQTT) Close() error {
	m.client.Disconnect()
	return nil
}

func payloadFor(ev Event) tagPayload {
	p := tagPayload{
		UID:     ev.UID.Hex(),
		Address: ev.Address,
		Value:   ev.Value,
	}
	if ev.Tag != nil {
		p.ID = ev.Tag.ID
		p.Label = ev.Tag.Label
		p.Known = true
	}
	return p
}
