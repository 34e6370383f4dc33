// Package config loads the rfidosc YAML configuration.
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"rfidosc/controller"
	"rfidosc/feedback"
	"rfidosc/indicator"
	"rfidosc/light"
	"rfidosc/notify"
	"rfidosc/reader"
	"rfidosc/tags"
)

// DefaultPath is the config file read when --cfg is not given.
const DefaultPath = "rfidosc.yml"

// Config is the main configuration structure for rfidosc.
type Config struct {
	// Identifies this device in MQTT topics
	ClientID string `yaml:"client_id"`

	// Notification transports (OSC listener, MQTT mirror)
	Notify notify.Config `yaml:"notify"`

	// Reader configuration
	Reader reader.Config `yaml:"reader"`

	// Indicator configuration (LED ring, status LEDs, screen)
	Indicator indicator.Config `yaml:"indicator"`

	// Poll loop timing
	Poll controller.Params `yaml:"poll"`

	// Tag registry: a tag file takes precedence over inline tags; with
	// neither the built-in registry is used.
	TagFile string     `yaml:"tag_file"`
	Tags    []TagEntry `yaml:"tags"`

	// Dispatch table; empty keeps the built-in routes.
	Routes  []feedback.Route `yaml:"routes"`
	Unknown *notify.Message  `yaml:"unknown"`
}

// TagEntry is one inline registry record.
type TagEntry struct {
	ID    int    `yaml:"id"`
	UID   string `yaml:"uid"` // hex, e.g. "23 a8 18 f7 64"
	Label string `yaml:"label"`
}

// Default returns the configuration of the installation.
func Default() Config {
	return Config{
		ClientID: "rfidosc",
		Notify: notify.Config{
			OSC:         notify.OSCConfig{Host: "shine.local", Port: notify.DefaultOSCPort},
			TopicPrefix: "rfidosc",
		},
		Reader: reader.Config{Type: "pn532-i2c", Device: "/dev/i2c-1"},
		Indicator: indicator.Config{
			Strip: light.Config{
				Pixels:     light.DefaultPixels,
				Brightness: light.DefaultBrightness,
				Animation:  light.DefaultParams(),
			},
		},
		Poll: controller.DefaultParams(),
	}
}

// Load reads path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("Config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks settings that cannot be caught while decoding.
func (c Config) Validate() error {
	if c.Notify.MQTT.Host != "" && c.ClientID == "" {
		return fmt.Errorf("client_id missing, required for mqtt")
	}
	if c.TagFile != "" && len(c.Tags) > 0 {
		return fmt.Errorf("tag_file and tags are mutually exclusive")
	}
	return nil
}

// Registry builds the tag registry.
func (c Config) Registry() (*tags.Registry, error) {
	if c.TagFile != "" {
		return tags.LoadFile(c.TagFile)
	}
	if len(c.Tags) == 0 {
		return tags.Default(), nil
	}

	records := make([]tags.Record, 0, len(c.Tags))
	for _, e := range c.Tags {
		uid, err := tags.ParseUID(e.UID)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", e.ID, err)
		}
		records = append(records, tags.Record{ID: e.ID, UID: uid, Label: e.Label})
	}
	return tags.NewRegistry(records)
}

// Table builds the dispatch table.
func (c Config) Table() (*feedback.Table, error) {
	routes := c.Routes
	if len(routes) == 0 {
		routes = feedback.DefaultRoutes()
	}
	unknown := feedback.DefaultUnknown()
	if c.Unknown != nil {
		unknown = *c.Unknown
	}
	return feedback.NewTable(routes, unknown)
}
