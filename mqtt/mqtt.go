package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Client wraps the MQTT client used to mirror tag events to a broker.
type Client struct {
	client      paho.Client
	clientID    string
	statusTopic string
	enabled     bool
}

// Config holds MQTT connection settings.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
}

// New creates a new MQTT client. Returns a disabled no-op client if host is empty.
// The client publishes "online" (retained) to statusTopic on connect, and the
// broker publishes "offline" there if the connection drops.
func New(cfg Config, clientID, statusTopic string) (*Client, error) {
	c := &Client{
		clientID:    clientID,
		statusTopic: statusTopic,
	}

	if cfg.Host == "" {
		c.enabled = false
		log.Println("MQTT disabled (no host configured)")
		return c, nil
	}

	c.enabled = true

	var broker string
	var tlsConfig *tls.Config

	hasTLS := cfg.CACert != "" || cfg.ClientCert != ""

	if hasTLS {
		if cfg.Port == 0 {
			cfg.Port = 8883
		}
		broker = fmt.Sprintf("ssl://%s:%d", cfg.Host, cfg.Port)

		var err error
		tlsConfig, err = buildTLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("build TLS config: %w", err)
		}
	} else {
		if cfg.Port == 0 {
			cfg.Port = 1883
		}
		broker = fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)
		log.Println("MQTT using non-TLS connection")
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetKeepAlive(60 * time.Second).
		SetConnectionLostHandler(c.handleConnectionLost).
		SetOnConnectHandler(c.handleConnect)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if statusTopic != "" {
		opts.SetWill(statusTopic, "offline", 1, true)
	}
	if tlsConfig != nil {
		opts.SetTLSConfig(tlsConfig)
	}

	c.client = paho.NewClient(opts)

	paho.ERROR = log.New(os.Stdout, "[MQTT ERROR] ", 0)
	paho.CRITICAL = log.New(os.Stdout, "[MQTT CRIT] ", 0)
	paho.WARN = log.New(os.Stdout, "[MQTT WARN] ", 0)

	return c, nil
}

func buildTLSConfig(cfg Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		caPool.AppendCertsFromPEM(caCert)
		tlsConfig.RootCAs = caPool
	}

	if cfg.ClientCert != "" && cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Connect connects to the MQTT broker. No-op if disabled.
// With connect retry enabled this returns once the first attempt is queued.
func (c *Client) Connect() error {
	if !c.enabled {
		return nil
	}

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect: %w", token.Error())
	}
	log.Println("MQTT connected")
	return nil
}

// Disconnect publishes the offline status and disconnects. No-op if disabled.
func (c *Client) Disconnect() {
	if !c.enabled || c.client == nil {
		return
	}
	if c.statusTopic != "" && c.client.IsConnected() {
		c.client.Publish(c.statusTopic, 1, true, "offline").WaitTimeout(time.Second)
	}
	c.client.Disconnect(250)
}

// Publish publishes a message to a topic without waiting for delivery.
// No-op if disabled.
func (c *Client) Publish(topic string, payload []byte) {
	if !c.enabled {
		return
	}
	c.client.Publish(topic, 0, false, payload)
}

// IsEnabled returns whether MQTT is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

func (c *Client) handleConnect(client paho.Client) {
	log.Println("MQTT connection established")
	if c.statusTopic != "" {
		client.Publish(c.statusTopic, 1, true, "online")
	}
}

func (c *Client) handleConnectionLost(client paho.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
}
