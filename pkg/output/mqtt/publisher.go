package mqtt

import (
	"encoding/json"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
)

// payload represents the JSON payload which is published
type payload struct {
	Timestamp string   `json:"timestamp"`
	Colours   []string `json:"colours"`
}

// Publisher publishes colour patterns to an MQTT broker
type Publisher struct {
	client mqtt.Client
	topic  string
}

// New creates a new MQTT Publisher
func New(cfg *config.MQTTPublisher) *Publisher {
	options := mqtt.NewClientOptions()
	options.Servers = []*url.URL{
		{
			Scheme: cfg.Scheme,
			Host:   cfg.Host,
		},
	}

	return &Publisher{
		client: mqtt.NewClient(options),
		topic:  cfg.Topic,
	}
}

// Connect connects to the configured MQTT broker
func (p *Publisher) Connect() error {
	t := p.client.Connect()
	_ = t.Wait()
	return errors.Wrap(t.Error(), "failed to connect to MQTT broker")
}

// Send publishes the pattern to the configured topic
func (p *Publisher) Send(colours []palette.ColourHex) error {
	marshaledPayload, err := json.Marshal(payload{
		Timestamp: time.Now().Format(time.RFC3339),
		Colours:   palette.Palette(colours).Strings(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal pattern payload")
	}

	// publish a message to the MQTT broker
	t := p.client.Publish(p.topic, 1, true, marshaledPayload)
	_ = t.Wait()
	return errors.Wrap(t.Error(), "failed to publish pattern")
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
