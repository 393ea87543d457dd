package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const timeout = 5 * time.Second

// Options holds broker connection settings.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
	QoS      byte
	Retain   bool
}

// Event is the JSON payload announcing a freshly generated icon file.
type Event struct {
	File   string    `json:"file"` // "raster" | "icon"
	Path   string    `json:"path"`
	Size   int       `json:"size"`
	Bytes  int       `json:"bytes"`
	Digest string    `json:"digest,omitempty"`
	Time   time.Time `json:"time"`
}

// Announce connects to the broker, publishes ev as JSON, and disconnects.
// Each call opens a fresh connection; generation happens at most a couple
// of times per process.
func Announce(opts Options, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("mqtt: marshal: %w", err)
	}
	return Publish(opts, payload)
}

// Publish sends one message to opts.Topic.
func Publish(opts Options, message []byte) error {
	co := pahomqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)

	if opts.Username != "" {
		co.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		co.SetPassword(opts.Password)
	}

	client := pahomqtt.NewClient(co)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(opts.Topic, opts.QoS, opts.Retain, message)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
