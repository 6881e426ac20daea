package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const timeout = 10 * time.Second

// Client wraps a connected paho client for the agent's state reporting.
type Client struct {
	c pahomqtt.Client
}

// Connect dials the broker and blocks until the connection is up.
func Connect(brokerURL string) (*Client, error) {
	opts := pahomqtt.NewClientOptions().AddBroker(brokerURL)
	c := pahomqtt.NewClient(opts)

	token := c.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("timeout connecting to mqtt")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("unable to connect to mqtt: %w", err)
	}
	return &Client{c: c}, nil
}

// Publish sends the payload to the given topic as a retained message, so
// late subscribers see the last known state.
func (cl *Client) Publish(topic string, payload []byte) error {
	token := cl.c.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("timeout publishing to mqtt")
	}
	if err := token.Error(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"topic":   topic,
		"payload": string(payload),
	}).Trace("published message")
	return nil
}

// Close disconnects from the broker.
func (cl *Client) Close() {
	cl.c.Disconnect(uint(timeout.Milliseconds()))
}
