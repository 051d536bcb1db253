// internal/stream/nats.go
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	cfg "github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/session"
)

// Connect dials NATS with reconnect-forever semantics.
func Connect(c cfg.NATSConfig) (*nats.Conn, error) {
	if c.URL == "" {
		return nil, errors.New("stream: nats url required")
	}
	timeout := time.Duration(c.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	name := c.Name
	if name == "" {
		name = cfg.DefaultNATSName
	}

	return nats.Connect(
		c.URL,
		nats.Name(name),
		nats.Timeout(timeout),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}

// Publisher is the subset of *nats.Conn the publish helpers need.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscriber is the subset of *nats.Conn SubscribeNotifications needs.
type Subscriber interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// SubscribeNotifications delivers each raw device notification on subject to fn.
// fn runs on the NATS dispatch goroutine and must not block.
func SubscribeNotifications(nc Subscriber, subject string, fn func(payload []byte)) (*nats.Subscription, error) {
	if subject == "" {
		return nil, errors.New("stream: notify subject required")
	}
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		fn(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("stream: subscribe %s: %w", subject, err)
	}
	return sub, nil
}

// PublishJSON encodes v and publishes it on subject.
func PublishJSON(nc Publisher, subject string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("stream: encode for %s: %w", subject, err)
	}
	if err := nc.Publish(subject, b); err != nil {
		return fmt.Errorf("stream: publish %s: %w", subject, err)
	}
	return nil
}

// PublishCycle publishes one cycle result as JSON.
func PublishCycle(nc Publisher, subject string, c session.Cycle) error {
	return PublishJSON(nc, subject, c)
}

// SendCommands forwards device-control strings verbatim, in order.
// Stops at the first failure.
func SendCommands(nc Publisher, subject string, cmds []string) error {
	for i, c := range cmds {
		if err := nc.Publish(subject, []byte(c)); err != nil {
			return fmt.Errorf("stream: command %d on %s: %w", i, subject, err)
		}
	}
	return nil
}
