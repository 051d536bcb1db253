// internal/stream/nats_test.go
package stream

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/ppg-monitor/internal/analysis"
	cfg "github.com/tamzrod/ppg-monitor/internal/config"
	"github.com/tamzrod/ppg-monitor/internal/session"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	failAfter int // <0 never
	pubs      []published

	subject string
	cb      nats.MsgHandler
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.failAfter >= 0 && len(f.pubs) >= f.failAfter {
		return errors.New("connection closed")
	}
	f.pubs = append(f.pubs, published{subject, append([]byte(nil), data...)})
	return nil
}

func (f *fakeConn) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	f.subject = subject
	f.cb = cb
	return &nats.Subscription{Subject: subject}, nil
}

func TestSendCommands_VerbatimInOrder(t *testing.T) {
	nc := &fakeConn{failAfter: -1}
	cmds := cfg.DefaultStartCommands

	require.NoError(t, SendCommands(nc, "hr.wrist.command", cmds))
	require.Len(t, nc.pubs, len(cmds))
	for i, c := range cmds {
		assert.Equal(t, "hr.wrist.command", nc.pubs[i].subject)
		assert.Equal(t, c, string(nc.pubs[i].data))
	}
}

func TestSendCommands_StopsAtFirstFailure(t *testing.T) {
	nc := &fakeConn{failAfter: 1}
	err := SendCommands(nc, "cmd", []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Len(t, nc.pubs, 1)
}

func TestPublishCycle_JSON(t *testing.T) {
	nc := &fakeConn{failAfter: -1}
	c := session.Cycle{
		DeviceID:  "wrist",
		SessionID: "s-1",
		Seq:       3,
		HeartRate: 72.4,
		State:     analysis.StateActive,
		Battery:   80,
	}
	require.NoError(t, PublishCycle(nc, "hr.wrist.cycle", c))
	require.Len(t, nc.pubs, 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal(nc.pubs[0].data, &got))
	assert.Equal(t, "wrist", got["device_id"])
	assert.Equal(t, "active", got["state"])
	assert.Equal(t, 72.4, got["heart_rate"])
	assert.Equal(t, float64(80), got["battery"])
}

func TestSubscribeNotifications_PassesRawPayload(t *testing.T) {
	nc := &fakeConn{failAfter: -1}
	var got []byte

	sub, err := SubscribeNotifications(nc, "ppg.wrist", func(p []byte) { got = p })
	require.NoError(t, err)
	assert.Equal(t, "ppg.wrist", sub.Subject)

	nc.cb(&nats.Msg{Subject: "ppg.wrist", Data: []byte{0xAA, 0xBB}})
	assert.Equal(t, []byte{0xAA, 0xBB}, got)

	_, err = SubscribeNotifications(nc, "", func([]byte) {})
	assert.Error(t, err)
}

func TestConnect_URLRequired(t *testing.T) {
	_, err := Connect(cfg.NATSConfig{})
	assert.Error(t, err)
}
