// Package nats publishes crew lifecycle events to NATS JetStream and
// owns the shared connection the KV cache bucket is opened on.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "RESUMEFORGE"

// Conn wraps a NATS connection with the events stream ensured.
type Conn struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Connect establishes the connection and ensures the events stream.
func Connect(ctx context.Context, url string) (*Conn, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"runs.>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", url, "stream", streamName)
	return &Conn{nc: nc, js: js}, nil
}

// BroadcastEvent publishes the payload as JSON on runs.<eventType>.
// Publish failures are logged; event delivery is best effort.
func (c *Conn) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("event marshal failed", "event", eventType, "error", err)
		return
	}
	if _, err := c.js.Publish(ctx, "runs."+eventType, data); err != nil {
		slog.Warn("event publish failed", "event", eventType, "error", err)
	}
}

// Raw exposes the underlying connection for opening KV buckets.
func (c *Conn) Raw() *nats.Conn {
	return c.nc
}

// Close shuts down the connection.
func (c *Conn) Close() {
	c.nc.Close()
}
