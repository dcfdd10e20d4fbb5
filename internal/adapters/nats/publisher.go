// Package natsadapter publishes agent events to NATS so UI shells can react
// without polling the local API.
package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// Subjects carried on the event bus.
const (
	SubjectNotificationAlert = "civic.notifications.alert"
	SubjectSessionChange     = "civic.session.changed"
	SubjectRouteUpdate       = "civic.routes.updated"
)

// Publisher implements ports.AlertPublisher on a plain NATS connection.
// Events are transient fan-out; no stream retention is needed.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS with aggressive reconnects; the agent outlives
// short broker outages.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) PublishNotificationAlert(ctx context.Context, alert domain.NotificationAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectNotificationAlert, data)
}

func (p *Publisher) PublishSessionChange(ctx context.Context, profile *domain.Profile) error {
	payload := map[string]any{"signed_in": profile != nil}
	if profile != nil {
		payload["role"] = profile.Role
		payload["user_id"] = profile.ID
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectSessionChange, data)
}

func (p *Publisher) PublishRouteUpdate(ctx context.Context, set domain.RouteSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectRouteUpdate, data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. the WebSocket
// relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
