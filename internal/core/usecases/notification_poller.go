package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
	"github.com/nepalcivic/sadakreport/internal/pkg/metrics"
)

// DefaultPollInterval matches the backend's expectation for unread-count
// polling.
const DefaultPollInterval = 15 * time.Second

// NotificationPoller periodically queries the unread notification count for
// the current session and raises an alert event when the count increases.
//
// The poller is Idle while no session exists and Polling while one does; it
// flips between the two by subscribing to session transitions. The poll timer
// is cancelled deterministically on sign-out, so no timer outlives a session.
type NotificationPoller struct {
	api      ports.NotificationAPI
	tokens   ports.TokenSource
	alerts   ports.AlertPublisher // optional
	interval time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	count     int
	baselined bool
	seq       uint64 // sequence of the most recent outgoing fetch
}

// NewNotificationPoller creates a new NotificationPoller. alerts may be nil.
func NewNotificationPoller(api ports.NotificationAPI, tokens ports.TokenSource, alerts ports.AlertPublisher, interval time.Duration) *NotificationPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPoller{api: api, tokens: tokens, alerts: alerts, interval: interval}
}

// Bind ties the poller lifecycle to session presence. ctx bounds the whole
// poller; individual polling runs are bounded by their own child context.
func (p *NotificationPoller) Bind(ctx context.Context, sessions *SessionService) {
	sessions.Subscribe(func(profile *domain.Profile) {
		if profile != nil {
			p.Start(ctx)
		} else {
			p.Stop()
		}
	})
}

// Start enters the Polling state: one immediate baseline fetch, then a fixed
// interval. Calling Start while already polling is a no-op.
func (p *NotificationPoller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.count = 0
	p.baselined = false
	p.mu.Unlock()

	go p.run(runCtx)
}

// Stop leaves the Polling state and resets the count; the unread count has no
// existence without a session. Idempotent.
func (p *NotificationPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.seq++ // any in-flight fetch result is now stale
	p.count = 0
	p.baselined = false
	p.mu.Unlock()
}

// UnreadCount returns the last known unread count.
func (p *NotificationPoller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// MarkAllRead asks the backend to acknowledge everything and optimistically
// resets the local count to 0 without waiting for the next poll. On failure
// the local state is left unchanged.
func (p *NotificationPoller) MarkAllRead(ctx context.Context) error {
	token := p.tokens.Token()
	if token == "" {
		return domain.ErrUnauthorized
	}
	if err := p.api.MarkAllRead(ctx, token); err != nil {
		slog.Warn("mark all read failed", "error", err)
		return err
	}

	p.mu.Lock()
	p.seq++ // discard any in-flight fetch racing with the reset
	p.count = 0
	p.baselined = true
	p.mu.Unlock()
	return nil
}

func (p *NotificationPoller) run(ctx context.Context) {
	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.fetch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// fetch performs one unread-count request. Each request carries a sequence
// number; a response that arrives after the sequence has moved on (sign-out,
// mark-all-read) is discarded instead of overwriting newer state.
func (p *NotificationPoller) fetch(ctx context.Context) {
	token := p.tokens.Token()
	if token == "" {
		return
	}

	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	count, err := p.api.UnreadCount(ctx, token)
	if err != nil {
		// Left unchanged and not retried before the next scheduled tick.
		metrics.NotificationPollErrors.Inc()
		slog.Warn("unread count fetch failed", "error", err)
		return
	}
	metrics.NotificationPolls.Inc()

	p.mu.Lock()
	if seq != p.seq {
		p.mu.Unlock()
		return
	}
	prev, baselined := p.count, p.baselined
	p.count = count
	p.baselined = true
	p.mu.Unlock()

	if baselined && count > prev {
		metrics.NotificationAlerts.Inc()
		slog.Info("new notifications", "previous", prev, "current", count)
		if p.alerts != nil {
			_ = p.alerts.PublishNotificationAlert(ctx, domain.NotificationAlert{
				Previous: prev,
				Current:  count,
				At:       time.Now(),
			})
		}
	}
}
