package ports

import (
	"context"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// AlertPublisher publishes client-side events to a message bus so that UI
// shells can react without polling the agent.
type AlertPublisher interface {
	PublishNotificationAlert(ctx context.Context, alert domain.NotificationAlert) error
	PublishSessionChange(ctx context.Context, profile *domain.Profile) error
	PublishRouteUpdate(ctx context.Context, set domain.RouteSet) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// MapRenderer is the single declarative map contract. Exactly one concrete
// renderer is selected at build time per target platform; there is no
// runtime switching.
type MapRenderer interface {
	// Name identifies the renderer ("native" or "tile").
	Name() string
	// SetFrame applies a programmatic frame update (markers, polylines, and
	// possibly a re-center). Implementations must not let a programmatic
	// re-center re-trigger the region-change callback.
	SetFrame(f domain.MapFrame)
	// Frame returns the frame as the renderer currently shows it. The region
	// reflects the renderer's own span semantics.
	Frame() domain.MapFrame
	// CompleteGesture reports the end of a user pan/zoom ending at r. The
	// renderer normalizes r to its span semantics, adopts it, invokes the
	// region-change callback once, and returns the effective region.
	CompleteGesture(r domain.Region) domain.Region
	// OnRegionChange registers the region-change-complete callback.
	OnRegionChange(fn func(domain.Region))
}
