package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
	"github.com/nepalcivic/sadakreport/internal/pkg/metrics"
)

// RoutePlanner maintains the current set of driving routes from a start point
// to a fixed destination. Start priority is: pinned start, then live user
// location, then the configured fallback center. Every recompute is tagged
// with a generation so a slow response can never overwrite a newer one.
type RoutePlanner struct {
	routing  ports.RoutingService
	cache    ports.CacheService // optional
	alerts   ports.AlertPublisher
	fallback domain.GeoPoint

	mu       sync.Mutex
	dest     *domain.GeoPoint
	pinned   *domain.GeoPoint
	userLoc  *domain.GeoPoint
	routes   []domain.Route
	selected int
	gen      uint64
}

// NewRoutePlanner creates a new RoutePlanner. cache and alerts may be nil.
func NewRoutePlanner(routing ports.RoutingService, cache ports.CacheService, alerts ports.AlertPublisher, fallback domain.GeoPoint) *RoutePlanner {
	return &RoutePlanner{routing: routing, cache: cache, alerts: alerts, fallback: fallback}
}

// ComputeRoutes fetches routes between two points and normalizes the
// geometry: the exact start is prepended, the exact destination appended, and
// non-finite vertices dropped. It is the stateless core that recompute and
// external callers share.
func (p *RoutePlanner) ComputeRoutes(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
	if !start.Finite() || !dest.Finite() {
		return nil, fmt.Errorf("route endpoints must be finite coordinates")
	}

	key := fmt.Sprintf("routes:%.5f:%.5f:%.5f:%.5f", start.Lat, start.Lon, dest.Lat, dest.Lon)
	if p.cache != nil {
		if raw, err := p.cache.Get(ctx, key); err == nil && raw != nil {
			var cached []domain.Route
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.CacheHits.WithLabelValues("routes").Inc()
				return cached, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("routes").Inc()
	}

	metrics.RouteComputations.Inc()
	routes, err := p.routing.Routes(ctx, start, dest)
	if err != nil {
		metrics.RouteComputeErrors.Inc()
		return nil, err
	}

	for i := range routes {
		geom := routes[i].Geometry
		valid := geom[:0]
		for _, pt := range geom {
			if pt.Finite() {
				valid = append(valid, pt)
			}
		}
		full := make([]domain.GeoPoint, 0, len(valid)+2)
		full = append(full, start)
		full = append(full, valid...)
		full = append(full, dest)
		routes[i].Geometry = full
		routes[i].Label = routeLabel(i)
	}

	if p.cache != nil {
		if raw, err := json.Marshal(routes); err == nil {
			_ = p.cache.Set(ctx, key, raw, 60)
		}
	}
	return routes, nil
}

// SetDestination fixes the destination and triggers a recompute.
func (p *RoutePlanner) SetDestination(ctx context.Context, dest domain.GeoPoint) error {
	if !dest.Finite() {
		return fmt.Errorf("destination must be a finite coordinate")
	}
	p.mu.Lock()
	p.dest = &dest
	p.mu.Unlock()
	return p.recompute(ctx)
}

// PinStart fixes the start point, overriding the live user location, and
// triggers a recompute.
func (p *RoutePlanner) PinStart(ctx context.Context, start domain.GeoPoint) error {
	if !start.Finite() {
		return fmt.Errorf("pinned start must be a finite coordinate")
	}
	p.mu.Lock()
	p.pinned = &start
	p.mu.Unlock()
	return p.recompute(ctx)
}

// ClearPinnedStart drops the pinned start and recomputes from the live
// location (or fallback).
func (p *RoutePlanner) ClearPinnedStart(ctx context.Context) error {
	p.mu.Lock()
	p.pinned = nil
	p.mu.Unlock()
	return p.recompute(ctx)
}

// SetUserLocation records a live location fix. While a start is pinned, or no
// destination is set yet, the fix is recorded but triggers no recompute.
func (p *RoutePlanner) SetUserLocation(ctx context.Context, loc domain.GeoPoint) error {
	if !loc.Finite() {
		return fmt.Errorf("location must be a finite coordinate")
	}
	p.mu.Lock()
	p.userLoc = &loc
	suppress := p.pinned != nil || p.dest == nil
	p.mu.Unlock()
	if suppress {
		return nil
	}
	return p.recompute(ctx)
}

// Refresh recomputes with the current start priority and destination.
func (p *RoutePlanner) Refresh(ctx context.Context) error {
	return p.recompute(ctx)
}

// Destination returns the current destination, or nil when unset.
func (p *RoutePlanner) Destination() *domain.GeoPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dest == nil {
		return nil
	}
	d := *p.dest
	return &d
}

// UserLocation returns the last live location fix, or nil when none arrived.
func (p *RoutePlanner) UserLocation() *domain.GeoPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.userLoc == nil {
		return nil
	}
	l := *p.userLoc
	return &l
}

// Routes returns a snapshot of the current route set.
func (p *RoutePlanner) Routes() domain.RouteSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	routes := make([]domain.Route, len(p.routes))
	copy(routes, p.routes)
	return domain.RouteSet{Routes: routes, Selected: p.selected}
}

// Select switches the highlighted route. An out-of-range index is a no-op.
func (p *RoutePlanner) Select(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.routes) {
		return
	}
	p.selected = i
}

// CycleSelection advances the highlighted route, wrapping around.
func (p *RoutePlanner) CycleSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.routes) == 0 {
		p.selected = 0
		return
	}
	p.selected = (p.selected + 1) % len(p.routes)
}

func (p *RoutePlanner) recompute(ctx context.Context) error {
	p.mu.Lock()
	if p.dest == nil {
		p.mu.Unlock()
		return nil
	}
	dest := *p.dest
	start := p.fallback
	if p.pinned != nil {
		start = *p.pinned
	} else if p.userLoc != nil {
		start = *p.userLoc
	}
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	routes, err := p.ComputeRoutes(ctx, start, dest)
	if err != nil {
		// The previous set stays on show; a failed refresh must not blank
		// the display.
		slog.Warn("route computation failed", "error", err)
		return err
	}

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		slog.Debug("discarding stale route response", "generation", gen)
		return nil
	}
	p.routes = routes
	if p.selected >= len(routes) {
		p.selected = 0
	}
	set := domain.RouteSet{Routes: routes, Selected: p.selected}
	p.mu.Unlock()

	if p.alerts != nil {
		_ = p.alerts.PublishRouteUpdate(ctx, set)
	}
	return nil
}

func routeLabel(i int) string {
	if i == 0 {
		return "Fastest"
	}
	return fmt.Sprintf("Option %d", i+1)
}
