package usecases_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
)

// --- Mock RoutingService ---

type mockRouting struct {
	mu       sync.Mutex
	routesFn func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error)
	calls    int
}

func (m *mockRouting) Routes(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.routesFn != nil {
		return m.routesFn(ctx, start, dest)
	}
	return nil, nil
}

func (m *mockRouting) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var kathmandu = domain.GeoPoint{Lat: 27.7172, Lon: 85.3240}

func twoRoutes() []domain.Route {
	return []domain.Route{
		{Geometry: []domain.GeoPoint{{Lat: 27.71, Lon: 85.32}, {Lat: 27.72, Lon: 85.33}}, Distance: 1200, Duration: 300},
		{Geometry: []domain.GeoPoint{{Lat: 27.70, Lon: 85.31}}, Distance: 1500, Duration: 380},
	}
}

func TestRoutePlanner_ComputeRoutesNormalizesGeometry(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			return []domain.Route{
				{Geometry: []domain.GeoPoint{
					{Lat: 27.71, Lon: 85.32},
					{Lat: math.NaN(), Lon: 85.33}, // dropped
					{Lat: 27.72, Lon: 85.33},
				}},
			}, nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)

	start := domain.GeoPoint{Lat: 27.7000, Lon: 85.3100}
	dest := domain.GeoPoint{Lat: 27.7300, Lon: 85.3400}
	routes, err := p.ComputeRoutes(context.Background(), start, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	geom := routes[0].Geometry
	if len(geom) != 4 {
		t.Fatalf("expected 4 points (start + 2 valid + dest), got %d", len(geom))
	}
	if geom[0] != start {
		t.Errorf("geometry must begin at the exact start, got %+v", geom[0])
	}
	if geom[len(geom)-1] != dest {
		t.Errorf("geometry must end at the exact destination, got %+v", geom[len(geom)-1])
	}
	for i, pt := range geom {
		if !pt.Finite() {
			t.Errorf("non-finite point survived at index %d", i)
		}
	}
}

func TestRoutePlanner_Labels(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			return []domain.Route{{}, {}, {}}, nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)

	routes, err := p.ComputeRoutes(context.Background(), kathmandu, domain.GeoPoint{Lat: 27.7, Lon: 85.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Fastest", "Option 2", "Option 3"}
	for i, w := range want {
		if routes[i].Label != w {
			t.Errorf("route %d: expected label %q, got %q", i, w, routes[i].Label)
		}
	}
}

func TestRoutePlanner_ComputeRoutesRejectsNonFinite(t *testing.T) {
	p := usecases.NewRoutePlanner(&mockRouting{}, nil, nil, kathmandu)
	_, err := p.ComputeRoutes(context.Background(), domain.GeoPoint{Lat: math.NaN()}, kathmandu)
	if err == nil {
		t.Fatal("expected error for non-finite start")
	}
}

func TestRoutePlanner_SetDestinationComputes(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			if start != kathmandu {
				t.Errorf("expected fallback start, got %+v", start)
			}
			return twoRoutes(), nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)

	if err := p.SetDestination(context.Background(), domain.GeoPoint{Lat: 27.70, Lon: 85.31}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := p.Routes()
	if len(set.Routes) != 2 || set.Selected != 0 {
		t.Fatalf("expected 2 routes selected 0, got %d selected %d", len(set.Routes), set.Selected)
	}
}

func TestRoutePlanner_CycleAndSelect(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			return twoRoutes(), nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)
	p.SetDestination(context.Background(), domain.GeoPoint{Lat: 27.70, Lon: 85.31})

	p.CycleSelection()
	if got := p.Routes().Selected; got != 1 {
		t.Errorf("expected selection 1, got %d", got)
	}
	p.CycleSelection()
	if got := p.Routes().Selected; got != 0 {
		t.Errorf("expected wrap to 0, got %d", got)
	}

	p.Select(1)
	if got := p.Routes().Selected; got != 1 {
		t.Errorf("expected selection 1, got %d", got)
	}

	// Out-of-range selection is a no-op.
	p.Select(5)
	if got := p.Routes().Selected; got != 1 {
		t.Errorf("out-of-range select must not move selection, got %d", got)
	}
	p.Select(-1)
	if got := p.Routes().Selected; got != 1 {
		t.Errorf("negative select must not move selection, got %d", got)
	}
}

func TestRoutePlanner_FailurePreservesPreviousRoutes(t *testing.T) {
	fail := false
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			if fail {
				return nil, errors.New("engine down")
			}
			return twoRoutes(), nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)
	p.SetDestination(context.Background(), domain.GeoPoint{Lat: 27.70, Lon: 85.31})

	fail = true
	if err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if got := len(p.Routes().Routes); got != 2 {
		t.Errorf("failed refresh must keep previous routes, got %d", got)
	}
}

func TestRoutePlanner_PinnedStartSuppressesLocationRecompute(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			return twoRoutes(), nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)
	p.SetDestination(context.Background(), domain.GeoPoint{Lat: 27.70, Lon: 85.31})
	p.PinStart(context.Background(), domain.GeoPoint{Lat: 27.72, Lon: 85.33})

	before := routing.callCount()
	if err := p.SetUserLocation(context.Background(), domain.GeoPoint{Lat: 27.75, Lon: 85.36}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routing.callCount() != before {
		t.Error("location fix while pinned must not recompute")
	}

	// Clearing the pin recomputes from the recorded fix.
	if err := p.ClearPinnedStart(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routing.callCount() != before+1 {
		t.Error("clearing the pin should recompute once")
	}
}

func TestRoutePlanner_LocationWithoutDestinationIsRecordedOnly(t *testing.T) {
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			return twoRoutes(), nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)

	fix := domain.GeoPoint{Lat: 27.75, Lon: 85.36}
	if err := p.SetUserLocation(context.Background(), fix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routing.callCount() != 0 {
		t.Error("no destination yet, must not recompute")
	}
	if loc := p.UserLocation(); loc == nil || *loc != fix {
		t.Errorf("fix should be recorded, got %+v", loc)
	}
}

func TestRoutePlanner_SelectionClampedAfterShrink(t *testing.T) {
	many := true
	routing := &mockRouting{
		routesFn: func(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
			if many {
				return []domain.Route{{}, {}, {}}, nil
			}
			return []domain.Route{{}}, nil
		},
	}
	p := usecases.NewRoutePlanner(routing, nil, nil, kathmandu)
	p.SetDestination(context.Background(), domain.GeoPoint{Lat: 27.70, Lon: 85.31})
	p.Select(2)

	many = false
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := p.Routes()
	if set.Selected != 0 {
		t.Errorf("selection must reset when it falls out of range, got %d", set.Selected)
	}
}
