package usecases_test

import (
	"math"
	"testing"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
)

// --- Fake renderer ---

type fakeRenderer struct {
	frame    domain.MapFrame
	onChange func(domain.Region)
	setCalls int
}

func (r *fakeRenderer) Name() string { return "fake" }

func (r *fakeRenderer) SetFrame(f domain.MapFrame) {
	r.frame = f
	r.setCalls++
}

func (r *fakeRenderer) Frame() domain.MapFrame { return r.frame }

func (r *fakeRenderer) CompleteGesture(region domain.Region) domain.Region {
	r.frame.Region = region
	if r.onChange != nil {
		r.onChange(region)
	}
	return region
}

func (r *fakeRenderer) OnRegionChange(fn func(domain.Region)) { r.onChange = fn }

var testRegion = domain.Region{Latitude: 27.7172, Longitude: 85.3240, LatitudeDelta: 0.0922, LongitudeDelta: 0.0421}

func TestMapService_ShowRoutesHighlightsSelected(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	set := domain.RouteSet{
		Routes: []domain.Route{
			{Label: "Fastest", Geometry: []domain.GeoPoint{{Lat: 27.70, Lon: 85.31}, {Lat: 27.72, Lon: 85.33}}},
			{Label: "Option 2", Geometry: []domain.GeoPoint{{Lat: 27.69, Lon: 85.30}, {Lat: 27.73, Lon: 85.34}}},
		},
		Selected: 0,
	}
	viewer := domain.GeoPoint{Lat: 27.70, Lon: 85.31}
	problem := domain.GeoPoint{Lat: 27.72, Lon: 85.33}
	svc.ShowRoutes(set, &viewer, problem)

	frame := renderer.Frame()
	if len(frame.Polylines) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(frame.Polylines))
	}
	// The selected route is drawn last, solid and wider.
	sel := frame.Polylines[len(frame.Polylines)-1]
	if sel.Dashed || sel.Width != 6 {
		t.Errorf("selected route should be solid width 6, got dashed=%v width=%d", sel.Dashed, sel.Width)
	}
	alt := frame.Polylines[0]
	if !alt.Dashed || alt.Width != 4 {
		t.Errorf("alternate should be dashed width 4, got dashed=%v width=%d", alt.Dashed, alt.Width)
	}
	if len(frame.Markers) != 2 {
		t.Errorf("expected problem + viewer markers, got %d", len(frame.Markers))
	}
}

func TestMapService_ShowRoutesFitsSelectedGeometry(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	set := domain.RouteSet{
		Routes: []domain.Route{
			{Geometry: []domain.GeoPoint{{Lat: 27.60, Lon: 85.20}, {Lat: 27.80, Lon: 85.40}}},
		},
	}
	svc.ShowRoutes(set, nil, domain.GeoPoint{Lat: 27.80, Lon: 85.40})

	region := renderer.Frame().Region
	if math.Abs(region.Latitude-27.70) > 1e-9 {
		t.Errorf("expected center lat 27.70, got %f", region.Latitude)
	}
	// 0.2 degrees of geometry with 1.3 padding
	if region.LatitudeDelta < 0.25 || region.LatitudeDelta > 0.27 {
		t.Errorf("expected padded span around 0.26, got %f", region.LatitudeDelta)
	}
}

func TestMapService_SelectionModeTracksCenter(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	svc.SetSelectionMode(true)
	picked := svc.PickedCoordinate()
	if picked == nil || picked.Lat != testRegion.Latitude || picked.Lon != testRegion.Longitude {
		t.Fatalf("expected initial pick at center, got %+v", picked)
	}

	moved := testRegion
	moved.Latitude = 27.75
	moved.Longitude = 85.40
	svc.HandleGesture(moved)

	picked = svc.PickedCoordinate()
	if picked == nil || picked.Lat != 27.75 || picked.Lon != 85.40 {
		t.Errorf("pick should follow the map center, got %+v", picked)
	}

	svc.SetSelectionMode(false)
	if svc.PickedCoordinate() != nil {
		t.Error("leaving selection mode should clear the pick")
	}
}

func TestMapService_SelectionModeHidesOverlays(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	svc.SetSelectionMode(true)
	if got := len(renderer.Frame().Polylines); got != 0 {
		t.Fatalf("selection mode should show a bare map, got %d polylines", got)
	}

	// Overlays pushed while picking are deferred, not drawn.
	set := domain.RouteSet{Routes: []domain.Route{{Geometry: []domain.GeoPoint{{Lat: 27.7, Lon: 85.3}}}}}
	svc.ShowRoutes(set, nil, domain.GeoPoint{Lat: 27.7, Lon: 85.3})
	if got := len(renderer.Frame().Polylines); got != 0 {
		t.Errorf("overlays must stay hidden in selection mode, got %d", got)
	}

	svc.SetSelectionMode(false)
	if got := len(renderer.Frame().Polylines); got != 1 {
		t.Errorf("overlays should reappear after selection mode, got %d", got)
	}
}

func TestMapService_NavigateToKeepsSpan(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	svc.NavigateTo(domain.GeoPoint{Lat: 27.68, Lon: 85.28})

	region := renderer.Frame().Region
	if region.Latitude != 27.68 || region.Longitude != 85.28 {
		t.Errorf("expected recenter, got %+v", region)
	}
	if region.LatitudeDelta != testRegion.LatitudeDelta {
		t.Errorf("span must be preserved, got %f", region.LatitudeDelta)
	}
}

func TestMapService_SnapshotReflectsRenderer(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := usecases.NewMapService(renderer, testRegion)

	snap := svc.Snapshot()
	if snap.Renderer != "fake" {
		t.Errorf("expected renderer name fake, got %q", snap.Renderer)
	}
	if snap.SelectionMode {
		t.Error("selection mode should start off")
	}
	if snap.Frame.Region != testRegion {
		t.Errorf("expected initial region, got %+v", snap.Frame.Region)
	}
}
