package usecases

import (
	"sync"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
)

const (
	colorPrimary   = "#2f80ed"
	colorAlternate = "#95a5a6"
	colorDanger    = "#e74c3c"
)

// MapService drives the configured renderer: it decides what the map shows
// (markers, route overlays, selection crosshair) while the renderer decides
// how regions behave on its platform.
type MapService struct {
	renderer ports.MapRenderer

	mu            sync.Mutex
	region        domain.Region
	markers       []domain.Marker
	polylines     []domain.Polyline
	selectionMode bool
	picked        *domain.GeoPoint
}

// MapSnapshot is a read-only view of the map state for API handlers.
type MapSnapshot struct {
	Renderer      string           `json:"renderer"`
	Frame         domain.MapFrame  `json:"frame"`
	SelectionMode bool             `json:"selection_mode"`
	Picked        *domain.GeoPoint `json:"picked,omitempty"`
}

// NewMapService creates a MapService showing initial and wires the renderer's
// region-change callback.
func NewMapService(renderer ports.MapRenderer, initial domain.Region) *MapService {
	s := &MapService{renderer: renderer, region: initial}
	renderer.OnRegionChange(s.regionChanged)
	renderer.SetFrame(domain.MapFrame{Region: initial})
	return s
}

func (s *MapService) regionChanged(r domain.Region) {
	s.mu.Lock()
	s.region = r
	if s.selectionMode {
		c := r.Center()
		s.picked = &c
	}
	s.mu.Unlock()
}

// HandleGesture reports a completed user pan/zoom and returns the region the
// renderer settled on.
func (s *MapService) HandleGesture(r domain.Region) domain.Region {
	return s.renderer.CompleteGesture(r)
}

// SetSelectionMode toggles location-picking. While on, overlays are hidden
// and the picked coordinate tracks the map center.
func (s *MapService) SetSelectionMode(on bool) {
	s.mu.Lock()
	s.selectionMode = on
	if on {
		c := s.region.Center()
		s.picked = &c
		s.mu.Unlock()
		s.renderer.SetFrame(domain.MapFrame{Region: s.region})
		return
	}
	s.picked = nil
	region, markers, polylines := s.region, s.markers, s.polylines
	s.mu.Unlock()
	s.renderer.SetFrame(domain.MapFrame{Region: region, Markers: markers, Polylines: polylines})
}

// PickedCoordinate returns the crosshair coordinate, or nil outside selection
// mode.
func (s *MapService) PickedCoordinate() *domain.GeoPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picked
}

// ShowRoutes renders a route set between viewer and problem, highlighting the
// selected route and fitting the region around it.
func (s *MapService) ShowRoutes(set domain.RouteSet, viewer *domain.GeoPoint, problem domain.GeoPoint) {
	polylines := make([]domain.Polyline, 0, len(set.Routes))
	for i, r := range set.Routes {
		if i == set.Selected {
			continue
		}
		polylines = append(polylines, domain.Polyline{
			Coordinates: r.Geometry,
			Color:       colorAlternate,
			Width:       4,
			Dashed:      true,
		})
	}
	var fitGeom []domain.GeoPoint
	if set.Selected >= 0 && set.Selected < len(set.Routes) {
		sel := set.Routes[set.Selected]
		// Selected route drawn last so it sits on top.
		polylines = append(polylines, domain.Polyline{
			Coordinates: sel.Geometry,
			Color:       colorPrimary,
			Width:       6,
		})
		fitGeom = sel.Geometry
	}

	markers := []domain.Marker{{Coordinate: problem, Title: "Reported problem", Color: colorDanger}}
	if viewer != nil {
		markers = append(markers, domain.Marker{Coordinate: *viewer, Title: "You", Color: colorPrimary})
	}

	s.mu.Lock()
	s.markers = markers
	s.polylines = polylines
	if len(fitGeom) > 0 {
		s.region = fitRegion(fitGeom)
	}
	region := s.region
	skip := s.selectionMode
	s.mu.Unlock()

	if skip {
		return
	}
	s.renderer.SetFrame(domain.MapFrame{Region: region, Markers: markers, Polylines: polylines})
}

// NavigateTo re-centers the map on a point, keeping the current span.
func (s *MapService) NavigateTo(pt domain.GeoPoint) {
	s.mu.Lock()
	s.region.Latitude = pt.Lat
	s.region.Longitude = pt.Lon
	region, markers, polylines := s.region, s.markers, s.polylines
	skip := s.selectionMode
	s.mu.Unlock()

	if skip {
		return
	}
	s.renderer.SetFrame(domain.MapFrame{Region: region, Markers: markers, Polylines: polylines})
}

// Snapshot returns the current map state as the renderer shows it.
func (s *MapService) Snapshot() MapSnapshot {
	s.mu.Lock()
	selectionMode, picked := s.selectionMode, s.picked
	s.mu.Unlock()
	return MapSnapshot{
		Renderer:      s.renderer.Name(),
		Frame:         s.renderer.Frame(),
		SelectionMode: selectionMode,
		Picked:        picked,
	}
}

// fitRegion builds a region around pts with padding so the geometry does not
// touch the edges.
func fitRegion(pts []domain.GeoPoint) domain.Region {
	b := domain.BoundsOf(pts)
	latDelta := (b.MaxLat - b.MinLat) * 1.3
	lonDelta := (b.MaxLon - b.MinLon) * 1.3
	if latDelta < 0.01 {
		latDelta = 0.01
	}
	if lonDelta < 0.01 {
		lonDelta = 0.01
	}
	return domain.Region{
		Latitude:       (b.MinLat + b.MaxLat) / 2,
		Longitude:      (b.MinLon + b.MaxLon) / 2,
		LatitudeDelta:  latDelta,
		LongitudeDelta: lonDelta,
	}
}
