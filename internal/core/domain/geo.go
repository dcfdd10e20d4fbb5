package domain

import "math"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Finite reports whether both components are finite numbers.
func (p GeoPoint) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// Region is the visible rectangular map viewport, expressed as center + span.
// Spans (deltas) are degrees of latitude/longitude visible and are always positive.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Center returns the region's center coordinate.
func (r Region) Center() GeoPoint {
	return GeoPoint{Lat: r.Latitude, Lon: r.Longitude}
}

// Marker is a stateless render input: recreated by the caller on every
// relevant state change, never mutated.
type Marker struct {
	Coordinate  GeoPoint `json:"coordinate"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// Polyline is an ordered path drawn on the map.
type Polyline struct {
	Coordinates []GeoPoint `json:"coordinates"`
	Color       string     `json:"color,omitempty"`
	Width       int        `json:"width,omitempty"`
	Dashed      bool       `json:"dashed,omitempty"`
}

// MapFrame is the full declarative render input handed to a renderer.
type MapFrame struct {
	Region    Region     `json:"region"`
	Markers   []Marker   `json:"markers"`
	Polylines []Polyline `json:"polylines"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundsOf returns the bounding box of a non-empty coordinate sequence.
func BoundsOf(coords []GeoPoint) Bounds {
	b := Bounds{MinLat: math.MaxFloat64, MinLon: math.MaxFloat64, MaxLat: -math.MaxFloat64, MaxLon: -math.MaxFloat64}
	for _, c := range coords {
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MinLon = math.Min(b.MinLon, c.Lon)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MaxLon = math.Max(b.MaxLon, c.Lon)
	}
	return b
}

// Route is one driving path between a start and a destination, with the
// service-reported totals. Routes are recomputed wholesale, never mutated.
type Route struct {
	Label    string     `json:"label"`
	Geometry []GeoPoint `json:"geometry"`
	Distance float64    `json:"distance"` // meters
	Duration float64    `json:"duration"` // seconds
}

// RouteSet is a ranked list of alternatives for one (start, destination)
// pair, with exactly one selected at a time.
type RouteSet struct {
	Routes   []Route `json:"routes"`
	Selected int     `json:"selected"`
}
