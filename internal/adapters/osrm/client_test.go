package osrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

var (
	start = domain.GeoPoint{Lat: 27.7172, Lon: 85.3240}
	dest  = domain.GeoPoint{Lat: 27.6710, Lon: 85.4298}
)

func TestClient_RoutesRequestShape(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":100,"duration":60,"geometry":{"coordinates":[[85.3240,27.7172],[85.4298,27.6710]]}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "driving", time.Second)
	if _, err := c.Routes(context.Background(), start, dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/driving/") {
		t.Errorf("unexpected path %q", gotPath)
	}
	// Coordinates are lon,lat pairs separated by a semicolon.
	if !strings.Contains(gotPath, "85.324000,27.717200;85.429800,27.671000") {
		t.Errorf("coordinates malformed in path %q", gotPath)
	}
	for _, want := range []string{"overview=full", "geometries=geojson", "alternatives=true"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestClient_RoutesMapsGeoJSONPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[
			{"distance":1200.5,"duration":240,"geometry":{"coordinates":[[85.32,27.71],[85.35,27.69]]}},
			{"distance":1500,"duration":300,"geometry":{"coordinates":[[85.32,27.71],[85.40,27.68]]}}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "driving", time.Second)
	routes, err := c.Routes(context.Background(), start, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].Distance != 1200.5 || routes[0].Duration != 240 {
		t.Errorf("distance/duration mismatch: %+v", routes[0])
	}
	// GeoJSON is [lon, lat]; domain points are Lat/Lon.
	first := routes[0].Geometry[0]
	if first.Lat != 27.71 || first.Lon != 85.32 {
		t.Errorf("lon/lat not swapped: %+v", first)
	}
}

func TestClient_RoutesErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "driving", time.Second)
	if _, err := c.Routes(context.Background(), start, dest); err == nil {
		t.Fatal("expected error for code NoRoute")
	}
}

func TestClient_RoutesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "driving", time.Second)
	if _, err := c.Routes(context.Background(), start, dest); err == nil {
		t.Fatal("expected error for empty route list")
	}
}

func TestClient_RoutesServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "driving", time.Second)
	_, err := c.Routes(context.Background(), start, dest)
	if err == nil {
		t.Fatal("expected transport error")
	}
}
