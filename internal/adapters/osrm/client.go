// Package osrm is a client for the OSRM HTTP routing engine.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// Client implements ports.RoutingService against an OSRM server.
type Client struct {
	base    string
	profile string
	hc      *http.Client
}

// New creates a Client. base is a server root like
// "https://router.project-osrm.org"; profile is usually "driving".
func New(base, profile string, timeout time.Duration) *Client {
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		profile: profile,
		hc:      &http.Client{Timeout: timeout},
	}
}

// routeResponse mirrors the OSRM route service response. GeoJSON coordinate
// pairs are [lon, lat].
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Routes fetches driving alternatives between start and dest, in OSRM's
// ranking order (fastest first).
func (c *Client) Routes(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&alternatives=true",
		c.base, c.profile, start.Lon, start.Lat, dest.Lon, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("osrm: HTTP %d", resp.StatusCode)
	}

	var payload routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode osrm response: %w", err)
	}
	if payload.Code != "Ok" {
		return nil, fmt.Errorf("osrm: %s", payload.Code)
	}
	if len(payload.Routes) == 0 {
		return nil, fmt.Errorf("osrm: no routes found")
	}

	routes := make([]domain.Route, len(payload.Routes))
	for i, r := range payload.Routes {
		geom := make([]domain.GeoPoint, 0, len(r.Geometry.Coordinates))
		for _, pair := range r.Geometry.Coordinates {
			if len(pair) < 2 {
				continue
			}
			geom = append(geom, domain.GeoPoint{Lat: pair[1], Lon: pair[0]})
		}
		routes[i] = domain.Route{
			Geometry: geom,
			Distance: r.Distance,
			Duration: r.Duration,
		}
	}
	return routes, nil
}
