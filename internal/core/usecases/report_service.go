package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
	"github.com/nepalcivic/sadakreport/internal/pkg/geospatial"
)

var validStatuses = map[string]bool{
	domain.StatusPending:     true,
	domain.StatusAssigned:    true,
	domain.StatusInProgress:  true,
	domain.StatusTeamArrived: true,
	domain.StatusResolved:    true,
	domain.StatusDeclined:    true,
}

// ReportService wraps the backend report collaborator with input validation
// and the current session token.
type ReportService struct {
	api    ports.ReportAPI
	tokens ports.TokenSource
}

// NewReportService creates a new ReportService.
func NewReportService(api ports.ReportAPI, tokens ports.TokenSource) *ReportService {
	return &ReportService{api: api, tokens: tokens}
}

func (s *ReportService) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// List returns the reports visible to the current role. The backend applies
// role scoping; the client does not re-filter.
func (s *ReportService) List(ctx context.Context) ([]domain.Report, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.List(ctx, token)
}

// Create submits a new report. Title, description, and a finite location are
// required.
func (s *ReportService) Create(ctx context.Context, r domain.NewReport) (*domain.Report, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	if r.Title == "" || r.Description == "" {
		return nil, fmt.Errorf("title and description are required")
	}
	if !r.Location.Finite() {
		return nil, fmt.Errorf("report location must be a finite coordinate")
	}
	return s.api.Create(ctx, token, r)
}

// Assign delegates a report to a field official.
func (s *ReportService) Assign(ctx context.Context, reportID, officialID int) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if reportID <= 0 || officialID <= 0 {
		return fmt.Errorf("report and official ids must be positive")
	}
	return s.api.Assign(ctx, token, reportID, officialID)
}

// UpdateStatus moves a report to a new status.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID int, status string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if !validStatuses[status] {
		return fmt.Errorf("unknown report status %q", status)
	}
	return s.api.UpdateStatus(ctx, token, reportID, status)
}

// Accept acknowledges an assignment.
func (s *ReportService) Accept(ctx context.Context, reportID int) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	return s.api.Accept(ctx, token, reportID)
}

// Decline rejects an assignment with a reason.
func (s *ReportService) Decline(ctx context.Context, reportID int, reason string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if reason == "" {
		return fmt.Errorf("a decline reason is required")
	}
	return s.api.Decline(ctx, token, reportID, reason)
}

// Nearby returns reports within radiusMeters of center, closest first, with
// the distance filled in. radius defaults to 1000m; limit defaults to 50 and
// caps at 100.
func (s *ReportService) Nearby(ctx context.Context, center domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Report, error) {
	if !center.Finite() {
		return nil, fmt.Errorf("center must be a finite coordinate")
	}
	if radiusMeters <= 0 {
		radiusMeters = 1000
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	reports, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// Cheap bounding-box prefilter before the exact haversine pass.
	box := geospatial.BoundingBox(center.Lat, center.Lon, radiusMeters)
	nearby := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		if r.Location.Lat < box.MinLat || r.Location.Lat > box.MaxLat ||
			r.Location.Lon < box.MinLon || r.Location.Lon > box.MaxLon {
			continue
		}
		d := geospatial.Haversine(center.Lat, center.Lon, r.Location.Lat, r.Location.Lon)
		if d > radiusMeters {
			continue
		}
		r.Distance = &d
		nearby = append(nearby, r)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return *nearby[i].Distance < *nearby[j].Distance
	})
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}
