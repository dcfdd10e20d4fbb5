package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
)

// --- Mock ReportAPI ---

type mockReportAPI struct {
	listFn   func(ctx context.Context, token string) ([]domain.Report, error)
	createFn func(ctx context.Context, token string, r domain.NewReport) (*domain.Report, error)
	statusFn func(ctx context.Context, token string, reportID int, status string) error
}

func (m *mockReportAPI) List(ctx context.Context, token string) ([]domain.Report, error) {
	if m.listFn != nil {
		return m.listFn(ctx, token)
	}
	return nil, nil
}

func (m *mockReportAPI) Create(ctx context.Context, token string, r domain.NewReport) (*domain.Report, error) {
	if m.createFn != nil {
		return m.createFn(ctx, token, r)
	}
	return nil, nil
}

func (m *mockReportAPI) Assign(ctx context.Context, token string, reportID, officialID int) error {
	return nil
}

func (m *mockReportAPI) UpdateStatus(ctx context.Context, token string, reportID int, status string) error {
	if m.statusFn != nil {
		return m.statusFn(ctx, token, reportID, status)
	}
	return nil
}

func (m *mockReportAPI) Accept(ctx context.Context, token string, reportID int) error { return nil }
func (m *mockReportAPI) Decline(ctx context.Context, token string, reportID int, reason string) error {
	return nil
}

func TestReportService_ListRequiresSession(t *testing.T) {
	svc := usecases.NewReportService(&mockReportAPI{}, staticTokenSource{""})
	_, err := svc.List(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestReportService_CreateValidation(t *testing.T) {
	svc := usecases.NewReportService(&mockReportAPI{}, staticTokenSource{"tok"})

	_, err := svc.Create(context.Background(), domain.NewReport{Description: "d", Location: kathmandu})
	if err == nil {
		t.Error("missing title should fail")
	}
	_, err = svc.Create(context.Background(), domain.NewReport{Title: "t", Location: kathmandu})
	if err == nil {
		t.Error("missing description should fail")
	}
}

func TestReportService_UpdateStatusRejectsUnknown(t *testing.T) {
	svc := usecases.NewReportService(&mockReportAPI{}, staticTokenSource{"tok"})
	if err := svc.UpdateStatus(context.Background(), 1, "FIXED_MAYBE"); err == nil {
		t.Fatal("unknown status should fail")
	}
	api := &mockReportAPI{
		statusFn: func(ctx context.Context, token string, reportID int, status string) error {
			if status != domain.StatusResolved {
				t.Errorf("unexpected status %q", status)
			}
			return nil
		},
	}
	svc = usecases.NewReportService(api, staticTokenSource{"tok"})
	if err := svc.UpdateStatus(context.Background(), 1, domain.StatusResolved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportService_DeclineRequiresReason(t *testing.T) {
	svc := usecases.NewReportService(&mockReportAPI{}, staticTokenSource{"tok"})
	if err := svc.Decline(context.Background(), 1, ""); err == nil {
		t.Fatal("empty reason should fail")
	}
}

func TestReportService_NearbySortsByDistance(t *testing.T) {
	api := &mockReportAPI{
		listFn: func(ctx context.Context, token string) ([]domain.Report, error) {
			return []domain.Report{
				{ID: 1, Location: domain.GeoPoint{Lat: 27.7200, Lon: 85.3240}}, // ~310m north
				{ID: 2, Location: domain.GeoPoint{Lat: 27.7172, Lon: 85.3245}}, // ~50m east
				{ID: 3, Location: domain.GeoPoint{Lat: 27.8000, Lon: 85.3240}}, // ~9km, outside
			}, nil
		},
	}
	svc := usecases.NewReportService(api, staticTokenSource{"tok"})

	got, err := svc.Nearby(context.Background(), kathmandu, 1000, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports inside radius, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("expected order [2 1], got [%d %d]", got[0].ID, got[1].ID)
	}
	for _, r := range got {
		if r.Distance == nil {
			t.Errorf("report %d missing distance", r.ID)
		}
	}
	if *got[0].Distance >= *got[1].Distance {
		t.Error("results not sorted by distance")
	}
}

func TestReportService_NearbyLimit(t *testing.T) {
	reports := make([]domain.Report, 10)
	for i := range reports {
		reports[i] = domain.Report{ID: i + 1, Location: kathmandu}
	}
	api := &mockReportAPI{
		listFn: func(ctx context.Context, token string) ([]domain.Report, error) {
			return reports, nil
		},
	}
	svc := usecases.NewReportService(api, staticTokenSource{"tok"})

	got, err := svc.Nearby(context.Background(), kathmandu, 500, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected limit of 3, got %d", len(got))
	}
}
