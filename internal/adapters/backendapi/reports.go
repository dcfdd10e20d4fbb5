package backendapi

import (
	"context"
	"fmt"
	"time"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// reportPayload mirrors the backend's report serializer.
type reportPayload struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        int     `json:"category"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationAddress string  `json:"location_address"`
	Image           string  `json:"image"`
	Status          string  `json:"status"`
	Citizen         int     `json:"citizen"`
	AssignedOff     int     `json:"assigned_official"`
	RejectionReason string  `json:"rejection_reason"`
	Likes           []int   `json:"likes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func (r reportPayload) toDomain() domain.Report {
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	updated, _ := time.Parse(time.RFC3339, r.UpdatedAt)
	return domain.Report{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		CategoryID:      r.Category,
		Location:        domain.GeoPoint{Lat: r.Latitude, Lon: r.Longitude},
		LocationAddress: r.LocationAddress,
		ImageURL:        r.Image,
		Status:          r.Status,
		CitizenID:       r.Citizen,
		AssignedTo:      r.AssignedOff,
		RejectionReason: r.RejectionReason,
		Likes:           len(r.Likes),
		CreatedAt:       created,
		UpdatedAt:       updated,
	}
}

// List returns the reports visible to the token's role; the backend scopes
// the queryset server-side.
func (c *Client) List(ctx context.Context, token string) ([]domain.Report, error) {
	var payload []reportPayload
	if err := c.do(ctx, "GET", "/reports/", token, nil, &payload); err != nil {
		return nil, err
	}
	reports := make([]domain.Report, len(payload))
	for i, p := range payload {
		reports[i] = p.toDomain()
	}
	return reports, nil
}

// Create files a new report.
func (c *Client) Create(ctx context.Context, token string, r domain.NewReport) (*domain.Report, error) {
	body := map[string]any{
		"title":            r.Title,
		"description":      r.Description,
		"category":         r.CategoryID,
		"latitude":         r.Location.Lat,
		"longitude":        r.Location.Lon,
		"location_address": r.LocationAddress,
	}
	if r.ImageBase64 != "" {
		body["image"] = r.ImageBase64
	}
	var created reportPayload
	if err := c.do(ctx, "POST", "/reports/", token, body, &created); err != nil {
		return nil, err
	}
	out := created.toDomain()
	return &out, nil
}

// Assign delegates a report to a field official in the admin's department.
func (c *Client) Assign(ctx context.Context, token string, reportID, officialID int) error {
	body := map[string]int{"official_id": officialID}
	return c.do(ctx, "POST", fmt.Sprintf("/reports/%d/assign/", reportID), token, body, nil)
}

// UpdateStatus moves a report to a new lifecycle status.
func (c *Client) UpdateStatus(ctx context.Context, token string, reportID int, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, "PATCH", fmt.Sprintf("/reports/%d/status/", reportID), token, body, nil)
}

// Accept acknowledges an assignment; the backend moves it to IN_PROGRESS.
func (c *Client) Accept(ctx context.Context, token string, reportID int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/reports/%d/accept/", reportID), token, nil, nil)
}

// Decline rejects an assignment with a reason.
func (c *Client) Decline(ctx context.Context, token string, reportID int, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, "POST", fmt.Sprintf("/reports/%d/decline/", reportID), token, body, nil)
}
