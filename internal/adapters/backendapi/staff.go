package backendapi

import (
	"context"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// ListStaff returns the staff roster visible to the token's admin.
func (c *Client) ListStaff(ctx context.Context, token string) ([]domain.StaffMember, error) {
	var payload []struct {
		userPayload
		Available bool `json:"is_available"`
	}
	if err := c.do(ctx, "GET", "/auth/staff/", token, nil, &payload); err != nil {
		return nil, err
	}
	staff := make([]domain.StaffMember, len(payload))
	for i, p := range payload {
		staff[i] = domain.StaffMember{
			ID:           p.ID,
			Phone:        p.Phone,
			Name:         p.FirstName,
			Role:         p.Role,
			DepartmentID: p.Department,
			Available:    p.Available,
		}
	}
	return staff, nil
}

// CreateStaff provisions a department admin or field official account.
func (c *Client) CreateStaff(ctx context.Context, token string, s domain.NewStaff) error {
	body := map[string]any{
		"phone":      s.Phone,
		"password":   s.Password,
		"first_name": s.Name,
		"role":       s.Role,
		"department": s.DepartmentID,
	}
	return c.do(ctx, "POST", "/auth/staff/create/", token, body, nil)
}

// ListDepartments returns the department directory.
func (c *Client) ListDepartments(ctx context.Context, token string) ([]domain.Department, error) {
	var payload []struct {
		ID              int     `json:"id"`
		Name            string  `json:"name"`
		Description     string  `json:"description"`
		OfficeLatitude  float64 `json:"office_latitude"`
		OfficeLongitude float64 `json:"office_longitude"`
	}
	if err := c.do(ctx, "GET", "/departments/", token, nil, &payload); err != nil {
		return nil, err
	}
	deps := make([]domain.Department, len(payload))
	for i, p := range payload {
		deps[i] = domain.Department{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Office:      domain.GeoPoint{Lat: p.OfficeLatitude, Lon: p.OfficeLongitude},
		}
	}
	return deps, nil
}
