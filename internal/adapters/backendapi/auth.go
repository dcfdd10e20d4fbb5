package backendapi

import (
	"context"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// userPayload mirrors the backend's user serializer.
type userPayload struct {
	ID         int    `json:"id"`
	Phone      string `json:"phone"`
	FirstName  string `json:"first_name"`
	Role       string `json:"role"`
	Department int    `json:"department"`
	Address    string `json:"address"`
}

func (u userPayload) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:           u.ID,
		Phone:        u.Phone,
		Name:         u.FirstName,
		Role:         u.Role,
		DepartmentID: u.Department,
		Address:      u.Address,
	}
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, phone, password string) (string, error) {
	body := map[string]string{"phone": phone, "password": password}
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.do(ctx, "POST", "/auth/login/", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

// Me resolves a token to the current profile.
func (c *Client) Me(ctx context.Context, token string) (*domain.Profile, error) {
	var u userPayload
	if err := c.do(ctx, "GET", "/auth/me/", token, nil, &u); err != nil {
		return nil, err
	}
	return u.toDomain(), nil
}

// Register submits a public sign-up. The backend only accepts citizen and
// field-official self-registration.
func (c *Client) Register(ctx context.Context, form domain.Registration) error {
	body := map[string]any{
		"phone":    form.Phone,
		"password": form.Password,
		"fullName": form.Name,
		"address":  form.Address,
		"idType":   form.IDType,
		"idNumber": form.IDNumber,
		"role":     domain.RoleCitizen,
	}
	return c.do(ctx, "POST", "/auth/register/", "", body, nil)
}
