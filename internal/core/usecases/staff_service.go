package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
	"github.com/nepalcivic/sadakreport/internal/pkg/metrics"
)

// StaffService wraps the staff-management collaborator for admin roles.
type StaffService struct {
	api    ports.StaffAPI
	tokens ports.TokenSource
	cache  ports.CacheService // optional
}

// NewStaffService creates a new StaffService. cache may be nil.
func NewStaffService(api ports.StaffAPI, tokens ports.TokenSource, cache ports.CacheService) *StaffService {
	return &StaffService{api: api, tokens: tokens, cache: cache}
}

func (s *StaffService) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// ListStaff returns the staff roster visible to the current admin.
func (s *StaffService) ListStaff(ctx context.Context) ([]domain.StaffMember, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.api.ListStaff(ctx, token)
}

// CreateStaff provisions a staff account. Only admin-grade roles may be
// created through this path.
func (s *StaffService) CreateStaff(ctx context.Context, form domain.NewStaff) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if form.Phone == "" || form.Password == "" {
		return fmt.Errorf("phone and password are required")
	}
	if form.Role != domain.RoleDeptAdmin && form.Role != domain.RoleFieldOfficial {
		return fmt.Errorf("staff role must be %s or %s", domain.RoleDeptAdmin, domain.RoleFieldOfficial)
	}
	return s.api.CreateStaff(ctx, token, form)
}

// Departments returns the department directory.
func (s *StaffService) Departments(ctx context.Context) ([]domain.Department, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	const key = "departments:all"
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != nil {
			var cached []domain.Department
			if err := json.Unmarshal(raw, &cached); err == nil {
				metrics.CacheHits.WithLabelValues("departments").Inc()
				return cached, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("departments").Inc()
	}

	deps, err := s.api.ListDepartments(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(deps); err == nil {
			// Cache for 10 minutes (the directory rarely changes).
			_ = s.cache.Set(ctx, key, raw, 600)
		}
	}
	return deps, nil
}
