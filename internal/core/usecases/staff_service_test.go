package usecases_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
)

// --- Mock StaffAPI ---

type mockStaffAPI struct {
	listStaffFn   func(ctx context.Context, token string) ([]domain.StaffMember, error)
	createStaffFn func(ctx context.Context, token string, s domain.NewStaff) error
	departmentsFn func(ctx context.Context, token string) ([]domain.Department, error)
	deptCalls     int
}

func (m *mockStaffAPI) ListStaff(ctx context.Context, token string) ([]domain.StaffMember, error) {
	if m.listStaffFn != nil {
		return m.listStaffFn(ctx, token)
	}
	return nil, nil
}

func (m *mockStaffAPI) CreateStaff(ctx context.Context, token string, s domain.NewStaff) error {
	if m.createStaffFn != nil {
		return m.createStaffFn(ctx, token, s)
	}
	return nil
}

func (m *mockStaffAPI) ListDepartments(ctx context.Context, token string) ([]domain.Department, error) {
	m.deptCalls++
	if m.departmentsFn != nil {
		return m.departmentsFn(ctx, token)
	}
	return nil, nil
}

// --- In-memory CacheService ---

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func TestStaffService_CreateStaffRoleGate(t *testing.T) {
	svc := usecases.NewStaffService(&mockStaffAPI{}, staticTokenSource{"tok"}, nil)

	err := svc.CreateStaff(context.Background(), domain.NewStaff{
		Phone: "98", Password: "p", Role: domain.RoleCitizen,
	})
	if err == nil {
		t.Error("citizen role must be rejected")
	}

	err = svc.CreateStaff(context.Background(), domain.NewStaff{
		Phone: "98", Password: "p", Role: domain.RoleFieldOfficial,
	})
	if err != nil {
		t.Errorf("field official role should pass: %v", err)
	}
}

func TestStaffService_CreateStaffRequiredFields(t *testing.T) {
	svc := usecases.NewStaffService(&mockStaffAPI{}, staticTokenSource{"tok"}, nil)
	err := svc.CreateStaff(context.Background(), domain.NewStaff{Role: domain.RoleDeptAdmin})
	if err == nil {
		t.Fatal("missing phone/password should fail")
	}
}

func TestStaffService_DepartmentsCached(t *testing.T) {
	api := &mockStaffAPI{
		departmentsFn: func(ctx context.Context, token string) ([]domain.Department, error) {
			return []domain.Department{{ID: 1, Name: "Roads", Office: kathmandu}}, nil
		},
	}
	cache := newMemCache()
	svc := usecases.NewStaffService(api, staticTokenSource{"tok"}, cache)

	first, err := svc.Departments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Departments(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if api.deptCalls != 1 {
		t.Errorf("second call should hit the cache, backend called %d times", api.deptCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "Roads" {
		t.Errorf("cached read mismatch: %+v vs %+v", first, second)
	}
}

func TestStaffService_RequiresSession(t *testing.T) {
	svc := usecases.NewStaffService(&mockStaffAPI{}, staticTokenSource{""}, nil)
	if _, err := svc.ListStaff(context.Background()); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Departments(context.Background()); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
