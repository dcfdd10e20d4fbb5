package ports

import (
	"context"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// AuthAPI is the backend authentication collaborator.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, phone, password string) (token string, err error)
	// Me resolves a bearer token to the current profile. A rejected token
	// returns domain.ErrUnauthorized.
	Me(ctx context.Context, token string) (*domain.Profile, error)
	Register(ctx context.Context, form domain.Registration) error
}

// NotificationAPI is the backend notifications collaborator.
type NotificationAPI interface {
	UnreadCount(ctx context.Context, token string) (int, error)
	MarkAllRead(ctx context.Context, token string) error
}

// ReportAPI is the backend reports collaborator.
type ReportAPI interface {
	List(ctx context.Context, token string) ([]domain.Report, error)
	Create(ctx context.Context, token string, r domain.NewReport) (*domain.Report, error)
	Assign(ctx context.Context, token string, reportID, officialID int) error
	UpdateStatus(ctx context.Context, token string, reportID int, status string) error
	Accept(ctx context.Context, token string, reportID int) error
	Decline(ctx context.Context, token string, reportID int, reason string) error
}

// StaffAPI is the backend staff-management collaborator.
type StaffAPI interface {
	ListStaff(ctx context.Context, token string) ([]domain.StaffMember, error)
	CreateStaff(ctx context.Context, token string, s domain.NewStaff) error
	ListDepartments(ctx context.Context, token string) ([]domain.Department, error)
}

// RoutingService computes driving routes against an external routing engine.
// Returned routes carry the raw service geometry in service ranking order.
type RoutingService interface {
	Routes(ctx context.Context, start, dest domain.GeoPoint) ([]domain.Route, error)
}

// TokenStore persists the opaque session token across process restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
