package domain

import (
	"time"
)

// User roles as used by the backend.
const (
	RoleSuperAdmin    = "SUPER_ADMIN"
	RoleDeptAdmin     = "DEPT_ADMIN"
	RoleFieldOfficial = "FIELD_OFFICIAL"
	RoleCitizen       = "CITIZEN"
)

// Report lifecycle statuses.
const (
	StatusPending     = "PENDING"
	StatusAssigned    = "ASSIGNED"
	StatusInProgress  = "IN_PROGRESS"
	StatusTeamArrived = "TEAM_ARRIVED"
	StatusResolved    = "RESOLVED"
	StatusDeclined    = "DECLINED"
)

// Department is a municipal department that triages reports.
type Department struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Office      GeoPoint `json:"office"`
}

// Profile is the authenticated user's identity as returned by /auth/me/.
type Profile struct {
	ID           int    `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID int    `json:"department_id,omitempty"`
	Address      string `json:"address,omitempty"`
}

// LoginResult is the user-facing outcome of a login attempt.
type LoginResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Profile *Profile `json:"profile,omitempty"`
}

// Registration is the sign-up form forwarded to the backend.
type Registration struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	IDType   string `json:"id_type,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

// Report is a citizen-filed civic issue.
type Report struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CategoryID      int       `json:"category_id"`
	Location        GeoPoint  `json:"location"`
	LocationAddress string    `json:"location_address,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Status          string    `json:"status"`
	CitizenID       int       `json:"citizen_id"`
	AssignedTo      int       `json:"assigned_to,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	Likes           int       `json:"likes"`
	Distance        *float64  `json:"distance,omitempty"` // computed field
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewReport is the payload for filing a report.
type NewReport struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CategoryID      int      `json:"category_id"`
	Location        GeoPoint `json:"location"`
	LocationAddress string   `json:"location_address,omitempty"`
	ImageBase64     string   `json:"image_base64,omitempty"`
}

// StaffMember is a department admin or field official.
type StaffMember struct {
	ID           int    `json:"id"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID int    `json:"department_id"`
	Available    bool   `json:"available"`
}

// NewStaff is the payload for creating a staff account.
type NewStaff struct {
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID int    `json:"department_id"`
}

// NotificationAlert is published on the alert bus when the unread count
// increases while polling.
type NotificationAlert struct {
	Previous int       `json:"previous"`
	Current  int       `json:"current"`
	At       time.Time `json:"at"`
}
