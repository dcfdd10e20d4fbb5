package http

import (
	"github.com/nats-io/nats.go"

	"github.com/nepalcivic/sadakreport/internal/adapters/valkey"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Sessions      *usecases.SessionService
	Notifications *usecases.NotificationPoller
	Reports       *usecases.ReportService
	Staff         *usecases.StaffService
	Map           *usecases.MapService
	Routes        *usecases.RoutePlanner
	NATS          *nats.Conn
	Cache         *valkey.Cache
}
