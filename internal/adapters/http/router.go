package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/nepalcivic/sadakreport/internal/pkg/metrics"
)

// backendTimeout bounds handlers that proxy to the backend or routing engine.
const backendTimeout = 15 * time.Second

// SetupRoutes registers all REST and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Health & readiness, no timeout wrapper: fast internal checks
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")

	// Session
	v1.Post("/session/login", timeout.NewWithContext(LoginHandler(deps), backendTimeout))
	v1.Post("/session/logout", LogoutHandler(deps))
	v1.Post("/session/register", timeout.NewWithContext(RegisterHandler(deps), backendTimeout))
	v1.Get("/session", SessionHandler(deps))

	// Notifications
	v1.Get("/notifications/unread", UnreadHandler(deps))
	v1.Post("/notifications/read-all", timeout.NewWithContext(ReadAllHandler(deps), backendTimeout))

	// Reports & departments
	v1.Get("/departments", timeout.NewWithContext(DepartmentsHandler(deps), backendTimeout))
	v1.Get("/reports/nearby", timeout.NewWithContext(NearbyReportsHandler(deps), backendTimeout))
	v1.Get("/reports", timeout.NewWithContext(ListReportsHandler(deps), backendTimeout))
	v1.Post("/reports", timeout.NewWithContext(CreateReportHandler(deps), backendTimeout))
	v1.Post("/reports/:id/assign", timeout.NewWithContext(AssignReportHandler(deps), backendTimeout))
	v1.Patch("/reports/:id/status", timeout.NewWithContext(UpdateReportStatusHandler(deps), backendTimeout))
	v1.Post("/reports/:id/accept", timeout.NewWithContext(AcceptReportHandler(deps), backendTimeout))
	v1.Post("/reports/:id/decline", timeout.NewWithContext(DeclineReportHandler(deps), backendTimeout))

	// Staff
	v1.Get("/staff", timeout.NewWithContext(ListStaffHandler(deps), backendTimeout))
	v1.Post("/staff", timeout.NewWithContext(CreateStaffHandler(deps), backendTimeout))

	// Map
	v1.Get("/map", GetMapHandler(deps))
	v1.Put("/map/viewport", ViewportHandler(deps))
	v1.Post("/map/selection", SelectionHandler(deps))

	// Route planner
	v1.Get("/route", GetRoutesHandler(deps))
	v1.Post("/route/destination", timeout.NewWithContext(RouteDestinationHandler(deps), backendTimeout))
	v1.Post("/route/start", timeout.NewWithContext(RouteStartHandler(deps), backendTimeout))
	v1.Post("/route/location", timeout.NewWithContext(RouteLocationHandler(deps), backendTimeout))
	v1.Post("/route/refresh", timeout.NewWithContext(RouteRefreshHandler(deps), backendTimeout))
	v1.Post("/route/cycle", RouteCycleHandler(deps))
	v1.Post("/route/select", RouteSelectHandler(deps))

	// WebSocket event relay
	if deps.NATS != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
	}
}
