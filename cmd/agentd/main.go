package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nepalcivic/sadakreport/internal/adapters/backendapi"
	"github.com/nepalcivic/sadakreport/internal/adapters/http"
	"github.com/nepalcivic/sadakreport/internal/adapters/maprender"
	natsadapter "github.com/nepalcivic/sadakreport/internal/adapters/nats"
	"github.com/nepalcivic/sadakreport/internal/adapters/osrm"
	"github.com/nepalcivic/sadakreport/internal/adapters/tokenstore"
	"github.com/nepalcivic/sadakreport/internal/adapters/valkey"
	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
	"github.com/nepalcivic/sadakreport/internal/core/usecases"
	"github.com/nepalcivic/sadakreport/internal/pkg/config"
	"github.com/nepalcivic/sadakreport/internal/pkg/logging"
	"github.com/nepalcivic/sadakreport/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("sadakreport-agent")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Cache (optional)
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// Event bus (optional)
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for the WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Token persistence
	tokens, err := tokenstore.New(cfg.Token.Path)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}

	// Collaborators
	backend := backendapi.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second)
	routing := osrm.New(cfg.Routing.BaseURL, cfg.Routing.Profile, time.Duration(cfg.Routing.Timeout)*time.Second)

	// The concrete cache may be absent; ports see a nil interface then.
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	var alerts ports.AlertPublisher
	if publisher != nil {
		alerts = publisher
	}

	// Use cases
	sessions := usecases.NewSessionService(backend, tokens)
	poller := usecases.NewNotificationPoller(backend, sessions, alerts,
		time.Duration(cfg.Notifications.PollInterval)*time.Second)

	fallback := domain.GeoPoint{Lat: cfg.Map.CenterLat, Lon: cfg.Map.CenterLon}
	planner := usecases.NewRoutePlanner(routing, cacheSvc, alerts, fallback)

	initialRegion := domain.Region{
		Latitude:       cfg.Map.CenterLat,
		Longitude:      cfg.Map.CenterLon,
		LatitudeDelta:  cfg.Map.LatitudeDelta,
		LongitudeDelta: cfg.Map.LongitudeDelta,
	}
	renderer := maprender.Default(initialRegion, cfg.Map.TileURL)
	mapSvc := usecases.NewMapService(renderer, initialRegion)

	reports := usecases.NewReportService(backend, sessions)
	staff := usecases.NewStaffService(backend, sessions, cacheSvc)

	// Session transitions drive the poller and the event bus
	poller.Bind(ctx, sessions)
	if alerts != nil {
		sessions.Subscribe(func(profile *domain.Profile) {
			_ = alerts.PublishSessionChange(ctx, profile)
		})
	}

	// Restore a persisted session before serving
	if err := sessions.Restore(ctx); err != nil {
		slog.Warn("session restore failed", "error", err)
	}

	deps := &http.Dependencies{
		Sessions:      sessions,
		Notifications: poller,
		Reports:       reports,
		Staff:         staff,
		Map:           mapSvc,
		Routes:        planner,
		NATS:          natsConn,
		Cache:         cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    4 * 1024 * 1024, // report images ride in the body
		AppName:      "SadakReport Agent",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:5173",
		AllowMethods: "GET,POST,PUT,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("agent starting", "addr", addr, "renderer", renderer.Name())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	poller.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("agent stopped")
}
