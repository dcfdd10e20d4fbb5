// devstub is an in-memory stand-in for the civic-report backend, speaking the
// same JSON dialect on the same paths. It exists so the agent can be exercised
// end to end without the real backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nepalcivic/sadakreport/internal/pkg/logging"
)

type user struct {
	ID        int    `json:"id"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	Role      string `json:"role"`
	Dept      int    `json:"department"`
	Address   string `json:"address"`
	password  string
}

type report struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        int     `json:"category"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationAddress string  `json:"location_address"`
	Status          string  `json:"status"`
	Citizen         int     `json:"citizen"`
	AssignedOff     int     `json:"assigned_official"`
	RejectionReason string  `json:"rejection_reason"`
	Likes           []int   `json:"likes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type store struct {
	mu      sync.Mutex
	users   map[string]*user // phone -> user
	tokens  map[string]int   // token -> user id
	reports []*report
	unread  map[int]int // user id -> unread count
	nextID  int
}

func newStore() *store {
	s := &store{
		users:  make(map[string]*user),
		tokens: make(map[string]int),
		unread: make(map[int]int),
		nextID: 1,
	}
	// Seeded accounts: one of each role, password "password".
	for _, u := range []user{
		{Phone: "9800000001", FirstName: "Admin", Role: "SUPER_ADMIN"},
		{Phone: "9800000002", FirstName: "Roads Admin", Role: "DEPT_ADMIN", Dept: 1},
		{Phone: "9800000003", FirstName: "Field One", Role: "FIELD_OFFICIAL", Dept: 1},
		{Phone: "9800000004", FirstName: "Citizen", Role: "CITIZEN"},
	} {
		u := u
		u.ID = s.nextID
		u.password = "password"
		s.nextID++
		s.users[u.Phone] = &u
	}
	s.reports = append(s.reports, &report{
		ID: 1, Title: "Pothole on Kantipath", Description: "Deep pothole near the junction",
		Category: 1, Latitude: 27.7090, Longitude: 85.3160, Status: "PENDING", Citizen: 4,
		CreatedAt: time.Now().UTC().Format(time.RFC3339), UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return s
}

func (s *store) authed(c *fiber.Ctx) *user {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[auth[len(prefix):]]
	if !ok {
		return nil
	}
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func main() {
	port := flag.Int("port", 8000, "listen port")
	flag.Parse()

	logging.Setup("info", "text")

	s := newStore()

	app := fiber.New(fiber.Config{AppName: "SadakReport Dev Stub"})
	app.Use(recover.New())
	app.Use(logger.New())

	api := app.Group("/api")

	api.Post("/auth/login/", func(c *fiber.Ctx) error {
		var body struct{ Phone, Password string }
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"detail": "invalid body"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := s.users[body.Phone]
		if !ok || u.password != body.Password {
			return c.Status(401).JSON(fiber.Map{"detail": "No active account found with the given credentials"})
		}
		token := fmt.Sprintf("stub-%d-%d", u.ID, time.Now().UnixNano())
		s.tokens[token] = u.ID
		return c.JSON(fiber.Map{"access": token, "refresh": token + "-r"})
	})

	api.Get("/auth/me/", func(c *fiber.Ctx) error {
		u := s.authed(c)
		if u == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		return c.JSON(u)
	})

	api.Post("/auth/register/", func(c *fiber.Ctx) error {
		var body struct {
			Phone    string `json:"phone"`
			Password string `json:"password"`
			FullName string `json:"fullName"`
			Address  string `json:"address"`
		}
		if err := c.BodyParser(&body); err != nil || body.Phone == "" || body.Password == "" {
			return c.Status(400).JSON(fiber.Map{"error": "phone and password required"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.users[body.Phone]; exists {
			return c.Status(400).JSON(fiber.Map{"error": "phone already registered"})
		}
		u := &user{ID: s.nextID, Phone: body.Phone, FirstName: body.FullName, Role: "CITIZEN", Address: body.Address, password: body.Password}
		s.nextID++
		s.users[body.Phone] = u
		return c.Status(201).JSON(u)
	})

	api.Get("/auth/staff/", func(c *fiber.Ctx) error {
		if s.authed(c) == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		staff := []fiber.Map{}
		for _, u := range s.users {
			if u.Role == "DEPT_ADMIN" || u.Role == "FIELD_OFFICIAL" {
				staff = append(staff, fiber.Map{
					"id": u.ID, "phone": u.Phone, "first_name": u.FirstName,
					"role": u.Role, "department": u.Dept, "is_available": true,
				})
			}
		}
		return c.JSON(staff)
	})

	api.Post("/auth/staff/create/", func(c *fiber.Ctx) error {
		caller := s.authed(c)
		if caller == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		if caller.Role != "SUPER_ADMIN" && caller.Role != "DEPT_ADMIN" {
			return c.Status(403).JSON(fiber.Map{"error": "admins only"})
		}
		var body struct {
			Phone     string `json:"phone"`
			Password  string `json:"password"`
			FirstName string `json:"first_name"`
			Role      string `json:"role"`
			Dept      int    `json:"department"`
		}
		if err := c.BodyParser(&body); err != nil || body.Phone == "" {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		u := &user{ID: s.nextID, Phone: body.Phone, FirstName: body.FirstName, Role: body.Role, Dept: body.Dept, password: body.Password}
		s.nextID++
		s.users[body.Phone] = u
		return c.Status(201).JSON(u)
	})

	api.Get("/departments/", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{
			{"id": 1, "name": "Roads", "description": "Road maintenance", "office_latitude": 27.7172, "office_longitude": 85.3240},
			{"id": 2, "name": "Water", "description": "Water supply", "office_latitude": 27.7000, "office_longitude": 85.3333},
			{"id": 3, "name": "Waste", "description": "Waste management", "office_latitude": 27.6900, "office_longitude": 85.3450},
		})
	})

	api.Get("/notifications/unread_count/", func(c *fiber.Ctx) error {
		u := s.authed(c)
		if u == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		return c.JSON(fiber.Map{"unread_count": s.unread[u.ID]})
	})

	api.Post("/notifications/mark_all_read/", func(c *fiber.Ctx) error {
		u := s.authed(c)
		if u == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		s.mu.Lock()
		s.unread[u.ID] = 0
		s.mu.Unlock()
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/reports/", func(c *fiber.Ctx) error {
		u := s.authed(c)
		if u == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []*report{}
		for _, r := range s.reports {
			switch u.Role {
			case "CITIZEN":
				if r.Citizen == u.ID {
					out = append(out, r)
				}
			case "FIELD_OFFICIAL":
				if r.AssignedOff == u.ID {
					out = append(out, r)
				}
			default:
				out = append(out, r)
			}
		}
		return c.JSON(out)
	})

	api.Post("/reports/", func(c *fiber.Ctx) error {
		u := s.authed(c)
		if u == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		var r report
		if err := c.BodyParser(&r); err != nil || r.Title == "" {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s.mu.Lock()
		r.ID = len(s.reports) + 1
		r.Status = "PENDING"
		r.Citizen = u.ID
		now := time.Now().UTC().Format(time.RFC3339)
		r.CreatedAt, r.UpdatedAt = now, now
		s.reports = append(s.reports, &r)
		// New report pings every admin's unread count.
		for _, other := range s.users {
			if other.Role == "SUPER_ADMIN" || other.Role == "DEPT_ADMIN" {
				s.unread[other.ID]++
			}
		}
		s.mu.Unlock()
		return c.Status(201).JSON(r)
	})

	findReport := func(c *fiber.Ctx) (*report, error) {
		id, err := c.ParamsInt("id")
		if err != nil {
			return nil, fiber.NewError(400, "invalid id")
		}
		for _, r := range s.reports {
			if r.ID == id {
				return r, nil
			}
		}
		return nil, fiber.NewError(404, "report not found")
	}

	api.Post("/reports/:id/assign/", func(c *fiber.Ctx) error {
		if s.authed(c) == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		var body struct {
			OfficialID int `json:"official_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		r, err := findReport(c)
		if err != nil {
			return err
		}
		r.AssignedOff = body.OfficialID
		r.Status = "ASSIGNED"
		r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.unread[body.OfficialID]++
		return c.JSON(fiber.Map{"status": "assigned"})
	})

	api.Patch("/reports/:id/status/", func(c *fiber.Ctx) error {
		if s.authed(c) == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		r, err := findReport(c)
		if err != nil {
			return err
		}
		r.Status = body.Status
		r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		s.unread[r.Citizen]++
		return c.JSON(fiber.Map{"status": r.Status})
	})

	api.Post("/reports/:id/accept/", func(c *fiber.Ctx) error {
		if s.authed(c) == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		r, err := findReport(c)
		if err != nil {
			return err
		}
		r.Status = "IN_PROGRESS"
		r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return c.JSON(fiber.Map{"status": "accepted", "new_status": "IN_PROGRESS"})
	})

	api.Post("/reports/:id/decline/", func(c *fiber.Ctx) error {
		if s.authed(c) == nil {
			return c.Status(401).JSON(fiber.Map{"detail": "invalid token"})
		}
		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil || body.Reason == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Rejection reason is required"})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		r, err := findReport(c)
		if err != nil {
			return err
		}
		r.Status = "DECLINED"
		r.RejectionReason = body.Reason
		r.AssignedOff = 0
		r.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return c.JSON(fiber.Map{"status": "declined", "new_status": "DECLINED"})
	})

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("dev stub listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
