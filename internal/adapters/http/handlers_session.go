package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// LoginHandler exchanges credentials for a session. A rejected login returns
// 401 with the user-facing message from the session service.
func LoginHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Phone    string `json:"phone"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if body.Phone == "" || body.Password == "" {
			return errBadRequest(c, "phone and password are required")
		}

		result := deps.Sessions.Login(c.UserContext(), body.Phone, body.Password)
		if !result.Success {
			return c.Status(fiber.StatusUnauthorized).JSON(result)
		}
		return c.JSON(result)
	}
}

// LogoutHandler clears the session. Always succeeds on an empty session.
func LogoutHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Sessions.Logout(c.UserContext()); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RegisterHandler forwards a citizen sign-up to the backend.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form domain.Registration
		if err := c.BodyParser(&form); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if form.Phone == "" || form.Password == "" {
			return errBadRequest(c, "phone and password are required")
		}

		if err := deps.Sessions.Register(c.UserContext(), form); err != nil {
			if errors.Is(err, domain.ErrUnavailable) {
				return errUpstream(c, "backend unreachable")
			}
			return errBadRequest(c, err.Error())
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

// SessionHandler reports the current session state.
func SessionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := deps.Sessions.Profile()
		return c.JSON(fiber.Map{
			"signed_in": profile != nil,
			"profile":   profile,
		})
	}
}

// UnreadHandler returns the last polled unread notification count.
func UnreadHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"unread_count": deps.Notifications.UnreadCount(),
		})
	}
}

// ReadAllHandler acknowledges every notification and resets the local count.
func ReadAllHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := deps.Notifications.MarkAllRead(c.UserContext())
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return errUnauthorized(c, "sign in first")
			}
			return errUpstream(c, err.Error())
		}
		return c.JSON(fiber.Map{"unread_count": 0})
	}
}
