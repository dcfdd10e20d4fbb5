package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// ListStaffHandler returns the staff roster for the current admin.
func ListStaffHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staff, err := deps.Staff.ListStaff(c.UserContext())
		if err != nil {
			return reportErr(c, err)
		}
		return c.JSON(staff)
	}
}

// CreateStaffHandler provisions a staff account.
func CreateStaffHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form domain.NewStaff
		if err := c.BodyParser(&form); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Staff.CreateStaff(c.UserContext(), form); err != nil {
			return reportErr(c, err)
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

// DepartmentsHandler returns the department directory.
func DepartmentsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		departments, err := deps.Staff.Departments(c.UserContext())
		if err != nil {
			return reportErr(c, err)
		}
		return c.JSON(departments)
	}
}
