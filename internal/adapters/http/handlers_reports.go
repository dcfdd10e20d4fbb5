package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// reportErr maps service errors onto API responses.
func reportErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return errUnauthorized(c, "sign in first")
	case errors.Is(err, domain.ErrUnavailable):
		return errUpstream(c, "backend unreachable")
	default:
		return errBadRequest(c, err.Error())
	}
}

// ListReportsHandler returns the reports visible to the current role.
func ListReportsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reports, err := deps.Reports.List(c.UserContext())
		if err != nil {
			return reportErr(c, err)
		}
		return c.JSON(reports)
	}
}

// CreateReportHandler files a new report.
func CreateReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form domain.NewReport
		if err := c.BodyParser(&form); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		report, err := deps.Reports.Create(c.UserContext(), form)
		if err != nil {
			return reportErr(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(report)
	}
}

// AssignReportHandler delegates a report to a field official.
func AssignReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "invalid report id")
		}
		var body struct {
			OfficialID int `json:"official_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Reports.Assign(c.UserContext(), id, body.OfficialID); err != nil {
			return reportErr(c, err)
		}
		return c.JSON(fiber.Map{"status": "assigned"})
	}
}

// UpdateReportStatusHandler moves a report to a new lifecycle status.
func UpdateReportStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "invalid report id")
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Reports.UpdateStatus(c.UserContext(), id, body.Status); err != nil {
			return reportErr(c, err)
		}
		return c.JSON(fiber.Map{"status": body.Status})
	}
}

// AcceptReportHandler acknowledges an assignment.
func AcceptReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "invalid report id")
		}
		if err := deps.Reports.Accept(c.UserContext(), id); err != nil {
			return reportErr(c, err)
		}
		return c.JSON(fiber.Map{"status": "accepted"})
	}
}

// DeclineReportHandler rejects an assignment with a reason.
func DeclineReportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errBadRequest(c, "invalid report id")
		}
		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Reports.Decline(c.UserContext(), id, body.Reason); err != nil {
			return reportErr(c, err)
		}
		return c.JSON(fiber.Map{"status": "declined"})
	}
}

// NearbyReportsHandler filters reports to a radius around a point, closest
// first.
func NearbyReportsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat")
		lon := c.QueryFloat("lon")
		if lat == 0 && lon == 0 {
			return errBadRequest(c, "lat and lon query parameters are required")
		}
		radius := c.QueryFloat("radius", 1000)
		limit := c.QueryInt("limit", 50)

		reports, err := deps.Reports.Nearby(c.UserContext(), domain.GeoPoint{Lat: lat, Lon: lon}, radius, limit)
		if err != nil {
			return reportErr(c, err)
		}
		return c.JSON(reports)
	}
}
