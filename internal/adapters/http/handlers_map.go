package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// GetMapHandler returns the current map state as the renderer shows it.
func GetMapHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Map.Snapshot())
	}
}

// ViewportHandler reports a completed user pan/zoom and returns the region
// the renderer settled on.
func ViewportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var region domain.Region
		if err := c.BodyParser(&region); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if region.LatitudeDelta <= 0 || region.LongitudeDelta <= 0 {
			return errBadRequest(c, "latitude_delta and longitude_delta must be positive")
		}
		effective := deps.Map.HandleGesture(region)
		return c.JSON(effective)
	}
}

// SelectionHandler toggles location-picking mode.
func SelectionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Enabled bool `json:"enabled"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		deps.Map.SetSelectionMode(body.Enabled)
		return c.JSON(fiber.Map{
			"selection_mode": body.Enabled,
			"picked":         deps.Map.PickedCoordinate(),
		})
	}
}
