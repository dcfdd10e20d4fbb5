package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
)

// showRoutes pushes the current route set onto the map.
func showRoutes(deps *Dependencies) {
	dest := deps.Routes.Destination()
	if dest == nil {
		return
	}
	deps.Map.ShowRoutes(deps.Routes.Routes(), deps.Routes.UserLocation(), *dest)
}

// GetRoutesHandler returns the current route set.
func GetRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteDestinationHandler fixes the destination and recomputes.
func RouteDestinationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pt domain.GeoPoint
		if err := c.BodyParser(&pt); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Routes.SetDestination(c.UserContext(), pt); err != nil {
			return errUpstream(c, err.Error())
		}
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteStartHandler pins or clears a fixed start point.
func RouteStartHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Lat   *float64 `json:"lat"`
			Lon   *float64 `json:"lon"`
			Clear bool     `json:"clear"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		var err error
		if body.Clear {
			err = deps.Routes.ClearPinnedStart(c.UserContext())
		} else {
			if body.Lat == nil || body.Lon == nil {
				return errBadRequest(c, "lat and lon are required unless clear is set")
			}
			err = deps.Routes.PinStart(c.UserContext(), domain.GeoPoint{Lat: *body.Lat, Lon: *body.Lon})
		}
		if err != nil {
			return errUpstream(c, err.Error())
		}
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteLocationHandler records a live location fix.
func RouteLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pt domain.GeoPoint
		if err := c.BodyParser(&pt); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Routes.SetUserLocation(c.UserContext(), pt); err != nil {
			return errUpstream(c, err.Error())
		}
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteRefreshHandler recomputes with the current start and destination.
func RouteRefreshHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Routes.Refresh(c.UserContext()); err != nil {
			// The previous set is still served; the caller sees both the
			// error and the surviving routes.
			return errUpstream(c, err.Error())
		}
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteCycleHandler advances the highlighted route, wrapping around.
func RouteCycleHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Routes.CycleSelection()
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}

// RouteSelectHandler switches the highlighted route by index.
func RouteSelectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Index int `json:"index"`
		}
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		deps.Routes.Select(body.Index)
		showRoutes(deps)
		return c.JSON(deps.Routes.Routes())
	}
}
