package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/handler"
	"github.com/rayhank/busflow/internal/middleware"
	"github.com/rayhank/busflow/internal/model"
)

// RegisterDriver registers driver-scoped endpoints under /v1. All routes
// require a valid JWT with the DRIVER role. Drivers get a read-only view of
// the buses assigned to them; fleet changes stay with the admin portal.
func RegisterDriver(e *echo.Echo, h *handler.DriverHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleDriver),
	)
	g.GET("/driver/buses", h.AssignedBuses)
}
