package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/handler"
	"github.com/rayhank/busflow/internal/middleware"
	"github.com/rayhank/busflow/internal/model"
)

// RegisterAdmin registers admin-scoped endpoints under /v1/admin. All routes
// require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Fleet ----
	g.GET("/buses", h.ListBuses)
	g.POST("/buses", h.CreateBus)
	g.PUT("/buses/:id", h.UpdateBus)
	g.PATCH("/buses/:id", h.UpdateBus)
	g.DELETE("/buses/:id", h.DeleteBus)
	g.PUT("/buses/:id/driver", h.AssignDriver)

	// ---- Accounts ----
	g.GET("/drivers", h.ListDrivers)
	g.POST("/drivers", h.CreateDriver)
	g.GET("/users", h.ListUsers)
	g.GET("/stats", h.Stats)
}
