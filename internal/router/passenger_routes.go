package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/handler"
	"github.com/rayhank/busflow/internal/middleware"
	"github.com/rayhank/busflow/internal/model"
)

// RegisterPassenger registers passenger-scoped endpoints under /v1. All
// routes require a valid JWT with the PASSENGER role. Passengers can book
// seats (single or batch), list their tickets, cancel a ticket and delete
// the record entirely.
func RegisterPassenger(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RolePassenger),
		limiter,
	)
	g.POST("/bookings", h.CreateBooking)
	g.POST("/bookings/batch", h.CreateBookings)
	g.GET("/my-tickets", h.ListTickets)
	g.PATCH("/bookings/:id/cancel", h.CancelBooking)
	g.DELETE("/bookings/:id", h.DeleteBooking)
}
