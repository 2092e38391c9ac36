// Package handler implements the HTTP endpoints for the three portals.
// Handlers bind requests, call the repositories or the booking service and
// translate sentinel errors into HTTP responses; no business rules live
// here.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/repository"
	"github.com/rayhank/busflow/internal/service"
)

// getUserID extracts the user_id stored by the JWT middleware and converts
// it to uint64. JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter; zero is rejected.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseTravelDate accepts a journey day as YYYY-MM-DD. An empty value
// defaults to today (UTC).
func parseTravelDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

// bookingError maps booking-path sentinel errors onto HTTP responses. The
// default branch deliberately hides storage details behind a generic 500.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBusNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked"})
	case errors.Is(err, repository.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	case errors.Is(err, service.ErrTripInvalid):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "source and destination must be stops on the route, in travel order"})
	case errors.Is(err, service.ErrUnknownSeat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat label"})
	case errors.Is(err, service.ErrTooManySeats):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot book more than 5 seats at once"})
	case errors.Is(err, service.ErrBusUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "bus is not available for booking"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
