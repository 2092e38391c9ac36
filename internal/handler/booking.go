package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/service"
)

// BookingHandler exposes the passenger booking endpoints. All methods
// assume JWT authentication and the PASSENGER role have been enforced by
// middleware.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	BusID       uint64 `json:"bus_id"`
	Seat        string `json:"seat"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
}

type batchBookingReq struct {
	BusID       uint64   `json:"bus_id"`
	Seats       []string `json:"seats"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Date        string   `json:"date"`
}

// CreateBooking handles POST /v1/bookings. It books a single seat and
// returns the CONFIRMED booking, or 409 when the seat is already taken for
// that bus and day.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BusID == 0 || req.Seat == "" || req.Source == "" || req.Destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id, seat, source and destination are required"})
	}
	date, err := parseTravelDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	booking, err := h.Bookings.CreateBooking(c.Request().Context(), userID, req.BusID,
		req.Seat, req.Source, req.Destination, date)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// CreateBookings handles POST /v1/bookings/batch. Up to five seats are
// attempted independently; the response carries both the confirmed bookings
// and per-seat failures. Six or more seats reject the whole request with
// nothing booked.
func (h *BookingHandler) CreateBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req batchBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BusID == 0 || len(req.Seats) == 0 || req.Source == "" || req.Destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id, seats, source and destination are required"})
	}
	date, err := parseTravelDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	booked, failed, err := h.Bookings.CreateBookings(c.Request().Context(), userID, req.BusID,
		req.Seats, req.Source, req.Destination, date)
	if err != nil {
		return bookingError(c, err)
	}
	status := http.StatusCreated
	if len(booked) == 0 {
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"booked": booked, "failed": failed})
}

// ListTickets handles GET /v1/my-tickets, returning the user's bookings
// with bus details, newest first.
func (h *BookingHandler) ListTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets, err := h.Bookings.ListUserBookings(c.Request().Context(), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": tickets})
}

// CancelBooking handles PATCH /v1/bookings/:id/cancel. The booking record
// is kept with status CANCELLED and its seat becomes available again.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.CancelBooking(c.Request().Context(), userID, bookingID); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteBooking handles DELETE /v1/bookings/:id, removing the ledger entry
// entirely.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.DeleteBooking(c.Request().Context(), userID, bookingID); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
