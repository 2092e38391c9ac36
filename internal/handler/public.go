package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/model"
	"github.com/rayhank/busflow/internal/repository"
	"github.com/rayhank/busflow/internal/service"
)

// PublicHandler serves the unauthenticated browse endpoints: active buses,
// route search and seat layouts. Guests can inspect availability before
// registering.
type PublicHandler struct {
	Buses    *repository.BusRepo
	Bookings *service.BookingService
}

func NewPublicHandler(buses *repository.BusRepo, bookings *service.BookingService) *PublicHandler {
	if buses == nil || bookings == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Buses: buses, Bookings: bookings}
}

// busView hides fleet-internal fields from guests.
type busView struct {
	ID     uint64   `json:"id"`
	Name   string   `json:"name"`
	Route  []string `json:"route"`
	Price  uint32   `json:"price"`
	Status string   `json:"status"`
}

func toBusView(b model.Bus) busView {
	return busView{ID: b.ID, Name: b.Name, Route: b.Route, Price: b.Price, Status: b.Status}
}

// ListBuses handles GET /v1/buses, returning every active bus.
func (h *PublicHandler) ListBuses(c echo.Context) error {
	buses, err := h.Buses.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]busView, 0, len(buses))
	for _, b := range buses {
		items = append(items, toBusView(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBus handles GET /v1/buses/:id.
func (h *PublicHandler) GetBus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	bus, err := h.Buses.GetByID(c.Request().Context(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBusView(bus)})
}

// SearchBuses handles GET /v1/search/buses?source=&destination=. It returns
// active buses whose route contains both stops with the source first, i.e.
// buses that can actually carry the requested trip.
func (h *PublicHandler) SearchBuses(c echo.Context) error {
	source := strings.TrimSpace(c.QueryParam("source"))
	destination := strings.TrimSpace(c.QueryParam("destination"))
	if source == "" || destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "source and destination are required"})
	}
	buses, err := h.Buses.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]busView, 0)
	for _, b := range buses {
		if b.ValidTrip(source, destination) {
			items = append(items, toBusView(b))
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SeatLayout handles GET /v1/buses/:id/seats?date=YYYY-MM-DD. The response
// always contains the full 45-seat plan in fixed order with per-seat
// occupancy for the requested day (today when omitted).
func (h *PublicHandler) SeatLayout(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	date, err := parseTravelDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	seats, err := h.Bookings.SeatLayout(c.Request().Context(), id, date)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  date.Format("2006-01-02"),
		"seats": seats,
	})
}
