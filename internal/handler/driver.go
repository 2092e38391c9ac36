package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/repository"
)

// DriverHandler serves the driver portal. Drivers only see the buses
// assigned to them; fleet management stays with the admins.
type DriverHandler struct {
	Buses *repository.BusRepo
}

func NewDriverHandler(buses *repository.BusRepo) *DriverHandler {
	if buses == nil {
		panic("nil repository passed to NewDriverHandler")
	}
	return &DriverHandler{Buses: buses}
}

// AssignedBuses handles GET /v1/driver/buses.
func (h *DriverHandler) AssignedBuses(c echo.Context) error {
	driverID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	buses, err := h.Buses.ListByDriver(c.Request().Context(), driverID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": buses})
}
