package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/config"
	"github.com/rayhank/busflow/internal/model"
	"github.com/rayhank/busflow/internal/repository"
)

// AdminHandler serves the admin portal: fleet management and account
// administration. All routes are guarded by the ADMIN role.
type AdminHandler struct {
	Cfg   config.Config
	Buses *repository.BusRepo
	Users *repository.UserRepo
}

func NewAdminHandler(cfg config.Config, buses *repository.BusRepo, users *repository.UserRepo) *AdminHandler {
	if buses == nil || users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Buses: buses, Users: users}
}

type busReq struct {
	Name     string   `json:"name"`
	Route    []string `json:"route"`
	Price    uint32   `json:"price"`
	DriverID *uint64  `json:"driver_id"`
	Status   string   `json:"status"`
}

// validateBusReq applies the fleet field rules: name of at least two
// characters, a route of at least two distinct stops, a positive price and
// a known status (defaulting to ACTIVE).
func validateBusReq(req *busReq) string {
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return "name must be at least 2 characters"
	}
	stops := make([]string, 0, len(req.Route))
	seen := make(map[string]struct{}, len(req.Route))
	for _, s := range req.Route {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			return "route stops must be distinct"
		}
		seen[s] = struct{}{}
		stops = append(stops, s)
	}
	if len(stops) < 2 {
		return "route must have at least 2 stops"
	}
	req.Route = stops
	if req.Price == 0 {
		return "price must be positive"
	}
	if req.Status == "" {
		req.Status = model.BusStatusActive
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidBusStatus(req.Status) {
		return "unknown bus status"
	}
	return ""
}

// requireDriver checks that id names an account with the DRIVER role.
func (h *AdminHandler) requireDriver(ctx context.Context, id uint64) string {
	u, err := h.Users.GetByID(ctx, id)
	if err == sql.ErrNoRows {
		return "driver not found"
	}
	if err != nil {
		return "database error"
	}
	if u.Role != model.RoleDriver {
		return "user is not a driver"
	}
	return ""
}

// CreateBus handles POST /v1/admin/buses.
func (h *AdminHandler) CreateBus(c echo.Context) error {
	var req busReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateBusReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if req.DriverID != nil {
		if msg := h.requireDriver(ctx, *req.DriverID); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
	}
	bus, err := h.Buses.Create(ctx, &model.Bus{
		Name: req.Name, Route: req.Route, DriverID: req.DriverID,
		Price: req.Price, Status: req.Status,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bus failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": bus})
}

// UpdateBus handles PUT /v1/admin/buses/:id.
func (h *AdminHandler) UpdateBus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	var req busReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateBusReq(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if req.DriverID != nil {
		if msg := h.requireDriver(ctx, *req.DriverID); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
	}
	bus, err := h.Buses.Update(ctx, &model.Bus{
		ID: id, Name: req.Name, Route: req.Route, DriverID: req.DriverID,
		Price: req.Price, Status: req.Status,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": bus})
}

// DeleteBus handles DELETE /v1/admin/buses/:id.
func (h *AdminHandler) DeleteBus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	if err := h.Buses.Delete(c.Request().Context(), id); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBuses handles GET /v1/admin/buses: the full fleet, every status.
func (h *AdminHandler) ListBuses(c echo.Context) error {
	buses, err := h.Buses.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": buses})
}

type assignDriverReq struct {
	DriverID *uint64 `json:"driver_id"` // null unassigns
}

// AssignDriver handles PUT /v1/admin/buses/:id/driver.
func (h *AdminHandler) AssignDriver(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bus id"})
	}
	var req assignDriverReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if req.DriverID != nil {
		if msg := h.requireDriver(ctx, *req.DriverID); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
	}
	if err := h.Buses.AssignDriver(ctx, id, req.DriverID); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type createDriverReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateDriver handles POST /v1/admin/drivers. This is the only path that
// mints a DRIVER account; it is reachable only with an ADMIN token.
func (h *AdminHandler) CreateDriver(c echo.Context) error {
	var req createDriverReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Name) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be at least 2 characters"})
	}
	if req.Email == "" || len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and a password of at least 6 characters are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Name, req.Password, model.RoleDriver, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create driver failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": userPart{
		ID: uid, Email: req.Email, Name: req.Name, Role: model.RoleDriver,
	}})
}

// ListDrivers handles GET /v1/admin/drivers.
func (h *AdminHandler) ListDrivers(c echo.Context) error {
	return h.listUsers(c, model.RoleDriver)
}

// ListUsers handles GET /v1/admin/users with an optional ?role= filter.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	if role != "" && !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	return h.listUsers(c, role)
}

func (h *AdminHandler) listUsers(c echo.Context, role string) error {
	ctx := c.Request().Context()
	var (
		users []model.User
		err   error
	)
	if role == "" {
		users, err = h.Users.ListAll(ctx)
	} else {
		users, err = h.Users.ListByRole(ctx, role)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]userPart, 0, len(users))
	for _, u := range users {
		items = append(items, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Stats handles GET /v1/admin/stats, returning per-role account counts.
func (h *AdminHandler) Stats(c echo.Context) error {
	counts, err := h.Users.CountByRole(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"passengers": counts[model.RolePassenger],
		"drivers":    counts[model.RoleDriver],
		"admins":     counts[model.RoleAdmin],
	})
}
