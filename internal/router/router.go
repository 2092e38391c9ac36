package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/handler"
	"github.com/rayhank/busflow/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication at all.
// Currently that is just the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts the authentication endpoints. Register, login and the
// token exchange operations live under /v1/auth and are rate limited; the
// identity endpoint /v1/me requires a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limiter)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterPublic mounts the unauthenticated browse endpoints: active buses,
// route search and per-day seat layouts. Guests can inspect availability
// before registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/buses", p.ListBuses)
	e.GET("/v1/buses/:id", p.GetBus)
	e.GET("/v1/buses/:id/seats", p.SeatLayout)
	e.GET("/v1/search/buses", p.SearchBuses)
}
