package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func callWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("PASSENGER")

	if rec := callWithRole(t, mw, "PASSENGER"); rec.Code != http.StatusOK {
		t.Errorf("matching role: status = %d, want 200", rec.Code)
	}
	for name, role := range map[string]interface{}{
		"wrong role":   "DRIVER",
		"missing role": nil,
		"non-string":   42,
	} {
		rec := callWithRole(t, mw, role)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", name, rec.Code)
		}
		// The denial must not leak which roles would have been accepted.
		if strings.Contains(rec.Body.String(), "PASSENGER") {
			t.Errorf("%s: response leaks accepted roles: %s", name, rec.Body.String())
		}
	}
}

func TestRequireRoleMultiple(t *testing.T) {
	mw := RequireRole("DRIVER", "ADMIN")
	if rec := callWithRole(t, mw, "ADMIN"); rec.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", rec.Code)
	}
	if rec := callWithRole(t, mw, "PASSENGER"); rec.Code != http.StatusForbidden {
		t.Errorf("passenger: status = %d, want 403", rec.Code)
	}
}
