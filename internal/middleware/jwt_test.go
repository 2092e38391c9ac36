package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rayhank/busflow/internal/utils"
)

func runJWT(t *testing.T, secret, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := JWTAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, c
}

func TestJWTAuth(t *testing.T) {
	secret := "test-secret"
	tok, err := utils.NewAccessToken(secret, 7, "DRIVER", 15)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	rec, c := runJWT(t, secret, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", rec.Code)
	}
	if c.Get("role") != "DRIVER" {
		t.Errorf("role claim = %v, want DRIVER", c.Get("role"))
	}
	if sub, ok := c.Get("user_id").(float64); !ok || sub != 7 {
		t.Errorf("user_id claim = %v, want 7", c.Get("user_id"))
	}
}

func TestJWTAuthRejects(t *testing.T) {
	secret := "test-secret"
	tok, err := utils.NewAccessToken("other-secret", 7, "DRIVER", 15)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
		"wrong secret":   "Bearer " + tok.Token,
	}
	for name, header := range cases {
		rec, _ := runJWT(t, secret, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}
