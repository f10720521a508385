package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyago/voyago-backend/internal/service"
	"github.com/voyago/voyago-backend/internal/util"
)

func TestRequireAuthRejectsBadHeaders(t *testing.T) {
	auth := service.NewAuthService(nil, nil, util.NewJWTManager("test-secret", time.Hour), "")
	e := echo.New()
	handler := RequireAuth(auth)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"no token part", "Bearer"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/trips", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("%s: middleware returned error: %v", tc.name, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, rec.Code)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := NewRouter([]string{"*"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}
}
