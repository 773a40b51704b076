package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/domain"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/middleware"
	"github.com/dafibh/fortuna/fortuna-forecast/internal/testutil"
	"github.com/labstack/echo/v4"
)

var errRepositoryDown = errors.New("repository unavailable")

type stubValidator struct{}

func (stubValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|test"},
	}, nil
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	f := newHandlerFixture(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC))
	rl := middleware.NewRateLimiterWithConfig(60, 2)
	t.Cleanup(rl.Stop)
	workspaces := testutil.NewMockWorkspaceRepository()
	workspaces.ByAuth0ID["auth0|test"] = &domain.Workspace{ID: 7}
	auth := middleware.NewAuthMiddlewareWithValidator(stubValidator{}, middleware.RepositoryWorkspaceProvider{Workspaces: workspaces})
	RegisterRoutes(e, auth, rl, f.handler)
	return e
}

func TestRoutes_RequireAuthentication(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/projection", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestRoutes_AuthenticatedProjection(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast/projection", strings.NewReader(`{"monthsAhead": 1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRoutes_RateLimitedPerWorkspace(t *testing.T) {
	e := newTestServer(t)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/projection", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after burst, got %d", last)
	}
}
