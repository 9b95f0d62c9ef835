package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/soundstash/media-catalog/internal/core/domain"
)

func runRequireRole(t *testing.T, role string, allowed ...string) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	called := false
	handler := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	return handler(c), called
}

func TestRequireRole_Allowed(t *testing.T) {
	err, called := runRequireRole(t, domain.RoleAdmin, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	err, called := runRequireRole(t, domain.RoleUser, domain.RoleAdmin)
	if called {
		t.Fatalf("next should not run")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_MultipleAllowed(t *testing.T) {
	err, called := runRequireRole(t, domain.RoleUser, domain.RoleAdmin, domain.RoleUser)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// A request that never passed through Auth has no role in context. That is a
// wiring bug and must deny, not allow.
func TestRequireRole_NoRoleFailsClosed(t *testing.T) {
	err, called := runRequireRole(t, "", domain.RoleAdmin)
	if called {
		t.Fatalf("next should not run without a role")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
