package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/identity"
)

func invokeRequireRole(t *testing.T, principal *domain.User, roles ...string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		req = req.WithContext(identity.WithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := RequireRole(roles...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	status := rec.Code
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
		} else {
			t.Fatalf("unexpected error type: %v", err)
		}
	}
	return status, called
}

func TestRequireRole(t *testing.T) {
	admin := &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}
	user := &domain.User{Email: "user@example.com", Role: domain.RoleUser}

	cases := []struct {
		name      string
		principal *domain.User
		roles     []string
		want      int
	}{
		{"admin passes admin gate", admin, []string{domain.RoleAdmin}, http.StatusOK},
		{"user denied by admin gate", user, []string{domain.RoleAdmin}, http.StatusForbidden},
		{"user passes shared gate", user, []string{domain.RoleAdmin, domain.RoleUser}, http.StatusOK},
		{"anonymous denied", nil, []string{domain.RoleAdmin, domain.RoleUser}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, called := invokeRequireRole(t, tc.principal, tc.roles...)
			if status != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, status)
			}
			if (tc.want == http.StatusOK) != called {
				t.Fatalf("handler called=%v for status %d", called, tc.want)
			}
		})
	}
}
