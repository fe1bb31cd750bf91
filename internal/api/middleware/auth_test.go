package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/identity"
	"github.com/simplesdental/product-api/internal/core/ports"
	"github.com/simplesdental/product-api/internal/core/service"
)

const testSecret = "middleware-test-secret"

// fakeUserRepo resolves a single known subject.
type fakeUserRepo struct {
	user *domain.User
}

func (f *fakeUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return f.user != nil && f.user.Email == email, nil
}

func (f *fakeUserRepo) CountByRole(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (f *fakeUserRepo) Delete(context.Context, string) error { return nil }

func (f *fakeUserRepo) List(context.Context, ports.ListUsersFilter) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func invokeAuth(t *testing.T, tokens ports.TokenService, users ports.UserRepository, header string) (int, *domain.User, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *domain.User
	var called bool
	handler := Auth(tokens, users)(func(c echo.Context) error {
		called = true
		principal, _ = identity.FromContext(c.Request().Context())
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
	return status, principal, called
}

func TestAuth_MissingHeaderContinuesAnonymous(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	status, principal, called := invokeAuth(t, tokens, &fakeUserRepo{}, "")

	if !called {
		t.Fatal("handler was not reached")
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if principal != nil {
		t.Fatalf("expected anonymous request, got principal %s", principal.Email)
	}
}

func TestAuth_ValidTokenResolvesPrincipal(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	user := &domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleAdmin}
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	status, principal, called := invokeAuth(t, tokens, &fakeUserRepo{user: user}, "Bearer "+token)
	if !called {
		t.Fatal("handler was not reached")
	}
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if principal == nil || principal.Email != "ada@example.com" {
		t.Fatalf("expected resolved principal, got %+v", principal)
	}
}

func TestAuth_RejectsPresentedButInvalidCredentials(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	user := &domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleUser}
	repo := &fakeUserRepo{user: user}

	valid, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	foreign, err := service.NewTokenService("other-secret", time.Hour).Issue(user)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"not bearer", "Basic " + valid},
		{"no scheme", valid},
		{"garbage token", "Bearer not.a.token"},
		{"wrong signature", "Bearer " + foreign},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, principal, called := invokeAuth(t, tokens, repo, tc.header)
			if called {
				t.Fatal("handler must not run on rejected credentials")
			}
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
			if principal != nil {
				t.Fatalf("no principal expected, got %+v", principal)
			}
		})
	}
}

func TestAuth_RejectsUnknownSubject(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	token, err := tokens.Issue(&domain.User{Email: "ghost@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	status, _, called := invokeAuth(t, tokens, &fakeUserRepo{}, "Bearer "+token)
	if called {
		t.Fatal("handler must not run for an unresolvable subject")
	}
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestAuth_ExistingPrincipalWins(t *testing.T) {
	tokens := service.NewTokenService(testSecret, time.Hour)
	existing := &domain.User{ID: "u9", Email: "prior@example.com", Role: domain.RoleUser}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// The header would fail validation; the established identity short-circuits it.
	req.Header.Set("Authorization", "Bearer junk")
	req = req.WithContext(identity.WithPrincipal(req.Context(), existing))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *domain.User
	handler := Auth(tokens, &fakeUserRepo{})(func(c echo.Context) error {
		principal, _ = identity.FromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if principal == nil || principal.Email != "prior@example.com" {
		t.Fatalf("expected the established principal, got %+v", principal)
	}
}
