package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/simplesdental/product-api/internal/api/metrics"
	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/identity"
	"github.com/simplesdental/product-api/internal/core/ports"
)

// Auth establishes the request's identity from the Authorization header.
//
// A missing header leaves the request anonymous and continues: some routes
// (login, register, health) are reachable without a credential, and role
// gates downstream deny anonymous access on their own. A presented token
// that is malformed, badly signed, or expired rejects the request before the
// handler runs, as does a valid token whose subject no longer resolves to a
// stored user. All rejections answer 401 "invalid credentials" uniformly.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// First successful resolution wins.
			if _, ok := identity.FromContext(c.Request().Context()); ok {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("bad_header").Inc()
				return unauthorized()
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return unauthorized()
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				// A stale or foreign subject is an authentication failure;
				// never fabricate a principal from unverified claims.
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
					return unauthorized()
				}
				return err
			}

			ctx := identity.WithPrincipal(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
