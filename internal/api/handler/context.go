package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/identity"
)

// currentPrincipal returns the principal resolved by the Auth middleware.
// Handlers that require an authenticated caller use this as a fast-fail
// check before any service call; an anonymous request is rejected with 401.
func currentPrincipal(c echo.Context) (*domain.User, error) {
	user, ok := identity.FromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return user, nil
}
