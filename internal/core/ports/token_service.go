package ports

import (
	"time"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// TokenClaims is the decoded, verified content of a credential.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and validates signed, time-bounded credentials.
// Implementations hold only an immutable signing key and are safe for
// concurrent use.
type TokenService interface {
	// Issue builds a signed token for the principal with subject, issued-at
	// and expires-at claims.
	Issue(user *domain.User) (string, error)
	// Validate verifies signature and expiry. On failure it returns exactly
	// one of domain.ErrMalformedToken, domain.ErrInvalidSignature or
	// domain.ErrExpiredToken.
	Validate(token string) (*TokenClaims, error)
}
