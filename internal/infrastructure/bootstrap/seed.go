// Package bootstrap seeds the initial administrator so the system never
// starts without one.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/ports"
)

// SeedAdmin creates the configured administrator account when it does not
// exist yet. Idempotent: a second run with the same identifier is a no-op.
// The plaintext secret is hashed before it touches the store and is never
// logged.
func SeedAdmin(ctx context.Context, users ports.UserRepository, email, password string, log zerolog.Logger) error {
	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		log.Info().Str("email", email).Msg("seed admin already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}

	now := time.Now().UTC()
	_, err = users.Create(ctx, &domain.User{
		FirstName:    "Admin",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent replica may have seeded first; that still satisfies
		// the invariant.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("seed admin create: %w", err)
	}

	log.Info().Str("email", email).Msg("seed admin created")
	return nil
}
