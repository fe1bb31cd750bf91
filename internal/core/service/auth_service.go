package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/ports"
)

// AuthService implements registration, login and principal introspection.
// Credential failures are uniform: callers cannot distinguish an unknown
// email from a wrong password.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	cache  ports.ContextCache
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, cache ports.ContextCache, audit ports.AuditSink, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cache: cache, audit: audit, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password, role string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user registered")
	s.record(domain.AuditEvent{Actor: user.Email, Action: domain.AuditUserRegistered})
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginFailed})
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("email", email).Msg("login failed")
		s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginFailed})
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Msg("login succeeded")
	s.record(domain.AuditEvent{Actor: email, Action: domain.AuditLoginSucceeded})
	return token, user, nil
}

// Context returns the principal snapshot for email, served from the cache
// when present.
func (s *AuthService) Context(ctx context.Context, email string) (*ports.UserContext, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, email)
		if err != nil {
			// Cache trouble must not break introspection.
			s.logger.Warn().Err(err).Msg("context cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	uc := &ports.UserContext{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, email, uc); err != nil {
			s.logger.Warn().Err(err).Msg("context cache write failed")
		}
	}
	return uc, nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
