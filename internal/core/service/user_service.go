package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/ports"
)

const maxUserPageSize = 100

// UserService implements user management behind the admin role gate.
//
// Deleting a user and demoting an admin pass through the last-administrator
// guard: the admin count is read and the mutation applied inside one critical
// section, so two concurrent removals can never both observe count >= 2 and
// leave the system without an admin.
type UserService struct {
	users  ports.UserRepository
	cache  ports.ContextCache
	audit  ports.AuditSink
	logger zerolog.Logger

	// adminMu serializes the count-then-mutate sequence of the guard.
	adminMu sync.Mutex
}

func NewUserService(users ports.UserRepository, cache ports.ContextCache, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{users: users, cache: cache, audit: audit, logger: logger}
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxUserPageSize {
		filter.Limit = maxUserPageSize
	}
	return s.users.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", user.Role).Msg("user created")
	s.record(domain.AuditEvent{Actor: user.Email, Action: domain.AuditUserCreated, Target: user.ID})
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrUserExists
		}
	}

	// Last-administrator guard: demoting the only admin is refused.
	if user.Role == domain.RoleAdmin && input.Role != domain.RoleAdmin {
		count, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			s.logger.Warn().Str("user_id", id).Msg("refused role change of last admin")
			s.record(domain.AuditEvent{Actor: user.Email, Action: domain.AuditAdminGuardHit, Target: id, Detail: "role change"})
			return nil, domain.ErrLastAdmin
		}
	}

	previousEmail := user.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Role = input.Role
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, previousEmail)
	s.invalidate(ctx, updated.Email)
	s.logger.Info().Str("user_id", id).Msg("user updated")
	s.record(domain.AuditEvent{Actor: updated.Email, Action: domain.AuditUserUpdated, Target: id})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	s.adminMu.Lock()
	defer s.adminMu.Unlock()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Last-administrator guard: deleting the only admin is refused.
	if user.Role == domain.RoleAdmin {
		count, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			s.logger.Warn().Str("user_id", id).Msg("refused deletion of last admin")
			s.record(domain.AuditEvent{Actor: user.Email, Action: domain.AuditAdminGuardHit, Target: id, Detail: "delete"})
			return domain.ErrLastAdmin
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, user.Email)
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	s.record(domain.AuditEvent{Actor: user.Email, Action: domain.AuditUserDeleted, Target: id})
	return nil
}

func (s *UserService) invalidate(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("context cache invalidation failed")
	}
}

func (s *UserService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
