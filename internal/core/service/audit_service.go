package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/simplesdental/product-api/internal/core/domain"
	"github.com/simplesdental/product-api/internal/core/ports"
)

// AuditService persists security audit events. It is invoked from dispatcher
// workers, never inline with request handling.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return err
	}
	s.logger.Debug().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Msg("audit event recorded")
	return nil
}
