package ports

import (
	"context"

	"github.com/simplesdental/product-api/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous recording. Enqueue must not
// block request handling beyond transient channel backpressure.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditService persists audit events.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository defines persistence for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
