package domain

import "time"

// Audit actions recorded for security-relevant operations.
const (
	AuditLoginSucceeded = "login_succeeded"
	AuditLoginFailed    = "login_failed"
	AuditUserRegistered = "user_registered"
	AuditUserCreated    = "user_created"
	AuditUserUpdated    = "user_updated"
	AuditUserDeleted    = "user_deleted"
	AuditAdminGuardHit  = "admin_guard_denied"
)

// AuditEvent is one entry in the security audit trail. Actor is the email of
// the principal performing the action, or the attempted identifier for failed
// logins. Target identifies the affected resource when applicable.
type AuditEvent struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
