package secondary

import (
	"context"
	"time"
)

// AuditEntry is one recorded lifecycle mutation.
type AuditEntry struct {
	ID         int64
	ActorID    string
	EntityType string // "ticket" or "application"
	EntityID   string
	Action     string // e.g. "create", "claim", "priority", "close"
	Detail     string
	CreatedAt  time.Time
}

// AuditLog defines the secondary port for the audit trail. Writes are best
// effort from the caller's point of view: an audit failure never fails the
// mutation it describes.
type AuditLog interface {
	// Append records one entry. CreatedAt is stamped by the implementation.
	Append(ctx context.Context, entry *AuditEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*AuditEntry, error)
}
