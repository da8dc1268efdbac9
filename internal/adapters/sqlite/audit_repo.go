// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/warden/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditLog with SQLite.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append records one audit entry. created_at is stamped by the database.
func (r *AuditRepository) Append(ctx context.Context, entry *secondary.AuditEntry) error {
	var detail sql.NullString
	if entry.Detail != "" {
		detail = sql.NullString{String: entry.Detail, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (actor_id, entity_type, entity_id, action, detail) VALUES (?, ?, ?, ?, ?)",
		entry.ActorID, entry.EntityType, entry.EntityID, entry.Action, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*secondary.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, entity_type, entity_id, action, detail, created_at
		FROM audit_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditEntry
	for rows.Next() {
		entry := &secondary.AuditEntry{}
		var detail sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.EntityType, &entry.EntityID,
			&entry.Action, &detail, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.Detail = detail.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// Ensure AuditRepository implements the interface
var _ secondary.AuditLog = (*AuditRepository)(nil)
