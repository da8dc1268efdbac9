// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the core drives
// persistence and the chat platform.
package secondary

import (
	"context"
	"time"
)

// TicketRecord represents a ticket as stored in the state document.
// The channel id is the primary key.
type TicketRecord struct {
	ChannelID   string     `json:"channelId"`
	OwnerID     string     `json:"userId"`
	Category    string     `json:"category"`
	Number      int        `json:"ticketNumber"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClaimedBy   string     `json:"claimedBy,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`
	ClosedBy    string     `json:"closedBy,omitempty"`
	CloseReason string     `json:"closeReason,omitempty"`
}

// TicketRepository defines the secondary port for ticket persistence.
// Lookups return (nil, nil) when no record exists.
type TicketRepository interface {
	// Put inserts or replaces a ticket record and persists the change.
	Put(ctx context.Context, rec *TicketRecord) error

	// Get retrieves a ticket record by channel id.
	Get(ctx context.Context, channelID string) (*TicketRecord, error)

	// Delete removes a ticket record and persists the change.
	Delete(ctx context.Context, channelID string) error

	// List retrieves all live ticket records.
	List(ctx context.Context) ([]*TicketRecord, error)

	// FindOpenByOwner scans live records for an open ticket owned by the
	// given user.
	FindOpenByOwner(ctx context.Context, ownerID string) (*TicketRecord, error)
}

// CounterStore defines the secondary port for per-category sequence numbers.
type CounterStore interface {
	// NextSequence returns the next sequence number for a category. The new
	// value is durable before it is returned; a write failure is returned as
	// an error and the number is never handed out.
	NextSequence(ctx context.Context, category string) (int, error)

	// Counters returns a snapshot of the last-issued number per category.
	Counters(ctx context.Context) (map[string]int, error)
}
