// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the presentation layer calls.
package primary

import (
	"context"
	"time"
)

// TicketService defines the primary port for the ticket registry.
type TicketService interface {
	// CreateTicket opens a new ticket for the owner. Rejects with
	// ticket.ErrAlreadyOpen if the owner already has an open ticket.
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*CreateTicketResponse, error)

	// AddParticipant grants a user access to a ticket channel.
	AddParticipant(ctx context.Context, req ParticipantRequest) error

	// RemoveParticipant revokes a user's access to a ticket channel.
	RemoveParticipant(ctx context.Context, req ParticipantRequest) error

	// RequestClose produces a two-step close confirmation without mutating
	// state.
	RequestClose(ctx context.Context, req CloseRequest) (*CloseConfirmation, error)

	// ConfirmClose consumes a confirmation token, closes the ticket, and
	// schedules channel destruction after a grace delay.
	ConfirmClose(ctx context.Context, req ConfirmCloseRequest) (*Ticket, error)

	// CancelClose discards a pending close confirmation.
	CancelClose(ctx context.Context, token string) error

	// Claim stamps the claimant on a ticket. Rejects with
	// ticket.ErrNotAuthorized when the claimant lacks the team role.
	Claim(ctx context.Context, req ClaimRequest) error

	// SetPriority stamps the priority and reorders the channel by rank.
	SetPriority(ctx context.Context, req PriorityRequest) error

	// GetTicket retrieves a ticket by channel id; nil when not a ticket.
	GetTicket(ctx context.Context, channelID string) (*Ticket, error)

	// ListTickets retrieves all live tickets.
	ListTickets(ctx context.Context) ([]*Ticket, error)
}

// CreateTicketRequest contains parameters for opening a ticket.
type CreateTicketRequest struct {
	Category string
	OwnerID  string
}

// CreateTicketResponse contains the result of opening a ticket.
type CreateTicketResponse struct {
	Ticket *Ticket
}

// ParticipantRequest adds or removes a participant on a ticket.
type ParticipantRequest struct {
	ChannelID string
	UserID    string
	ActorID   string
}

// CloseRequest asks for a close confirmation.
type CloseRequest struct {
	ChannelID   string
	RequesterID string
	Reason      string
}

// CloseConfirmation is the token binding a pending close to its ticket and
// reason until confirmed or cancelled.
type CloseConfirmation struct {
	Token     string
	ChannelID string
	Reason    string
}

// ConfirmCloseRequest confirms a pending close.
type ConfirmCloseRequest struct {
	Token    string
	CloserID string
}

// ClaimRequest claims a ticket for a team member.
type ClaimRequest struct {
	ChannelID  string
	ClaimantID string
}

// PriorityRequest sets a ticket's priority level.
type PriorityRequest struct {
	ChannelID string
	Priority  string
	ActorID   string
}

// Ticket represents a ticket entity at the port boundary.
type Ticket struct {
	ChannelID     string
	OwnerID       string
	Category      string
	CategoryTitle string
	Number        string // zero-padded
	Status        string
	CreatedAt     time.Time
	ClaimedBy     string
	Priority      string
	ClosedAt      *time.Time
	ClosedBy      string
	CloseReason   string
}
