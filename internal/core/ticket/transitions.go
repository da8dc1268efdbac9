package ticket

import (
	"errors"
	"time"
)

// Status represents the lifecycle status of a ticket.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// DefaultCloseReason is used when a close request carries no reason.
const DefaultCloseReason = "No reason provided"

// Sentinel errors for ticket invariant violations.
var (
	// ErrAlreadyOpen rejects a create when the owner already has an open ticket.
	ErrAlreadyOpen = errors.New("you already have an open ticket")

	// ErrNotTicket rejects an action referencing a channel the registry does
	// not track.
	ErrNotTicket = errors.New("not a ticket channel")

	// ErrNotAuthorized rejects an action the actor lacks the capability for.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNoPendingClose rejects a close confirmation whose token is unknown
	// or already consumed.
	ErrNoPendingClose = errors.New("no pending close confirmation")
)

// CloseResult contains the result of a close transition: the new status and
// the closure stamp side effects.
type CloseResult struct {
	NewStatus Status
	ClosedAt  time.Time
	ClosedBy  string
	Reason    string
}

// ApplyClose applies the close transition. The caller passes the current
// time to enable testing. An empty reason becomes DefaultCloseReason.
func ApplyClose(closerID, reason string, now time.Time) CloseResult {
	if reason == "" {
		reason = DefaultCloseReason
	}
	return CloseResult{
		NewStatus: StatusClosed,
		ClosedAt:  now,
		ClosedBy:  closerID,
		Reason:    reason,
	}
}

// InitialStatus returns the status for a newly created ticket.
func InitialStatus() Status {
	return StatusOpen
}
