package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	coreticket "github.com/example/warden/internal/core/ticket"
	"github.com/example/warden/internal/ports/primary"
	"github.com/example/warden/internal/ports/secondary"
)

// DefaultDeleteDelay is the grace period between a confirmed close and the
// destruction of the backing channel, so the closure message can be read.
const DefaultDeleteDelay = 5 * time.Second

// TicketServiceImpl implements the TicketService interface. It owns the
// ticket registry: all mutations of ticket records go through it, which is
// what makes the one-open-ticket-per-user invariant enforceable.
//
// Locking discipline: locks serializes operations per ticket channel.
// mu guards the owner-reservation set and the pending-close table only and
// is never held across platform I/O.
type TicketServiceImpl struct {
	repo     secondary.TicketRepository
	counters secondary.CounterStore
	gateway  secondary.ChannelGateway
	roles    secondary.RoleChecker
	audit    secondary.AuditLog
	sched    secondary.Scheduler

	deleteDelay time.Duration

	locks *keyedMutex

	mu            sync.Mutex
	reservations  map[string]struct{}
	pendingCloses map[string]pendingClose
}

type pendingClose struct {
	channelID string
	reason    string
}

// NewTicketService creates a new TicketService with injected dependencies.
func NewTicketService(
	repo secondary.TicketRepository,
	counters secondary.CounterStore,
	gateway secondary.ChannelGateway,
	roles secondary.RoleChecker,
	audit secondary.AuditLog,
	sched secondary.Scheduler,
) *TicketServiceImpl {
	return &TicketServiceImpl{
		repo:          repo,
		counters:      counters,
		gateway:       gateway,
		roles:         roles,
		audit:         audit,
		sched:         sched,
		deleteDelay:   DefaultDeleteDelay,
		locks:         newKeyedMutex(),
		reservations:  make(map[string]struct{}),
		pendingCloses: make(map[string]pendingClose),
	}
}

// SetDeleteDelay overrides the close grace delay (tests use zero).
func (s *TicketServiceImpl) SetDeleteDelay(d time.Duration) {
	s.deleteDelay = d
}

// CreateTicket opens a new ticket channel for the owner.
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req primary.CreateTicketRequest) (*primary.CreateTicketResponse, error) {
	category, err := coreticket.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	// Reserve the owner before any I/O so two near-simultaneous creates by
	// the same user cannot both pass the open-ticket scan.
	if err := s.reserveOwner(ctx, req.OwnerID); err != nil {
		return nil, err
	}
	defer s.releaseOwner(req.OwnerID)

	// Draw the sequence number; it is durable before NextSequence returns.
	seq, err := s.counters.NextSequence(ctx, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate ticket number: %w", err)
	}

	channelID, err := s.gateway.CreateTicketChannel(ctx, secondary.CreateChannelRequest{
		Name:     coreticket.ChannelName(category, seq),
		Category: string(category),
		OwnerID:  req.OwnerID,
	})
	if err != nil {
		// The drawn number is skipped, never reused.
		return nil, fmt.Errorf("failed to create ticket channel: %w", err)
	}

	rec := &secondary.TicketRecord{
		ChannelID: channelID,
		OwnerID:   req.OwnerID,
		Category:  string(category),
		Number:    seq,
		Status:    string(coreticket.InitialStatus()),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		// Roll back the channel so the platform does not diverge from the
		// registry. Best effort: an unreachable platform leaves an orphan
		// channel, not an orphan record.
		_ = s.gateway.DestroyChannel(ctx, channelID)
		return nil, fmt.Errorf("failed to register ticket: %w", err)
	}

	s.writeAudit(ctx, req.OwnerID, channelID, "create", coreticket.ChannelName(category, seq))

	return &primary.CreateTicketResponse{Ticket: recordToTicket(rec)}, nil
}

func (s *TicketServiceImpl) reserveOwner(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, inflight := s.reservations[ownerID]; inflight {
		return fmt.Errorf("%w (creation in progress)", coreticket.ErrAlreadyOpen)
	}
	existing, err := s.repo.FindOpenByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to scan open tickets: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: <#%s>", coreticket.ErrAlreadyOpen, existing.ChannelID)
	}
	s.reservations[ownerID] = struct{}{}
	return nil
}

func (s *TicketServiceImpl) releaseOwner(ownerID string) {
	s.mu.Lock()
	delete(s.reservations, ownerID)
	s.mu.Unlock()
}

// AddParticipant grants a user access to a ticket channel.
func (s *TicketServiceImpl) AddParticipant(ctx context.Context, req primary.ParticipantRequest) error {
	s.locks.Lock(req.ChannelID)
	defer s.locks.Unlock(req.ChannelID)

	if err := s.mustGet(ctx, req.ChannelID); err != nil {
		return err
	}
	if err := s.gateway.GrantAccess(ctx, req.ChannelID, req.UserID); err != nil {
		return fmt.Errorf("failed to add user to the ticket: %w", err)
	}
	s.writeAudit(ctx, req.ActorID, req.ChannelID, "participant-add", req.UserID)
	return nil
}

// RemoveParticipant revokes a user's access to a ticket channel.
func (s *TicketServiceImpl) RemoveParticipant(ctx context.Context, req primary.ParticipantRequest) error {
	s.locks.Lock(req.ChannelID)
	defer s.locks.Unlock(req.ChannelID)

	if err := s.mustGet(ctx, req.ChannelID); err != nil {
		return err
	}
	if err := s.gateway.RevokeAccess(ctx, req.ChannelID, req.UserID); err != nil {
		return fmt.Errorf("failed to remove user from the ticket: %w", err)
	}
	s.writeAudit(ctx, req.ActorID, req.ChannelID, "participant-remove", req.UserID)
	return nil
}

// RequestClose produces a close confirmation token. No state changes until
// the token is confirmed, so an accidental close stays reversible.
func (s *TicketServiceImpl) RequestClose(ctx context.Context, req primary.CloseRequest) (*primary.CloseConfirmation, error) {
	if err := s.mustGet(ctx, req.ChannelID); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = coreticket.DefaultCloseReason
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.pendingCloses[token] = pendingClose{channelID: req.ChannelID, reason: reason}
	s.mu.Unlock()

	return &primary.CloseConfirmation{
		Token:     token,
		ChannelID: req.ChannelID,
		Reason:    reason,
	}, nil
}

// CancelClose discards a pending close confirmation. Cancelling an unknown
// or already-consumed token is a no-op.
func (s *TicketServiceImpl) CancelClose(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.pendingCloses, token)
	s.mu.Unlock()
	return nil
}

// ConfirmClose flips the ticket to closed and schedules channel destruction
// after the grace delay.
func (s *TicketServiceImpl) ConfirmClose(ctx context.Context, req primary.ConfirmCloseRequest) (*primary.Ticket, error) {
	s.mu.Lock()
	pending, ok := s.pendingCloses[req.Token]
	if ok {
		delete(s.pendingCloses, req.Token)
	}
	s.mu.Unlock()
	if !ok {
		return nil, coreticket.ErrNoPendingClose
	}

	s.locks.Lock(pending.channelID)
	defer s.locks.Unlock(pending.channelID)

	rec, err := s.repo.Get(ctx, pending.channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", coreticket.ErrNotTicket, pending.channelID)
	}

	result := coreticket.ApplyClose(req.CloserID, pending.reason, time.Now().UTC())
	rec.Status = string(result.NewStatus)
	rec.ClosedAt = &result.ClosedAt
	rec.ClosedBy = result.ClosedBy
	rec.CloseReason = result.Reason
	if err := s.repo.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to persist ticket closure: %w", err)
	}

	s.writeAudit(ctx, req.CloserID, rec.ChannelID, "close", rec.CloseReason)

	channelID := rec.ChannelID
	s.sched.AfterFunc(s.deleteDelay, func() {
		s.finishDelete(channelID)
	})

	return recordToTicket(rec), nil
}

// finishDelete destroys the channel backing a closed ticket and removes the
// registry entry. It no-ops if the entry is already gone or no longer
// closed, and keeps the entry when destruction fails so the ticket is not
// silently orphaned.
func (s *TicketServiceImpl) finishDelete(channelID string) {
	ctx := context.Background()

	s.locks.Lock(channelID)
	defer s.locks.Unlock(channelID)

	rec, err := s.repo.Get(ctx, channelID)
	if err != nil || rec == nil {
		return
	}
	if rec.Status != string(coreticket.StatusClosed) {
		return
	}
	if err := s.gateway.DestroyChannel(ctx, channelID); err != nil {
		return
	}
	if err := s.repo.Delete(ctx, channelID); err != nil {
		return
	}
	s.writeAudit(ctx, rec.ClosedBy, channelID, "delete", "")
}

// Claim stamps the claimant on a ticket. Re-claiming by another team member
// overwrites the previous claimant.
func (s *TicketServiceImpl) Claim(ctx context.Context, req primary.ClaimRequest) error {
	s.locks.Lock(req.ChannelID)
	defer s.locks.Unlock(req.ChannelID)

	rec, err := s.repo.Get(ctx, req.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", coreticket.ErrNotTicket, req.ChannelID)
	}

	hasRole, err := s.roles.HasTeamRole(ctx, req.ClaimantID)
	if err != nil {
		return fmt.Errorf("failed to resolve team role: %w", err)
	}
	guard := coreticket.CanClaim(coreticket.ClaimContext{
		ClaimantID:  req.ClaimantID,
		HasTeamRole: hasRole,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	rec.ClaimedBy = req.ClaimantID
	if err := s.repo.Put(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist claim: %w", err)
	}
	s.writeAudit(ctx, req.ClaimantID, req.ChannelID, "claim", "")
	return nil
}

// SetPriority stamps the priority and reorders the channel by rank. The
// channel move happens first; a platform failure leaves the record untouched.
func (s *TicketServiceImpl) SetPriority(ctx context.Context, req primary.PriorityRequest) error {
	priority, err := coreticket.ParsePriority(req.Priority)
	if err != nil {
		return err
	}

	s.locks.Lock(req.ChannelID)
	defer s.locks.Unlock(req.ChannelID)

	rec, err := s.repo.Get(ctx, req.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", coreticket.ErrNotTicket, req.ChannelID)
	}

	if err := s.gateway.ReorderChannel(ctx, req.ChannelID, priority.Rank()); err != nil {
		return fmt.Errorf("failed to update ticket priority: %w", err)
	}

	rec.Priority = string(priority)
	if err := s.repo.Put(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist priority: %w", err)
	}
	s.writeAudit(ctx, req.ActorID, req.ChannelID, "priority", string(priority))
	return nil
}

// GetTicket retrieves a ticket by channel id; nil when not a ticket.
func (s *TicketServiceImpl) GetTicket(ctx context.Context, channelID string) (*primary.Ticket, error) {
	rec, err := s.repo.Get(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return recordToTicket(rec), nil
}

// ListTickets retrieves all live tickets.
func (s *TicketServiceImpl) ListTickets(ctx context.Context) ([]*primary.Ticket, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	tickets := make([]*primary.Ticket, len(records))
	for i, rec := range records {
		tickets[i] = recordToTicket(rec)
	}
	return tickets, nil
}

func (s *TicketServiceImpl) mustGet(ctx context.Context, channelID string) error {
	rec, err := s.repo.Get(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to load ticket: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", coreticket.ErrNotTicket, channelID)
	}
	return nil
}

func (s *TicketServiceImpl) writeAudit(ctx context.Context, actorID, channelID, action, detail string) {
	// Audit failures never fail the mutation they describe.
	_ = s.audit.Append(ctx, &secondary.AuditEntry{
		ActorID:    actorID,
		EntityType: "ticket",
		EntityID:   channelID,
		Action:     action,
		Detail:     detail,
	})
}

func recordToTicket(rec *secondary.TicketRecord) *primary.Ticket {
	return &primary.Ticket{
		ChannelID:     rec.ChannelID,
		OwnerID:       rec.OwnerID,
		Category:      rec.Category,
		CategoryTitle: coreticket.Category(rec.Category).Title(),
		Number:        coreticket.FormatNumber(rec.Number),
		Status:        rec.Status,
		CreatedAt:     rec.CreatedAt,
		ClaimedBy:     rec.ClaimedBy,
		Priority:      rec.Priority,
		ClosedAt:      rec.ClosedAt,
		ClosedBy:      rec.ClosedBy,
		CloseReason:   rec.CloseReason,
	}
}

// Ensure TicketServiceImpl implements the interface
var _ primary.TicketService = (*TicketServiceImpl)(nil)
