package ticket

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
// Guard failures wrap ErrNotAuthorized so callers can classify them.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotAuthorized, r.Reason)
}

// ClaimContext provides the context for claim guards.
type ClaimContext struct {
	ClaimantID  string
	HasTeamRole bool
}

// CanClaim evaluates whether a user can claim a ticket.
// Rule: only members holding the support-team role can claim.
// A ticket that is already claimed may be re-claimed; the new claimant
// overwrites the old one.
func CanClaim(ctx ClaimContext) GuardResult {
	if !ctx.HasTeamRole {
		return GuardResult{
			Allowed: false,
			Reason:  "only team members can claim tickets",
		}
	}
	return GuardResult{Allowed: true}
}
