package secondary

import (
	"context"
	"time"
)

// CreateChannelRequest describes a private ticket channel to create.
type CreateChannelRequest struct {
	Name     string
	Category string
	OwnerID  string
}

// ChannelGateway drives the chat platform's channel surface. Every call may
// fail or time out independently; callers must not record core state changes
// the platform has not confirmed.
type ChannelGateway interface {
	// CreateTicketChannel creates a private channel visible to the owner and
	// the support team, returning its channel id.
	CreateTicketChannel(ctx context.Context, req CreateChannelRequest) (string, error)

	// DestroyChannel deletes a channel.
	DestroyChannel(ctx context.Context, channelID string) error

	// ReorderChannel moves a channel to the given visual rank.
	ReorderChannel(ctx context.Context, channelID string, rank int) error

	// GrantAccess adds a user to a channel's permission overlay.
	GrantAccess(ctx context.Context, channelID, userID string) error

	// RevokeAccess removes a user from a channel's permission overlay.
	RevokeAccess(ctx context.Context, channelID, userID string) error
}

// RoleChecker resolves platform role membership.
type RoleChecker interface {
	// HasTeamRole reports whether the user holds the support-team role.
	HasTeamRole(ctx context.Context, userID string) (bool, error)
}

// QA is one rendered question/answer pair at the port boundary.
type QA struct {
	Question string
	Answer   string
}

// ReviewView is the applicant-facing review of a session.
type ReviewView struct {
	Answers         []QA
	AttachmentCount int
}

// ApplicantNotifier renders application-flow state to the applicant's direct
// message surface. Implementations own all formatting; the core only says
// what state to show.
type ApplicantNotifier interface {
	// SendWelcome opens the DM surface and sends the application welcome.
	// Failure here (e.g. blocked DMs) aborts the start.
	SendWelcome(ctx context.Context, userID string) error

	// AskQuestion prompts for the question at the given script index.
	AskQuestion(ctx context.Context, userID string, index int) error

	// ConfirmAttachments confirms newly collected attachments and prompts
	// for more or the terminator.
	ConfirmAttachments(ctx context.Context, userID string, added, total int) error

	// ShowReview renders the full review with edit/submit/cancel actions.
	ShowReview(ctx context.Context, userID string, view ReviewView) error

	// PromptEdit prompts for a replacement answer to an answered question.
	PromptEdit(ctx context.Context, userID string, index int, question, current string) error

	// SessionExpired notifies the applicant their session timed out.
	SessionExpired(ctx context.Context, userID string) error

	// Cancelled confirms an explicit cancellation.
	Cancelled(ctx context.Context, userID string) error

	// Submitted confirms a successful submission.
	Submitted(ctx context.Context, userID string) error

	// SubmitFailed tells the applicant their submission did not go through.
	SubmitFailed(ctx context.Context, userID string) error
}

// DecisionAction is one decision button on a posted decision request.
type DecisionAction struct {
	ID    string
	Label string
}

// DecisionPost is a fully rendered decision request ready for the review
// surface. Field values are already truncated and previews already capped.
type DecisionPost struct {
	ApplicantID        string
	ApplicantName      string
	SubmittedAt        time.Time
	Fields             []QA
	AttachmentPreviews []string
	Actions            []DecisionAction
}

// ReviewPoster publishes decision requests to the moderation review surface.
type ReviewPoster interface {
	// PostDecisionRequest posts a decision request. Returns an error wrapping
	// submission.ErrNoReviewSurface when no review surface is configured.
	PostDecisionRequest(ctx context.Context, post *DecisionPost) error
}
