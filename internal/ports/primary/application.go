package primary

import "context"

// ApplicationService defines the primary port for the application intake
// session manager. All operations are keyed by applicant user id.
type ApplicationService interface {
	// Start begins a new intake session. Rejects with
	// application.ErrAlreadyActive if one exists; the existing session is
	// left untouched.
	Start(ctx context.Context, req StartApplicationRequest) error

	// HandleMessage routes one inbound direct message through the session
	// state machine and resets the inactivity timer.
	HandleMessage(ctx context.Context, req InboundMessage) error

	// BeginEdit marks an answered question for overwrite (review mode only).
	BeginEdit(ctx context.Context, req EditRequest) error

	// Cancel deletes the session and cancels its timer.
	Cancel(ctx context.Context, userID string) error

	// Submit freezes the session and forwards it to the moderation pipeline.
	// The session survives a pipeline failure so the applicant can retry.
	Submit(ctx context.Context, userID string) error

	// HasSession reports whether the user has a session in progress.
	HasSession(userID string) bool

	// Answers returns the answers collected so far, nil when no session
	// exists. Used to build edit menus.
	Answers(userID string) []AnswerView
}

// StartApplicationRequest contains parameters for starting a session.
type StartApplicationRequest struct {
	UserID   string
	Username string
}

// InboundMessage is one normalized direct message from the applicant.
type InboundMessage struct {
	UserID      string
	Text        string
	Attachments []string
}

// EditRequest targets an answered question for overwrite.
type EditRequest struct {
	UserID        string
	QuestionIndex int
}
