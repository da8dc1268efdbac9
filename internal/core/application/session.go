package application

import (
	"errors"
	"time"
)

// Sentinel errors for session invariant violations.
var (
	// ErrAlreadyActive rejects a start when the applicant already has a
	// session in progress.
	ErrAlreadyActive = errors.New("an application is already in progress")

	// ErrNoSession rejects an action for an applicant with no session.
	ErrNoSession = errors.New("no active application session")

	// ErrNotInReview rejects edit or submit outside review mode.
	ErrNotInReview = errors.New("application is not in review")

	// ErrInvalidQuestion rejects an edit target outside the answered range.
	ErrInvalidQuestion = errors.New("invalid question number")
)

// Answer is one collected question/answer pair.
type Answer struct {
	Question string
	Response string
}

// Session is the state of one applicant's intake conversation. It is a plain
// value manipulated only through its methods; callers own serialization.
type Session struct {
	UserID      string
	Username    string
	StartedAt   time.Time
	Current     int // index of the question currently being asked
	Answers     []Answer
	Attachments []string
	InReview    bool
	Editing     int // answered-question index being edited, -1 when none
}

// NewSession creates a session positioned at the first question.
func NewSession(userID, username string, now time.Time) *Session {
	return &Session{
		UserID:    userID,
		Username:  username,
		StartedAt: now,
		Editing:   -1,
	}
}

// StepKind tells the caller what to render after a message is applied.
type StepKind int

const (
	// StepIgnored means the message produced no state change worth rendering.
	StepIgnored StepKind = iota
	// StepAskQuestion means the session advanced; ask Session.Current next.
	StepAskQuestion
	// StepAttachmentsAdded means attachments were collected on the final
	// question; confirm and prompt for more or "done".
	StepAttachmentsAdded
	// StepShowReview means the session entered (or re-entered) review mode.
	StepShowReview
)

// StepResult is the outcome of applying one inbound message.
type StepResult struct {
	Kind  StepKind
	Added int // attachments added by this step
}

// Apply routes one inbound free-text message (with any attachments) through
// the session state machine. The precedence is structural and load-bearing:
// an edit target is consumed first, then review mode freezes input, then the
// attachment question collects, and only then does the normal
// answer-and-advance path run.
func (s *Session) Apply(text string, attachments []string) StepResult {
	if s.Editing >= 0 {
		s.Answers[s.Editing] = Answer{
			Question: Question(s.Editing),
			Response: text,
		}
		s.Editing = -1
		s.InReview = true
		return StepResult{Kind: StepShowReview}
	}

	if s.InReview {
		return StepResult{Kind: StepIgnored}
	}

	if IsAttachmentQuestion(s.Current) {
		if IsDone(text) {
			s.InReview = true
			return StepResult{Kind: StepShowReview}
		}
		if len(attachments) > 0 {
			s.Attachments = append(s.Attachments, attachments...)
			return StepResult{Kind: StepAttachmentsAdded, Added: len(attachments)}
		}
		return StepResult{Kind: StepIgnored}
	}

	s.Answers = append(s.Answers, Answer{
		Question: Question(s.Current),
		Response: text,
	})
	s.Current++
	return StepResult{Kind: StepAskQuestion}
}

// BeginEdit marks an answered question for overwrite. Valid only in review
// mode; the index is bounds-checked against the answered-question count.
func (s *Session) BeginEdit(index int) error {
	if !s.InReview {
		return ErrNotInReview
	}
	if index < 0 || index >= len(s.Answers) {
		return ErrInvalidQuestion
	}
	s.Editing = index
	return nil
}
