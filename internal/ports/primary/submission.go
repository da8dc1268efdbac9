package primary

import (
	"context"
	"time"
)

// SubmissionPipeline defines the primary port for the moderation submission
// pipeline.
type SubmissionPipeline interface {
	// Submit renders and posts a decision request for a frozen session
	// snapshot. Errors wrap submission.ErrNoReviewSurface when no review
	// surface is configured.
	Submit(ctx context.Context, rec *SubmissionRecord) error

	// RecordDecision records a moderation decision on a posted application.
	RecordDecision(ctx context.Context, req DecisionRequest) error
}

// DecisionRequest records one moderation decision.
type DecisionRequest struct {
	Outcome     string
	ApplicantID string
	ModeratorID string
}

// SubmissionRecord is the frozen snapshot of a completed application session
// at submission time. It is transient and never persisted.
type SubmissionRecord struct {
	ApplicantID   string
	ApplicantName string
	SubmittedAt   time.Time
	Answers       []AnswerView
	Attachments   []string
}

// AnswerView is one question/answer pair at the port boundary.
type AnswerView struct {
	Question string
	Answer   string
}
