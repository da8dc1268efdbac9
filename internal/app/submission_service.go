package app

import (
	"context"
	"fmt"

	coresub "github.com/example/warden/internal/core/submission"
	"github.com/example/warden/internal/ports/primary"
	"github.com/example/warden/internal/ports/secondary"
)

// SubmissionPipelineImpl implements the SubmissionPipeline interface: it
// renders a frozen session snapshot into a decision request and posts it to
// the review surface.
type SubmissionPipelineImpl struct {
	poster secondary.ReviewPoster
	audit  secondary.AuditLog
}

// NewSubmissionPipeline creates a new SubmissionPipeline with injected
// dependencies.
func NewSubmissionPipeline(poster secondary.ReviewPoster, audit secondary.AuditLog) *SubmissionPipelineImpl {
	return &SubmissionPipelineImpl{poster: poster, audit: audit}
}

// Submit renders and posts a decision request. A posting failure is returned
// so the caller can tell the applicant instead of dropping the session.
func (p *SubmissionPipelineImpl) Submit(ctx context.Context, rec *primary.SubmissionRecord) error {
	snapshot := &coresub.Record{
		ApplicantID:   rec.ApplicantID,
		ApplicantName: rec.ApplicantName,
		SubmittedAt:   rec.SubmittedAt,
		Answers:       make([]coresub.Answer, len(rec.Answers)),
		Attachments:   rec.Attachments,
	}
	for i, qa := range rec.Answers {
		snapshot.Answers[i] = coresub.Answer{Question: qa.Question, Response: qa.Answer}
	}

	fields := coresub.DecisionFields(snapshot)
	post := &secondary.DecisionPost{
		ApplicantID:        rec.ApplicantID,
		ApplicantName:      rec.ApplicantName,
		SubmittedAt:        rec.SubmittedAt,
		Fields:             make([]secondary.QA, len(fields)),
		AttachmentPreviews: coresub.AttachmentPreviews(rec.Attachments),
	}
	for i, f := range fields {
		post.Fields[i] = secondary.QA{Question: f.Name, Answer: f.Value}
	}
	for _, outcome := range coresub.Outcomes() {
		post.Actions = append(post.Actions, secondary.DecisionAction{
			ID:    coresub.DecisionActionID(outcome, rec.ApplicantID),
			Label: outcome.Label(),
		})
	}

	if err := p.poster.PostDecisionRequest(ctx, post); err != nil {
		return fmt.Errorf("failed to post decision request: %w", err)
	}

	_ = p.audit.Append(ctx, &secondary.AuditEntry{
		ActorID:    rec.ApplicantID,
		EntityType: "application",
		EntityID:   rec.ApplicantID,
		Action:     "submit",
		Detail:     fmt.Sprintf("%d answers, %d attachments", len(rec.Answers), len(rec.Attachments)),
	})
	return nil
}

// RecordDecision writes the moderation decision to the audit trail.
func (p *SubmissionPipelineImpl) RecordDecision(ctx context.Context, req primary.DecisionRequest) error {
	if err := p.audit.Append(ctx, &secondary.AuditEntry{
		ActorID:    req.ModeratorID,
		EntityType: "application",
		EntityID:   req.ApplicantID,
		Action:     "decision",
		Detail:     req.Outcome,
	}); err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}
	return nil
}

// Ensure SubmissionPipelineImpl implements the interface
var _ primary.SubmissionPipeline = (*SubmissionPipelineImpl)(nil)
