package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	coresub "github.com/example/warden/internal/core/submission"
	"github.com/example/warden/internal/ports/primary"
	"github.com/example/warden/internal/ports/secondary"
)

// mockReviewPoster implements secondary.ReviewPoster for testing.
type mockReviewPoster struct {
	posts   []*secondary.DecisionPost
	postErr error
}

func (m *mockReviewPoster) PostDecisionRequest(ctx context.Context, post *secondary.DecisionPost) error {
	if m.postErr != nil {
		return m.postErr
	}
	m.posts = append(m.posts, post)
	return nil
}

func sampleSubmission() *primary.SubmissionRecord {
	return &primary.SubmissionRecord{
		ApplicantID:   "user-1",
		ApplicantName: "Steve",
		Answers: []primary.AnswerView{
			{Question: "What is your age?", Answer: "17"},
			{Question: "Why join?", Answer: ""},
		},
		Attachments: []string{"a.png", "b.png", "c.png", "d.png", "e.png"},
	}
}

func TestSubmitPipeline_RendersDecisionPost(t *testing.T) {
	poster := &mockReviewPoster{}
	audit := &mockAuditLog{}
	pipeline := NewSubmissionPipeline(poster, audit)

	err := pipeline.Submit(context.Background(), sampleSubmission())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(poster.posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(poster.posts))
	}
	post := poster.posts[0]

	// 2 answers plus the screenshot-count row.
	if len(post.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(post.Fields))
	}
	if post.Fields[1].Answer != coresub.EmptyAnswerPlaceholder {
		t.Errorf("expected placeholder for empty answer, got %q", post.Fields[1].Answer)
	}
	if len(post.AttachmentPreviews) != coresub.MaxAttachmentPreviews {
		t.Errorf("expected previews capped at %d, got %d",
			coresub.MaxAttachmentPreviews, len(post.AttachmentPreviews))
	}
	if len(post.Actions) != 3 {
		t.Fatalf("expected 3 decision actions, got %d", len(post.Actions))
	}
	for _, action := range post.Actions {
		outcome, userID, ok := coresub.ParseDecisionActionID(action.ID)
		if !ok {
			t.Errorf("expected action id %q to parse", action.ID)
			continue
		}
		if userID != "user-1" {
			t.Errorf("expected subject 'user-1', got %q", userID)
		}
		if action.Label != outcome.Label() {
			t.Errorf("expected label %q, got %q", outcome.Label(), action.Label)
		}
	}
}

func TestSubmitPipeline_LongAnswerTruncated(t *testing.T) {
	poster := &mockReviewPoster{}
	pipeline := NewSubmissionPipeline(poster, &mockAuditLog{})

	rec := sampleSubmission()
	rec.Answers[0].Answer = strings.Repeat("x", 2000)

	if err := pipeline.Submit(context.Background(), rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := poster.posts[0].Fields[0].Answer
	if len([]rune(got)) != coresub.AnswerCap {
		t.Errorf("expected answer capped at %d runes, got %d", coresub.AnswerCap, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis on the truncated answer")
	}
}

func TestSubmitPipeline_PostFailurePropagates(t *testing.T) {
	poster := &mockReviewPoster{postErr: fmt.Errorf("post: %w", coresub.ErrNoReviewSurface)}
	audit := &mockAuditLog{}
	pipeline := NewSubmissionPipeline(poster, audit)

	err := pipeline.Submit(context.Background(), sampleSubmission())

	if !errors.Is(err, coresub.ErrNoReviewSurface) {
		t.Fatalf("expected error wrapping ErrNoReviewSurface, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Errorf("expected no audit entry for a failed post, got %d", len(audit.entries))
	}
}

func TestRecordDecision_WritesAudit(t *testing.T) {
	audit := &mockAuditLog{}
	pipeline := NewSubmissionPipeline(&mockReviewPoster{}, audit)

	err := pipeline.RecordDecision(context.Background(), primary.DecisionRequest{
		Outcome:     "accept",
		ApplicantID: "user-1",
		ModeratorID: "mod-1",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != "decision" || entry.Detail != "accept" {
		t.Errorf("expected decision/accept, got %s/%s", entry.Action, entry.Detail)
	}
	if entry.ActorID != "mod-1" || entry.EntityID != "user-1" {
		t.Errorf("expected actor mod-1 on user-1, got %s/%s", entry.ActorID, entry.EntityID)
	}
}
