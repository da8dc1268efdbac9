package application

import (
	"testing"
	"time"
)

func newTestSession() *Session {
	return NewSession("user-1", "Steve", time.Now())
}

// answerUpTo answers questions [0, n) with placeholder text.
func answerUpTo(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Apply("answer", nil)
	}
}

func TestApply_AnswerAdvances(t *testing.T) {
	s := newTestSession()

	result := s.Apply("I am 17", nil)

	if result.Kind != StepAskQuestion {
		t.Fatalf("expected StepAskQuestion, got %v", result.Kind)
	}
	if s.Current != 1 {
		t.Errorf("expected current question 1, got %d", s.Current)
	}
	if len(s.Answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(s.Answers))
	}
	if s.Answers[0].Question != Question(0) {
		t.Errorf("expected answer paired with question 0, got %q", s.Answers[0].Question)
	}
	if s.Answers[0].Response != "I am 17" {
		t.Errorf("expected response 'I am 17', got %q", s.Answers[0].Response)
	}
}

func TestApply_AttachmentQuestionCollects(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())

	result := s.Apply("", []string{"https://cdn.example/a.png", "https://cdn.example/b.png"})

	if result.Kind != StepAttachmentsAdded {
		t.Fatalf("expected StepAttachmentsAdded, got %v", result.Kind)
	}
	if result.Added != 2 {
		t.Errorf("expected 2 added, got %d", result.Added)
	}
	if len(s.Attachments) != 2 {
		t.Errorf("expected 2 attachments collected, got %d", len(s.Attachments))
	}
	if s.InReview {
		t.Error("expected session to stay out of review while collecting")
	}
}

func TestApply_AttachmentQuestionTextIgnored(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())

	result := s.Apply("here they come", nil)

	if result.Kind != StepIgnored {
		t.Fatalf("expected StepIgnored, got %v", result.Kind)
	}
	if len(s.Answers) != AttachmentQuestionIndex() {
		t.Errorf("expected no answer recorded for the attachment question, got %d", len(s.Answers))
	}
}

func TestApply_DoneEntersReview(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())
	s.Apply("", []string{"https://cdn.example/a.png"})

	result := s.Apply("  DONE  ", nil)

	if result.Kind != StepShowReview {
		t.Fatalf("expected StepShowReview, got %v", result.Kind)
	}
	if !s.InReview {
		t.Error("expected session to be in review")
	}
}

func TestApply_ReviewFreezesInput(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())
	s.Apply("done", nil)

	result := s.Apply("one more thing", []string{"https://cdn.example/late.png"})

	if result.Kind != StepIgnored {
		t.Fatalf("expected StepIgnored in review, got %v", result.Kind)
	}
	if len(s.Attachments) != 0 {
		t.Errorf("expected no attachments collected in review, got %d", len(s.Attachments))
	}
}

func TestApply_EditConsumesNextMessage(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())
	s.Apply("done", nil)

	if err := s.BeginEdit(2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result := s.Apply("a better answer", nil)

	if result.Kind != StepShowReview {
		t.Fatalf("expected StepShowReview after edit, got %v", result.Kind)
	}
	if s.Answers[2].Response != "a better answer" {
		t.Errorf("expected answer 2 overwritten, got %q", s.Answers[2].Response)
	}
	if s.Editing != -1 {
		t.Errorf("expected edit target cleared, got %d", s.Editing)
	}
	if !s.InReview {
		t.Error("expected session back in review")
	}
	if len(s.Answers) != AttachmentQuestionIndex() {
		t.Errorf("expected answer count unchanged, got %d", len(s.Answers))
	}
}

func TestBeginEdit_OutsideReviewRejected(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, 3)

	if err := s.BeginEdit(1); err != ErrNotInReview {
		t.Fatalf("expected ErrNotInReview, got %v", err)
	}
}

func TestBeginEdit_OutOfRangeRejected(t *testing.T) {
	s := newTestSession()
	answerUpTo(s, AttachmentQuestionIndex())
	s.Apply("done", nil)

	if err := s.BeginEdit(-1); err != ErrInvalidQuestion {
		t.Errorf("expected ErrInvalidQuestion for -1, got %v", err)
	}
	if err := s.BeginEdit(len(s.Answers)); err != ErrInvalidQuestion {
		t.Errorf("expected ErrInvalidQuestion past the end, got %v", err)
	}
}

func TestFullFlow(t *testing.T) {
	s := newTestSession()

	for i := 0; i < AttachmentQuestionIndex(); i++ {
		result := s.Apply("answer", nil)
		if result.Kind != StepAskQuestion {
			t.Fatalf("question %d: expected StepAskQuestion, got %v", i, result.Kind)
		}
	}
	if !IsAttachmentQuestion(s.Current) {
		t.Fatalf("expected to land on the attachment question, got %d", s.Current)
	}

	s.Apply("", []string{"https://cdn.example/a.png"})
	s.Apply("", []string{"https://cdn.example/b.png"})
	result := s.Apply("done", nil)

	if result.Kind != StepShowReview {
		t.Fatalf("expected StepShowReview, got %v", result.Kind)
	}
	if len(s.Answers) != QuestionCount()-1 {
		t.Errorf("expected %d answers, got %d", QuestionCount()-1, len(s.Answers))
	}
	if len(s.Attachments) != 2 {
		t.Errorf("expected 2 attachments, got %d", len(s.Attachments))
	}
}
