package submission

import (
	"strings"
	"testing"
)

func TestTruncateAnswer_UnderCapUnchanged(t *testing.T) {
	s := strings.Repeat("a", AnswerCap)
	if got := TruncateAnswer(s, AnswerCap); got != s {
		t.Errorf("expected answer at the cap unchanged, got %d runes", len([]rune(got)))
	}
}

func TestTruncateAnswer_OverCapTruncated(t *testing.T) {
	s := strings.Repeat("a", AnswerCap+1)
	got := TruncateAnswer(s, AnswerCap)

	if len([]rune(got)) != AnswerCap {
		t.Errorf("expected %d runes, got %d", AnswerCap, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
	if got[:AnswerCap-3] != s[:AnswerCap-3] {
		t.Error("expected truncated prefix to match the original")
	}
}

func TestTruncateAnswer_ReviewCap(t *testing.T) {
	s := strings.Repeat("b", 150)
	got := TruncateAnswer(s, ReviewAnswerCap)

	if len([]rune(got)) != ReviewAnswerCap {
		t.Errorf("expected %d runes, got %d", ReviewAnswerCap, len([]rune(got)))
	}
	if got != strings.Repeat("b", 97)+"..." {
		t.Error("expected 97 runes plus ellipsis")
	}
}

func TestTruncateAnswer_EmptyPlaceholder(t *testing.T) {
	if got := TruncateAnswer("", AnswerCap); got != EmptyAnswerPlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestDecisionFields_AppendsScreenshotRow(t *testing.T) {
	rec := &Record{
		Answers: []Answer{
			{Question: "What is your age?", Response: "17"},
			{Question: "Why join?", Response: ""},
		},
		Attachments: []string{"a.png", "b.png", "c.png"},
	}

	fields := DecisionFields(rec)

	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Value != EmptyAnswerPlaceholder {
		t.Errorf("expected placeholder for empty answer, got %q", fields[1].Value)
	}
	if fields[2].Name != "Build Screenshots" {
		t.Errorf("expected screenshot row, got %q", fields[2].Name)
	}
	if fields[2].Value != "3 image(s) attached" {
		t.Errorf("expected attachment summary, got %q", fields[2].Value)
	}
}

func TestDecisionFields_NoAttachmentsNoRow(t *testing.T) {
	rec := &Record{Answers: []Answer{{Question: "q", Response: "a"}}}

	fields := DecisionFields(rec)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
}

func TestReviewFields_Numbered(t *testing.T) {
	answers := []Answer{
		{Question: "What is your age?", Response: "17"},
		{Question: "Why join?", Response: "builds"},
	}

	fields := ReviewFields(answers, 2)

	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Name != "1. What is your age?" {
		t.Errorf("expected numbered question, got %q", fields[0].Name)
	}
	if fields[2].Name != "3. Build Screenshots" {
		t.Errorf("expected numbered screenshot row, got %q", fields[2].Name)
	}
}

func TestAttachmentPreviews_Capped(t *testing.T) {
	urls := []string{"a", "b", "c", "d", "e", "f"}

	previews := AttachmentPreviews(urls)

	if len(previews) != MaxAttachmentPreviews {
		t.Errorf("expected %d previews, got %d", MaxAttachmentPreviews, len(previews))
	}
	if previews[0] != "a" {
		t.Errorf("expected first preview 'a', got %q", previews[0])
	}
}

func TestDecisionActionID_RoundTrip(t *testing.T) {
	for _, outcome := range Outcomes() {
		id := DecisionActionID(outcome, "user-42")

		parsed, userID, ok := ParseDecisionActionID(id)
		if !ok {
			t.Fatalf("expected %q to parse", id)
		}
		if parsed != outcome {
			t.Errorf("expected outcome %q, got %q", outcome, parsed)
		}
		if userID != "user-42" {
			t.Errorf("expected user 'user-42', got %q", userID)
		}
	}
}

func TestParseDecisionActionID_Foreign(t *testing.T) {
	for _, id := range []string{"close-ticket", "accept-application-", "ban-application-user-1", ""} {
		if _, _, ok := ParseDecisionActionID(id); ok {
			t.Errorf("expected %q not to parse", id)
		}
	}
}
