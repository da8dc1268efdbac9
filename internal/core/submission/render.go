// Package submission contains the pure rendering rules for moderation
// decision requests: truncation caps, attachment previews, and the decision
// action identifiers that embed the applicant's user id.
package submission

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoReviewSurface rejects a submission when no review channel is configured.
var ErrNoReviewSurface = errors.New("no review surface configured")

const (
	// AnswerCap is the maximum rendered answer length in a decision request.
	AnswerCap = 1024
	// ReviewAnswerCap is the maximum rendered answer length in the
	// applicant-facing review.
	ReviewAnswerCap = 100
	// MaxAttachmentPreviews bounds how many attachment previews are posted
	// alongside a decision request.
	MaxAttachmentPreviews = 4
	// EmptyAnswerPlaceholder stands in for an empty answer.
	EmptyAnswerPlaceholder = "No answer provided"
)

// Answer is one question/answer pair to render.
type Answer struct {
	Question string
	Response string
}

// Record is the frozen snapshot of a completed application session.
type Record struct {
	ApplicantID   string
	ApplicantName string
	SubmittedAt   time.Time
	Answers       []Answer
	Attachments   []string
}

// Field is one rendered name/value pair.
type Field struct {
	Name  string
	Value string
}

// TruncateAnswer caps an answer at max runes, replacing the tail with "..."
// when it overflows. Empty answers render as the placeholder.
func TruncateAnswer(s string, max int) string {
	if s == "" {
		return EmptyAnswerPlaceholder
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// AttachmentSummary renders the attachment-count row.
func AttachmentSummary(n int) string {
	return fmt.Sprintf("%d image(s) attached", n)
}

// DecisionFields renders the question/answer pairs for a decision request,
// capped at AnswerCap, plus a screenshot-count row when attachments exist.
func DecisionFields(rec *Record) []Field {
	fields := make([]Field, 0, len(rec.Answers)+1)
	for _, qa := range rec.Answers {
		fields = append(fields, Field{
			Name:  qa.Question,
			Value: TruncateAnswer(qa.Response, AnswerCap),
		})
	}
	if len(rec.Attachments) > 0 {
		fields = append(fields, Field{
			Name:  "Build Screenshots",
			Value: AttachmentSummary(len(rec.Attachments)),
		})
	}
	return fields
}

// ReviewFields renders the applicant-facing review: numbered questions with
// answers capped at ReviewAnswerCap, plus a screenshot-count row.
func ReviewFields(answers []Answer, attachmentCount int) []Field {
	fields := make([]Field, 0, len(answers)+1)
	for i, qa := range answers {
		fields = append(fields, Field{
			Name:  fmt.Sprintf("%d. %s", i+1, qa.Question),
			Value: TruncateAnswer(qa.Response, ReviewAnswerCap),
		})
	}
	if attachmentCount > 0 {
		fields = append(fields, Field{
			Name:  fmt.Sprintf("%d. Build Screenshots", len(answers)+1),
			Value: AttachmentSummary(attachmentCount),
		})
	}
	return fields
}

// AttachmentPreviews returns the attachment references to preview, capped at
// MaxAttachmentPreviews.
func AttachmentPreviews(urls []string) []string {
	if len(urls) > MaxAttachmentPreviews {
		return urls[:MaxAttachmentPreviews]
	}
	return urls
}

// Outcome is a moderation decision outcome.
type Outcome string

const (
	OutcomeAccept    Outcome = "accept"
	OutcomeDeny      Outcome = "deny"
	OutcomeInterview Outcome = "interview"
)

// Label returns the decision button label for an outcome.
func (o Outcome) Label() string {
	switch o {
	case OutcomeAccept:
		return "Accept"
	case OutcomeDeny:
		return "Deny"
	case OutcomeInterview:
		return "Schedule Interview"
	}
	return string(o)
}

// Outcomes returns the three decision outcomes in display order.
func Outcomes() []Outcome {
	return []Outcome{OutcomeAccept, OutcomeDeny, OutcomeInterview}
}

const actionMarker = "-application-"

// DecisionActionID builds the action identifier for a decision button. The
// applicant's user id is embedded so the decision handler can resolve the
// subject without another lookup.
func DecisionActionID(o Outcome, userID string) string {
	return string(o) + actionMarker + userID
}

// ParseDecisionActionID resolves an action identifier back to its outcome
// and subject. ok is false for identifiers this package did not mint.
func ParseDecisionActionID(id string) (o Outcome, userID string, ok bool) {
	prefix, userID, found := strings.Cut(id, actionMarker)
	if !found || userID == "" {
		return "", "", false
	}
	switch Outcome(prefix) {
	case OutcomeAccept, OutcomeDeny, OutcomeInterview:
		return Outcome(prefix), userID, true
	}
	return "", "", false
}
