package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	coreapp "github.com/example/warden/internal/core/application"
	"github.com/example/warden/internal/ports/primary"
	"github.com/example/warden/internal/ports/secondary"
)

// DefaultSessionTimeout is the inactivity window before a session expires.
const DefaultSessionTimeout = 30 * time.Minute

// ApplicationServiceImpl implements the ApplicationService interface. It
// owns the session registry: at most one session exists per applicant, and
// all session mutation goes through it.
//
// Locking discipline: locks serializes operations per applicant. mu guards
// the session map and is never held across platform I/O.
type ApplicationServiceImpl struct {
	notifier secondary.ApplicantNotifier
	pipeline primary.SubmissionPipeline
	sched    secondary.Scheduler

	timeout time.Duration

	locks *keyedMutex

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// sessionState pairs a session with its inactivity timer. lastActivity is
// the monotonic reset stamp: a firing timer whose stamp is stale lost a race
// with newer activity and must no-op.
type sessionState struct {
	sess         *coreapp.Session
	timer        secondary.Timer
	lastActivity time.Time
}

// NewApplicationService creates a new ApplicationService with injected
// dependencies.
func NewApplicationService(
	notifier secondary.ApplicantNotifier,
	pipeline primary.SubmissionPipeline,
	sched secondary.Scheduler,
) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{
		notifier: notifier,
		pipeline: pipeline,
		sched:    sched,
		timeout:  DefaultSessionTimeout,
		locks:    newKeyedMutex(),
		sessions: make(map[string]*sessionState),
	}
}

// SetTimeout overrides the inactivity window (tests use short values).
func (s *ApplicationServiceImpl) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Start begins a new intake session for the applicant.
func (s *ApplicationServiceImpl) Start(ctx context.Context, req primary.StartApplicationRequest) error {
	s.locks.Lock(req.UserID)
	defer s.locks.Unlock(req.UserID)

	s.mu.Lock()
	_, active := s.sessions[req.UserID]
	s.mu.Unlock()
	if active {
		return coreapp.ErrAlreadyActive
	}

	// Prove the DM surface is reachable before creating any state; blocked
	// DMs must not leave a phantom session behind.
	if err := s.notifier.SendWelcome(ctx, req.UserID); err != nil {
		return fmt.Errorf("failed to open applicant DM: %w", err)
	}

	st := &sessionState{
		sess: coreapp.NewSession(req.UserID, req.Username, time.Now().UTC()),
	}
	s.mu.Lock()
	s.sessions[req.UserID] = st
	s.mu.Unlock()

	s.resetTimer(req.UserID)

	if err := s.notifier.AskQuestion(ctx, req.UserID, 0); err != nil {
		return fmt.Errorf("failed to send first question: %w", err)
	}
	return nil
}

// HandleMessage routes one inbound direct message through the session state
// machine.
func (s *ApplicationServiceImpl) HandleMessage(ctx context.Context, req primary.InboundMessage) error {
	s.locks.Lock(req.UserID)
	defer s.locks.Unlock(req.UserID)

	st := s.lookup(req.UserID)
	if st == nil {
		return coreapp.ErrNoSession
	}

	s.resetTimer(req.UserID)

	result := st.sess.Apply(req.Text, req.Attachments)
	switch result.Kind {
	case coreapp.StepAskQuestion:
		if err := s.notifier.AskQuestion(ctx, req.UserID, st.sess.Current); err != nil {
			return fmt.Errorf("failed to send next question: %w", err)
		}
	case coreapp.StepAttachmentsAdded:
		if err := s.notifier.ConfirmAttachments(ctx, req.UserID, result.Added, len(st.sess.Attachments)); err != nil {
			return fmt.Errorf("failed to confirm attachments: %w", err)
		}
	case coreapp.StepShowReview:
		if err := s.notifier.ShowReview(ctx, req.UserID, reviewView(st.sess)); err != nil {
			return fmt.Errorf("failed to render review: %w", err)
		}
	case coreapp.StepIgnored:
	}
	return nil
}

// BeginEdit marks an answered question for overwrite and prompts for the
// replacement answer.
func (s *ApplicationServiceImpl) BeginEdit(ctx context.Context, req primary.EditRequest) error {
	s.locks.Lock(req.UserID)
	defer s.locks.Unlock(req.UserID)

	st := s.lookup(req.UserID)
	if st == nil {
		return coreapp.ErrNoSession
	}

	if err := st.sess.BeginEdit(req.QuestionIndex); err != nil {
		return err
	}

	s.resetTimer(req.UserID)

	current := st.sess.Answers[req.QuestionIndex].Response
	question := coreapp.Question(req.QuestionIndex)
	if err := s.notifier.PromptEdit(ctx, req.UserID, req.QuestionIndex, question, current); err != nil {
		return fmt.Errorf("failed to prompt for edit: %w", err)
	}
	return nil
}

// Cancel deletes the session and cancels its timer.
func (s *ApplicationServiceImpl) Cancel(ctx context.Context, userID string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	if !s.remove(userID) {
		return coreapp.ErrNoSession
	}

	// The session is already gone; the farewell is best effort.
	_ = s.notifier.Cancelled(ctx, userID)
	return nil
}

// Submit freezes the session and forwards it to the moderation pipeline.
func (s *ApplicationServiceImpl) Submit(ctx context.Context, userID string) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	st := s.lookup(userID)
	if st == nil {
		return coreapp.ErrNoSession
	}
	if !st.sess.InReview {
		return coreapp.ErrNotInReview
	}

	rec := freezeSession(st.sess)
	if err := s.pipeline.Submit(ctx, rec); err != nil {
		// Keep the session so the applicant can retry; tell them it failed
		// rather than letting them believe it went through.
		_ = s.notifier.SubmitFailed(ctx, userID)
		return fmt.Errorf("failed to submit application: %w", err)
	}

	s.remove(userID)
	_ = s.notifier.Submitted(ctx, userID)
	return nil
}

// HasSession reports whether the user has a session in progress.
func (s *ApplicationServiceImpl) HasSession(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}

// Answers returns the answers collected so far, nil when no session exists.
func (s *ApplicationServiceImpl) Answers(userID string) []primary.AnswerView {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]primary.AnswerView, len(st.sess.Answers))
	for i, qa := range st.sess.Answers {
		out[i] = primary.AnswerView{Question: qa.Question, Answer: qa.Response}
	}
	return out
}

func (s *ApplicationServiceImpl) lookup(userID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// remove deletes the session and stops its timer, reporting whether one
// existed.
func (s *ApplicationServiceImpl) remove(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[userID]
	if !ok {
		return false
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	delete(s.sessions, userID)
	return true
}

// resetTimer atomically cancel-then-reschedules the inactivity timer. Only
// one timer is ever pending per user; the activity stamp guards against a
// cancelled timer that already started firing.
func (s *ApplicationServiceImpl) resetTimer(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok {
		return
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	stamp := time.Now()
	st.lastActivity = stamp
	st.timer = s.sched.AfterFunc(s.timeout, func() {
		s.expire(userID, stamp)
	})
}

// expire fires on inactivity. A stale stamp means newer activity reset the
// timer after this one was scheduled; in that case it no-ops.
func (s *ApplicationServiceImpl) expire(userID string, stamp time.Time) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	s.mu.Lock()
	st, ok := s.sessions[userID]
	if !ok || !st.lastActivity.Equal(stamp) {
		s.mu.Unlock()
		return
	}
	delete(s.sessions, userID)
	s.mu.Unlock()

	// Unreachable applicants are not an error; the session is gone either way.
	_ = s.notifier.SessionExpired(context.Background(), userID)
}

func reviewView(sess *coreapp.Session) secondary.ReviewView {
	view := secondary.ReviewView{
		Answers:         make([]secondary.QA, len(sess.Answers)),
		AttachmentCount: len(sess.Attachments),
	}
	for i, qa := range sess.Answers {
		view.Answers[i] = secondary.QA{Question: qa.Question, Answer: qa.Response}
	}
	return view
}

func freezeSession(sess *coreapp.Session) *primary.SubmissionRecord {
	rec := &primary.SubmissionRecord{
		ApplicantID:   sess.UserID,
		ApplicantName: sess.Username,
		SubmittedAt:   time.Now().UTC(),
		Answers:       make([]primary.AnswerView, len(sess.Answers)),
		Attachments:   append([]string(nil), sess.Attachments...),
	}
	for i, qa := range sess.Answers {
		rec.Answers[i] = primary.AnswerView{Question: qa.Question, Answer: qa.Response}
	}
	return rec
}

// Ensure ApplicationServiceImpl implements the interface
var _ primary.ApplicationService = (*ApplicationServiceImpl)(nil)
