// Package wire provides dependency injection for the warden application.
package wire

import (
	"database/sql"
	"fmt"

	"github.com/example/warden/internal/adapters/sqlite"
	"github.com/example/warden/internal/adapters/statefile"
	"github.com/example/warden/internal/app"
	"github.com/example/warden/internal/config"
	"github.com/example/warden/internal/db"
	"github.com/example/warden/internal/ports/primary"
	"github.com/example/warden/internal/ports/secondary"
)

// Platform bundles the chat-platform collaborators the services drive. The
// discord adapter provides all four in production; tests substitute mocks.
type Platform struct {
	Gateway    secondary.ChannelGateway
	Roles      secondary.RoleChecker
	Applicants secondary.ApplicantNotifier
	Review     secondary.ReviewPoster
}

// Services holds the wired application services and the resources they own.
type Services struct {
	Tickets      primary.TicketService
	Applications primary.ApplicationService
	Submissions  primary.SubmissionPipeline
	Store        *statefile.Store
	Audit        secondary.AuditLog
	DB           *sql.DB
}

// New wires the full service graph: state document, audit database, and the
// three application services over the given platform collaborators.
func New(cfg *config.Config, platform Platform) (*Services, error) {
	store, err := statefile.Open(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	audit := sqlite.NewAuditRepository(database)
	sched := app.NewSystemScheduler()

	submissions := app.NewSubmissionPipeline(platform.Review, audit)
	tickets := app.NewTicketService(store, store, platform.Gateway, platform.Roles, audit, sched)
	applications := app.NewApplicationService(platform.Applicants, submissions, sched)

	return &Services{
		Tickets:      tickets,
		Applications: applications,
		Submissions:  submissions,
		Store:        store,
		Audit:        audit,
		DB:           database,
	}, nil
}

// NewReadonly wires only the persistence layer, for commands that inspect
// state without a platform connection (status).
func NewReadonly(cfg *config.Config) (*Services, error) {
	store, err := statefile.Open(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	return &Services{
		Store: store,
		Audit: sqlite.NewAuditRepository(database),
		DB:    database,
	}, nil
}

// Close releases resources held by the service graph.
func (s *Services) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
