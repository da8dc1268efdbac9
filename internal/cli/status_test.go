package cli

import (
	"context"
	"testing"
	"time"

	"github.com/example/warden/internal/config"
	"github.com/example/warden/internal/ports/secondary"
	"github.com/example/warden/internal/wire"
)

func TestStatusCmd_FreshState(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WARDEN_DATA_DIR", t.TempDir())

	if err := StatusCmd().Execute(); err != nil {
		t.Fatalf("expected status against a fresh state to succeed, got %v", err)
	}
}

func TestStatusCmd_WithSeededState(t *testing.T) {
	chdir(t, t.TempDir())
	dataDir := t.TempDir()
	t.Setenv("WARDEN_DATA_DIR", dataDir)

	// Seed a ticket and an audit entry through the same wiring the command
	// reads back.
	services, err := wire.NewReadonly(&config.Config{DataDir: dataDir})
	if err != nil {
		t.Fatalf("expected wiring to succeed, got %v", err)
	}
	ctx := context.Background()
	if err := services.Store.Put(ctx, &secondary.TicketRecord{
		ChannelID: "chan-1",
		OwnerID:   "user-1",
		Category:  "bug-report",
		Number:    1,
		Status:    "open",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("expected seed put to succeed, got %v", err)
	}
	if err := services.Audit.Append(ctx, &secondary.AuditEntry{
		ActorID:    "user-1",
		EntityType: "ticket",
		EntityID:   "chan-1",
		Action:     "create",
	}); err != nil {
		t.Fatalf("expected seed audit append to succeed, got %v", err)
	}
	if err := services.Close(); err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	if err := StatusCmd().Execute(); err != nil {
		t.Fatalf("expected status to render seeded state, got %v", err)
	}
}
