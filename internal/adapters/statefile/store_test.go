package statefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	coreticket "github.com/example/warden/internal/core/ticket"
	"github.com/example/warden/internal/ports/secondary"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("expected store to open, got %v", err)
	}
	return store, path
}

func sampleRecord(channelID string) *secondary.TicketRecord {
	return &secondary.TicketRecord{
		ChannelID: channelID,
		OwnerID:   "user-1",
		Category:  "bug-report",
		Number:    1,
		Status:    "open",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestOpen_InitializesCounters(t *testing.T) {
	store, path := openTestStore(t)

	counters, err := store.Counters(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, c := range coreticket.Categories() {
		if v, ok := counters[string(c)]; !ok || v != 0 {
			t.Errorf("expected counter %q initialized to 0, got %d (present=%v)", c, v, ok)
		}
	}

	// The document is eagerly written so a fresh install has a file.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected state file on disk, got %v", err)
	}
}

func TestNextSequence_MonotonicAcrossRestart(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		seq, err := store.NextSequence(ctx, "bug-report")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if seq != i {
			t.Errorf("expected sequence %d, got %d", i, seq)
		}
	}

	// A restart resumes from the persisted counter, never reusing a number.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("expected store to reopen, got %v", err)
	}
	seq, err := reopened.NextSequence(ctx, "bug-report")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if seq != 4 {
		t.Errorf("expected sequence 4 after restart, got %d", seq)
	}
}

func TestNextSequence_IndependentPerCategory(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	_, _ = store.NextSequence(ctx, "bug-report")
	_, _ = store.NextSequence(ctx, "bug-report")
	seq, err := store.NextSequence(ctx, "general-help")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if seq != 1 {
		t.Errorf("expected independent counter at 1, got %d", seq)
	}
}

func TestPutGetDelete_RoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	rec := sampleRecord("chan-1")

	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := store.Get(ctx, "chan-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.OwnerID != "user-1" || got.Category != "bug-report" {
		t.Errorf("expected stored fields back, got %+v", got)
	}

	// Returned records are copies; mutating one must not corrupt the store.
	got.Status = "mangled"
	again, _ := store.Get(ctx, "chan-1")
	if again.Status != "open" {
		t.Errorf("expected stored record unaffected, got %q", again.Status)
	}

	if err := store.Delete(ctx, "chan-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	gone, _ := store.Get(ctx, "chan-1")
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}

func TestGet_AbsentIsNilNil(t *testing.T) {
	store, _ := openTestStore(t)

	rec, err := store.Get(context.Background(), "no-such-channel")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for absent record, got %+v", rec)
	}
}

func TestDelete_AbsentIsNoop(t *testing.T) {
	store, _ := openTestStore(t)

	if err := store.Delete(context.Background(), "no-such-channel"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestFindOpenByOwner(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	open := sampleRecord("chan-1")
	closed := sampleRecord("chan-2")
	closed.Status = "closed"
	other := sampleRecord("chan-3")
	other.OwnerID = "user-2"
	for _, rec := range []*secondary.TicketRecord{open, closed, other} {
		if err := store.Put(ctx, rec); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	found, err := store.FindOpenByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found == nil || found.ChannelID != "chan-1" {
		t.Errorf("expected the open chan-1, got %+v", found)
	}

	none, err := store.FindOpenByOwner(ctx, "user-3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for owner with no open ticket, got %+v", none)
	}
}

func TestTickets_SurviveRestart(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("chan-1")
	rec.ClaimedBy = "mod-1"
	rec.Priority = "high"
	if err := store.Put(ctx, rec); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("expected store to reopen, got %v", err)
	}
	got, err := reopened.Get(ctx, "chan-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("expected record to survive restart")
	}
	if got.ClaimedBy != "mod-1" || got.Priority != "high" {
		t.Errorf("expected claim and priority persisted, got %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("expected created-at preserved, got %v", got.CreatedAt)
	}
}

func TestOpen_CorruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected error for corrupt state file, got nil")
	}
}
