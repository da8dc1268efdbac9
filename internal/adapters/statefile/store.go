// Package statefile persists the ticket state document - per-category
// counters plus the live ticket registry - as a single JSON file rewritten
// in full after every mutation.
package statefile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	coreticket "github.com/example/warden/internal/core/ticket"
	"github.com/example/warden/internal/ports/secondary"
)

// document is the on-disk shape of the state file.
type document struct {
	Counters      map[string]int                     `json:"counters"`
	ActiveTickets map[string]*secondary.TicketRecord `json:"activeTickets"`
}

// Store implements secondary.TicketRepository and secondary.CounterStore
// over one JSON document. The document is held in memory and is the
// authority between writes; every mutation rewrites the file via a temp
// file + rename so a crash never leaves a torn document.
type Store struct {
	path string

	mu  sync.Mutex
	doc document
}

// Open loads the state document at path, creating it with zeroed counters
// when absent.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s.doc); err != nil {
			return nil, fmt.Errorf("failed to parse state file: %w", err)
		}
		if s.doc.Counters == nil {
			s.doc.Counters = make(map[string]int)
		}
		if s.doc.ActiveTickets == nil {
			s.doc.ActiveTickets = make(map[string]*secondary.TicketRecord)
		}
	case os.IsNotExist(err):
		s.doc = document{
			Counters:      make(map[string]int),
			ActiveTickets: make(map[string]*secondary.TicketRecord),
		}
		for _, c := range coreticket.Categories() {
			s.doc.Counters[string(c)] = 0
		}
		if err := s.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	return s, nil
}

// save rewrites the whole document. Callers hold mu.
func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// NextSequence increments and durably persists the counter before handing
// the number out. A write failure rolls the increment back so a number is
// never observed without being recorded.
func (s *Store) NextSequence(ctx context.Context, category string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Counters[category]++
	if err := s.save(); err != nil {
		s.doc.Counters[category]--
		return 0, err
	}
	return s.doc.Counters[category], nil
}

// Counters returns a snapshot of the last-issued number per category.
func (s *Store) Counters(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.doc.Counters))
	for k, v := range s.doc.Counters {
		out[k] = v
	}
	return out, nil
}

// Put inserts or replaces a ticket record.
func (s *Store) Put(ctx context.Context, rec *secondary.TicketRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.doc.ActiveTickets[rec.ChannelID]
	stored := *rec
	s.doc.ActiveTickets[rec.ChannelID] = &stored
	if err := s.save(); err != nil {
		if existed {
			s.doc.ActiveTickets[rec.ChannelID] = prev
		} else {
			delete(s.doc.ActiveTickets, rec.ChannelID)
		}
		return err
	}
	return nil
}

// Get retrieves a ticket record by channel id, nil when absent.
func (s *Store) Get(ctx context.Context, channelID string) (*secondary.TicketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.doc.ActiveTickets[channelID]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

// Delete removes a ticket record.
func (s *Store) Delete(ctx context.Context, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.doc.ActiveTickets[channelID]
	if !existed {
		return nil
	}
	delete(s.doc.ActiveTickets, channelID)
	if err := s.save(); err != nil {
		s.doc.ActiveTickets[channelID] = prev
		return err
	}
	return nil
}

// List retrieves all live ticket records.
func (s *Store) List(ctx context.Context) ([]*secondary.TicketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*secondary.TicketRecord, 0, len(s.doc.ActiveTickets))
	for _, rec := range s.doc.ActiveTickets {
		r := *rec
		out = append(out, &r)
	}
	return out, nil
}

// FindOpenByOwner scans live records for an open ticket owned by the user.
func (s *Store) FindOpenByOwner(ctx context.Context, ownerID string) (*secondary.TicketRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.doc.ActiveTickets {
		if rec.OwnerID == ownerID && rec.Status == string(coreticket.StatusOpen) {
			out := *rec
			return &out, nil
		}
	}
	return nil, nil
}

// Ensure Store implements the persistence ports
var (
	_ secondary.TicketRepository = (*Store)(nil)
	_ secondary.CounterStore     = (*Store)(nil)
)
