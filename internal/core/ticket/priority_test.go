package ticket

import "testing"

func TestParsePriority_Valid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		parsed, err := ParsePriority(string(p))
		if err != nil {
			t.Fatalf("expected no error for %q, got %v", p, err)
		}
		if parsed != p {
			t.Errorf("expected %q, got %q", p, parsed)
		}
	}
}

func TestParsePriority_Unknown(t *testing.T) {
	if _, err := ParsePriority("critical"); err == nil {
		t.Fatal("expected error for unknown priority, got nil")
	}
}

func TestPriorityRank_UrgentSortsFirst(t *testing.T) {
	ranks := map[Priority]int{
		PriorityUrgent: 0,
		PriorityHigh:   10,
		PriorityMedium: 20,
		PriorityLow:    30,
	}
	for p, want := range ranks {
		if got := p.Rank(); got != want {
			t.Errorf("expected rank %d for %q, got %d", want, p, got)
		}
	}
}
