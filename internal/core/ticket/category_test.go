package ticket

import "testing"

func TestParseCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(string(c))
		if err != nil {
			t.Fatalf("expected no error for %q, got %v", c, err)
		}
		if parsed != c {
			t.Errorf("expected %q, got %q", c, parsed)
		}
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	if _, err := ParseCategory("billing"); err == nil {
		t.Fatal("expected error for unknown category, got nil")
	}
}

func TestCategoryTitle(t *testing.T) {
	cases := map[Category]string{
		CategoryGeneralHelp:  "General Help",
		CategoryBugReport:    "Bug Report",
		CategoryPlayerReport: "Player Report",
		CategoryServerHelp:   "Server Help",
	}
	for c, want := range cases {
		if got := c.Title(); got != want {
			t.Errorf("expected title %q for %q, got %q", want, c, got)
		}
	}
}

func TestFormatNumber_ZeroPadded(t *testing.T) {
	if got := FormatNumber(7); got != "0007" {
		t.Errorf("expected '0007', got %q", got)
	}
	if got := FormatNumber(12345); got != "12345" {
		t.Errorf("expected '12345', got %q", got)
	}
}

func TestChannelName(t *testing.T) {
	if got := ChannelName(CategoryBugReport, 8); got != "bug-report-0008" {
		t.Errorf("expected 'bug-report-0008', got %q", got)
	}
}
