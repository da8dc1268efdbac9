package version

import (
	"strings"
	"testing"
)

func TestString_ShortensLongCommit(t *testing.T) {
	orig, origTime := Commit, BuildTime
	t.Cleanup(func() { Commit, BuildTime = orig, origTime })

	Commit = "0123456789abcdef"
	BuildTime = "2026-08-28"

	got := String()
	if !strings.Contains(got, "0123456") {
		t.Errorf("expected shortened commit in %q", got)
	}
	if strings.Contains(got, "0123456789abcdef") {
		t.Errorf("expected full commit hash not rendered, got %q", got)
	}
	if !strings.Contains(got, "2026-08-28") {
		t.Errorf("expected build time in %q", got)
	}
}

func TestString_DefaultStamp(t *testing.T) {
	orig, origTime := Commit, BuildTime
	t.Cleanup(func() { Commit, BuildTime = orig, origTime })

	Commit = "unknown"
	BuildTime = "unknown"

	if got := String(); !strings.Contains(got, "unknown") {
		t.Errorf("expected default stamp rendered as-is, got %q", got)
	}
}
