// Package version carries the build stamp injected via ldflags.
package version

import "fmt"

var (
	// Commit is the git revision the binary was built from.
	Commit = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String renders the human-readable version line for --version.
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("warden dev (commit: %s, built: %s)", commit, BuildTime)
}
