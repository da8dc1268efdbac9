// Package ticket contains the pure business logic for the support-ticket
// lifecycle. This is part of the Functional Core - no I/O, only pure functions.
package ticket

import (
	"fmt"
)

// Category represents a support-ticket category.
type Category string

const (
	CategoryGeneralHelp  Category = "general-help"
	CategoryBugReport    Category = "bug-report"
	CategoryPlayerReport Category = "player-report"
	CategoryServerHelp   Category = "server-help"
)

// Categories returns all ticket categories in panel order.
func Categories() []Category {
	return []Category{
		CategoryGeneralHelp,
		CategoryBugReport,
		CategoryPlayerReport,
		CategoryServerHelp,
	}
}

// ParseCategory parses a category slug.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryGeneralHelp, CategoryBugReport, CategoryPlayerReport, CategoryServerHelp:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown ticket category: %q", s)
}

// Title returns the human-readable title for a category.
func (c Category) Title() string {
	switch c {
	case CategoryGeneralHelp:
		return "General Help"
	case CategoryBugReport:
		return "Bug Report"
	case CategoryPlayerReport:
		return "Player Report"
	case CategoryServerHelp:
		return "Server Help"
	}
	return string(c)
}

// FormatNumber renders a ticket sequence number zero-padded to four digits.
func FormatNumber(seq int) string {
	return fmt.Sprintf("%04d", seq)
}

// ChannelName returns the channel name for a ticket,
// e.g. "bug-report-0008" for sequence 8.
func ChannelName(c Category, seq int) string {
	return fmt.Sprintf("%s-%s", c, FormatNumber(seq))
}
