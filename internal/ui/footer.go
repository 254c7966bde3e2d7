package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"topicflow/internal/topic"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

// Global footer hints (always shown)
var globalFooterHints = []footerHint{
	{"i", "Implied"},
	{"y", "Copy"},
	{"q", "Quit"},
	{"?", "Help"},
}

var diagramFooterHints = []footerHint{
	{"⇥", "Select"},
	{"⏎", "Claims"},
	{"a", "Add"},
	{"hjkl", "Pan"},
	{"f", "Fit"},
}

var tableFooterHints = []footerHint{
	{"esc", "Close table"},
}

var claimFooterHints = []footerHint{
	{"⇥", "Select"},
	{"esc", "Back"},
	{"a", "Add"},
	{"f", "Fit"},
}

// renderFooter renders the footer bar with pill-style key hints.
func (m *App) renderFooter() string {
	var hints []footerHint
	view := m.store.State().CurrentView()
	switch view.Kind {
	case topic.ViewingCriteriaTable:
		hints = append(hints, tableFooterHints...)
	case topic.ViewingClaimTree:
		hints = append(hints, claimFooterHints...)
	default:
		hints = append(hints, diagramFooterHints...)
	}
	hints = append(hints, globalFooterHints...)

	right := styleKeyDesc().Render(m.sourceName)
	rightWidth := lipgloss.Width(right)
	hints = trimHintsToFit(hints, m.width-rightWidth-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")
	spacing := max(m.width-lipgloss.Width(left)-rightWidth, 2)
	return left + strings.Repeat(" ", spacing) + right
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit drops context hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	globalCount := len(globalFooterHints)
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
