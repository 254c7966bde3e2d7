package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const helpKeyWidth = 14

type helpSection struct {
	title string
	rows  [][]string // key, description
}

func section(title string, bindings ...key.Binding) helpSection {
	s := helpSection{title: title, rows: make([][]string, 0, len(bindings))}
	for _, b := range bindings {
		h := b.Help()
		s.rows = append(s.rows, []string{h.Key, h.Desc})
	}
	return s
}

// getHelpSections lists the overlay content. Labels come from the bindings
// themselves so the footer and the overlay never disagree.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		section("CAMERA", keys.Up, keys.Left, keys.Fit),
		section("VIEWS", keys.Next, keys.Prev, keys.Enter, keys.Escape, keys.Home, keys.Table, keys.Implied, keys.Relayout),
		section("NEIGHBORS", keys.Effects, keys.Components, keys.Criteria),
		section("EDIT", keys.Add),
		section("GENERAL", keys.Copy, keys.Theme, keys.Help, keys.Quit),
	}
}

// renderHelpOverlay lays sections out in two columns, even indexes on the
// left. The caller centers the result.
func renderHelpOverlay(keys KeyMap) string {
	var cols [2][]string
	for i, s := range getHelpSections(keys) {
		side := i % 2
		if len(cols[side]) > 0 {
			cols[side] = append(cols[side], "")
		}
		cols[side] = append(cols[side], s.render())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, cols[0]...),
		"    ",
		lipgloss.JoinVertical(lipgloss.Left, cols[1]...),
	)

	rule := strings.Repeat("─", max(lipgloss.Width(body), 40))
	return styleHelpOverlay().Render(lipgloss.JoinVertical(lipgloss.Center,
		styleHelpTitle().Render("✦ TOPICFLOW HELP ✦"),
		styleHelpDivider().Render(rule),
		"",
		body,
		"",
		styleHelpFooter().Render("Press ? or Esc to close"),
	))
}

func (s helpSection) render() string {
	rows := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(helpKeyWidth)
			}
			return styleHelpDesc()
		}).
		Rows(s.rows...).
		String()

	heading := styleHelpSectionHeader()
	return lipgloss.JoinVertical(lipgloss.Left,
		heading.Render(s.title),
		heading.Render(strings.Repeat("─", len(s.title))),
		// the hidden top border leaves an empty first line
		strings.TrimPrefix(rows, "\n"),
	)
}
