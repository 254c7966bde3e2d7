package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
	"topicflow/internal/ui/theme"
)

const tableColumnWidth = 18

// renderCriteriaTable shows criteria as rows and solutions as columns. A cell
// is marked when the criterion is embodied by the solution, with the edge's
// score when it has one.
func renderCriteriaTable(t *topic.CriteriaTable, width int) string {
	title := styleSectionHeader().Render("Criteria for " + t.Problem.Data.Label)
	if len(t.Criteria) == 0 || len(t.Solutions) == 0 {
		empty := styleHeaderInfo().Render("Add criteria and solutions under this problem to compare them.")
		return lipgloss.JoinVertical(lipgloss.Left, title, "", empty)
	}

	headers := []string{"Criterion"}
	for _, s := range t.Solutions {
		headers = append(headers, cellText(s.Data.Label))
	}
	rows := make([][]string, 0, len(t.Criteria))
	for _, c := range t.Criteria {
		row := []string{cellText(c.Data.Label)}
		for _, s := range t.Solutions {
			row = append(row, cellMark(t.Cell(c.ID, s.ID)))
		}
		rows = append(rows, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Current().BorderNormal())).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader()
			}
			return styleTableCell()
		})
	if width > 0 {
		tbl = tbl.Width(min(width, (len(headers))*(tableColumnWidth+3)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", tbl.String())
}

func cellText(label string) string {
	label = strings.ReplaceAll(strings.TrimSpace(label), "\n", " ")
	return truncate.StringWithTail(label, tableColumnWidth, "…")
}

func cellMark(e *graph.Edge) string {
	if e == nil {
		return ""
	}
	if e.Data.Score != "" && e.Data.Score != graph.ScoreUnset {
		return "✓ " + string(e.Data.Score)
	}
	return "✓"
}
