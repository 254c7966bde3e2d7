package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
)

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	cols, rows := m.graphSize()

	var body string
	state := m.store.State()
	view := state.CurrentView()
	if view.Kind == topic.ViewingCriteriaTable {
		body = m.renderTableBody(m.width, rows)
	} else {
		d, err := m.activeFiltered()
		if err != nil {
			body = styleErrorToast().Render(err.Error())
		} else {
			body = m.renderDiagram(d, cols, rows)
			if m.detailPaneVisible() {
				body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetailPane(d, rows))
			}
		}
	}

	if m.showHelp || m.toast != "" {
		canvas := NewCanvas(max(m.width, 1), rows)
		canvas.DrawStringAt(0, 0, body)
		if m.showHelp {
			canvas.centerOverlay(renderHelpOverlay(m.keys), 0, 0)
		}
		if m.toast != "" {
			canvas.bottomRightOverlay(m.renderToast(), 1)
		}
		body = canvas.Render()
	}

	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

func (m *App) renderHeader() string {
	title := "TOPICFLOW"
	if m.version != "" {
		title = fmt.Sprintf("TOPICFLOW v%s", m.version)
	}

	state := m.store.State()
	view := state.CurrentView()
	var where string
	switch view.Kind {
	case topic.ViewingClaimTree:
		where = "Claims: " + diagramTitle(state.Diagrams[view.DiagramID])
	case topic.ViewingCriteriaTable:
		where = "Criteria table"
	default:
		where = "Problem: " + diagramTitle(state.ProblemDiagram())
	}

	info := []string{where}
	if state.ShowImpliedEdges {
		info = append(info, "implied edges shown")
	}
	info = append(info, fmt.Sprintf("zoom %d%%", int(math.Round(m.surface.Viewport().Zoom*100))))
	if m.layoutsInFlight > 0 {
		info = append(info, "laying out…")
	}
	return styleAppHeader().Render(title) + " " + styleHeaderInfo().Render(strings.Join(info, " • "))
}

func diagramTitle(d *graph.Diagram) string {
	if d == nil {
		return "?"
	}
	title, err := d.Title()
	if err != nil {
		return d.ID
	}
	return title
}

func (m *App) renderTableBody(width, height int) string {
	t, err := m.store.CriteriaTable()
	if err != nil {
		return styleErrorToast().Render(err.Error())
	}
	return lipgloss.NewStyle().
		Width(max(width, 1)).
		Height(height).
		MaxHeight(height).
		Padding(0, 1).
		Render(renderCriteriaTable(t, width-2))
}

func (m *App) renderDetailPane(d *graph.Diagram, height int) string {
	part, ok := topic.SelectedPart(m.store.ActiveDiagram())
	if !ok {
		return ""
	}
	content := m.markdown(m.detailMarkdown(part, d))
	return stylePane().
		Width(detailPaneWidth - 2).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(content)
}

func (m *App) renderToast() string {
	if m.toastIsErr {
		return styleErrorToast().Render("⚠ " + m.toast)
	}
	return styleSuccessToast().Render(m.toast)
}
