package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
	"topicflow/internal/ui/theme"
)

const (
	panCols = 4
	panRows = 2
)

// handleKeyMsg processes keyboard input.
func (m *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay takes precedence - blocks all other keys
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		m.surface.pan(0, panRows)
	case key.Matches(msg, m.keys.Down):
		m.surface.pan(0, -panRows)
	case key.Matches(msg, m.keys.Left):
		m.surface.pan(panCols, 0)
	case key.Matches(msg, m.keys.Right):
		m.surface.pan(-panCols, 0)
	case key.Matches(msg, m.keys.Fit):
		return m, m.fitActive()
	case key.Matches(msg, m.keys.Next):
		return m, m.cycleSelection(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.cycleSelection(-1)
	case key.Matches(msg, m.keys.Enter):
		return m, m.handleOpenClaims()
	case key.Matches(msg, m.keys.Escape):
		return m, m.handleEscape()
	case key.Matches(msg, m.keys.Home):
		return m, m.handleHomeKey()
	case key.Matches(msg, m.keys.Add):
		return m, m.handleAddKey()
	case key.Matches(msg, m.keys.Table):
		return m, m.handleTableKey()
	case key.Matches(msg, m.keys.Implied):
		show := !m.store.State().ShowImpliedEdges
		m.store.ToggleShowImpliedEdges(show)
		if show {
			return m, m.showToast("Showing implied edges")
		}
		return m, m.showToast("Hiding implied edges")
	case key.Matches(msg, m.keys.Relayout):
		return m, m.relayoutCmd(false)
	case key.Matches(msg, m.keys.Effects):
		return m, m.handleNeighborKey(graph.NodeEffect)
	case key.Matches(msg, m.keys.Components):
		return m, m.handleNeighborKey(graph.NodeSolutionComponent)
	case key.Matches(msg, m.keys.Criteria):
		return m, m.handleNeighborKey(graph.NodeCriterion)
	case key.Matches(msg, m.keys.Copy):
		return m, m.handleCopyKey()
	case key.Matches(msg, m.keys.Theme):
		return m, m.showToast("Theme: " + theme.Cycle())
	}
	return m, nil
}

// handleOpenClaims opens, creating on first use, the claim tree of the
// selected node or edge.
func (m *App) handleOpenClaims() tea.Cmd {
	if !m.store.IsAnyArguableSelected() {
		return m.showToast("Select a node or edge first")
	}
	if m.store.State().CurrentView().Kind == topic.ViewingClaimTree {
		return m.showToast("Claims open from the problem diagram")
	}
	part, _ := topic.SelectedPart(m.store.ActiveDiagram())
	if err := m.store.ViewOrCreateClaimDiagram(part.PartID(), part.PartType()); err != nil {
		return m.showError(err)
	}
	m.resizeSurface()
	return m.relayoutCmd(true)
}

func (m *App) handleEscape() tea.Cmd {
	switch m.store.State().CurrentView().Kind {
	case topic.ViewingClaimTree:
		m.store.CloseClaimDiagram()
		m.resizeSurface()
		return m.fitActive()
	case topic.ViewingCriteriaTable:
		m.store.CloseTable()
		m.resizeSurface()
	}
	return nil
}

func (m *App) handleHomeKey() tea.Cmd {
	if m.store.State().CurrentView().Kind == topic.ViewingRoot {
		return nil
	}
	m.store.ViewProblemDiagram()
	m.resizeSurface()
	return m.fitActive()
}

// handleAddKey adds a child under the selected node through the first
// relation its type can parent. The store lays out and announces the node,
// which brings it into view.
func (m *App) handleAddKey() tea.Cmd {
	if m.store.State().CurrentView().Kind == topic.ViewingCriteriaTable {
		return m.showToast("Close the table to add nodes")
	}
	part, ok := topic.SelectedPart(m.store.ActiveDiagram())
	if !ok || part.PartType() != graph.GraphPartNode {
		return m.showToast("Select a node first")
	}
	parent := part.(*graph.Node)
	rel, ok := childRelation(parent.Type)
	if !ok {
		return m.showToast(fmt.Sprintf("Nothing can be added under a %s", parent.Type))
	}
	return tea.Batch(m.addNodeCmd(topic.AddNodeProps{
		ParentID: parent.ID,
		Relation: rel.Name,
		Type:     rel.Child,
		Label:    "New " + string(rel.Child),
	}), m.showToast(fmt.Sprintf("Added %s", rel.Child)))
}

func childRelation(parent graph.NodeType) (graph.Relation, bool) {
	for _, r := range graph.Relations() {
		if r.Parent == parent {
			return r, true
		}
	}
	return graph.Relation{}, false
}

func (m *App) handleTableKey() tea.Cmd {
	part, ok := topic.SelectedPart(m.store.ActiveDiagram())
	if !ok {
		return m.showToast("Select a problem first")
	}
	if err := m.store.ViewCriteriaTable(part.PartID()); err != nil {
		return m.showError(err)
	}
	m.resizeSurface()
	return nil
}

// handleNeighborKey flips the show/hide toggle of the selected node for one
// neighbor type, laying out in the background.
func (m *App) handleNeighborKey(neighborType graph.NodeType) tea.Cmd {
	if m.store.State().CurrentView().Kind != topic.ViewingRoot {
		return m.showToast("Neighbors toggle on the problem diagram")
	}
	part, ok := topic.SelectedPart(m.store.ActiveDiagram())
	if !ok || part.PartType() != graph.GraphPartNode {
		return m.showToast("Select a node first")
	}
	toggles, err := m.store.NeighborToggles(part.PartID())
	if err != nil {
		return m.showError(err)
	}
	for _, toggle := range toggles {
		if toggle.NeighborType != neighborType {
			continue
		}
		return tea.Batch(m.toggleNeighborsCmd(toggle), m.showToast(toggle.Label()))
	}
	return m.showToast(fmt.Sprintf("No %s for this node", neighborNoun(neighborType)))
}

// handleCopyKey copies the painted active diagram as Mermaid.
func (m *App) handleCopyKey() tea.Cmd {
	d, err := m.activeFiltered()
	if err != nil {
		return m.showError(err)
	}
	out, err := m.exporter.Export(d)
	if err != nil {
		return m.showError(err)
	}
	if err := m.clipboard(out); err != nil {
		return m.showError(fmt.Errorf("copy to clipboard: %w", err))
	}
	return m.showToast(fmt.Sprintf("Copied %s to clipboard", m.exporter.FormatName()))
}

func neighborNoun(t graph.NodeType) string {
	switch t {
	case graph.NodeEffect:
		return "effects"
	case graph.NodeSolutionComponent:
		return "components"
	case graph.NodeCriterion:
		return "criteria"
	}
	return string(t)
}
