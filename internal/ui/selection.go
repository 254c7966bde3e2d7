package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
)

// selectableParts is the tab order: painted nodes, then painted edges.
func selectableParts(d *graph.Diagram) []graph.GraphPart {
	parts := make([]graph.GraphPart, 0, len(d.Nodes)+len(d.Edges))
	for _, n := range d.Nodes {
		parts = append(parts, n)
	}
	for _, e := range d.Edges {
		parts = append(parts, e)
	}
	return parts
}

// cycleSelection selects the part step places after the current one and
// brings it on screen.
func (m *App) cycleSelection(step int) tea.Cmd {
	filtered, err := m.activeFiltered()
	if err != nil {
		return m.showError(err)
	}
	parts := selectableParts(filtered)
	if len(parts) == 0 {
		return nil
	}

	current := -1
	for i, p := range parts {
		if p.PartSelected() {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = ((current+step)%len(parts) + len(parts)) % len(parts)
	} else if step < 0 {
		next = len(parts) - 1
	}
	target := parts[next]

	var changes []topic.SelectionChange
	active := m.store.ActiveDiagram()
	for _, p := range selectableParts(active) {
		if p.PartSelected() && p.PartID() != target.PartID() {
			changes = append(changes, topic.SelectionChange{ID: p.PartID(), Selected: false})
		}
	}
	changes = append(changes, topic.SelectionChange{ID: target.PartID(), Selected: true})
	if err := m.store.SetSelected(changes); err != nil {
		return m.showError(err)
	}
	m.resizeSurface()

	focus := focusNode(target, filtered)
	if focus == nil {
		return nil
	}
	m.controller.MoveViewportToIncludeNode(focus)
	return m.afterCameraMove()
}

// focusNode is the node the camera follows for a part: the node itself, or
// an edge's child end.
func focusNode(part graph.GraphPart, d *graph.Diagram) *graph.Node {
	switch p := part.(type) {
	case *graph.Node:
		return p
	case *graph.Edge:
		if n, err := graph.FindNode(p.Target, d); err == nil {
			return n
		}
	}
	return nil
}
