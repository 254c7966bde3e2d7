package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"topicflow/internal/debug"
	"topicflow/internal/graph"
	"topicflow/internal/topic"
)

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeSurface()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case layoutDoneMsg:
		m.layoutsInFlight = max(m.layoutsInFlight-1, 0)
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		if msg.fit {
			return m, m.fitActive()
		}
		return m, nil

	case storeEventMsg:
		cmds := []tea.Cmd{waitForEvent(m.events)}
		cmds = append(cmds, m.handleStoreEvent(msg.event))
		return m, tea.Batch(cmds...)

	case animTickMsg:
		if m.surface.step() {
			return m, scheduleAnimTick()
		}
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastIsErr = false
		}
		return m, nil
	}
	return m, nil
}

// handleStoreEvent moves the camera the way each store event asks for.
func (m *App) handleStoreEvent(ev topic.Event) tea.Cmd {
	debug.With("event", ev.Kind).Debug("store event")
	switch ev.Kind {
	case topic.EventNodeAdded:
		if ev.Node == nil {
			return nil
		}
		m.controller.MoveViewportToIncludeNode(ev.Node)
		return m.afterCameraMove()
	case topic.EventTopicLoaded:
		if ev.Diagram == nil {
			return nil
		}
		m.controller.FitViewForNodes(visibleNodes(ev.Diagram))
		return nil
	}
	return nil
}

func visibleNodes(d *graph.Diagram) []*graph.Node {
	nodes := make([]*graph.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Data.Showing {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
