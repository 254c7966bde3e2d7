package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"topicflow/internal/topic"
)

const (
	toastDuration = 4 * time.Second
	animFrame     = 16 * time.Millisecond
)

// layoutDoneMsg reports a layout run started by a command. fit asks for the
// camera to frame the active diagram afterwards.
type layoutDoneMsg struct {
	err error
	fit bool
}

// storeEventMsg carries a store event onto the Bubble Tea loop.
type storeEventMsg struct {
	event topic.Event
}

type animTickMsg struct{}

type toastExpiredMsg struct {
	seq int
}

func scheduleAnimTick() tea.Cmd {
	return tea.Tick(animFrame, func(time.Time) tea.Msg { return animTickMsg{} })
}

func scheduleToastExpiry(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

// waitForEvent blocks until the store publishes and hands the event to
// Update, which re-arms it.
func waitForEvent(events <-chan topic.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeEventMsg{event: ev}
	}
}
