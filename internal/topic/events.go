package topic

import (
	"sort"

	"topicflow/internal/graph"
)

// EventKind identifies a store event.
type EventKind string

const (
	// EventNodeAdded carries the new node; renderers scroll it into view.
	EventNodeAdded EventKind = "nodeAdded"
	// EventTopicLoaded carries the root diagram; renderers fit it.
	EventTopicLoaded EventKind = "topicLoaded"
)

// Event is published to subscribers after the state carrying it is installed.
type Event struct {
	Kind    EventKind
	Node    *graph.Node
	Diagram *graph.Diagram
}

// Subscribe registers fn for every future event and returns a function that
// removes it. fn runs on the goroutine that triggered the event.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
