package topic

import (
	"topicflow/internal/graph"
	"topicflow/internal/implication"
)

// ActiveDiagram returns the unfiltered diagram in front.
func (s *Store) ActiveDiagram() *graph.Diagram {
	return s.State().ActiveDiagram()
}

// Diagram returns the unfiltered diagram with the given id.
func (s *Store) Diagram(id string) (*graph.Diagram, bool) {
	d, ok := s.State().Diagrams[id]
	return d, ok
}

// ClaimDiagrams returns every claim tree ordered by id.
func (s *Store) ClaimDiagrams() []*graph.Diagram {
	return s.State().ClaimDiagrams()
}

// FilteredDiagram returns what a renderer should paint for diagramID under the
// current implied-edge flag.
func (s *Store) FilteredDiagram(diagramID string) (*graph.Diagram, error) {
	state := s.State()
	d, ok := state.Diagrams[diagramID]
	if !ok {
		return nil, diagramNotFound(diagramID)
	}
	return s.filter.FilterHiddenComponents(d, state.ClaimDiagrams(), state.ShowImpliedEdges)
}

// ExplicitClaimCount is the number of claims a user made about an arguable.
func (s *Store) ExplicitClaimCount(arguableID string) int {
	return implication.ExplicitClaimCount(arguableID, s.ClaimDiagrams())
}

// IsAnyArguableSelected reports whether any node or edge of the active
// diagram is selected.
func (s *Store) IsAnyArguableSelected() bool {
	_, ok := SelectedPart(s.ActiveDiagram())
	return ok
}

// SelectedPart returns the first selected node, else the first selected edge.
func SelectedPart(d *graph.Diagram) (graph.GraphPart, bool) {
	for _, n := range d.Nodes {
		if n.Selected {
			return n, true
		}
	}
	for _, e := range d.Edges {
		if e.Selected {
			return e, true
		}
	}
	return nil, false
}
