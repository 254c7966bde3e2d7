// Package topic holds the topic's diagrams and the current view, and applies
// view transitions as whole-state replacements.
package topic

import (
	"sort"

	"topicflow/internal/graph"
)

// State is an immutable snapshot. Transitions duplicate it, change the copy
// and install the copy; nothing ever writes to an installed State.
type State struct {
	Diagrams             map[string]*graph.Diagram
	ActiveClaimDiagramID string
	ActiveTableProblemID string
	ShowImpliedEdges     bool
}

// duplicate copies the diagram map and each diagram's slices. Nodes and edges
// stay shared and must be cloned before they are changed.
func (s *State) duplicate() *State {
	diagrams := make(map[string]*graph.Diagram, len(s.Diagrams))
	for id, d := range s.Diagrams {
		diagrams[id] = d.Clone()
	}
	return &State{
		Diagrams:             diagrams,
		ActiveClaimDiagramID: s.ActiveClaimDiagramID,
		ActiveTableProblemID: s.ActiveTableProblemID,
		ShowImpliedEdges:     s.ShowImpliedEdges,
	}
}

// ProblemDiagram returns the root diagram.
func (s *State) ProblemDiagram() *graph.Diagram {
	return s.Diagrams[graph.RootDiagramID]
}

// ActiveDiagramID is the claim overlay when one is open, else the root. An
// open criteria table is drawn from the root diagram.
func (s *State) ActiveDiagramID() string {
	if s.ActiveClaimDiagramID != "" {
		return s.ActiveClaimDiagramID
	}
	return graph.RootDiagramID
}

// ActiveDiagram returns the diagram named by ActiveDiagramID.
func (s *State) ActiveDiagram() *graph.Diagram {
	return s.Diagrams[s.ActiveDiagramID()]
}

// ClaimDiagrams returns every claim tree ordered by id.
func (s *State) ClaimDiagrams() []*graph.Diagram {
	var claims []*graph.Diagram
	for _, d := range s.Diagrams {
		if d.Type == graph.DiagramClaim {
			claims = append(claims, d)
		}
	}
	sort.Slice(claims, func(i, j int) bool { return claims[i].ID < claims[j].ID })
	return claims
}

// ViewKind names which view is in front.
type ViewKind int

const (
	ViewingRoot ViewKind = iota
	ViewingClaimTree
	ViewingCriteriaTable
)

func (k ViewKind) String() string {
	switch k {
	case ViewingClaimTree:
		return "claim tree"
	case ViewingCriteriaTable:
		return "criteria table"
	default:
		return "root"
	}
}

// View is the current view. A claim tree overlays an open table, so
// ProblemNodeID can be set while Kind is ViewingClaimTree.
type View struct {
	Kind          ViewKind
	DiagramID     string
	ProblemNodeID string
}

// CurrentView derives the front-most view from the two view pointers.
func (s *State) CurrentView() View {
	v := View{DiagramID: graph.RootDiagramID, ProblemNodeID: s.ActiveTableProblemID}
	switch {
	case s.ActiveClaimDiagramID != "":
		v.Kind = ViewingClaimTree
		v.DiagramID = s.ActiveClaimDiagramID
	case s.ActiveTableProblemID != "":
		v.Kind = ViewingCriteriaTable
	default:
		v.Kind = ViewingRoot
	}
	return v
}
