package topic

import "topicflow/internal/graph"

// NeighborToggle is a show/hide action over one kind of neighbor of a node.
type NeighborToggle struct {
	NodeID       string
	NeighborType graph.NodeType
	Direction    graph.RelationDirection
	Count        int
	AllShowing   bool
}

// Label reads "Hide effects" when every such neighbor is showing, else "Show effects".
func (t NeighborToggle) Label() string {
	verb := "Show"
	if t.AllShowing {
		verb = "Hide"
	}
	return verb + " " + neighborNoun(t.NeighborType)
}

// Show is the flag to pass to ToggleShowNeighbors to perform this toggle.
func (t NeighborToggle) Show() bool {
	return !t.AllShowing
}

func neighborNoun(t graph.NodeType) string {
	switch t {
	case graph.NodeEffect:
		return "effects"
	case graph.NodeSolutionComponent:
		return "components"
	case graph.NodeCriterion:
		return "criteria"
	default:
		return string(t) + " neighbors"
	}
}

// neighborToggleKind is a neighbor kind that a node type can show or hide.
type neighborToggleKind struct {
	owners       []graph.NodeType
	neighborType graph.NodeType
	direction    graph.RelationDirection
}

var neighborToggleKinds = []neighborToggleKind{
	{owners: []graph.NodeType{graph.NodeSolution}, neighborType: graph.NodeSolutionComponent, direction: graph.DirectionChild},
	{owners: []graph.NodeType{graph.NodeProblem}, neighborType: graph.NodeCriterion, direction: graph.DirectionChild},
	{owners: []graph.NodeType{graph.NodeSolution, graph.NodeSolutionComponent}, neighborType: graph.NodeEffect, direction: graph.DirectionParent},
}

// NeighborToggleFor reports how many neighbors of neighborType node has in
// direction within d, and whether all of them are showing.
func NeighborToggleFor(node *graph.Node, neighborType graph.NodeType, direction graph.RelationDirection, d *graph.Diagram) (NeighborToggle, error) {
	neighbors, err := graph.Neighbors(node, direction, d)
	if err != nil {
		return NeighborToggle{}, err
	}
	toggle := NeighborToggle{NodeID: node.ID, NeighborType: neighborType, Direction: direction, AllShowing: true}
	for _, n := range neighbors {
		if n.Type != neighborType {
			continue
		}
		toggle.Count++
		if !n.Data.Showing {
			toggle.AllShowing = false
		}
	}
	return toggle, nil
}

// NeighborToggles lists the toggles offered for a node of the root diagram:
// components of a solution, criteria of a problem, effects of a solution or
// component. Kinds without any neighbor are left out.
func (s *Store) NeighborToggles(nodeID string) ([]NeighborToggle, error) {
	problem := s.State().ProblemDiagram()
	node, err := graph.FindNode(nodeID, problem)
	if err != nil {
		return nil, err
	}

	var toggles []NeighborToggle
	for _, kind := range neighborToggleKinds {
		if !containsType(kind.owners, node.Type) {
			continue
		}
		toggle, err := NeighborToggleFor(node, kind.neighborType, kind.direction, problem)
		if err != nil {
			return nil, err
		}
		if toggle.Count > 0 {
			toggles = append(toggles, toggle)
		}
	}
	return toggles, nil
}

func containsType(types []graph.NodeType, t graph.NodeType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
