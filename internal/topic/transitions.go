package topic

import (
	"context"

	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
)

// ViewOrCreateClaimDiagram opens the claim tree of an arguable in the active
// diagram, creating it with a synthesized root claim on first access. An
// existing claim tree is only brought to the front.
func (s *Store) ViewOrCreateClaimDiagram(arguableID string, arguableType graph.ArguableType) error {
	return s.update("viewOrCreateClaimDiagram", func(next *State) ([]string, error) {
		var bump []string
		if _, exists := next.Diagrams[arguableID]; !exists {
			if err := checkArguable(arguableID, arguableType, next.ActiveDiagram()); err != nil {
				return nil, err
			}
			claim, err := newClaimDiagram(arguableID, arguableType, next.ActiveDiagram())
			if err != nil {
				return nil, err
			}
			next.Diagrams[arguableID] = claim
			bump = append(bump, arguableID)
		}
		next.ActiveClaimDiagramID = arguableID
		return bump, nil
	})
}

// checkArguable rejects parts of a claim tree. Only problem-diagram nodes and
// edges can be argued about.
func checkArguable(arguableID string, arguableType graph.ArguableType, active *graph.Diagram) error {
	if active.Type == graph.DiagramClaim {
		return appErrors.Newf(appErrors.CodeInvalidDiagram, nil, "%s %s is part of claim tree %q and cannot be argued", arguableType, arguableID, active.ID)
	}
	part, err := graph.FindArguable(arguableID, arguableType, active)
	if err != nil {
		return err
	}
	if n, ok := part.(*graph.Node); ok && n.Type.IsClaim() {
		return appErrors.Newf(appErrors.CodeInvalidNodeData, nil, "%s node %s cannot be argued", n.Type, n.ID)
	}
	return nil
}

func newClaimDiagram(arguableID string, arguableType graph.ArguableType, active *graph.Diagram) (*graph.Diagram, error) {
	arguable, err := graph.FindArguable(arguableID, arguableType, active)
	if err != nil {
		return nil, err
	}
	label, err := ImplicitLabel(arguableID, arguableType, active)
	if err != nil {
		return nil, err
	}
	root, err := graph.BuildNode(graph.BuildNodeProps{
		Label:     label,
		Score:     arguable.PartScore(),
		Type:      graph.NodeRootClaim,
		DiagramID: arguableID,
	})
	if err != nil {
		return nil, err
	}
	return &graph.Diagram{
		ID:    arguableID,
		Type:  graph.DiagramClaim,
		Nodes: []*graph.Node{root},
		Edges: []*graph.Edge{},
	}, nil
}

// ViewClaimDiagram brings an existing claim tree to the front.
func (s *Store) ViewClaimDiagram(diagramID string) error {
	return s.update("viewClaimDiagram", func(next *State) ([]string, error) {
		d, ok := next.Diagrams[diagramID]
		if !ok {
			return nil, diagramNotFound(diagramID)
		}
		if d.Type != graph.DiagramClaim {
			return nil, appErrors.Newf(appErrors.CodeInvalidDiagram, nil, "diagram %q is not a claim tree", diagramID)
		}
		next.ActiveClaimDiagramID = diagramID
		return nil, nil
	})
}

// CloseClaimDiagram removes the claim overlay. The claim tree itself is kept.
func (s *Store) CloseClaimDiagram() {
	_ = s.update("closeClaimDiagram", func(next *State) ([]string, error) {
		next.ActiveClaimDiagramID = ""
		return nil, nil
	})
}

// ViewCriteriaTable opens the criteria table of a problem node in the root
// diagram, closing any claim overlay.
func (s *Store) ViewCriteriaTable(problemNodeID string) error {
	return s.update("viewCriteriaTable", func(next *State) ([]string, error) {
		node, err := graph.FindNode(problemNodeID, next.ProblemDiagram())
		if err != nil {
			return nil, err
		}
		if node.Type != graph.NodeProblem {
			return nil, appErrors.Newf(appErrors.CodeInvalidNodeData, nil, "criteria table needs a problem node, %s is a %s", node.ID, node.Type)
		}
		next.ActiveTableProblemID = problemNodeID
		next.ActiveClaimDiagramID = ""
		return nil, nil
	})
}

// CloseTable closes the criteria table. A claim overlay stays open.
func (s *Store) CloseTable() {
	_ = s.update("closeTable", func(next *State) ([]string, error) {
		next.ActiveTableProblemID = ""
		return nil, nil
	})
}

// ViewProblemDiagram closes both the table and the claim overlay.
func (s *Store) ViewProblemDiagram() {
	_ = s.update("viewProblemDiagram", func(next *State) ([]string, error) {
		next.ActiveTableProblemID = ""
		next.ActiveClaimDiagramID = ""
		return nil, nil
	})
}

// ToggleShowImpliedEdges sets the global implied-edge flag. Filtered reads
// pick it up; positions are not recomputed.
func (s *Store) ToggleShowImpliedEdges(show bool) {
	_ = s.update("toggleShowImpliedEdges", func(next *State) ([]string, error) {
		next.ShowImpliedEdges = show
		return nil, nil
	})
}

// ToggleShowNeighbors sets the showing flag of node's neighbors of
// neighborType in direction, all in the root diagram, and lays the root
// diagram out. The flags and the new positions are installed together, and
// neither is installed when the layout fails.
func (s *Store) ToggleShowNeighbors(ctx context.Context, nodeID string, neighborType graph.NodeType, direction graph.RelationDirection, show bool) error {
	_, err := s.changeAndLayout(ctx, "toggleShowNeighbors", rootDiagram, func(problem *graph.Diagram) error {
		node, err := graph.FindNode(nodeID, problem)
		if err != nil {
			return err
		}
		neighbors, err := graph.Neighbors(node, direction, problem)
		if err != nil {
			return err
		}
		for _, neighbor := range neighbors {
			if neighbor.Type != neighborType || neighbor.Data.Showing == show {
				continue
			}
			toggled := neighbor.Clone()
			toggled.Data.Showing = show
			problem.ReplaceNode(toggled)
		}
		return nil
	})
	return err
}

func rootDiagram(*State) string { return graph.RootDiagramID }

func activeDiagram(st *State) string { return st.ActiveDiagramID() }

// Relayout lays out the active diagram again.
func (s *Store) Relayout(ctx context.Context) error {
	return s.layoutDiagram(ctx, "relayout", s.State().ActiveDiagramID())
}

// SelectionChange is a renderer's report that a part was (de)selected.
type SelectionChange struct {
	ID       string
	Selected bool
}

// SetSelected applies selection changes to the active diagram. Selection does
// not affect layout, so generations are left alone.
func (s *Store) SetSelected(changes []SelectionChange) error {
	return s.update("setSelected", func(next *State) ([]string, error) {
		active := next.ActiveDiagram()
		for _, change := range changes {
			part, err := graph.FindGraphPart(change.ID, active)
			if err != nil {
				return nil, err
			}
			if part.PartSelected() == change.Selected {
				continue
			}
			switch p := part.(type) {
			case *graph.Node:
				n := p.Clone()
				n.Selected = change.Selected
				active.ReplaceNode(n)
			case *graph.Edge:
				e := p.Clone()
				e.Selected = change.Selected
				active.ReplaceEdge(e)
			}
		}
		return nil, nil
	})
}

// AddNodeProps describes a node to add under an existing parent.
type AddNodeProps struct {
	ParentID string
	Relation graph.RelationName
	Type     graph.NodeType
	Label    string
}

// AddNode builds a node and the edge from its parent in the active diagram,
// lays the diagram out and publishes EventNodeAdded with the placed node.
// The node is installed already positioned.
func (s *Store) AddNode(ctx context.Context, props AddNodeProps) (*graph.Node, error) {
	var added *graph.Node
	laid, err := s.changeAndLayout(ctx, "addNode", activeDiagram, func(active *graph.Diagram) error {
		parent, err := graph.FindNode(props.ParentID, active)
		if err != nil {
			return err
		}
		node, err := graph.BuildNode(graph.BuildNodeProps{Label: props.Label, Type: props.Type, DiagramID: active.ID})
		if err != nil {
			return err
		}
		edge, err := graph.BuildEdge(graph.BuildEdgeProps{Parent: parent, Child: node, Relation: props.Relation, DiagramID: active.ID})
		if err != nil {
			return err
		}
		active.Nodes = append(active.Nodes, node)
		active.Edges = append(active.Edges, edge)
		added = node
		return nil
	})
	if err != nil {
		return nil, err
	}

	placed, err := graph.FindNode(added.ID, laid)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Kind: EventNodeAdded, Node: placed})
	return placed, nil
}
