package graph

import "fmt"

// ValidateDiagram checks the structural invariants of a single diagram:
// unique ids, node and edge diagram ids matching the diagram, edge endpoints
// resolving inside the diagram, and every edge relation being in the vocabulary.
func ValidateDiagram(d *Diagram) error {
	if d == nil {
		return invalidDiagramError("diagram is nil", nil)
	}
	if d.ID == "" {
		return invalidDiagramError("diagram id is required", d)
	}
	if d.Type != DiagramProblem && d.Type != DiagramClaim {
		return invalidDiagramError(fmt.Sprintf("invalid diagram type %q", d.Type), d)
	}

	nodes := make(map[string]*Node, len(d.Nodes))
	for _, node := range d.Nodes {
		if node == nil {
			return invalidDiagramError("nil node", d)
		}
		if _, dup := nodes[node.ID]; dup {
			return invalidDiagramError(fmt.Sprintf("duplicate node id %s", node.ID), d)
		}
		if err := node.Type.Validate(); err != nil {
			return fmt.Errorf("node %s: %w", node.ID, err)
		}
		if node.Data.DiagramID != d.ID {
			return invalidDiagramError(fmt.Sprintf("node %s belongs to diagram %q", node.ID, node.Data.DiagramID), d)
		}
		nodes[node.ID] = node
	}

	seenEdges := make(map[string]bool, len(d.Edges))
	for _, edge := range d.Edges {
		if edge == nil {
			return invalidDiagramError("nil edge", d)
		}
		if seenEdges[edge.ID] || nodes[edge.ID] != nil {
			return invalidDiagramError(fmt.Sprintf("duplicate graph part id %s", edge.ID), d)
		}
		seenEdges[edge.ID] = true
		if edge.Data.DiagramID != d.ID {
			return invalidDiagramError(fmt.Sprintf("edge %s belongs to diagram %q", edge.ID, edge.Data.DiagramID), d)
		}
		parent, ok := nodes[edge.Source]
		if !ok {
			return notFound("node", edge.Source, d)
		}
		child, ok := nodes[edge.Target]
		if !ok {
			return notFound("node", edge.Target, d)
		}
		if err := ValidateRelation(parent.Type, edge.Label, child.Type); err != nil {
			return fmt.Errorf("edge %s: %w", edge.ID, err)
		}
	}
	return nil
}

// ValidateDiagrams validates each diagram and checks that ids are globally
// unique and that exactly one problem diagram, the root, exists.
func ValidateDiagrams(diagrams map[string]*Diagram) error {
	root, ok := diagrams[RootDiagramID]
	if !ok || root == nil {
		return invalidDiagramError("missing root diagram", nil)
	}
	if root.Type != DiagramProblem {
		return invalidDiagramError("root diagram must be a problem diagram", root)
	}

	seen := make(map[string]string)
	for key, d := range diagrams {
		if d == nil {
			return invalidDiagramError(fmt.Sprintf("diagram %q is nil", key), nil)
		}
		if d.ID != key {
			return invalidDiagramError(fmt.Sprintf("diagram stored under %q", key), d)
		}
		if d.Type == DiagramProblem && d.ID != RootDiagramID {
			return invalidDiagramError("only the root diagram may be a problem diagram", d)
		}
		if err := ValidateDiagram(d); err != nil {
			return err
		}
		for _, node := range d.Nodes {
			if other, dup := seen[node.ID]; dup {
				return invalidDiagramError(fmt.Sprintf("id %s also used in diagram %q", node.ID, other), d)
			}
			seen[node.ID] = d.ID
		}
		for _, edge := range d.Edges {
			if other, dup := seen[edge.ID]; dup {
				return invalidDiagramError(fmt.Sprintf("id %s also used in diagram %q", edge.ID, other), d)
			}
			seen[edge.ID] = d.ID
		}
	}
	return nil
}
