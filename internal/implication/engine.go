// Package implication decides whether a visible edge is logically implied by
// other visible structure and can therefore be hidden to reduce clutter.
//
// The engine is read-only: it never mutates the diagrams it inspects, and its
// answer depends only on the edge, the (already filtered) diagram, and the set
// of claim trees.
package implication

import "topicflow/internal/graph"

// Engine evaluates implication against a composition table.
type Engine struct {
	table graph.CompositionTable
}

// NewEngine creates an engine over the given table. The table is copied.
func NewEngine(table graph.CompositionTable) *Engine {
	return &Engine{table: append(graph.CompositionTable(nil), table...)}
}

// Default returns an engine over graph.DefaultCompositions.
func Default() *Engine {
	return NewEngine(graph.DefaultCompositions())
}

// Table returns a copy of the engine's composition table.
func (e *Engine) Table() graph.CompositionTable {
	return append(graph.CompositionTable(nil), e.table...)
}

// IsCandidate reports whether the edge's relation is the implied side of any rule.
func (e *Engine) IsCandidate(edge *graph.Edge) bool {
	return len(e.table.RulesImplying(edge.Label)) > 0
}

// IsEdgeImplied reports whether edge is implied by other edges of d. An edge
// that has explicit claims in claimTrees is never implied: the user has shown
// interest in it individually.
func (e *Engine) IsEdgeImplied(edge *graph.Edge, d *graph.Diagram, claimTrees []*graph.Diagram) (bool, error) {
	if !e.IsCandidate(edge) {
		return false, nil
	}
	if ExplicitClaimCount(edge.ID, claimTrees) > 0 {
		return false, nil
	}
	return e.IsEdgeAShortcut(edge, d)
}

// IsEdgeAShortcut reports whether a chain of other visible edges composes to
// the same relation between the same endpoints, ignoring claims.
func (e *Engine) IsEdgeAShortcut(edge *graph.Edge, d *graph.Diagram) (bool, error) {
	source, err := graph.FindNode(edge.Source, d)
	if err != nil {
		return false, err
	}
	target, err := graph.FindNode(edge.Target, d)
	if err != nil {
		return false, err
	}

	for _, rule := range e.table.RulesImplying(edge.Label) {
		// X -Relation-> part, whole -Composer-> part  =>  X -Implies-> whole
		parts, err := rule.ComposedNodes(target, d)
		if err != nil {
			return false, err
		}
		for _, part := range parts {
			if part.Data.Showing && hasEdge(d, edge.ID, source.ID, part.ID, rule.Relation) {
				return true, nil
			}
		}

		// whole -Composer-> part -Relation-> X  =>  whole -Implies-> X
		parts, err = rule.ComposedNodes(source, d)
		if err != nil {
			return false, err
		}
		for _, part := range parts {
			if part.Data.Showing && hasEdge(d, edge.ID, part.ID, target.ID, rule.Relation) {
				return true, nil
			}
		}
	}
	return false, nil
}

func hasEdge(d *graph.Diagram, excludeID, source, target string, label graph.RelationName) bool {
	for _, edge := range d.Edges {
		if edge.ID == excludeID {
			continue
		}
		if edge.Source == source && edge.Target == target && edge.Label == label {
			return true
		}
	}
	return false
}

// ExplicitClaimCount returns the number of user-made claims about an arguable:
// every node of its claim tree except the synthesized root claim.
func ExplicitClaimCount(arguableID string, claimTrees []*graph.Diagram) int {
	for _, tree := range claimTrees {
		if tree.ID != arguableID {
			continue
		}
		if len(tree.Nodes) == 0 {
			return 0
		}
		return len(tree.Nodes) - 1
	}
	return 0
}
