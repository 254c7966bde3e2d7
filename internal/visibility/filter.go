// Package visibility reduces a full diagram to what is currently shown.
package visibility

import (
	"topicflow/internal/graph"
	"topicflow/internal/implication"
)

// Filter applies showing flags and, optionally, hides implied edges.
type Filter struct {
	engine *implication.Engine
}

// NewFilter returns a filter that judges implication with engine.
func NewFilter(engine *implication.Engine) *Filter {
	if engine == nil {
		engine = implication.Default()
	}
	return &Filter{engine: engine}
}

// Default returns a filter over the built-in composition table.
func Default() *Filter {
	return NewFilter(nil)
}

// Engine exposes the implication engine the filter uses.
func (f *Filter) Engine() *implication.Engine {
	return f.engine
}

// FilterHiddenComponents returns a new diagram with the same id and type that
// keeps showing nodes and the edges between them. When showImpliedEdges is
// false, edges implied by the remaining structure are dropped as well. The
// input diagram is never modified.
func (f *Filter) FilterHiddenComponents(d *graph.Diagram, claimTrees []*graph.Diagram, showImpliedEdges bool) (*graph.Diagram, error) {
	shown := ShownNodesAndEdges(d)
	if showImpliedEdges {
		return shown, nil
	}

	// Every edge is judged against the same endpoint-filtered snapshot.
	edges := make([]*graph.Edge, 0, len(shown.Edges))
	for _, edge := range shown.Edges {
		implied, err := f.engine.IsEdgeImplied(edge, shown, claimTrees)
		if err != nil {
			return nil, err
		}
		if !implied {
			edges = append(edges, edge)
		}
	}
	return &graph.Diagram{ID: shown.ID, Type: shown.Type, Nodes: shown.Nodes, Edges: edges}, nil
}

// ShownNodesAndEdges keeps nodes whose showing flag is set and edges whose
// endpoints both survive. Node and edge pointers are shared with d.
func ShownNodesAndEdges(d *graph.Diagram) *graph.Diagram {
	nodes := make([]*graph.Node, 0, len(d.Nodes))
	kept := make(map[string]bool, len(d.Nodes))
	for _, node := range d.Nodes {
		if !node.Data.Showing {
			continue
		}
		nodes = append(nodes, node)
		kept[node.ID] = true
	}

	edges := make([]*graph.Edge, 0, len(d.Edges))
	for _, edge := range d.Edges {
		if kept[edge.Source] && kept[edge.Target] {
			edges = append(edges, edge)
		}
	}
	return &graph.Diagram{ID: d.ID, Type: d.Type, Nodes: nodes, Edges: edges}
}

// FilterHiddenComponents filters with the default composition table.
func FilterHiddenComponents(d *graph.Diagram, claimTrees []*graph.Diagram, showImpliedEdges bool) (*graph.Diagram, error) {
	return Default().FilterHiddenComponents(d, claimTrees, showImpliedEdges)
}
