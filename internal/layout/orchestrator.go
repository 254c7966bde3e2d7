package layout

import (
	"context"
	"fmt"

	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
	"topicflow/internal/visibility"
)

// Orchestrator runs a Layouter over the visible part of a diagram.
type Orchestrator struct {
	layouter Layouter
	filter   *visibility.Filter
}

// NewOrchestrator wires a layouter and a visibility filter. A nil filter uses
// the default composition table.
func NewOrchestrator(layouter Layouter, filter *visibility.Filter) *Orchestrator {
	if filter == nil {
		filter = visibility.Default()
	}
	return &Orchestrator{layouter: layouter, filter: filter}
}

// ComputePositions filters d down to its showing nodes and their edges, then
// asks the layouter for positions. Implied edges are still part of the display
// subgraph but are not handed to the layouter. It returns nil without calling
// the layouter when nothing is showing.
func (o *Orchestrator) ComputePositions(ctx context.Context, d *graph.Diagram, claimTrees []*graph.Diagram) ([]LayoutedNode, error) {
	display, err := o.filter.FilterHiddenComponents(d, claimTrees, true)
	if err != nil {
		return nil, err
	}
	if len(display.Nodes) == 0 {
		return nil, nil
	}

	edges := make([]*graph.Edge, 0, len(display.Edges))
	for _, edge := range display.Edges {
		implied, err := o.filter.Engine().IsEdgeImplied(edge, display, claimTrees)
		if err != nil {
			return nil, err
		}
		if !implied {
			edges = append(edges, edge)
		}
	}

	result, err := o.layouter.Layout(ctx, display.Nodes, edges, OrientationFor(d.Type))
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeLayoutFailed, fmt.Sprintf("layout diagram %q", d.ID), err)
	}
	return result.LayoutedNodes, nil
}

// LayoutVisibleComponents lays out d and returns it with positions merged in.
// An empty diagram is returned unchanged.
func (o *Orchestrator) LayoutVisibleComponents(ctx context.Context, d *graph.Diagram, claimTrees []*graph.Diagram) (*graph.Diagram, error) {
	if len(d.Nodes) == 0 {
		return d, nil
	}
	positioned, err := o.ComputePositions(ctx, d, claimTrees)
	if err != nil {
		return nil, err
	}
	return ApplyPositions(d, positioned), nil
}

// ApplyPositions returns a copy of d whose nodes adopt the given positions.
// Nodes without a computed position, and nodes whose position is unchanged,
// are kept as the same pointer; only moved nodes are copied. Edges pass
// through untouched.
func ApplyPositions(d *graph.Diagram, positioned []LayoutedNode) *graph.Diagram {
	byID := make(map[string]graph.Position, len(positioned))
	for _, ln := range positioned {
		byID[ln.ID] = ln.Position
	}

	out := d.Clone()
	for i, node := range out.Nodes {
		pos, ok := byID[node.ID]
		if !ok || pos == node.Position {
			continue
		}
		moved := node.Clone()
		moved.Position = pos
		out.Nodes[i] = moved
	}
	return out
}
