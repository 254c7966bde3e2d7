// Package layout positions the visible part of a diagram.
//
// The positioning routine itself is a Layouter: a pure function from nodes,
// edges and an orientation to positions. The Orchestrator decides what a
// Layouter sees and merges its answer back into the full diagram.
package layout

import (
	"context"

	"topicflow/internal/graph"
)

// Orientation is the direction in which layers of the layout grow.
type Orientation string

const (
	OrientationDown  Orientation = "DOWN"
	OrientationRight Orientation = "RIGHT"
)

// OrientationFor returns the orientation for a diagram type: problem diagrams
// grow downward, claim trees grow to the right.
func OrientationFor(t graph.DiagramType) Orientation {
	if t == graph.DiagramClaim {
		return OrientationRight
	}
	return OrientationDown
}

// LayoutedNode is the computed position of one node.
type LayoutedNode struct {
	ID       string
	Position graph.Position
}

// Result is what a Layouter returns.
type Result struct {
	LayoutedNodes []LayoutedNode
}

// Layouter computes positions. Implementations must not modify their inputs.
type Layouter interface {
	Layout(ctx context.Context, nodes []*graph.Node, edges []*graph.Edge, orientation Orientation) (Result, error)
}

// LayouterFunc adapts a function to the Layouter interface.
type LayouterFunc func(ctx context.Context, nodes []*graph.Node, edges []*graph.Edge, orientation Orientation) (Result, error)

// Layout calls f.
func (f LayouterFunc) Layout(ctx context.Context, nodes []*graph.Node, edges []*graph.Edge, orientation Orientation) (Result, error) {
	return f(ctx, nodes, edges, orientation)
}
