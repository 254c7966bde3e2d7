// Package viewport computes camera moves that keep nodes on screen.
//
// All arithmetic is in diagram pixels. A Viewport maps a diagram point p to
// the screen point p*Zoom + (X, Y).
package viewport

import (
	"math"
	"time"

	"topicflow/internal/graph"
)

// Viewport is the renderer's camera.
type Viewport struct {
	X    float64
	Y    float64
	Zoom float64
}

// Rect is an axis-aligned box in diagram pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Options holds the fixed geometry used by the controller.
type Options struct {
	// Margin is kept between a focused node and the viewport edge, before zoom.
	Margin     float64
	NodeWidth  float64
	NodeHeight float64
	MaxZoom    float64
	// Padding is the fraction of the bounds added around a fitted node set.
	Padding  float64
	Duration time.Duration
}

// DefaultOptions returns the stock node box, margin and animation settings.
func DefaultOptions() Options {
	return Options{
		Margin:     100,
		NodeWidth:  150,
		NodeHeight: 66,
		MaxZoom:    1,
		Padding:    0.1,
		Duration:   500 * time.Millisecond,
	}
}

// ComputeViewportToIncludeNode returns the smallest move of vp that keeps the
// node's box at least the scaled margin away from each viewport edge. An axis
// on which the node already fits is left as is. Zoom never changes.
func ComputeViewportToIncludeNode(node *graph.Node, vp Viewport, viewportHeight, viewportWidth float64, opts Options) Viewport {
	margin := opts.Margin * vp.Zoom
	nodeX := node.Position.X * vp.Zoom
	nodeY := node.Position.Y * vp.Zoom
	nodeW := opts.NodeWidth * vp.Zoom
	nodeH := opts.NodeHeight * vp.Zoom

	return Viewport{
		X:    clampAxis(vp.X, margin-nodeX, viewportWidth-margin-nodeX-nodeW),
		Y:    clampAxis(vp.Y, margin-nodeY, viewportHeight-margin-nodeY-nodeH),
		Zoom: vp.Zoom,
	}
}

// clampAxis moves current into [low, high]. When the node is larger than the
// viewport the bounds cross; low wins so the node's leading edge stays visible.
func clampAxis(current, low, high float64) float64 {
	if current < low {
		return low
	}
	if current > high {
		return high
	}
	return current
}

// RectOfNodes returns the bounding box of the nodes' boxes. The empty set has
// a zero rect.
func RectOfNodes(nodes []*graph.Node, nodeWidth, nodeHeight float64) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxX = math.Max(maxX, n.Position.X+nodeWidth)
		maxY = math.Max(maxY, n.Position.Y+nodeHeight)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// TransformForBounds centers bounds in a width x height viewport at the
// largest zoom that fits bounds plus padding, clamped to [minZoom, maxZoom].
func TransformForBounds(bounds Rect, width, height, minZoom, maxZoom, padding float64) Viewport {
	zoom := maxZoom
	if bounds.Width > 0 && bounds.Height > 0 {
		xZoom := width / (bounds.Width * (1 + padding))
		yZoom := height / (bounds.Height * (1 + padding))
		zoom = math.Min(xZoom, yZoom)
	}
	zoom = math.Max(minZoom, math.Min(maxZoom, zoom))

	centerX := bounds.X + bounds.Width/2
	centerY := bounds.Y + bounds.Height/2
	return Viewport{
		X:    width/2 - centerX*zoom,
		Y:    height/2 - centerY*zoom,
		Zoom: zoom,
	}
}

// ComputeFitViewport frames exactly the given nodes. It relies only on node
// positions and the fixed node box, never on what the renderer has painted.
func ComputeFitViewport(nodes []*graph.Node, viewportWidth, viewportHeight, minZoom float64, opts Options) Viewport {
	bounds := RectOfNodes(nodes, opts.NodeWidth, opts.NodeHeight)
	return TransformForBounds(bounds, viewportWidth, viewportHeight, minZoom, opts.MaxZoom, opts.Padding)
}
