package viewport

import (
	"time"

	"topicflow/internal/graph"
)

// Renderer is the part of a renderer the controller drives.
type Renderer interface {
	Viewport() Viewport
	// SetViewport starts a move to v. A zero duration jumps.
	SetViewport(v Viewport, duration time.Duration)
	Dimensions() (width, height float64)
	MinZoom() float64
}

// Controller reads the renderer's viewport once, computes, and writes once.
type Controller struct {
	renderer Renderer
	opts     Options
}

// NewController returns a controller over r.
func NewController(r Renderer, opts Options) *Controller {
	return &Controller{renderer: r, opts: opts}
}

// Options returns the controller's geometry.
func (c *Controller) Options() Options {
	return c.opts
}

// MoveViewportToIncludeNode animates the camera so node is comfortably on screen.
func (c *Controller) MoveViewportToIncludeNode(node *graph.Node) {
	width, height := c.renderer.Dimensions()
	next := ComputeViewportToIncludeNode(node, c.renderer.Viewport(), height, width, c.opts)
	c.renderer.SetViewport(next, c.opts.Duration)
}

// FitViewForNodes frames nodes, which may not have been painted yet.
func (c *Controller) FitViewForNodes(nodes []*graph.Node) {
	width, height := c.renderer.Dimensions()
	next := ComputeFitViewport(nodes, width, height, c.renderer.MinZoom(), c.opts)
	c.renderer.SetViewport(next, 0)
}
