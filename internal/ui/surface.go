package ui

import (
	"math"
	"time"

	"topicflow/internal/graph"
	"topicflow/internal/viewport"
)

// A terminal cell stands for this many diagram pixels at zoom 1. A stock
// 150x66 node box comes out 15 cells wide and 3 rows tall.
const (
	cellWidthPx  = 10.0
	cellHeightPx = 22.0
)

// surface is the graph area of the screen. It implements viewport.Renderer
// for the controller and converts diagram pixels to cells for painting.
type surface struct {
	vp      viewport.Viewport
	cols    int
	rows    int
	minZoom float64

	// in-flight camera move
	from     viewport.Viewport
	to       viewport.Viewport
	start    time.Time
	duration time.Duration
	now      func() time.Time
}

var _ viewport.Renderer = (*surface)(nil)

func newSurface(minZoom float64) *surface {
	return &surface{
		vp:      viewport.Viewport{Zoom: 1},
		minZoom: minZoom,
		now:     time.Now,
	}
}

func (s *surface) Viewport() viewport.Viewport {
	return s.vp
}

// SetViewport jumps when duration is zero and otherwise starts a move that
// step advances.
func (s *surface) SetViewport(v viewport.Viewport, duration time.Duration) {
	if duration <= 0 {
		s.vp = v
		s.duration = 0
		return
	}
	s.from = s.vp
	s.to = v
	s.start = s.now()
	s.duration = duration
}

func (s *surface) Dimensions() (width, height float64) {
	return float64(s.cols) * cellWidthPx, float64(s.rows) * cellHeightPx
}

func (s *surface) MinZoom() float64 {
	return s.minZoom
}

func (s *surface) resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
}

func (s *surface) animating() bool {
	return s.duration > 0
}

// step moves the camera along the in-flight move and reports whether it is
// still running.
func (s *surface) step() bool {
	if s.duration <= 0 {
		return false
	}
	t := float64(s.now().Sub(s.start)) / float64(s.duration)
	if t >= 1 {
		s.vp = s.to
		s.duration = 0
		return false
	}
	// ease-out cubic
	k := 1 - math.Pow(1-t, 3)
	s.vp = viewport.Viewport{
		X:    s.from.X + (s.to.X-s.from.X)*k,
		Y:    s.from.Y + (s.to.Y-s.from.Y)*k,
		Zoom: s.from.Zoom + (s.to.Zoom-s.from.Zoom)*k,
	}
	return true
}

// pan shifts the camera by whole cells.
func (s *surface) pan(dCols, dRows int) {
	s.duration = 0
	s.vp.X += float64(dCols) * cellWidthPx
	s.vp.Y += float64(dRows) * cellHeightPx
}

// toCell maps a diagram point to the cell under it.
func (s *surface) toCell(p graph.Position) (col, row int) {
	x := p.X*s.vp.Zoom + s.vp.X
	y := p.Y*s.vp.Zoom + s.vp.Y
	return int(math.Floor(x / cellWidthPx)), int(math.Floor(y / cellHeightPx))
}

// boxSize is the node box in cells at the current zoom. Boxes never get
// shorter than a bordered single line.
func (s *surface) boxSize(opts viewport.Options) (cols, rows int) {
	cols = int(math.Round(opts.NodeWidth * s.vp.Zoom / cellWidthPx))
	rows = int(math.Round(opts.NodeHeight * s.vp.Zoom / cellHeightPx))
	return max(cols, 7), max(rows, 3)
}
