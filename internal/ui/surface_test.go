package ui

import (
	"testing"
	"time"

	"topicflow/internal/graph"
	"topicflow/internal/viewport"
)

func TestSurfaceCellMapping(t *testing.T) {
	s := newSurface(0.25)
	s.resize(80, 20)

	w, h := s.Dimensions()
	if w != 800 || h != 440 {
		t.Fatalf("expected 800x440 px, got %vx%v", w, h)
	}

	tests := []struct {
		name string
		vp   viewport.Viewport
		pos  graph.Position
		col  int
		row  int
	}{
		{name: "origin", vp: viewport.Viewport{Zoom: 1}, pos: graph.Position{}, col: 0, row: 0},
		{name: "one box over", vp: viewport.Viewport{Zoom: 1}, pos: graph.Position{X: 150, Y: 66}, col: 15, row: 3},
		{name: "translated", vp: viewport.Viewport{X: 100, Y: 44, Zoom: 1}, pos: graph.Position{}, col: 10, row: 2},
		{name: "zoomed out", vp: viewport.Viewport{Zoom: 0.5}, pos: graph.Position{X: 200, Y: 88}, col: 10, row: 2},
		{name: "left of screen", vp: viewport.Viewport{Zoom: 1}, pos: graph.Position{X: -5, Y: 0}, col: -1, row: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetViewport(tt.vp, 0)
			col, row := s.toCell(tt.pos)
			if col != tt.col || row != tt.row {
				t.Fatalf("expected (%d,%d), got (%d,%d)", tt.col, tt.row, col, row)
			}
		})
	}
}

func TestSurfaceBoxSize(t *testing.T) {
	s := newSurface(0.25)
	opts := viewport.DefaultOptions()

	if cols, rows := s.boxSize(opts); cols != 15 || rows != 3 {
		t.Fatalf("expected 15x3 at zoom 1, got %dx%d", cols, rows)
	}
	s.SetViewport(viewport.Viewport{Zoom: 0.25}, 0)
	if cols, rows := s.boxSize(opts); cols != 7 || rows != 3 {
		t.Fatalf("expected the minimum 7x3 box, got %dx%d", cols, rows)
	}
}

func TestSurfaceAnimatedMove(t *testing.T) {
	clock := time.Unix(0, 0)
	s := newSurface(0.25)
	s.now = func() time.Time { return clock }

	target := viewport.Viewport{X: 100, Y: -40, Zoom: 1}
	s.SetViewport(target, 400*time.Millisecond)
	if !s.animating() {
		t.Fatalf("expected a move in flight")
	}
	if s.Viewport() != (viewport.Viewport{Zoom: 1}) {
		t.Fatalf("expected the camera to start where it was")
	}

	clock = clock.Add(200 * time.Millisecond)
	if !s.step() {
		t.Fatalf("expected the move to continue halfway")
	}
	mid := s.Viewport()
	if mid.X <= 0 || mid.X >= 100 {
		t.Fatalf("expected X between endpoints, got %v", mid.X)
	}

	clock = clock.Add(time.Second)
	if s.step() {
		t.Fatalf("expected the move to finish")
	}
	if s.Viewport() != target {
		t.Fatalf("expected %+v, got %+v", target, s.Viewport())
	}
}

func TestSurfacePanCancelsMove(t *testing.T) {
	s := newSurface(0.25)
	s.SetViewport(viewport.Viewport{X: 500, Zoom: 1}, time.Second)
	s.pan(2, -1)

	if s.animating() {
		t.Fatalf("expected pan to cancel the move")
	}
	if got := s.Viewport(); got.X != 20 || got.Y != -22 {
		t.Fatalf("expected (20,-22), got (%v,%v)", got.X, got.Y)
	}
}
