package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"topicflow/internal/graph"
	"topicflow/internal/layout"
	"topicflow/internal/ui/theme"
)

const edgeGlyph = "·"

// renderDiagram paints d onto a cols x rows canvas: edges first, then node
// boxes over them.
func (m *App) renderDiagram(d *graph.Diagram, cols, rows int) string {
	canvas := NewCanvas(cols, rows)
	canvas.Fill(theme.Current().Background())

	boxW, boxH := m.surface.boxSize(m.controller.Options())
	orientation := layout.OrientationFor(d.Type)

	byID := make(map[string]*graph.Node, len(d.Nodes))
	for _, n := range d.Nodes {
		byID[n.ID] = n
	}

	for _, e := range d.Edges {
		src, ok := byID[e.Source]
		if !ok {
			continue
		}
		dst, ok := byID[e.Target]
		if !ok {
			continue
		}
		x0, y0, x1, y1 := m.edgeAnchors(src, dst, boxW, boxH, orientation)
		glyph := styleEdge().Render(edgeGlyph)
		if e.Selected {
			glyph = styleEdgeSelected().Render(edgeGlyph)
		}
		canvas.DrawLine(x0, y0, x1, y1, glyph)

		label := string(e.Label)
		mx, my := (x0+x1)/2, (y0+y1)/2
		canvas.DrawClippedAt(mx-lipgloss.Width(label)/2, my, styleEdgeLabel().Render(label))
	}

	for _, n := range d.Nodes {
		col, row := m.surface.toCell(n.Position)
		canvas.DrawClippedAt(col, row, renderNodeBox(n, boxW, boxH))
	}
	return canvas.Render()
}

// edgeAnchors joins the parent's outgoing side to the child's incoming side:
// bottom to top for DOWN, right to left for RIGHT.
func (m *App) edgeAnchors(src, dst *graph.Node, boxW, boxH int, orientation layout.Orientation) (x0, y0, x1, y1 int) {
	sc, sr := m.surface.toCell(src.Position)
	dc, dr := m.surface.toCell(dst.Position)
	if orientation == layout.OrientationRight {
		return sc + boxW, sr + boxH/2, dc - 1, dr + boxH/2
	}
	return sc + boxW/2, sr + boxH, dc + boxW/2, dr - 1
}

// renderNodeBox draws a bordered box of exactly boxW x boxH cells.
func renderNodeBox(n *graph.Node, boxW, boxH int) string {
	innerW := max(boxW-2, 1)
	innerH := max(boxH-2, 1)
	return styleNode(n.Type, n.Selected).
		Width(innerW).
		Height(innerH).
		MaxHeight(boxH).
		Render(nodeText(n, innerW, innerH))
}

// nodeText wraps the label into the box and marks the score, if any, on the
// last line. Text that does not fit is cut with an ellipsis.
func nodeText(n *graph.Node, width, height int) string {
	label := strings.TrimSpace(n.Data.Label)
	if label == "" {
		label = string(n.Type)
	}
	lines := strings.Split(wordwrap.String(label, width), "\n")
	for i, line := range lines {
		// wordwrap keeps the space it broke at
		lines[i] = strings.TrimRight(line, " ")
	}
	if len(lines) > height {
		lines = lines[:height]
		last := lines[height-1]
		lines[height-1] = truncate.StringWithTail(last+" …", uint(width), "…")
	}
	for i, line := range lines {
		lines[i] = truncate.StringWithTail(line, uint(width), "…")
	}
	if n.Data.Score != "" && n.Data.Score != graph.ScoreUnset {
		last := len(lines) - 1
		suffix := " " + string(n.Data.Score)
		room := max(width-lipgloss.Width(suffix), 1)
		lines[last] = truncate.StringWithTail(lines[last], uint(room), "…") + suffix
	}
	return strings.Join(lines, "\n")
}
