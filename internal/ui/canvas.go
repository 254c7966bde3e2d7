package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes the provided block starting at x,y. Newlines are
// normalized so each line begins at column 0 relative to x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.writer.PrintCropAt(x, y, normalizeForCellbuf(content), "")
}

// DrawClippedAt is DrawStringAt for blocks that may start left of or above
// the canvas. Lines and columns falling outside are cut off.
func (c *Canvas) DrawClippedAt(x, y int, content string) {
	if c == nil {
		return
	}
	for i, line := range splitOverlayLines(content) {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= c.height {
			break
		}
		col := x
		if col < 0 {
			width := lipgloss.Width(line)
			if -col >= width {
				continue
			}
			line = ansi.Cut(line, -col, width)
			col = 0
		}
		if col >= c.width || line == "" {
			continue
		}
		c.writer.PrintCropAt(col, row, line, "")
	}
}

// DrawLine plots a straight run of glyph cells from (x0,y0) to (x1,y1),
// skipping cells outside the canvas.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, glyph string) {
	if c == nil || glyph == "" {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < c.width && y0 < c.height {
			c.writer.PrintCropAt(x0, y0, glyph, "")
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// centerOverlay renders the provided overlay centered within the canvas,
// respecting the top/bottom margins so headers/footers remain visible.
func (c *Canvas) centerOverlay(overlay string, topMargin, bottomMargin int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}

	overlayHeight := len(lines)
	overlayWidth := min(maxLineWidth(lines), c.width)
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	usableHeight := max(c.height-topMargin-bottomMargin, overlayHeight)
	startY := topMargin + (usableHeight-overlayHeight)/2
	startY = min(startY, c.height-bottomMargin-overlayHeight)
	startY = max(startY, topMargin, 0)
	startX := max((c.width-overlayWidth)/2, 0)

	c.drawBlockAt(startX, startY, lines)
}

// bottomRightOverlay positions the overlay anchored to the bottom-right corner
// with the provided padding inside the canvas.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	padding = max(padding, 0)
	startY := max(c.height-len(lines)-padding, 0)
	startX := max(c.width-maxLineWidth(lines)-padding, 0)
	c.drawBlockAt(startX, startY, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	x = max(x, 0)
	y = max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func normalizeForCellbuf(content string) string {
	if content == "" {
		return ""
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\n", "\r\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
