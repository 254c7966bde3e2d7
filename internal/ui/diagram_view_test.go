package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
)

func TestNodeText(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		score  graph.Score
		width  int
		height int
		want   string
	}{
		{name: "fits", label: "Bike", score: graph.ScoreUnset, width: 13, height: 1, want: "Bike"},
		{name: "score", label: "Bike", score: "7", width: 13, height: 1, want: "Bike 7"},
		{name: "wraps", label: "Ride a bike", width: 6, height: 2, want: "Ride a\nbike"},
		{name: "wrapped lines that fit keep their words", label: "Take the bus to work", width: 8, height: 3, want: "Take the\nbus to\nwork"},
		{name: "empty label", label: " ", score: graph.ScoreUnset, width: 13, height: 1, want: "problem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &graph.Node{Type: graph.NodeProblem, Data: graph.NodeData{Label: tt.label, Score: tt.score}}
			if got := nodeText(n, tt.width, tt.height); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNodeTextCutsOverflow(t *testing.T) {
	n := &graph.Node{Type: graph.NodeSolution, Data: graph.NodeData{Label: "A very long label indeed", Score: graph.ScoreUnset}}
	got := nodeText(n, 8, 1)
	if strings.Contains(got, "\n") {
		t.Fatalf("expected a single line, got %q", got)
	}
	if lipgloss.Width(got) > 8 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected an ellipsized line of at most 8 cells, got %q", got)
	}
}

func TestRenderNodeBoxSize(t *testing.T) {
	n := &graph.Node{Type: graph.NodeCriterion, Data: graph.NodeData{Label: "Cheap", Score: graph.ScoreUnset}}
	box := renderNodeBox(n, 15, 3)
	lines := strings.Split(box, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w != 15 {
			t.Fatalf("expected 15 cells per row, got %d in %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(lines[1]), "Cheap") {
		t.Fatalf("expected label inside box, got %q", ansi.Strip(lines[1]))
	}
}

func TestRenderDiagramPaintsNodesAndRelations(t *testing.T) {
	ta := newTestApp(t)
	d, err := ta.activeFiltered()
	if err != nil {
		t.Fatalf("activeFiltered returned error: %v", err)
	}
	cols, rows := ta.graphSize()
	out := ansi.Strip(ta.renderDiagram(d, cols, rows))
	for _, want := range []string{"S2", "CR", "solves"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q painted:\n%s", want, out)
		}
	}
}

func TestRenderCriteriaTable(t *testing.T) {
	diagrams := testDiagrams(t)
	table, err := topic.BuildCriteriaTable("P", diagrams[graph.RootDiagramID])
	if err != nil {
		t.Fatalf("BuildCriteriaTable returned error: %v", err)
	}
	out := ansi.Strip(renderCriteriaTable(table, 100))
	for _, want := range []string{"Criteria for P", "Criterion", "CR", "S2", "✓"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if strings.Count(out, "✓") != 1 {
		t.Fatalf("expected exactly one embodies mark:\n%s", out)
	}
}

func TestRenderCriteriaTableEmpty(t *testing.T) {
	p := &graph.Node{ID: "P", Type: graph.NodeProblem, Data: graph.NodeData{Label: "Lonely", DiagramID: graph.RootDiagramID}}
	d := &graph.Diagram{ID: graph.RootDiagramID, Type: graph.DiagramProblem, Nodes: []*graph.Node{p}}
	table, err := topic.BuildCriteriaTable("P", d)
	if err != nil {
		t.Fatalf("BuildCriteriaTable returned error: %v", err)
	}
	if out := ansi.Strip(renderCriteriaTable(table, 80)); !strings.Contains(out, "Add criteria and solutions") {
		t.Fatalf("expected empty-state hint:\n%s", out)
	}
}
