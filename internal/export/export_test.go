package export

import (
	"encoding/json"
	"strings"
	"testing"

	"topicflow/internal/graph"
)

func sampleDiagram() *graph.Diagram {
	p := &graph.Node{ID: "p", Type: graph.NodeProblem, Data: graph.NodeData{Label: `Say "hi"`, DiagramID: graph.RootDiagramID, Showing: true}}
	s := &graph.Node{ID: "s", Type: graph.NodeSolution, Data: graph.NodeData{Label: "Wave", DiagramID: graph.RootDiagramID, Showing: true}}
	return &graph.Diagram{
		ID:    graph.RootDiagramID,
		Type:  graph.DiagramProblem,
		Nodes: []*graph.Node{p, s},
		Edges: []*graph.Edge{
			{ID: "p-s", Source: "p", Target: "s", Label: graph.RelationSolves, Data: graph.EdgeData{DiagramID: graph.RootDiagramID}},
			{ID: "p-x", Source: "p", Target: "hidden", Label: graph.RelationSolves, Data: graph.EdgeData{DiagramID: graph.RootDiagramID}},
		},
	}
}

func TestMermaidExportFlowchart(t *testing.T) {
	out, err := NewMermaidExporter().Export(sampleDiagram())
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	for _, want := range []string{
		"flowchart TD\n",
		`    n0{{"Say #quot;hi#quot;"}}`,
		`    n1["Wave"]`,
		"    n0 -->|solves| n1\n",
		"    class n0 problem\n",
		"    class n1 solution\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Count(out, "-->") != 1 {
		t.Fatalf("expected edge to missing node skipped:\n%s", out)
	}
}

func TestMermaidExportClaimTreeRunsLeftToRight(t *testing.T) {
	root := &graph.Node{ID: "c", Type: graph.NodeRootClaim, Data: graph.NodeData{Label: "claim", DiagramID: "x"}}
	out, err := NewMermaidExporter().Export(&graph.Diagram{ID: "x", Type: graph.DiagramClaim, Nodes: []*graph.Node{root}})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if !strings.HasPrefix(out, "flowchart LR\n") || !strings.Contains(out, `n0(("claim"))`) {
		t.Fatalf("unexpected claim export:\n%s", out)
	}
}

func TestJSONExport(t *testing.T) {
	out, err := NewJSONExporter().Export(sampleDiagram())
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	var decoded graph.Diagram
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != graph.RootDiagramID || len(decoded.Nodes) != 2 || decoded.Nodes[0].Data.DiagramID != graph.RootDiagramID {
		t.Fatalf("unexpected decoded diagram %+v", decoded)
	}
}

func TestParseFormatAndNewExporter(t *testing.T) {
	for _, name := range []string{"mermaid", "mmd", "json"} {
		format, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", name, err)
		}
		if _, err := NewExporter(format); err != nil {
			t.Fatalf("NewExporter(%q) returned error: %v", format, err)
		}
	}
	if _, err := ParseFormat("svg"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, err := NewExporter("svg"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
