package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
)

const sampleTopic = `{
  "diagrams": [
    {
      "id": "root",
      "type": "problem",
      "nodes": [
        {"id": "p", "type": "problem", "label": "Commute is slow"},
        {"id": "s", "type": "solution", "label": "Bike", "score": "6"},
        {"id": "c", "type": "solutionComponent", "label": "Bike lane", "showing": false}
      ],
      "edges": [
        {"id": "p-s", "source": "p", "target": "s", "relation": "solves"},
        {"id": "s-c", "source": "s", "target": "c", "relation": "has"}
      ]
    },
    {
      "id": "s",
      "type": "claim",
      "nodes": [
        {"id": "claim", "type": "rootClaim", "label": "\"Bike\" is important"}
      ],
      "edges": []
    }
  ]
}`

func TestDecodeJSONAppliesDefaults(t *testing.T) {
	topic, err := DecodeJSON([]byte(sampleTopic))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	root := topic[graph.RootDiagramID]
	if root == nil || len(root.Nodes) != 3 || len(root.Edges) != 2 {
		t.Fatalf("unexpected root diagram %+v", root)
	}
	p, _ := graph.FindNode("p", root)
	if !p.Data.Showing || p.Data.Score != graph.ScoreUnset || p.Data.DiagramID != graph.RootDiagramID {
		t.Fatalf("expected defaults on p, got %+v", p.Data)
	}
	c, _ := graph.FindNode("c", root)
	if c.Data.Showing {
		t.Fatalf("expected explicit showing=false kept")
	}
	if topic["s"].Nodes[0].Data.DiagramID != "s" {
		t.Fatalf("expected claim node to belong to its diagram")
	}
}

func TestDecodeJSONRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code appErrors.Code
	}{
		{name: "malformed", doc: `{"diagrams": [`, code: appErrors.CodeParseFailed},
		{name: "unknown field", doc: `{"diagrams": [], "extra": 1}`, code: appErrors.CodeParseFailed},
		{name: "missing root", doc: `{"diagrams": []}`, code: appErrors.CodeInvalidDiagram},
		{
			name: "relation outside vocabulary",
			doc: `{"diagrams": [{"id": "root", "type": "problem",
				"nodes": [{"id": "p", "type": "problem", "label": "p"}, {"id": "e", "type": "effect", "label": "e"}],
				"edges": [{"id": "p-e", "source": "p", "target": "e", "relation": "solves"}]}]}`,
			code: appErrors.CodeInvalidComposition,
		},
		{
			name: "dangling edge",
			doc: `{"diagrams": [{"id": "root", "type": "problem",
				"nodes": [{"id": "p", "type": "problem", "label": "p"}],
				"edges": [{"id": "p-x", "source": "p", "target": "x", "relation": "causes"}]}]}`,
			code: appErrors.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.doc))
			if !appErrors.IsCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestJSONFileSaveThenLoad(t *testing.T) {
	topic, err := DecodeJSON([]byte(sampleTopic))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	topic[graph.RootDiagramID].Nodes[1].Position = graph.Position{X: 12.5, Y: 40}

	file, err := NewJSONFile(filepath.Join(t.TempDir(), "topic.json"))
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}
	if err := file.Save(context.Background(), topic); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := file.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	s, _ := graph.FindNode("s", loaded[graph.RootDiagramID])
	if s.Position != (graph.Position{X: 12.5, Y: 40}) || s.Data.Score != "6" {
		t.Fatalf("unexpected node after reload %+v", s)
	}
	c, _ := graph.FindNode("c", loaded[graph.RootDiagramID])
	if c.Data.Showing {
		t.Fatalf("expected hidden node to stay hidden")
	}
}

func TestJSONFileLoadMissing(t *testing.T) {
	file, err := NewJSONFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewJSONFile returned error: %v", err)
	}
	if _, err := file.Load(context.Background()); !appErrors.IsCode(err, appErrors.CodeStorageFailed) {
		t.Fatalf("expected storage_failed, got %v", err)
	}
	if _, err := NewJSONFile("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSQLiteStoreSaveThenLoad(t *testing.T) {
	topic, err := DecodeJSON([]byte(sampleTopic))
	if err != nil {
		t.Fatalf("DecodeJSON returned error: %v", err)
	}
	topic[graph.RootDiagramID].Nodes[0].Position = graph.Position{X: 3, Y: 4}

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "topic.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, topic); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	// A second save replaces the first.
	if err := store.Save(ctx, topic); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 diagrams, got %d", len(loaded))
	}
	root := loaded[graph.RootDiagramID]
	var order []string
	for _, n := range root.Nodes {
		order = append(order, n.ID)
	}
	if len(order) != 3 || order[0] != "p" || order[1] != "s" || order[2] != "c" {
		t.Fatalf("expected node order preserved, got %v", order)
	}
	if root.Nodes[0].Position != (graph.Position{X: 3, Y: 4}) {
		t.Fatalf("expected position persisted, got %+v", root.Nodes[0].Position)
	}
	if root.Nodes[2].Data.Showing {
		t.Fatalf("expected showing=false persisted")
	}
	if root.Edges[0].Label != graph.RelationSolves || root.Edges[0].Data.DiagramID != graph.RootDiagramID {
		t.Fatalf("unexpected edge %+v", root.Edges[0])
	}
	if loaded["s"].Type != graph.DiagramClaim {
		t.Fatalf("expected claim diagram type, got %s", loaded["s"].Type)
	}
}

func TestSQLiteStoreLoadMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore returned error: %v", err)
	}
	if _, err := store.Load(context.Background()); !appErrors.IsCode(err, appErrors.CodeStorageFailed) {
		t.Fatalf("expected storage_failed, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("read-only load must not create the database")
	}
}

func TestNewTopic(t *testing.T) {
	topic, err := NewTopic("Traffic")
	if err != nil {
		t.Fatalf("NewTopic returned error: %v", err)
	}
	if err := graph.ValidateDiagrams(topic); err != nil {
		t.Fatalf("expected valid topic, got %v", err)
	}
	title, err := topic[graph.RootDiagramID].Title()
	if err != nil || title != "Traffic" {
		t.Fatalf("expected title Traffic, got %q (%v)", title, err)
	}
}
