package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"topicflow/internal/graph"
)

// JSONFile keeps a topic in a hand-editable JSON file. Diagram ids are
// implied by nesting, and a node without "showing" is shown.
type JSONFile struct {
	path string
}

// NewJSONFile returns a store for the file at path.
func NewJSONFile(path string) (*JSONFile, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, storageError("open topic file", fmt.Errorf("file path is required"))
	}
	return &JSONFile{path: trimmed}, nil
}

// Path returns the file path.
func (f *JSONFile) Path() string {
	return f.path
}

type fileTopic struct {
	Diagrams []fileDiagram `json:"diagrams"`
}

type fileDiagram struct {
	ID    string     `json:"id"`
	Type  string     `json:"type"`
	Nodes []fileNode `json:"nodes"`
	Edges []fileEdge `json:"edges"`
}

type fileNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Label    string          `json:"label"`
	Showing  *bool           `json:"showing,omitempty"`
	Score    string          `json:"score,omitempty"`
	Position *graph.Position `json:"position,omitempty"`
}

type fileEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
	Score    string `json:"score,omitempty"`
}

// Load reads and validates the topic file.
func (f *JSONFile) Load(ctx context.Context) (Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	//nolint:gosec // G304: path comes from the user's own flags or config
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, storageError("read topic file", err)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a topic document and validates it.
func DecodeJSON(data []byte) (Topic, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc fileTopic
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError("decode topic", err)
	}

	topic := make(Topic, len(doc.Diagrams))
	for _, fd := range doc.Diagrams {
		if _, dup := topic[fd.ID]; dup {
			return nil, parseError("decode topic", fmt.Errorf("duplicate diagram %q", fd.ID))
		}
		d := &graph.Diagram{
			ID:    fd.ID,
			Type:  graph.DiagramType(fd.Type),
			Nodes: make([]*graph.Node, 0, len(fd.Nodes)),
			Edges: make([]*graph.Edge, 0, len(fd.Edges)),
		}
		for _, fn := range fd.Nodes {
			n := &graph.Node{
				ID:   fn.ID,
				Type: graph.NodeType(fn.Type),
				Data: graph.NodeData{
					Label:     fn.Label,
					DiagramID: fd.ID,
					Showing:   fn.Showing == nil || *fn.Showing,
					Score:     scoreOrUnset(graph.Score(fn.Score)),
				},
			}
			if fn.Position != nil {
				n.Position = *fn.Position
			}
			d.Nodes = append(d.Nodes, n)
		}
		for _, fe := range fd.Edges {
			d.Edges = append(d.Edges, &graph.Edge{
				ID:     fe.ID,
				Source: fe.Source,
				Target: fe.Target,
				Label:  graph.RelationName(fe.Relation),
				Data: graph.EdgeData{
					DiagramID: fd.ID,
					Score:     scoreOrUnset(graph.Score(fe.Score)),
				},
			})
		}
		topic[fd.ID] = d
	}

	if err := graph.ValidateDiagrams(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// EncodeJSON renders topic in the file format, root diagram first.
func EncodeJSON(topic Topic) ([]byte, error) {
	doc := fileTopic{Diagrams: make([]fileDiagram, 0, len(topic))}
	for _, id := range orderedIDs(topic) {
		d := topic[id]
		fd := fileDiagram{
			ID:    d.ID,
			Type:  string(d.Type),
			Nodes: make([]fileNode, 0, len(d.Nodes)),
			Edges: make([]fileEdge, 0, len(d.Edges)),
		}
		for _, n := range d.Nodes {
			showing := n.Data.Showing
			pos := n.Position
			fd.Nodes = append(fd.Nodes, fileNode{
				ID:       n.ID,
				Type:     string(n.Type),
				Label:    n.Data.Label,
				Showing:  &showing,
				Score:    string(n.Data.Score),
				Position: &pos,
			})
		}
		for _, e := range d.Edges {
			fd.Edges = append(fd.Edges, fileEdge{
				ID:       e.ID,
				Source:   e.Source,
				Target:   e.Target,
				Relation: string(e.Label),
				Score:    string(e.Data.Score),
			})
		}
		doc.Diagrams = append(doc.Diagrams, fd)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, parseError("encode topic", err)
	}
	return append(data, '\n'), nil
}

// Save validates topic and writes the file.
func (f *JSONFile) Save(ctx context.Context, topic Topic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := graph.ValidateDiagrams(topic); err != nil {
		return err
	}
	data, err := EncodeJSON(topic)
	if err != nil {
		return err
	}
	//nolint:gosec // G306: topic files are user documents
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return storageError("write topic file", err)
	}
	return nil
}
