// Package storage reads and writes whole topics as plain data.
//
// A topic is the set of its diagrams keyed by id. Two backends exist: a
// SQLite database and a JSON file. Both validate what they load.
package storage

import (
	"context"
	"sort"

	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
)

// Topic is the diagrams of one topic keyed by diagram id.
type Topic map[string]*graph.Diagram

// Loader reads a topic.
type Loader interface {
	Load(ctx context.Context) (Topic, error)
}

// Saver writes a topic, replacing what was stored before.
type Saver interface {
	Save(ctx context.Context, topic Topic) error
}

// Backend reads and writes topics.
type Backend interface {
	Loader
	Saver
}

// orderedIDs returns the root diagram first, then claim trees by id.
func orderedIDs(topic Topic) []string {
	ids := make([]string, 0, len(topic))
	for id := range topic {
		if id != graph.RootDiagramID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if _, ok := topic[graph.RootDiagramID]; ok {
		ids = append([]string{graph.RootDiagramID}, ids...)
	}
	return ids
}

func storageError(msg string, err error) error {
	return appErrors.Wrap(appErrors.CodeStorageFailed, msg, err)
}

func parseError(msg string, err error) error {
	return appErrors.Wrap(appErrors.CodeParseFailed, msg, err)
}

// NewTopic returns a topic holding a root diagram with one problem node.
func NewTopic(problemLabel string) (Topic, error) {
	problem, err := graph.BuildNode(graph.BuildNodeProps{
		Label:     problemLabel,
		Type:      graph.NodeProblem,
		DiagramID: graph.RootDiagramID,
	})
	if err != nil {
		return nil, err
	}
	return Topic{
		graph.RootDiagramID: {
			ID:    graph.RootDiagramID,
			Type:  graph.DiagramProblem,
			Nodes: []*graph.Node{problem},
			Edges: []*graph.Edge{},
		},
	}, nil
}
