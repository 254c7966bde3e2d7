package topic

import (
	"fmt"

	"topicflow/internal/graph"
)

// ImplicitLabel is the claim every arguable makes just by existing: a node
// claims to be important, an edge claims its relation holds.
func ImplicitLabel(arguableID string, arguableType graph.ArguableType, d *graph.Diagram) (string, error) {
	if arguableType == graph.GraphPartNode {
		node, err := graph.FindNode(arguableID, d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`"%s" is important`, node.Data.Label), nil
	}

	edge, err := graph.FindEdge(arguableID, d)
	if err != nil {
		return "", err
	}
	parent, err := graph.FindNode(edge.Source, d)
	if err != nil {
		return "", err
	}
	child, err := graph.FindNode(edge.Target, d)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%s" %s "%s"`, child.Data.Label, edge.Label, parent.Data.Label), nil
}
