package ui

import (
	"fmt"
	"strings"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
)

// detailMarkdown describes the selected part for the detail pane.
func (m *App) detailMarkdown(part graph.GraphPart, d *graph.Diagram) string {
	var b strings.Builder
	switch p := part.(type) {
	case *graph.Node:
		fmt.Fprintf(&b, "## %s\n\n", p.Data.Label)
		fmt.Fprintf(&b, "- **Type:** %s\n", p.Type)
	case *graph.Edge:
		if label, err := topic.ImplicitLabel(p.ID, graph.GraphPartEdge, d); err == nil {
			fmt.Fprintf(&b, "## %s\n\n", label)
		} else {
			fmt.Fprintf(&b, "## %s\n\n", p.Label)
		}
		fmt.Fprintf(&b, "- **Relation:** %s\n", p.Label)
	}
	fmt.Fprintf(&b, "- **Score:** %s\n", part.PartScore())
	fmt.Fprintf(&b, "- **Claims:** %d\n", m.store.ExplicitClaimCount(part.PartID()))

	if node, ok := part.(*graph.Node); ok && d.ID == graph.RootDiagramID {
		toggles, err := m.store.NeighborToggles(node.ID)
		if err == nil && len(toggles) > 0 {
			b.WriteString("\n### Neighbors\n\n")
			for _, t := range toggles {
				fmt.Fprintf(&b, "- `%s` %s (%d)\n", neighborKey(m.keys, t.NeighborType), t.Label(), t.Count)
			}
		}
	}
	return b.String()
}

func neighborKey(keys KeyMap, t graph.NodeType) string {
	switch t {
	case graph.NodeEffect:
		return keys.Effects.Help().Key
	case graph.NodeSolutionComponent:
		return keys.Components.Help().Key
	case graph.NodeCriterion:
		return keys.Criteria.Help().Key
	}
	return "?"
}
