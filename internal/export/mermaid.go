package export

import (
	"fmt"
	"strings"

	"topicflow/internal/graph"
	"topicflow/internal/layout"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export writes a flowchart whose direction follows the diagram's layout
// orientation. Edges pointing at nodes missing from d are skipped, so a
// filtered diagram exports cleanly.
func (e *MermaidExporter) Export(d *graph.Diagram) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}

	var sb strings.Builder
	direction := "TD"
	if layout.OrientationFor(d.Type) == layout.OrientationRight {
		direction = "LR"
	}
	sb.WriteString("flowchart " + direction + "\n")

	nodeIDs := make(map[string]string, len(d.Nodes))
	for i, node := range d.Nodes {
		id := fmt.Sprintf("n%d", i)
		nodeIDs[node.ID] = id
		sb.WriteString(fmt.Sprintf("    %s%s\n", id, shapeFor(node.Type, escapeLabel(node.Data.Label))))
	}

	if len(d.Edges) > 0 {
		sb.WriteString("\n")
	}
	for _, edge := range d.Edges {
		from, ok := nodeIDs[edge.Source]
		if !ok {
			continue
		}
		to, ok := nodeIDs[edge.Target]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", from, edge.Label, to))
	}

	classes := make(map[graph.NodeType][]string)
	var order []graph.NodeType
	for _, node := range d.Nodes {
		if _, seen := classes[node.Type]; !seen {
			order = append(order, node.Type)
		}
		classes[node.Type] = append(classes[node.Type], nodeIDs[node.ID])
	}
	if len(order) > 0 {
		sb.WriteString("\n")
	}
	for _, t := range order {
		sb.WriteString(fmt.Sprintf("    class %s %s\n", strings.Join(classes[t], ","), t))
	}

	return sb.String(), nil
}

func shapeFor(t graph.NodeType, label string) string {
	switch t {
	case graph.NodeProblem:
		return "{{\"" + label + "\"}}"
	case graph.NodeSolutionComponent:
		return "[/\"" + label + "\"/]"
	case graph.NodeCriterion:
		return "([\"" + label + "\"])"
	case graph.NodeEffect:
		return ">\"" + label + "\"]"
	case graph.NodeRootClaim:
		return "((\"" + label + "\"))"
	case graph.NodeSupport:
		return "(\"" + label + "\")"
	case graph.NodeCritique:
		return "[\\\"" + label + "\"\\]"
	default:
		return "[\"" + label + "\"]"
	}
}

func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\"", "#quot;")
	return strings.ReplaceAll(label, "\n", " ")
}

// FileExtension returns the file extension for Mermaid
func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

// FormatName returns the format name
func (e *MermaidExporter) FormatName() string {
	return "Mermaid"
}
