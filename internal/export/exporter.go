// Package export renders a diagram as text in other diagram formats.
package export

import (
	"fmt"

	"topicflow/internal/graph"
)

// Format represents an export format
type Format string

const (
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatJSON exports the diagram model as JSON
	FormatJSON Format = "json"
)

// Exporter converts a diagram to a text format.
type Exporter interface {
	Export(d *graph.Diagram) (string, error)
	FileExtension() string
	FormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats lists every supported format.
func AvailableFormats() []Format {
	return []Format{FormatMermaid, FormatJSON}
}
