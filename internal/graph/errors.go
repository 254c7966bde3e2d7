package graph

import (
	"fmt"

	appErrors "topicflow/internal/errors"
)

// NotFoundError reports a lookup of an id that is absent from the searched
// diagram. It indicates a broken invariant upstream rather than bad user input.
type NotFoundError struct {
	Kind    string
	ID      string
	Diagram *Diagram
}

func (e *NotFoundError) Error() string {
	diagramID := ""
	if e.Diagram != nil {
		diagramID = e.Diagram.ID
	}
	return fmt.Sprintf("%s not found: %s (diagram %q)", e.Kind, e.ID, diagramID)
}

// Unwrap exposes the structured not_found code.
func (e *NotFoundError) Unwrap() error {
	return appErrors.New(appErrors.CodeNotFound, e.Error(), nil)
}

// InvalidCompositionError reports a (parent type, relation, child type) triple
// that is not part of the relation vocabulary.
type InvalidCompositionError struct {
	Parent   NodeType
	Relation RelationName
	Child    NodeType
}

func (e *InvalidCompositionError) Error() string {
	return fmt.Sprintf("invalid relation: %s -%s-> %s", e.Parent, e.Relation, e.Child)
}

// Unwrap exposes the structured invalid_composition code.
func (e *InvalidCompositionError) Unwrap() error {
	return appErrors.New(appErrors.CodeInvalidComposition, e.Error(), nil)
}

func notFound(kind, id string, d *Diagram) error {
	return &NotFoundError{Kind: kind, ID: id, Diagram: d}
}

func invalidDiagramError(reason string, d *Diagram) error {
	if d != nil {
		reason = fmt.Sprintf("diagram %q: %s", d.ID, reason)
	}
	return appErrors.New(appErrors.CodeInvalidDiagram, reason, nil)
}

func invalidNodeDataError(reason string, err error) error {
	return appErrors.New(appErrors.CodeInvalidNodeData, reason, err)
}
