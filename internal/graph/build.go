package graph

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultNodeLabel is used when a node is built without a label.
const DefaultNodeLabel = "new node"

// NewID generates collision-free ids for nodes, edges and diagrams. Tests may
// swap it for a deterministic generator.
var NewID = uuid.NewString

var validate = validator.New()

// BuildNodeProps describes a node to build. ID and Label are optional.
type BuildNodeProps struct {
	ID        string
	Label     string
	Type      NodeType `validate:"required"`
	DiagramID string   `validate:"required"`
	Score     Score
}

// BuildNode assigns defaults: a fresh id, showing=true and a zero position
// that the next layout pass will replace.
func BuildNode(props BuildNodeProps) (*Node, error) {
	if err := validateStruct(props); err != nil {
		return nil, err
	}
	if err := props.Type.Validate(); err != nil {
		return nil, err
	}
	if err := props.Score.Validate(); err != nil {
		return nil, err
	}

	id := props.ID
	if id == "" {
		id = NewID()
	}
	label := props.Label
	if label == "" {
		label = DefaultNodeLabel
	}
	score := props.Score
	if score == "" {
		score = ScoreUnset
	}

	return &Node{
		ID:   id,
		Type: props.Type,
		Data: NodeData{
			Label:     label,
			DiagramID: props.DiagramID,
			Showing:   true,
			Score:     score,
		},
	}, nil
}

// BuildEdgeProps describes an edge from Parent to Child.
type BuildEdgeProps struct {
	ID        string
	Parent    *Node        `validate:"required"`
	Child     *Node        `validate:"required"`
	Relation  RelationName `validate:"required"`
	DiagramID string       `validate:"required"`
}

// BuildEdge rejects relations outside the vocabulary here, at build time,
// rather than leaving them to surface during implication inference.
func BuildEdge(props BuildEdgeProps) (*Edge, error) {
	if err := validateStruct(props); err != nil {
		return nil, err
	}
	if err := ValidateRelation(props.Parent.Type, props.Relation, props.Child.Type); err != nil {
		return nil, err
	}
	if props.Parent.Data.DiagramID != props.DiagramID || props.Child.Data.DiagramID != props.DiagramID {
		return nil, invalidNodeDataError(fmt.Sprintf(
			"edge endpoints must belong to diagram %q (parent in %q, child in %q)",
			props.DiagramID, props.Parent.Data.DiagramID, props.Child.Data.DiagramID,
		), nil)
	}

	id := props.ID
	if id == "" {
		id = NewID()
	}
	return &Edge{
		ID:     id,
		Source: props.Parent.ID,
		Target: props.Child.ID,
		Label:  props.Relation,
		Data: EdgeData{
			DiagramID: props.DiagramID,
			Score:     ScoreUnset,
		},
	}, nil
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return invalidNodeDataError(formatValidationError(err), err)
	}
	return nil
}

func formatValidationError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	var msgs []string
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
