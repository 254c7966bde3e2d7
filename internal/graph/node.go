package graph

import "fmt"

// DiagramType distinguishes the root problem diagram from per-arguable claim trees.
type DiagramType string

const (
	DiagramProblem DiagramType = "problem"
	DiagramClaim   DiagramType = "claim"
)

// RootDiagramID identifies the always-present top-level problem diagram.
const RootDiagramID = "root"

// NodeType is the closed set of roles a node can play.
type NodeType string

const (
	NodeProblem           NodeType = "problem"
	NodeSolution          NodeType = "solution"
	NodeSolutionComponent NodeType = "solutionComponent"
	NodeCriterion         NodeType = "criterion"
	NodeEffect            NodeType = "effect"
	NodeRootClaim         NodeType = "rootClaim"
	NodeSupport           NodeType = "support"
	NodeCritique          NodeType = "critique"
)

var validNodeTypes = map[NodeType]struct{}{
	NodeProblem:           {},
	NodeSolution:          {},
	NodeSolutionComponent: {},
	NodeCriterion:         {},
	NodeEffect:            {},
	NodeRootClaim:         {},
	NodeSupport:           {},
	NodeCritique:          {},
}

// Validate ensures the node type is part of the closed role set.
func (t NodeType) Validate() error {
	if _, ok := validNodeTypes[t]; !ok {
		return invalidNodeDataError(fmt.Sprintf("invalid node type: %q", t), nil)
	}
	return nil
}

// IsClaim reports whether the node type only lives inside claim trees.
func (t NodeType) IsClaim() bool {
	return t == NodeRootClaim || t == NodeSupport || t == NodeCritique
}

// Score is a user rating attached to a graph part.
type Score string

// ScoreUnset is the default score of freshly built parts.
const ScoreUnset Score = "-"

var possibleScores = []Score{"-", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// PossibleScores returns the allowed scores in display order.
func PossibleScores() []Score {
	return append([]Score(nil), possibleScores...)
}

// Validate ensures the score is one of the allowed values. Empty is treated as unset.
func (s Score) Validate() error {
	if s == "" {
		return nil
	}
	for _, allowed := range possibleScores {
		if s == allowed {
			return nil
		}
	}
	return invalidNodeDataError(fmt.Sprintf("invalid score: %q", s), nil)
}

// Position is a 2-D coordinate in diagram (px) space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the user-facing payload of a node.
type NodeData struct {
	Label     string `json:"label"`
	DiagramID string `json:"diagramId"`
	Showing   bool   `json:"showing"`
	Score     Score  `json:"score,omitempty"`
}

// Node is a vertex of a diagram. Nodes are treated as immutable once installed
// in a store snapshot; callers copy with Clone before changing a field.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Position Position `json:"position"`
	Selected bool     `json:"selected"`
	Data     NodeData `json:"data"`
}

// Clone returns a shallow copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

func (n *Node) PartID() string          { return n.ID }
func (n *Node) PartType() GraphPartType { return GraphPartNode }
func (n *Node) PartDiagramID() string   { return n.Data.DiagramID }
func (n *Node) PartSelected() bool      { return n.Selected }
func (n *Node) PartScore() Score        { return n.Data.Score }

// EdgeData is the payload of an edge.
type EdgeData struct {
	DiagramID string `json:"diagramId"`
	Score     Score  `json:"score,omitempty"`
}

// Edge is a directed relation. Source is always the parent endpoint and Target
// the child, regardless of how arrows are drawn.
type Edge struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Target   string       `json:"target"`
	Label    RelationName `json:"label"`
	Selected bool         `json:"selected"`
	Data     EdgeData     `json:"data"`
}

// Clone returns a shallow copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}

func (e *Edge) PartID() string          { return e.ID }
func (e *Edge) PartType() GraphPartType { return GraphPartEdge }
func (e *Edge) PartDiagramID() string   { return e.Data.DiagramID }
func (e *Edge) PartSelected() bool      { return e.Selected }
func (e *Edge) PartScore() Score        { return e.Data.Score }

// GraphPartType tags a GraphPart as node or edge. Arguables use the same tags.
type GraphPartType string

const (
	GraphPartNode GraphPartType = "node"
	GraphPartEdge GraphPartType = "edge"
)

// ArguableType is the kind of part a claim tree is attached to.
type ArguableType = GraphPartType

// GraphPart is implemented by *Node and *Edge for code that treats both alike.
type GraphPart interface {
	PartID() string
	PartType() GraphPartType
	PartDiagramID() string
	PartSelected() bool
	PartScore() Score
}
