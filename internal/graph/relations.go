package graph

import "fmt"

// RelationName labels an edge.
type RelationName string

const (
	RelationCauses       RelationName = "causes"
	RelationSolves       RelationName = "solves"
	RelationCriterionFor RelationName = "criterionFor"
	RelationEmbodies     RelationName = "embodies"
	RelationHas          RelationName = "has"
	RelationCreatedBy    RelationName = "createdBy"
	RelationSupports     RelationName = "supports"
	RelationCritiques    RelationName = "critiques"
)

// Relation is one allowed (parent type, relation, child type) triple.
type Relation struct {
	Parent NodeType
	Name   RelationName
	Child  NodeType
}

// relations is the closed vocabulary. Edges read "child <name> parent", e.g.
// problem -solves-> solution means the solution solves the problem.
var relations = []Relation{
	{Parent: NodeProblem, Name: RelationCauses, Child: NodeProblem},
	{Parent: NodeProblem, Name: RelationSolves, Child: NodeSolution},
	{Parent: NodeProblem, Name: RelationSolves, Child: NodeSolutionComponent},
	{Parent: NodeProblem, Name: RelationCriterionFor, Child: NodeCriterion},
	{Parent: NodeCriterion, Name: RelationEmbodies, Child: NodeSolution},
	{Parent: NodeCriterion, Name: RelationEmbodies, Child: NodeSolutionComponent},
	{Parent: NodeSolution, Name: RelationHas, Child: NodeSolutionComponent},
	{Parent: NodeProblem, Name: RelationCreatedBy, Child: NodeSolution},
	{Parent: NodeProblem, Name: RelationCreatedBy, Child: NodeSolutionComponent},
	{Parent: NodeEffect, Name: RelationCreatedBy, Child: NodeSolution},
	{Parent: NodeEffect, Name: RelationCreatedBy, Child: NodeSolutionComponent},

	{Parent: NodeRootClaim, Name: RelationSupports, Child: NodeSupport},
	{Parent: NodeRootClaim, Name: RelationCritiques, Child: NodeCritique},
	{Parent: NodeSupport, Name: RelationSupports, Child: NodeSupport},
	{Parent: NodeSupport, Name: RelationCritiques, Child: NodeCritique},
	{Parent: NodeCritique, Name: RelationSupports, Child: NodeSupport},
	{Parent: NodeCritique, Name: RelationCritiques, Child: NodeCritique},
}

// Relations returns a copy of the relation vocabulary.
func Relations() []Relation {
	return append([]Relation(nil), relations...)
}

// ValidateRelation rejects triples outside the vocabulary.
func ValidateRelation(parent NodeType, name RelationName, child NodeType) error {
	for _, r := range relations {
		if r.Parent == parent && r.Name == name && r.Child == child {
			return nil
		}
	}
	return &InvalidCompositionError{Parent: parent, Relation: name, Child: child}
}

// RelationsBetween lists the relation names allowed from parent to child.
func RelationsBetween(parent, child NodeType) []RelationName {
	var names []RelationName
	for _, r := range relations {
		if r.Parent == parent && r.Child == child {
			names = append(names, r.Name)
		}
	}
	return names
}

func isKnownRelationName(name RelationName) bool {
	for _, r := range relations {
		if r.Name == name {
			return true
		}
	}
	return false
}

// CompositionRule says: when parent -Composer-> child exists (the child being
// a part of the parent), a Relation edge between some node X and the child
// implies an Implies edge between X and the parent. Both chain shapes are
// recognized:
//
//	parent -Composer-> child -Relation-> X   implies   parent -Implies-> X
//	X -Relation-> child, parent -Composer-> child   implies   X -Implies-> parent
type CompositionRule struct {
	Composer RelationName `json:"composer" mapstructure:"composer"`
	Parent   NodeType     `json:"parent" mapstructure:"parent"`
	Child    NodeType     `json:"child" mapstructure:"child"`
	Relation RelationName `json:"relation" mapstructure:"relation"`
	Implies  RelationName `json:"implies" mapstructure:"implies"`
}

// Validate checks the rule against the relation vocabulary.
func (r CompositionRule) Validate() error {
	if err := ValidateRelation(r.Parent, r.Composer, r.Child); err != nil {
		return err
	}
	if !isKnownRelationName(r.Relation) {
		return invalidNodeDataError(fmt.Sprintf("composition rule: unknown relation %q", r.Relation), nil)
	}
	if !isKnownRelationName(r.Implies) {
		return invalidNodeDataError(fmt.Sprintf("composition rule: unknown implied relation %q", r.Implies), nil)
	}
	return nil
}

// ComposedNodes returns the targets of node's Composer edges whose type
// matches the rule's child type. Nodes of another type than r.Parent compose
// nothing under this rule.
func (r CompositionRule) ComposedNodes(node *Node, d *Diagram) ([]*Node, error) {
	if node.Type != r.Parent {
		return nil, nil
	}
	var composed []*Node
	for _, edge := range d.Edges {
		if edge.Source != node.ID || edge.Label != r.Composer {
			continue
		}
		target, err := FindNode(edge.Target, d)
		if err != nil {
			return nil, err
		}
		if target.Type == r.Child {
			composed = append(composed, target)
		}
	}
	return composed, nil
}

// CompositionTable is the configurable list of composition rules.
type CompositionTable []CompositionRule

// DefaultCompositions is the built-in table: a solution's components stand in
// for the solution for everything a component can be related to.
func DefaultCompositions() CompositionTable {
	return CompositionTable{
		{Composer: RelationHas, Parent: NodeSolution, Child: NodeSolutionComponent, Relation: RelationSolves, Implies: RelationSolves},
		{Composer: RelationHas, Parent: NodeSolution, Child: NodeSolutionComponent, Relation: RelationEmbodies, Implies: RelationEmbodies},
		{Composer: RelationHas, Parent: NodeSolution, Child: NodeSolutionComponent, Relation: RelationCreatedBy, Implies: RelationCreatedBy},
	}
}

// Validate checks every rule.
func (t CompositionTable) Validate() error {
	for i, rule := range t {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("composition rule %d: %w", i, err)
		}
	}
	return nil
}

// RulesImplying returns the rules whose implied relation is name.
func (t CompositionTable) RulesImplying(name RelationName) []CompositionRule {
	var rules []CompositionRule
	for _, rule := range t {
		if rule.Implies == name {
			rules = append(rules, rule)
		}
	}
	return rules
}

// NodesComposedBy collects, for every distinct composing relation in the
// table, the nodes that node is composed of.
func (t CompositionTable) NodesComposedBy(node *Node, d *Diagram) ([]*Node, error) {
	type composer struct {
		name          RelationName
		parent, child NodeType
	}
	seenComposer := make(map[composer]bool)
	seenNode := make(map[string]bool)
	var composed []*Node
	for _, rule := range t {
		key := composer{rule.Composer, rule.Parent, rule.Child}
		if seenComposer[key] {
			continue
		}
		seenComposer[key] = true

		nodes, err := rule.ComposedNodes(node, d)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			if seenNode[n.ID] {
				continue
			}
			seenNode[n.ID] = true
			composed = append(composed, n)
		}
	}
	return composed, nil
}

// GetNodesComposedBy is NodesComposedBy over the default table.
func GetNodesComposedBy(node *Node, d *Diagram) ([]*Node, error) {
	return DefaultCompositions().NodesComposedBy(node, d)
}
