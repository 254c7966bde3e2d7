package topic

import (
	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
)

// CriteriaTable compares a problem's solutions against its criteria. Rows are
// criteria, columns are solutions, and a cell holds the embodies edge from
// the row's criterion to the column's solution when one exists.
type CriteriaTable struct {
	Problem   *graph.Node
	Criteria  []*graph.Node
	Solutions []*graph.Node
	cells     map[cellKey]*graph.Edge
}

type cellKey struct {
	criterion string
	solution  string
}

// Cell returns the edge at (criterion, solution), or nil.
func (t *CriteriaTable) Cell(criterionID, solutionID string) *graph.Edge {
	return t.cells[cellKey{criterionID, solutionID}]
}

// BuildCriteriaTable builds the table for problemNodeID from the root diagram.
func BuildCriteriaTable(problemNodeID string, problem *graph.Diagram) (*CriteriaTable, error) {
	node, err := graph.FindNode(problemNodeID, problem)
	if err != nil {
		return nil, err
	}
	if node.Type != graph.NodeProblem {
		return nil, appErrors.Newf(appErrors.CodeInvalidNodeData, nil, "%s is a %s, not a problem", node.ID, node.Type)
	}

	children, err := graph.Children(node, problem)
	if err != nil {
		return nil, err
	}
	table := &CriteriaTable{Problem: node, cells: make(map[cellKey]*graph.Edge)}
	seen := make(map[string]bool)
	for _, child := range children {
		if seen[child.ID] {
			continue
		}
		seen[child.ID] = true
		switch child.Type {
		case graph.NodeCriterion:
			table.Criteria = append(table.Criteria, child)
		case graph.NodeSolution:
			table.Solutions = append(table.Solutions, child)
		}
	}

	for _, edge := range problem.Edges {
		if edge.Label != graph.RelationEmbodies || !seen[edge.Source] || !seen[edge.Target] {
			continue
		}
		table.cells[cellKey{edge.Source, edge.Target}] = edge
	}
	return table, nil
}

// CriteriaTable builds the table for the problem node the view points at.
func (s *Store) CriteriaTable() (*CriteriaTable, error) {
	state := s.State()
	if state.ActiveTableProblemID == "" {
		return nil, appErrors.New(appErrors.CodeNotFound, "no criteria table is open", nil)
	}
	return BuildCriteriaTable(state.ActiveTableProblemID, state.ProblemDiagram())
}
