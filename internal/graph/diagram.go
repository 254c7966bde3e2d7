package graph

// Diagram is one graph of nodes and edges. Nodes[0] is the diagram's root
// element: the central problem for the root diagram, the synthesized root
// claim for a claim tree.
type Diagram struct {
	ID    string      `json:"id"`
	Type  DiagramType `json:"type"`
	Nodes []*Node     `json:"nodes"`
	Edges []*Edge     `json:"edges"`
}

// Clone copies the diagram and its slices while sharing node and edge
// pointers. Replace an element with its Clone before mutating it.
func (d *Diagram) Clone() *Diagram {
	return &Diagram{
		ID:    d.ID,
		Type:  d.Type,
		Nodes: append([]*Node(nil), d.Nodes...),
		Edges: append([]*Edge(nil), d.Edges...),
	}
}

// Title returns the label of the diagram's root element.
func (d *Diagram) Title() (string, error) {
	if len(d.Nodes) == 0 {
		return "", invalidDiagramError("diagram has no root node", d)
	}
	return d.Nodes[0].Data.Label, nil
}

// ReplaceNode swaps the node with the same id for n. It reports whether a
// node was replaced.
func (d *Diagram) ReplaceNode(n *Node) bool {
	for i, existing := range d.Nodes {
		if existing.ID == n.ID {
			d.Nodes[i] = n
			return true
		}
	}
	return false
}

// ReplaceEdge swaps the edge with the same id for e.
func (d *Diagram) ReplaceEdge(e *Edge) bool {
	for i, existing := range d.Edges {
		if existing.ID == e.ID {
			d.Edges[i] = e
			return true
		}
	}
	return false
}

// Parents returns the nodes on the source side of edges targeting node.
func Parents(node *Node, d *Diagram) ([]*Node, error) {
	var parents []*Node
	for _, edge := range d.Edges {
		if edge.Target != node.ID {
			continue
		}
		parent, err := FindNode(edge.Source, d)
		if err != nil {
			return nil, err
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

// Children returns the nodes on the target side of edges leaving node.
func Children(node *Node, d *Diagram) ([]*Node, error) {
	var children []*Node
	for _, edge := range d.Edges {
		if edge.Source != node.ID {
			continue
		}
		child, err := FindNode(edge.Target, d)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// RelationDirection selects parent-side or child-side neighbors.
type RelationDirection string

const (
	DirectionParent RelationDirection = "parent"
	DirectionChild  RelationDirection = "child"
)

// Neighbors returns the node's neighbors in the given direction.
func Neighbors(node *Node, direction RelationDirection, d *Diagram) ([]*Node, error) {
	if direction == DirectionParent {
		return Parents(node, d)
	}
	return Children(node, d)
}
