package graph

// FindNode returns the node with the given id or a *NotFoundError.
func FindNode(nodeID string, d *Diagram) (*Node, error) {
	for _, node := range d.Nodes {
		if node.ID == nodeID {
			return node, nil
		}
	}
	return nil, notFound("node", nodeID, d)
}

// FindEdge returns the edge with the given id or a *NotFoundError.
func FindEdge(edgeID string, d *Diagram) (*Edge, error) {
	for _, edge := range d.Edges {
		if edge.ID == edgeID {
			return edge, nil
		}
	}
	return nil, notFound("edge", edgeID, d)
}

// FindGraphPart searches nodes then edges.
func FindGraphPart(partID string, d *Diagram) (GraphPart, error) {
	for _, node := range d.Nodes {
		if node.ID == partID {
			return node, nil
		}
	}
	for _, edge := range d.Edges {
		if edge.ID == partID {
			return edge, nil
		}
	}
	return nil, notFound("graph part", partID, d)
}

// FindArguable looks up a node or edge depending on arguableType.
func FindArguable(arguableID string, arguableType ArguableType, d *Diagram) (GraphPart, error) {
	if arguableType == GraphPartNode {
		node, err := FindNode(arguableID, d)
		if err != nil {
			return nil, err
		}
		return node, nil
	}
	edge, err := FindEdge(arguableID, d)
	if err != nil {
		return nil, err
	}
	return edge, nil
}
