package layout

import (
	"context"
	"sort"

	"topicflow/internal/graph"
)

// Layered is a Sugiyama-style layered layout: nodes are assigned to layers by
// longest path from the sources, ordered within a layer by the barycenter of
// their predecessors, and placed on a grid of fixed-size boxes.
type Layered struct {
	NodeWidth   float64
	NodeHeight  float64
	NodeSpacing float64
	RankSpacing float64
}

// NewLayered returns a layered layout with the default node box and gaps.
func NewLayered() *Layered {
	return &Layered{
		NodeWidth:   150,
		NodeHeight:  66,
		NodeSpacing: 40,
		RankSpacing: 80,
	}
}

// Layout implements Layouter. Node order of the input breaks ties, so equal
// inputs always produce equal positions.
func (l *Layered) Layout(ctx context.Context, nodes []*graph.Node, edges []*graph.Edge, orientation Orientation) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(nodes) == 0 {
		return Result{}, nil
	}

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	outgoing := make([][]int, len(nodes))
	incoming := make([][]int, len(nodes))
	seen := make(map[[2]int]bool)
	for _, e := range edges {
		from, okFrom := index[e.Source]
		to, okTo := index[e.Target]
		// Skip self-loops and edges to nodes outside the layout.
		if !okFrom || !okTo || from == to {
			continue
		}
		key := [2]int{from, to}
		if seen[key] {
			continue
		}
		seen[key] = true
		outgoing[from] = append(outgoing[from], to)
		incoming[to] = append(incoming[to], from)
	}

	layers := assignLayers(len(nodes), outgoing, incoming)
	orderLayers(layers, incoming)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	positions := l.place(layers, orientation)
	result := Result{LayoutedNodes: make([]LayoutedNode, 0, len(nodes))}
	for i, n := range nodes {
		result.LayoutedNodes = append(result.LayoutedNodes, LayoutedNode{ID: n.ID, Position: positions[i]})
	}
	return result, nil
}

// assignLayers puts every node one layer below its deepest predecessor.
// Cycles are broken by promoting the first unvisited node in input order.
func assignLayers(n int, outgoing, incoming [][]int) [][]int {
	inDegree := make([]int, n)
	for i := range incoming {
		inDegree[i] = len(incoming[i])
	}
	layerOf := make([]int, n)
	assigned := make([]bool, n)

	var queue []int
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	processed := 0
	for processed < n {
		if len(queue) == 0 {
			for i := 0; i < n; i++ {
				if !assigned[i] {
					queue = append(queue, i)
					break
				}
			}
		}
		current := queue[0]
		queue = queue[1:]
		if assigned[current] {
			continue
		}

		layer := 0
		for _, pred := range incoming[current] {
			if assigned[pred] && layerOf[pred]+1 > layer {
				layer = layerOf[pred] + 1
			}
		}
		layerOf[current] = layer
		assigned[current] = true
		processed++

		for _, succ := range outgoing[current] {
			inDegree[succ]--
			if inDegree[succ] == 0 && !assigned[succ] {
				queue = append(queue, succ)
			}
		}
	}

	depth := 0
	for _, l := range layerOf {
		if l+1 > depth {
			depth = l + 1
		}
	}
	layers := make([][]int, depth)
	for i := 0; i < n; i++ {
		layers[layerOf[i]] = append(layers[layerOf[i]], i)
	}
	return layers
}

// orderLayers does one top-down barycenter sweep to reduce crossings.
func orderLayers(layers [][]int, incoming [][]int) {
	for li := 1; li < len(layers); li++ {
		above := make(map[int]int, len(layers[li-1]))
		for pos, n := range layers[li-1] {
			above[n] = pos
		}

		layer := layers[li]
		bary := make(map[int]float64, len(layer))
		for pos, n := range layer {
			sum, count := 0.0, 0
			for _, pred := range incoming[n] {
				if p, ok := above[pred]; ok {
					sum += float64(p)
					count++
				}
			}
			if count == 0 {
				bary[n] = float64(pos)
				continue
			}
			bary[n] = sum / float64(count)
		}
		sort.SliceStable(layer, func(i, j int) bool {
			return bary[layer[i]] < bary[layer[j]]
		})
	}
}

// place converts layer/slot pairs into top-left box coordinates, centering
// each layer on the widest one and keeping every coordinate non-negative.
func (l *Layered) place(layers [][]int, orientation Orientation) map[int]graph.Position {
	breadth, depth := l.NodeWidth, l.NodeHeight
	if orientation == OrientationRight {
		breadth, depth = l.NodeHeight, l.NodeWidth
	}

	widest := 0
	for _, layer := range layers {
		if len(layer) > widest {
			widest = len(layer)
		}
	}
	span := func(count int) float64 {
		if count == 0 {
			return 0
		}
		return float64(count)*breadth + float64(count-1)*l.NodeSpacing
	}

	positions := make(map[int]graph.Position)
	for li, layer := range layers {
		offset := (span(widest) - span(len(layer))) / 2
		along := float64(li) * (depth + l.RankSpacing)
		for slot, n := range layer {
			across := offset + float64(slot)*(breadth+l.NodeSpacing)
			if orientation == OrientationRight {
				positions[n] = graph.Position{X: along, Y: across}
			} else {
				positions[n] = graph.Position{X: across, Y: along}
			}
		}
	}
	return positions
}
