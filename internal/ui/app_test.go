package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"topicflow/internal/graph"
	"topicflow/internal/topic"
	"topicflow/internal/viewport"
)

func buildNode(t *testing.T, id string, typ graph.NodeType) *graph.Node {
	t.Helper()
	n, err := graph.BuildNode(graph.BuildNodeProps{ID: id, Label: id, Type: typ, DiagramID: graph.RootDiagramID})
	if err != nil {
		t.Fatalf("BuildNode(%s): %v", id, err)
	}
	return n
}

func buildEdge(t *testing.T, id string, parent, child *graph.Node, rel graph.RelationName) *graph.Edge {
	t.Helper()
	e, err := graph.BuildEdge(graph.BuildEdgeProps{ID: id, Parent: parent, Child: child, Relation: rel, DiagramID: graph.RootDiagramID})
	if err != nil {
		t.Fatalf("BuildEdge(%s): %v", id, err)
	}
	return e
}

// testDiagrams: P -solves-> S, S -has-> C, P -solves-> C (implied),
// P -criterionFor-> CR, CR -embodies-> S, P -solves-> S2.
func testDiagrams(t *testing.T) map[string]*graph.Diagram {
	t.Helper()
	p := buildNode(t, "P", graph.NodeProblem)
	s := buildNode(t, "S", graph.NodeSolution)
	c := buildNode(t, "C", graph.NodeSolutionComponent)
	cr := buildNode(t, "CR", graph.NodeCriterion)
	s2 := buildNode(t, "S2", graph.NodeSolution)
	root := &graph.Diagram{
		ID:    graph.RootDiagramID,
		Type:  graph.DiagramProblem,
		Nodes: []*graph.Node{p, s, c, cr, s2},
		Edges: []*graph.Edge{
			buildEdge(t, "P-S", p, s, graph.RelationSolves),
			buildEdge(t, "S-C", s, c, graph.RelationHas),
			buildEdge(t, "P-C", p, c, graph.RelationSolves),
			buildEdge(t, "P-CR", p, cr, graph.RelationCriterionFor),
			buildEdge(t, "CR-S", cr, s, graph.RelationEmbodies),
			buildEdge(t, "P-S2", p, s2, graph.RelationSolves),
		},
	}
	return map[string]*graph.Diagram{graph.RootDiagramID: root}
}

type testApp struct {
	*App
	copied []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, err := topic.NewStore(testDiagrams(t))
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	ta := &testApp{}
	app, err := NewApp(Config{
		Store:         store,
		MinZoom:       0.25,
		SourceName:    "test.json",
		MarkdownStyle: "plain",
		Clipboard: func(s string) error {
			ta.copied = append(ta.copied, s)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewApp returned error: %v", err)
	}
	ta.App = app
	t.Cleanup(app.Close)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if err := store.Relayout(context.Background()); err != nil {
		t.Fatalf("Relayout returned error: %v", err)
	}
	app.Update(layoutDoneMsg{fit: true})
	return ta
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press sends a key and returns the command it produced.
func (ta *testApp) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := ta.Update(msg)
	return cmd
}

// runLayout executes a layout command, or the first command of a batch, and
// feeds the result back.
func (ta *testApp) runLayout(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a layout command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = batch[0]()
	}
	done, ok := msg.(layoutDoneMsg)
	if !ok {
		t.Fatalf("expected layoutDoneMsg, got %T", msg)
	}
	if done.err != nil {
		t.Fatalf("layout failed: %v", done.err)
	}
	ta.Update(done)
}

func (ta *testApp) selectedID() string {
	part, ok := topic.SelectedPart(ta.store.ActiveDiagram())
	if !ok {
		return ""
	}
	return part.PartID()
}

func TestNewAppRequiresStore(t *testing.T) {
	if _, err := NewApp(Config{}); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestTabCyclesSelection(t *testing.T) {
	ta := newTestApp(t)

	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	if got := ta.selectedID(); got != "P" {
		t.Fatalf("expected P selected, got %q", got)
	}
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	if got := ta.selectedID(); got != "S" {
		t.Fatalf("expected S selected, got %q", got)
	}
	ta.press(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := ta.selectedID(); got != "P" {
		t.Fatalf("expected P selected again, got %q", got)
	}

	selected := 0
	for _, n := range ta.store.ActiveDiagram().Nodes {
		if n.Selected {
			selected++
		}
	}
	if selected != 1 {
		t.Fatalf("expected exactly one selected node, got %d", selected)
	}
	if !ta.detailPaneVisible() {
		t.Fatalf("expected detail pane with a selection on a wide window")
	}
}

func TestEnterOpensClaimTreeAndEscapeCloses(t *testing.T) {
	ta := newTestApp(t)

	if cmd := ta.press(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("expected a toast without selection")
	}
	if ta.store.State().CurrentView().Kind != topic.ViewingRoot {
		t.Fatalf("expected root view without selection")
	}

	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	ta.runLayout(t, ta.press(tea.KeyMsg{Type: tea.KeyEnter}))

	view := ta.store.State().CurrentView()
	if view.Kind != topic.ViewingClaimTree || view.DiagramID != "P" {
		t.Fatalf("expected claim tree for P, got %+v", view)
	}
	if out := ansi.Strip(ta.View()); !strings.Contains(out, `Claims: "P" is important`) {
		t.Fatalf("expected claim header in view:\n%s", out)
	}

	ta.press(tea.KeyMsg{Type: tea.KeyEsc})
	if ta.store.State().CurrentView().Kind != topic.ViewingRoot {
		t.Fatalf("expected escape to return to the problem diagram")
	}
}

func TestImpliedToggle(t *testing.T) {
	ta := newTestApp(t)

	ta.press(runeKey('i'))
	if !ta.store.State().ShowImpliedEdges {
		t.Fatalf("expected implied edges shown")
	}
	if ta.toast != "Showing implied edges" {
		t.Fatalf("unexpected toast %q", ta.toast)
	}
	ta.press(runeKey('i'))
	if ta.store.State().ShowImpliedEdges {
		t.Fatalf("expected implied edges hidden again")
	}
}

func TestCopyExportsPaintedDiagram(t *testing.T) {
	ta := newTestApp(t)

	ta.press(runeKey('y'))
	if len(ta.copied) != 1 {
		t.Fatalf("expected one clipboard write, got %d", len(ta.copied))
	}
	out := ta.copied[0]
	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Fatalf("expected top-down flowchart, got:\n%s", out)
	}
	if got := strings.Count(out, "-->|solves|"); got != 2 {
		t.Fatalf("expected implied P-C left out (2 solves edges), got %d:\n%s", got, out)
	}
	if ta.toastIsErr {
		t.Fatalf("unexpected error toast %q", ta.toast)
	}
}

func TestComponentsKeyHidesComponents(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	if ta.selectedID() != "S" {
		t.Fatalf("expected S selected, got %q", ta.selectedID())
	}

	ta.runLayout(t, ta.press(runeKey('c')))
	c, err := graph.FindNode("C", ta.store.State().ProblemDiagram())
	if err != nil {
		t.Fatalf("FindNode returned error: %v", err)
	}
	if c.Data.Showing {
		t.Fatalf("expected component hidden")
	}
	if ta.layoutsInFlight != 0 {
		t.Fatalf("expected no layouts in flight, got %d", ta.layoutsInFlight)
	}
}

func TestNeighborKeyWithoutNeighbors(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})

	ta.press(runeKey('e'))
	if ta.toast != "No effects for this node" {
		t.Fatalf("unexpected toast %q", ta.toast)
	}
}

func TestCriteriaTableKey(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})

	ta.press(runeKey('t'))
	if ta.store.State().CurrentView().Kind != topic.ViewingCriteriaTable {
		t.Fatalf("expected criteria table view")
	}
	out := ansi.Strip(ta.View())
	for _, want := range []string{"Criteria for P", "CR", "S2", "✓"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table view:\n%s", want, out)
		}
	}

	ta.press(tea.KeyMsg{Type: tea.KeyEsc})
	if ta.store.State().CurrentView().Kind != topic.ViewingRoot {
		t.Fatalf("expected escape to close the table")
	}
}

func TestTableKeyOnSolutionShowsError(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	ta.press(tea.KeyMsg{Type: tea.KeyTab})

	ta.press(runeKey('t'))
	if !ta.toastIsErr {
		t.Fatalf("expected error toast for non-problem node")
	}
	if ta.store.State().CurrentView().Kind != topic.ViewingRoot {
		t.Fatalf("expected view unchanged")
	}
}

func TestNodeAddedEventMovesCamera(t *testing.T) {
	ta := newTestApp(t)
	clock := time.Unix(0, 0)
	ta.surface.now = func() time.Time { return clock }
	before := ta.surface.Viewport()

	node := &graph.Node{ID: "far", Position: graph.Position{X: 5000, Y: 5000}}
	width, height := ta.surface.Dimensions()
	want := viewport.ComputeViewportToIncludeNode(node, before, height, width, ta.controller.Options())

	_, cmd := ta.Update(storeEventMsg{event: topic.Event{Kind: topic.EventNodeAdded, Node: node}})
	if cmd == nil {
		t.Fatalf("expected commands after event")
	}
	if !ta.surface.animating() {
		t.Fatalf("expected an animated camera move")
	}

	clock = clock.Add(time.Second)
	ta.Update(animTickMsg{})
	if ta.surface.animating() {
		t.Fatalf("expected the move to finish")
	}
	if got := ta.surface.Viewport(); got != want {
		t.Fatalf("expected viewport %+v, got %+v", want, got)
	}
}

func TestAddKeyAddsChildAndMovesCamera(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	before := len(ta.store.State().ProblemDiagram().Nodes)

	ta.runLayout(t, ta.press(runeKey('a')))
	root := ta.store.State().ProblemDiagram()
	if len(root.Nodes) != before+1 {
		t.Fatalf("expected one node added, got %d nodes", len(root.Nodes))
	}
	added := root.Nodes[len(root.Nodes)-1]
	if added.Type != graph.NodeProblem || added.Data.Label != "New problem" {
		t.Fatalf("expected a new sub-problem, got %+v", added)
	}

	var ev topic.Event
	select {
	case ev = <-ta.events:
	default:
		t.Fatalf("expected a store event for the added node")
	}
	if ev.Kind != topic.EventNodeAdded || ev.Node.ID != added.ID {
		t.Fatalf("unexpected event %+v", ev)
	}
	ta.Update(storeEventMsg{event: ev})
	if ta.layoutsInFlight != 0 {
		t.Fatalf("expected no layouts in flight, got %d", ta.layoutsInFlight)
	}
}

func TestAddKeyUnderComponentShowsToast(t *testing.T) {
	ta := newTestApp(t)
	for range 3 {
		ta.press(tea.KeyMsg{Type: tea.KeyTab})
	}
	if ta.selectedID() != "C" {
		t.Fatalf("expected C selected, got %q", ta.selectedID())
	}
	if cmd := ta.press(runeKey('a')); cmd == nil {
		t.Fatalf("expected a toast")
	}
	if ta.toast != "Nothing can be added under a solutionComponent" {
		t.Fatalf("unexpected toast %q", ta.toast)
	}
}

func TestEnterInsideClaimTreeDoesNotNest(t *testing.T) {
	ta := newTestApp(t)
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	ta.runLayout(t, ta.press(tea.KeyMsg{Type: tea.KeyEnter}))
	ta.press(tea.KeyMsg{Type: tea.KeyTab})
	claims := len(ta.store.ClaimDiagrams())

	ta.press(tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(ta.store.ClaimDiagrams()); got != claims {
		t.Fatalf("expected no nested claim tree, got %d claim trees", got)
	}
	if view := ta.store.State().CurrentView(); view.Kind != topic.ViewingClaimTree || view.DiagramID != "P" {
		t.Fatalf("expected to stay on P's claim tree, got %+v", view)
	}

	ta.press(runeKey('g'))
	if ta.store.State().CurrentView().Kind != topic.ViewingRoot {
		t.Fatalf("expected g to return to the problem diagram")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	ta := newTestApp(t)

	ta.press(runeKey('?'))
	if out := ansi.Strip(ta.View()); !strings.Contains(out, "TOPICFLOW HELP") {
		t.Fatalf("expected help overlay:\n%s", out)
	}
	// Keys other than close are swallowed while help is open.
	ta.press(runeKey('i'))
	if ta.store.State().ShowImpliedEdges {
		t.Fatalf("expected key ignored under help overlay")
	}
	ta.press(tea.KeyMsg{Type: tea.KeyEsc})
	if ta.showHelp {
		t.Fatalf("expected help closed")
	}
}

func TestQuitReleasesSubscription(t *testing.T) {
	ta := newTestApp(t)

	cmd := ta.press(runeKey('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if ta.unsubscribe != nil {
		t.Fatalf("expected subscription released")
	}
	if ta.ctx.Err() == nil {
		t.Fatalf("expected context cancelled")
	}
}

func TestViewShowsHeaderAndFooter(t *testing.T) {
	ta := newTestApp(t)
	out := ansi.Strip(ta.View())
	for _, want := range []string{"TOPICFLOW", "Problem: P", "zoom", "test.json", "Quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
