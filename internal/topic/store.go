package topic

import (
	"context"
	"sync"

	"topicflow/internal/debug"
	appErrors "topicflow/internal/errors"
	"topicflow/internal/graph"
	"topicflow/internal/layout"
	"topicflow/internal/visibility"
)

// Store owns the current State. Every transition duplicates the installed
// state, changes the duplicate, and installs it under the lock in one step.
//
// Each diagram carries a generation that increases whenever its nodes, edges
// or showing flags change. A layout pass remembers the generation it started
// from and its result is dropped if the diagram has moved on in the meantime.
type Store struct {
	mu          sync.Mutex
	state       *State
	generations map[string]uint64

	filter       *visibility.Filter
	orchestrator *layout.Orchestrator

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// Option configures a Store.
type Option func(*Store)

// WithFilter sets the filter used for filtered reads and implication. The
// orchestrator keeps its own filter.
func WithFilter(f *visibility.Filter) Option {
	return func(s *Store) {
		s.filter = f
	}
}

// WithOrchestrator sets the layout orchestrator.
func WithOrchestrator(o *layout.Orchestrator) Option {
	return func(s *Store) {
		s.orchestrator = o
	}
}

// WithShowImpliedEdges sets the initial implied-edge flag.
func WithShowImpliedEdges(show bool) Option {
	return func(s *Store) {
		s.state.ShowImpliedEdges = show
	}
}

// NewStore validates diagrams and returns a store viewing the root diagram.
func NewStore(diagrams map[string]*graph.Diagram, opts ...Option) (*Store, error) {
	if err := graph.ValidateDiagrams(diagrams); err != nil {
		return nil, err
	}
	s := &Store{
		state:       &State{Diagrams: copyDiagrams(diagrams)},
		generations: make(map[string]uint64),
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.filter == nil {
		s.filter = visibility.Default()
	}
	if s.orchestrator == nil {
		s.orchestrator = layout.NewOrchestrator(layout.NewLayered(), s.filter)
	}
	return s, nil
}

func copyDiagrams(diagrams map[string]*graph.Diagram) map[string]*graph.Diagram {
	out := make(map[string]*graph.Diagram, len(diagrams))
	for id, d := range diagrams {
		out[id] = d.Clone()
	}
	return out
}

// State returns the installed snapshot. Callers must treat it as read-only.
func (s *Store) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns the current generation of a diagram.
func (s *Store) Generation(diagramID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[diagramID]
}

// update runs mutate on a duplicate of the installed state and installs it
// unless mutate fails. Diagrams listed in bump get a new generation.
func (s *Store) update(transition string, mutate func(next *State) (bump []string, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.duplicate()
	bump, err := mutate(next)
	if err != nil {
		debug.With("transition", transition).Debugw("transition rejected", "error", err)
		return err
	}
	s.installLocked(transition, next, bump...)
	return nil
}

func (s *Store) installLocked(transition string, next *State, bump ...string) {
	for _, id := range bump {
		s.generations[id]++
	}
	s.state = next
	debug.With(
		"transition", transition,
		"diagram", next.ActiveDiagramID(),
		"generation", s.generations[next.ActiveDiagramID()],
	).Debug("state installed")
}

// layoutDiagram lays out diagramID outside the lock and installs the merged
// positions if the diagram's generation is unchanged. Positions are merged
// into the diagram as installed at that moment, so selection changes made
// while the layout ran survive.
func (s *Store) layoutDiagram(ctx context.Context, transition, diagramID string) error {
	s.mu.Lock()
	d, ok := s.state.Diagrams[diagramID]
	gen := s.generations[diagramID]
	claims := s.state.ClaimDiagrams()
	s.mu.Unlock()
	if !ok {
		return diagramNotFound(diagramID)
	}

	positioned, err := s.orchestrator.ComputePositions(ctx, d, claims)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	log := debug.With("transition", transition, "diagram", diagramID, "generation", gen)
	if current := s.generations[diagramID]; current != gen {
		log.Debugw("stale layout discarded", "current", current)
		return nil
	}
	current, ok := s.state.Diagrams[diagramID]
	if !ok {
		return diagramNotFound(diagramID)
	}
	next := s.state.duplicate()
	next.Diagrams[diagramID] = layout.ApplyPositions(current, positioned)
	s.installLocked(transition, next)
	return nil
}

// exclusiveLayoutAfter is how many times changeAndLayout lays out without the
// lock before it holds the lock for the whole attempt.
const exclusiveLayoutAfter = 3

// changeAndLayout applies change to a copy of the diagram pick names, lays
// the copy out and installs the changed diagram with its positions in one
// step. Nothing is installed when change or the layout fails. If the diagram
// gained a generation while the layout ran, the change is applied again to
// the newer diagram; after exclusiveLayoutAfter such attempts the lock is
// held across the layout so the change always lands.
func (s *Store) changeAndLayout(ctx context.Context, transition string, pick func(*State) string, change func(*graph.Diagram) error) (*graph.Diagram, error) {
	for attempt := 1; ; attempt++ {
		laid, ok, err := s.tryChangeAndLayout(ctx, transition, pick, change, attempt > exclusiveLayoutAfter)
		if err != nil || ok {
			return laid, err
		}
		debug.With("transition", transition, "attempt", attempt).Debug("diagram changed during layout, retrying")
	}
}

func (s *Store) tryChangeAndLayout(ctx context.Context, transition string, pick func(*State) string, change func(*graph.Diagram) error, exclusive bool) (*graph.Diagram, bool, error) {
	s.mu.Lock()
	locked := true
	defer func() {
		if locked {
			s.mu.Unlock()
		}
	}()

	id := pick(s.state)
	d, ok := s.state.Diagrams[id]
	if !ok {
		return nil, false, diagramNotFound(id)
	}
	gen := s.generations[id]
	changed := d.Clone()
	claims := s.state.ClaimDiagrams()
	if !exclusive {
		s.mu.Unlock()
		locked = false
	}

	if err := change(changed); err != nil {
		debug.With("transition", transition).Debugw("transition rejected", "error", err)
		return nil, false, err
	}
	if changed.Type == graph.DiagramClaim {
		claims = replaceDiagram(claims, changed)
	}
	positioned, err := s.orchestrator.ComputePositions(ctx, changed, claims)
	if err != nil {
		return nil, false, err
	}

	if !locked {
		s.mu.Lock()
		locked = true
	}
	if s.generations[id] != gen {
		return nil, false, nil
	}
	current, ok := s.state.Diagrams[id]
	if !ok {
		return nil, false, diagramNotFound(id)
	}
	laid := carrySelection(layout.ApplyPositions(changed, positioned), current)
	next := s.state.duplicate()
	next.Diagrams[id] = laid
	s.installLocked(transition, next, id)
	return laid, true, nil
}

func replaceDiagram(diagrams []*graph.Diagram, d *graph.Diagram) []*graph.Diagram {
	out := make([]*graph.Diagram, len(diagrams))
	for i, existing := range diagrams {
		if existing.ID == d.ID {
			existing = d
		}
		out[i] = existing
	}
	return out
}

// carrySelection copies the selection flags of current onto d. Selection
// changes never bump a generation, so they may have landed during a layout.
func carrySelection(d, current *graph.Diagram) *graph.Diagram {
	selected := make(map[string]bool)
	for _, n := range current.Nodes {
		selected[n.ID] = n.Selected
	}
	for _, e := range current.Edges {
		selected[e.ID] = e.Selected
	}
	for i, n := range d.Nodes {
		if want, ok := selected[n.ID]; ok && want != n.Selected {
			n = n.Clone()
			n.Selected = want
			d.Nodes[i] = n
		}
	}
	for i, e := range d.Edges {
		if want, ok := selected[e.ID]; ok && want != e.Selected {
			e = e.Clone()
			e.Selected = want
			d.Edges[i] = e
		}
	}
	return d
}

func diagramNotFound(id string) error {
	return appErrors.Newf(appErrors.CodeNotFound, nil, "diagram not found: %s", id)
}

// Load replaces every diagram, resets the view to the root diagram, lays the
// root out and publishes EventTopicLoaded. The implied-edge flag is kept.
func (s *Store) Load(ctx context.Context, diagrams map[string]*graph.Diagram) error {
	if err := graph.ValidateDiagrams(diagrams); err != nil {
		return err
	}
	err := s.update("loadTopic", func(next *State) ([]string, error) {
		next.Diagrams = copyDiagrams(diagrams)
		next.ActiveClaimDiagramID = ""
		next.ActiveTableProblemID = ""
		bump := make([]string, 0, len(diagrams))
		for id := range diagrams {
			bump = append(bump, id)
		}
		return bump, nil
	})
	if err != nil {
		return err
	}
	if err := s.layoutDiagram(ctx, "loadTopic", graph.RootDiagramID); err != nil {
		return err
	}
	s.publish(Event{Kind: EventTopicLoaded, Diagram: s.State().ProblemDiagram()})
	return nil
}
