package theme

import (
	"slices"
	"sync"
)

// Registry holds named palettes in name order plus a cursor on the active one.
// The package-level functions act on a shared Registry the palettes register
// into at init.
type Registry struct {
	mu     sync.RWMutex
	names  []string
	byName map[string]Palette
	active int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Palette), active: -1}
}

var shared = NewRegistry()

// Add stores p under name. The first palette added becomes active.
func (r *Registry) Add(name string, p Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activeName := r.nameLocked()
	if _, dup := r.byName[name]; !dup {
		i, _ := slices.BinarySearch(r.names, name)
		r.names = slices.Insert(r.names, i, name)
	}
	r.byName[name] = p
	if activeName == "" {
		activeName = name
	}
	r.active, _ = slices.BinarySearch(r.names, activeName)
}

// Use activates name, reporting false and leaving the active palette alone
// when nothing is registered under it.
func (r *Registry) Use(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := slices.BinarySearch(r.names, name)
	if ok {
		r.active = i
	}
	return ok
}

// Next activates the palette after the current one, wrapping at the end.
func (r *Registry) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.names) == 0 {
		return ""
	}
	r.active = (r.active + 1) % len(r.names)
	return r.names[r.active]
}

func (r *Registry) Theme() Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Theme{Palette: r.byName[r.nameLocked()]}
}

func (r *Registry) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nameLocked()
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

func (r *Registry) nameLocked() string {
	if r.active < 0 || r.active >= len(r.names) {
		return ""
	}
	return r.names[r.active]
}

func Register(name string, p Palette) { shared.Add(name, p) }
func Set(name string) bool            { return shared.Use(name) }
func Current() Theme                  { return shared.Theme() }
func CurrentName() string             { return shared.Name() }
func Available() []string             { return shared.Names() }
func Cycle() string                   { return shared.Next() }
