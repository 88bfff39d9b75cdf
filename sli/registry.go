package sli

import (
	"sort"
	"sync"

	"github.com/kbukum/slikit/errors"
)

// Registry holds declared SLIs by name. Declarations are immutable once
// added; pipelines are built from them at service start.
type Registry struct {
	mu    sync.RWMutex
	decls map[string]*Declaration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]*Declaration)}
}

// Declare registers an SLI. Name and aggregate are required; duplicate
// names are rejected.
func (r *Registry) Declare(d Declaration) error {
	if d.Name == "" {
		return errors.MissingField("name")
	}
	if d.Aggregate == nil {
		return errors.MissingField("aggregate")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decls[d.Name]; exists {
		return errors.AlreadyRegistered(d.Name)
	}
	r.decls[d.Name] = &d
	return nil
}

// Get returns a declaration by name.
func (r *Registry) Get(name string) (*Declaration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	if !ok {
		return nil, errors.NotRegistered("sli", name)
	}
	return d, nil
}

// List returns all declared names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decls))
	for name := range r.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all declarations, sorted by name.
func (r *Registry) All() []*Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Declaration, 0, len(r.decls))
	for _, d := range r.decls {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
