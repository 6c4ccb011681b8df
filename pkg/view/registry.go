package view

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores views by name so applications can wire several template
// sets (web pages, mail, fragments) and pick one at render time.
type Registry struct {
	mu    sync.RWMutex
	views map[string]View
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]View),
	}
}

// Register adds a view under name. Duplicate names return an error.
func (r *Registry) Register(name string, v View) error {
	if v == nil {
		return fmt.Errorf("view: view is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("view: view name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[name]; exists {
		return fmt.Errorf("view: view %q already registered", name)
	}

	r.views[name] = v
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, v View) {
	if err := r.Register(name, v); err != nil {
		panic(err)
	}
}

// Get retrieves a view by name.
func (r *Registry) Get(name string) (View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[name]
	if !ok {
		return nil, fmt.Errorf("view: view %q not found", name)
	}
	return v, nil
}

// Render looks up the named view and renders template with it.
func (r *Registry) Render(name, template string, data any) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return v.Render(template, data)
}

// List returns a sorted list of view names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a view is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.views[name]
	return ok
}
