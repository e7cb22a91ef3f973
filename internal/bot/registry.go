package bot

import "sync"

// Registry holds registered modules by name.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
	byName  map[string]Module
}

// NewRegistry creates a new module registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make([]Module, 0),
		byName:  make(map[string]Module),
	}
}

// Register adds a module to the registry. A module registered under an
// existing name replaces it.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[m.Name()]; ok {
		for i, existing := range r.modules {
			if existing.Name() == m.Name() {
				r.modules[i] = m
			}
		}
	} else {
		r.modules = append(r.modules, m)
	}
	r.byName[m.Name()] = m
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byName[name]
	return m, ok
}

// Modules returns a snapshot of all registered modules.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make([]Module, len(r.modules))
	copy(result, r.modules)
	return result
}

// Global registry instance for module self-registration via init()
var globalRegistry = NewRegistry()

// Register adds a module to the global registry.
// This is typically called from module init() functions.
func Register(m Module) {
	globalRegistry.Register(m)
}

// ResetGlobalRegistry resets the global registry.
// This is intended for testing purposes only.
func ResetGlobalRegistry() {
	globalRegistry = NewRegistry()
}
