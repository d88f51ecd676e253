package job

import (
	"context"
	"sync"
)

// HandlerFunc is a type-erased worker entry point taking the
// descriptor's positional arguments.
type HandlerFunc func(ctx context.Context, args []any) error

// Definition describes one registered worker type: its entry point and
// the declared parameter names of that entry point in positional order.
// Params exist so the argument formatter can allow-list arguments by
// name; Go cannot enumerate parameter names at runtime, so workers
// declare them at registration.
type Definition struct {
	// Class is the canonical worker type name.
	Class string

	// Params are the entry point's parameter names in positional order.
	Params []string

	// Handler is the entry point. A definition without a handler is not
	// considered invocable.
	Handler HandlerFunc
}

// ParamResolver resolves a worker class name to the declared parameter
// names of its entry point. Lookups are best-effort: a false return
// means the formatter must fail closed and redact.
type ParamResolver interface {
	ParamNames(class string) ([]string, bool)
}

// Registry maps worker class names to definitions. It is the worker type
// registry consumed by the argument formatter and is safe for concurrent
// use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewRegistry creates an empty worker registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
	}
}

// Register adds or replaces a worker definition. Definitions without a
// class name are ignored.
func (r *Registry) Register(def *Definition) {
	if def == nil || def.Class == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Class] = def
}

// Get returns the definition for the given class name.
// Returns false if no worker is registered.
func (r *Registry) Get(class string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[class]

	return def, ok
}

// ParamNames implements ParamResolver. A registered definition without
// an invocable entry point reports false so callers redact.
func (r *Registry) ParamNames(class string) ([]string, bool) {
	def, ok := r.Get(class)
	if !ok || def.Handler == nil {
		return nil, false
	}

	return def.Params, true
}

// Names returns all registered class names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	return names
}
