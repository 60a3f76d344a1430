package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ruteri/biosdk-services/interfaces"
)

var (
	// ErrNoEngineConfigured is returned for a blank engine identifier. The
	// service refuses to start without an engine.
	ErrNoEngineConfigured = errors.New("no biosdk engine configured")

	// ErrUnknownEngine is returned when no factory is registered under the
	// identifier.
	ErrUnknownEngine = errors.New("unknown biosdk engine")

	// ErrDuplicateEngine is returned when an identifier is registered twice.
	ErrDuplicateEngine = errors.New("biosdk engine already registered")
)

// Factory constructs an engine instance.
type Factory func() (interfaces.BioAPI, error)

// Registry maps engine identifiers to factories and memoizes the instance
// built for each identifier, so that every caller shares one engine.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	instances map[string]interfaces.BioAPI
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]interfaces.BioAPI),
	}
}

// Register adds a factory under id.
func (r *Registry) Register(id string, factory Factory) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNoEngineConfigured
	}
	if factory == nil {
		return fmt.Errorf("nil factory for biosdk engine %q", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEngine, id)
	}
	r.factories[id] = factory
	return nil
}

// Lookup checks that id names a registered engine without constructing it.
func (r *Registry) Lookup(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNoEngineConfigured
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEngine, id)
	}
	return nil
}

// Resolve returns the engine registered under id, constructing it on first
// use. Construction is serialized: concurrent first callers share the one
// instance. A failed construction is not memoized.
func (r *Registry) Resolve(id string) (interfaces.BioAPI, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNoEngineConfigured
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if instance, ok := r.instances[id]; ok {
		return instance, nil
	}

	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, id)
	}

	instance, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to construct biosdk engine %s: %w", id, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("factory for biosdk engine %s returned nil", id)
	}

	r.instances[id] = instance
	return instance, nil
}

// Identifiers returns the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var defaultRegistry = NewRegistry()

// Register adds a factory to the process-wide registry. Engine packages
// call it from init and panic on error, like database/sql drivers.
func Register(id string, factory Factory) {
	if err := defaultRegistry.Register(id, factory); err != nil {
		panic(err)
	}
}

// Lookup checks id against the process-wide registry.
func Lookup(id string) error {
	return defaultRegistry.Lookup(id)
}

// Resolve resolves id against the process-wide registry.
func Resolve(id string) (interfaces.BioAPI, error) {
	return defaultRegistry.Resolve(id)
}

// Identifiers lists the engines of the process-wide registry.
func Identifiers() []string {
	return defaultRegistry.Identifiers()
}
