// Package components keeps the registered component definitions used to
// resolve custom tags during conversion.
package components

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/goliatone/go-richtext/internal/logging"
	"github.com/goliatone/go-richtext/internal/validation"
	"github.com/goliatone/go-richtext/pkg/interfaces"
	"github.com/goliatone/go-richtext/schema"
)

type entry struct {
	component  *schema.Component
	childField *schema.ChildFieldPath
	childErr   error
	props      *validation.Schema
}

// Registry is a thread-safe set of components keyed by tag name. Besides the
// lookup it caches each component's single child field and compiled props
// schema.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  interfaces.Logger
}

// Option customises a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register validates and stores component. Names are case sensitive.
func (r *Registry) Register(component *schema.Component) error {
	if err := ValidateComponent(component); err != nil {
		return err
	}

	props, err := validation.Compile(component.PropsSchema)
	if err != nil {
		return fmt.Errorf("%w: %s props schema: %v", ErrInvalidComponent, component.Name, err)
	}

	childField, childErr := schema.FindSingleChildField(component.Root())
	if childErr != nil {
		r.logger.Warn("richtext.components.ambiguous_child_field",
			"component", component.Name,
			"error", childErr,
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[component.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, component.Name)
	}
	r.entries[component.Name] = &entry{
		component:  component,
		childField: childField,
		childErr:   childErr,
		props:      props,
	}
	r.logger.Debug("richtext.components.registered",
		"component", component.Name,
		"shorthand", childField != nil,
	)
	return nil
}

// RegisterAll registers every component, stopping at the first failure.
func (r *Registry) RegisterAll(components ...*schema.Component) error {
	for _, component := range components {
		if err := r.Register(component); err != nil {
			return err
		}
	}
	return nil
}

// Load registers the components of a JSON definition stream.
func (r *Registry) Load(reader io.Reader) error {
	components, err := schema.DecodeComponents(reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	return r.RegisterAll(components...)
}

// LoadFile registers the components defined in a JSON file.
func (r *Registry) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := r.Load(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Get returns the component registered under name.
func (r *Registry) Get(name string) (*schema.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.component, true
}

// Component implements schema.Lookup.
func (r *Registry) Component(tag string) (*schema.Component, bool) {
	return r.Get(tag)
}

// SingleChildField returns the child field computed at registration. An
// unknown tag yields (nil, nil).
func (r *Registry) SingleChildField(tag string) (*schema.ChildFieldPath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[tag]
	if !ok {
		return nil, nil
	}
	return e.childField, e.childErr
}

// ValidateProps checks props against the component's props schema.
// Components without a schema, and unknown components, always pass.
func (r *Registry) ValidateProps(component string, props map[string]any) error {
	r.mu.RLock()
	e, ok := r.entries[component]
	r.mu.RUnlock()

	if !ok || e.props == nil {
		return nil
	}
	return e.props.Validate(props)
}

// List returns the registered components sorted by name.
func (r *Registry) List() []*schema.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*schema.Component, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.component)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Remove deletes the component if present.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Len reports how many components are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

var _ schema.Lookup = (*Registry)(nil)
