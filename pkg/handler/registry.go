// Package handler implements the process-wide registry that maps handler
// categories and labels to registered types. Definitions are registered
// during a start-up phase; Freeze makes the registry read-only before the
// first dispatch so concurrent reads never need synchronization.
package handler

import (
	"fmt"

	"github.com/clistack/clistack/pkg/errors"
)

// Type is anything that can live in the registry: it names its category and
// carries a label unique within that category.
type Type interface {
	Category() string
	Label() string
}

// Validator checks a Type at registration time. Categories install one to
// enforce their contract once, before any dispatch.
type Validator func(Type) error

// Registry holds registered types by category, preserving registration order.
type Registry struct {
	frozen     bool
	order      map[string][]Type
	index      map[string]map[string]Type
	validators map[string]Validator
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		order:      make(map[string][]Type),
		index:      make(map[string]map[string]Type),
		validators: make(map[string]Validator),
	}
}

// SetValidator installs the registration-time validator for a category.
func (r *Registry) SetValidator(category string, v Validator) {
	r.validators[category] = v
}

// Register adds a type to the registry. Registering after Freeze, with a
// missing category or label, or with a label already taken is fatal.
func (r *Registry) Register(t Type) error {
	if r.frozen {
		return errors.New(errors.ErrInterface,
			fmt.Sprintf("Cannot register %q: registry is frozen", t.Label()),
			"Register all handlers during start-up, before the first dispatch")
	}
	category, label := t.Category(), t.Label()
	if category == "" || label == "" {
		return errors.New(errors.ErrInterface,
			"Handler types must declare a category and a label",
			"Fill in both fields on the registered type")
	}
	if v, ok := r.validators[category]; ok {
		if err := v(t); err != nil {
			return err
		}
	}
	if _, exists := r.index[category][label]; exists {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Handler %q is already registered under category %q", label, category),
			"Each label may be registered once per category")
	}
	if r.index[category] == nil {
		r.index[category] = make(map[string]Type)
	}
	r.index[category][label] = t
	r.order[category] = append(r.order[category], t)
	return nil
}

// List returns the registered types for a category in registration order.
// The returned slice is a copy.
func (r *Registry) List(category string) []Type {
	src := r.order[category]
	out := make([]Type, len(src))
	copy(out, src)
	return out
}

// Get returns the type registered under category and label.
func (r *Registry) Get(category, label string) (Type, error) {
	t, ok := r.index[category][label]
	if !ok {
		return nil, errors.New(errors.ErrLookup,
			fmt.Sprintf("No handler %q registered under category %q", label, category),
			"Register the handler during start-up, before dispatching")
	}
	return t, nil
}

// Freeze makes the registry immutable. Called once when start-up completes.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// std is the process-wide default registry.
var std = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return std
}
