package registry

import (
	"github.com/arthur-debert/scaffold/pkg/errors"
)

// Index stores items by name and remembers insertion order
type Index[T any] struct {
	order []string
	items map[string]T
}

// NewIndex creates an empty index
func NewIndex[T any]() *Index[T] {
	return &Index[T]{items: make(map[string]T)}
}

// Register adds an item. A name can only be registered once.
func (r *Index[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "index name cannot be empty")
	}
	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}
	r.items[name] = item
	r.order = append(r.order, name)
	return nil
}

// Get retrieves an item by name
func (r *Index[T]) Get(name string) (T, error) {
	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found", name)
	}
	return item, nil
}

// Has checks if a name is registered
func (r *Index[T]) Has(name string) bool {
	_, exists := r.items[name]
	return exists
}

// Names returns registered names in insertion order
func (r *Index[T]) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Values returns items in insertion order
func (r *Index[T]) Values() []T {
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.items[name])
	}
	return out
}

// Count returns the number of registered items
func (r *Index[T]) Count() int {
	return len(r.order)
}
