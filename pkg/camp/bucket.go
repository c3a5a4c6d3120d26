package camp

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

// Named is anything a bucket can hold.
type Named interface {
	Name() string
	String() string
}

// Bucket is a name to object store restricted to one object type. The
// object's own name is its key.
type Bucket[T Named] struct {
	kind  string
	items map[string]T
	order []string
}

func newBucket[T Named](kind string) *Bucket[T] {
	return &Bucket[T]{kind: kind, items: make(map[string]T)}
}

// Kind returns the bucket's directory name, e.g. "colors".
func (b *Bucket[T]) Kind() string { return b.kind }

// Add stores item under its name. Unnamed items are an attribute error and
// names already in use a value error.
func (b *Bucket[T]) Add(item T) error {
	if isNil(item) {
		return fmt.Errorf("%w: can not add nil to the %s bucket", colour.ErrInvalidType, b.kind)
	}
	name := item.Name()
	if name == "" {
		return fmt.Errorf("%w: objects need to have a name to be added to the %s bucket", colour.ErrAttribute, b.kind)
	}
	if _, exists := b.items[name]; exists {
		return fmt.Errorf("%w: name %q is already in use in %s", colour.ErrInvalidValue, name, b.kind)
	}
	b.items[name] = item
	b.order = append(b.order, name)
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Remove deletes the item stored under name.
func (b *Bucket[T]) Remove(name string) error {
	if _, ok := b.items[name]; !ok {
		return fmt.Errorf("%w: name %q is not in %s", colour.ErrNotFound, name, b.kind)
	}
	delete(b.items, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	return nil
}

// Get returns the item stored under name.
func (b *Bucket[T]) Get(name string) (T, bool) {
	item, ok := b.items[name]
	return item, ok
}

// Names returns the item names in insertion order.
func (b *Bucket[T]) Names() []string { return slices.Clone(b.order) }

func (b *Bucket[T]) Len() int { return len(b.order) }

// All returns an iterator over the items in insertion order.
func (b *Bucket[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, name := range b.order {
			if !yield(name, b.items[name]) {
				return
			}
		}
	}
}

func (b *Bucket[T]) String() string {
	return fmt.Sprintf("%s%v", b.kind, b.order)
}
