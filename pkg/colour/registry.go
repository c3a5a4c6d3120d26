package colour

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
)

// Representation describes how to build one colour representation.
type Representation struct {
	// Name is the representation name used in serialised "type" fields.
	Name string

	// FromCanonical builds the representation from exact canonical state.
	// It must keep the fractional channels untouched so conversions are lossless.
	FromCanonical func(Canonical) (Color, error)

	// Decode builds the representation from its serialised native value.
	Decode func(value json.RawMessage, info Info, precision int) (Color, error)
}

// registry holds every known representation.
var registry = struct {
	sync.RWMutex
	reps map[string]Representation
}{reps: make(map[string]Representation)}

// Register adds a representation to the registry. Registering a name twice is an error.
func Register(rep Representation) error {
	if rep.Name == "" {
		return fmt.Errorf("%w: representation name is required", ErrInvalidValue)
	}
	if rep.FromCanonical == nil || rep.Decode == nil {
		return fmt.Errorf("%w: representation %q needs FromCanonical and Decode", ErrInvalidValue, rep.Name)
	}

	registry.Lock()
	defer registry.Unlock()
	if _, exists := registry.reps[rep.Name]; exists {
		return fmt.Errorf("%w: representation %q is already registered", ErrInvalidValue, rep.Name)
	}
	registry.reps[rep.Name] = rep
	return nil
}

func mustRegister(rep Representation) {
	if err := Register(rep); err != nil {
		panic(err)
	}
}

// Lookup retrieves a representation by name.
func Lookup(name string) (Representation, bool) {
	registry.RLock()
	defer registry.RUnlock()
	rep, ok := registry.reps[name]
	return rep, ok
}

// Spaces returns the sorted names of all registered representations.
func Spaces() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.reps))
	for name := range registry.reps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateSpace checks that name is a registered representation.
func ValidateSpace(name string) error {
	if _, ok := Lookup(name); !ok {
		return fmt.Errorf("%w: color type %q is not in %v", ErrInvalidValue, name, Spaces())
	}
	return nil
}
