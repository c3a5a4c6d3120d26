// Package group provides aggregate colour forms: ordered discrete palettes,
// ordered continuous scales with interpolation stops, and named colour maps.
//
// Groups are immutable. Conversions between group types go through a
// registry keyed by the target type name, so new group types can be added
// without touching the existing ones.
package group

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

// Names of the built-in group types.
const (
	TypePalette = "Palette"
	TypeScale   = "Scale"
	TypeMap     = "Map"
)

// Group is an immutable collection of colours.
type Group interface {
	// Type returns the group type name, e.g. "Palette".
	Type() string

	Name() string
	Description() string
	Metadata() map[string]any
	Info() colour.Info

	// Colors returns the member colours in order. The slice is a copy.
	Colors() []colour.Color
	Len() int

	// Native returns the member colours' native values.
	Native() any

	ToColorSpace(space string) (Group, error)
	ToPalette() (*Palette, error)
	ToScale(stops []float64) (*Scale, error)
	ToMap(names []string) (*Map, error)
	WithInfo(info colour.Info) (Group, error)

	// Equal reports whether other has the same type and the same member
	// native values (and stops or keys). Descriptive metadata is ignored.
	Equal(other Group) bool

	json.Marshaler
	fmt.Stringer
}

// ConvertArgs carries the extra inputs a group conversion may need.
type ConvertArgs struct {
	// Stops are the scale stops; nil selects evenly spaced stops.
	Stops []float64

	// Names are the map keys; nil derives them from the colour names.
	Names []string
}

// Kind describes how to build one group type.
type Kind struct {
	Name string

	// From builds the group type from the colours and info of another group.
	From func(src Group, args ConvertArgs) (Group, error)

	// Decode builds the group type from its JSON dictionary.
	Decode func(data []byte, opts colour.DecodeOptions) (Group, error)
}

var kinds = struct {
	sync.RWMutex
	byName map[string]Kind
}{byName: make(map[string]Kind)}

// Register adds a group type to the registry.
func Register(kind Kind) error {
	if kind.Name == "" || kind.From == nil || kind.Decode == nil {
		return fmt.Errorf("%w: group type needs a name, From and Decode", colour.ErrInvalidValue)
	}

	kinds.Lock()
	defer kinds.Unlock()
	if _, exists := kinds.byName[kind.Name]; exists {
		return fmt.Errorf("%w: group type %q is already registered", colour.ErrInvalidValue, kind.Name)
	}
	kinds.byName[kind.Name] = kind
	return nil
}

func mustRegister(kind Kind) {
	if err := Register(kind); err != nil {
		panic(err)
	}
}

// Lookup retrieves a group type by name.
func Lookup(name string) (Kind, bool) {
	kinds.RLock()
	defer kinds.RUnlock()
	kind, ok := kinds.byName[name]
	return kind, ok
}

// Types returns the sorted names of all registered group types.
func Types() []string {
	kinds.RLock()
	defer kinds.RUnlock()
	names := make([]string, 0, len(kinds.byName))
	for name := range kinds.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Convert turns g into the named group type. Converting to g's own type
// returns g unchanged.
func Convert(g Group, target string, args ConvertArgs) (Group, error) {
	if g.Type() == target {
		return g, nil
	}
	kind, ok := Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: group type %q is not in %v", colour.ErrInvalidValue, target, Types())
	}
	return kind.From(g, args)
}

func convertTo[T Group](g Group, target string, args ConvertArgs) (T, error) {
	var zero T
	out, err := Convert(g, target, args)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s conversion returned %T", colour.ErrInvalidType, target, out)
	}
	return typed, nil
}

// base holds the descriptive metadata shared by every group type.
type base struct {
	info colour.Info
}

func newBase(opts []Option) (base, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.info.Validate(); err != nil {
		return base{}, err
	}
	return base{info: o.info.Clone()}, nil
}

func (b base) Name() string        { return b.info.Name }
func (b base) Description() string { return b.info.Description }

// Metadata returns a copy of the metadata map.
func (b base) Metadata() map[string]any { return b.info.Clone().Metadata }

func (b base) Info() colour.Info { return b.info.Clone() }

// header is the part of the JSON dictionary common to every group type.
type header struct {
	Type        string         `json:"type"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

func (b base) header(kind string) header {
	info := b.info.Clone()
	return header{
		Type:        kind,
		Name:        colour.NullableString(info.Name),
		Description: colour.NullableString(info.Description),
		Metadata:    info.Metadata,
	}
}

func (h header) info() colour.Info {
	return colour.Info{
		Name:        colour.StringValue(h.Name),
		Description: colour.StringValue(h.Description),
		Metadata:    h.Metadata,
	}
}

// validateColors checks that every member is a colour.
func validateColors(colors []colour.Color) error {
	for i, c := range colors {
		if c == nil {
			return fmt.Errorf("%w: colors must be a Color, element %d is nil", colour.ErrInvalidType, i)
		}
	}
	return nil
}

func convertColors(colors []colour.Color, space string) ([]colour.Color, error) {
	out := make([]colour.Color, len(colors))
	for i, c := range colors {
		converted, err := c.ToColorSpace(space)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

func decodeColors(raw []json.RawMessage, opts colour.DecodeOptions) ([]colour.Color, error) {
	colors := make([]colour.Color, len(raw))
	for i, data := range raw {
		c, err := colour.Decode(data, opts)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		colors[i] = c
	}
	return colors, nil
}

func nativesEqual(a, b []colour.Color) bool {
	return slices.EqualFunc(a, b, func(x, y colour.Color) bool { return x.Equal(y) })
}

func natives(colors []colour.Color) []any {
	out := make([]any, len(colors))
	for i, c := range colors {
		out[i] = c.Native()
	}
	return out
}

// Decode parses a JSON group dictionary, dispatching on its "type" field.
func Decode(data []byte, opts colour.DecodeOptions) (Group, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: failed to parse group: %w", colour.ErrInvalidValue, err)
	}
	kind, ok := Lookup(h.Type)
	if !ok {
		return nil, fmt.Errorf("%w: group type %q is not in %v", colour.ErrInvalidValue, h.Type, Types())
	}
	return kind.Decode(data, opts)
}

// DumpJSON writes g to path as indented JSON. An existing file is only
// replaced when overwrite is set.
func DumpJSON(path string, g Group, overwrite bool) error {
	return colour.DumpJSON(path, g, overwrite)
}

// LoadJSON reads a group dictionary from path.
func LoadJSON(path string, opts colour.DecodeOptions) (Group, error) {
	data, err := colour.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}
