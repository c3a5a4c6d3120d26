package group

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

func init() {
	mustRegister(Kind{
		Name: TypeMap,
		From: func(src Group, args ConvertArgs) (Group, error) {
			colors := src.Colors()
			names := args.Names
			if names == nil {
				names = make([]string, len(colors))
				for i, c := range colors {
					names[i] = c.Name()
				}
			}
			if len(names) != len(colors) {
				return nil, fmt.Errorf("%w: uneven number of names and colors", colour.ErrInvalidValue)
			}
			entries := make([]Entry, len(colors))
			for i, c := range colors {
				entries[i] = Entry{Key: names[i], Color: c}
			}
			return NewMap(entries, WithInfo(src.Info()))
		},
		Decode: func(data []byte, opts colour.DecodeOptions) (Group, error) {
			return decodeMap(data, opts)
		},
	})
}

// Entry is one key and colour of a Map.
type Entry struct {
	Key   string
	Color colour.Color
}

// Map is an insertion-ordered mapping of keys to colours, used for explicit
// categorical data.
type Map struct {
	base
	keys   []string
	colors map[string]colour.Color
}

// NewMap creates a map from entries, keeping their order. Keys must be
// non-empty and distinct.
func NewMap(entries []Entry, opts ...Option) (*Map, error) {
	m := &Map{
		keys:   make([]string, 0, len(entries)),
		colors: make(map[string]colour.Color, len(entries)),
	}
	for _, e := range entries {
		if err := m.validateEntry(e); err != nil {
			return nil, err
		}
		if _, exists := m.colors[e.Key]; exists {
			return nil, fmt.Errorf("%w: name collision on key %q", colour.ErrInvalidValue, e.Key)
		}
		m.keys = append(m.keys, e.Key)
		m.colors[e.Key] = e.Color
	}

	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	m.base = b
	return m, nil
}

func (m *Map) validateEntry(e Entry) error {
	if e.Key == "" {
		return fmt.Errorf("%w: map keys must not be empty", colour.ErrInvalidValue)
	}
	if e.Color == nil {
		return fmt.Errorf("%w: color_map values need to be a Color, %q is nil", colour.ErrInvalidType, e.Key)
	}
	return nil
}

func (m *Map) Type() string { return TypeMap }

func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string { return slices.Clone(m.keys) }

// Colors returns the colours in key order.
func (m *Map) Colors() []colour.Color {
	colors := make([]colour.Color, len(m.keys))
	for i, k := range m.keys {
		colors[i] = m.colors[k]
	}
	return colors
}

// Get returns the colour stored under key.
func (m *Map) Get(key string) (colour.Color, bool) {
	c, ok := m.colors[key]
	return c, ok
}

// All returns an iterator over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, colour.Color] {
	return func(yield func(string, colour.Color) bool) {
		for _, k := range m.keys {
			if !yield(k, m.colors[k]) {
				return
			}
		}
	}
}

// Native returns the key to native value mapping.
func (m *Map) Native() any {
	out := make(map[string]any, len(m.keys))
	for k, c := range m.colors {
		out[k] = c.Native()
	}
	return out
}

// With returns a new map with key set to c. An existing key keeps its position.
func (m *Map) With(key string, c colour.Color) (*Map, error) {
	if err := m.validateEntry(Entry{Key: key, Color: c}); err != nil {
		return nil, err
	}
	out := m.clone()
	if _, exists := out.colors[key]; !exists {
		out.keys = append(out.keys, key)
	}
	out.colors[key] = c
	return out, nil
}

// Without returns a new map with key removed.
func (m *Map) Without(key string) (*Map, error) {
	if _, ok := m.colors[key]; !ok {
		return nil, fmt.Errorf("%w: key %q", colour.ErrNotFound, key)
	}
	out := m.clone()
	out.keys = slices.DeleteFunc(out.keys, func(k string) bool { return k == key })
	delete(out.colors, key)
	return out, nil
}

func (m *Map) clone() *Map {
	return &Map{base: m.base, keys: slices.Clone(m.keys), colors: maps.Clone(m.colors)}
}

func (m *Map) ToColorSpace(space string) (Group, error) {
	out := m.clone()
	for k, c := range m.colors {
		converted, err := c.ToColorSpace(space)
		if err != nil {
			return nil, err
		}
		out.colors[k] = converted
	}
	return out, nil
}

func (m *Map) ToPalette() (*Palette, error) {
	return convertTo[*Palette](m, TypePalette, ConvertArgs{})
}

func (m *Map) ToScale(stops []float64) (*Scale, error) {
	return convertTo[*Scale](m, TypeScale, ConvertArgs{Stops: stops})
}

// ToMap returns the map itself. Names are ignored, as with any conversion
// to a group's own type.
func (m *Map) ToMap(_ []string) (*Map, error) { return m, nil }

func (m *Map) WithInfo(info colour.Info) (Group, error) {
	b, err := newBase([]Option{WithInfo(info)})
	if err != nil {
		return nil, err
	}
	out := m.clone()
	out.base = b
	return out, nil
}

// Equal compares keys, their order and the colours' native values.
func (m *Map) Equal(other Group) bool {
	o, ok := other.(*Map)
	if !ok || !slices.Equal(m.keys, o.keys) {
		return false
	}
	for k, c := range m.colors {
		if !c.Equal(o.colors[k]) {
			return false
		}
	}
	return true
}

// orderedColors encodes as a JSON object whose keys keep insertion order.
type orderedColors struct {
	keys   []string
	colors map[string]colour.Color
}

func (o orderedColors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.colors[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type mapJSON struct {
	header
	ColorMap orderedColors `json:"color_map"`
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapJSON{header: m.header(TypeMap), ColorMap: orderedColors{keys: m.keys, colors: m.colors}})
}

func decodeMap(data []byte, opts colour.DecodeOptions) (*Map, error) {
	var raw struct {
		header
		ColorMap json.RawMessage `json:"color_map"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse map: %w", colour.ErrInvalidValue, err)
	}
	entries, err := decodeEntries(raw.ColorMap, opts)
	if err != nil {
		return nil, err
	}
	return NewMap(entries, WithInfo(raw.info()))
}

// decodeEntries walks a JSON object token by token so the key order survives.
func decodeEntries(data json.RawMessage, opts colour.DecodeOptions) ([]Entry, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse color_map: %w", colour.ErrInvalidValue, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: color_map must be an object", colour.ErrInvalidValue)
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse color_map: %w", colour.ErrInvalidValue, err)
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: failed to parse color_map[%q]: %w", colour.ErrInvalidValue, key, err)
		}
		c, err := colour.Decode(value, opts)
		if err != nil {
			return nil, fmt.Errorf("color_map[%q]: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Color: c})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: failed to parse color_map: %w", colour.ErrInvalidValue, err)
	}
	return entries, nil
}

func (m *Map) String() string {
	parts := make([]string, len(m.keys))
	for i, k := range m.keys {
		parts[i] = k + ": " + m.colors[k].String()
	}
	return "Map{" + strings.Join(parts, ", ") + "}"
}
