package colour

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Dict is the serialised form of a colour:
//
//	{"type": "Hex", "name": "pink", "description": null, "metadata": {}, "value": "#FF15AA"}
type Dict struct {
	Type        string          `json:"type"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Metadata    map[string]any  `json:"metadata"`
	Value       json.RawMessage `json:"value"`
}

// Info returns the dictionary's descriptive metadata.
func (d Dict) Info() Info {
	return Info{
		Name:        StringValue(d.Name),
		Description: StringValue(d.Description),
		Metadata:    d.Metadata,
	}
}

// DecodeOptions controls how serialised colours are rebuilt.
type DecodeOptions struct {
	// Space is the representation to convert to after decoding. Empty keeps
	// the stored representation.
	Space string

	// Precision is the HSL rounding precision. Nil selects DefaultPrecision;
	// zero rounds to whole numbers.
	Precision *int
}

// Places returns a Precision value for DecodeOptions.
func Places(n int) *int { return &n }

func (o DecodeOptions) precision() int {
	if o.Precision == nil {
		return DefaultPrecision
	}
	return *o.Precision
}

// FromDict rebuilds the stored representation from d and converts it to opts.Space.
func FromDict(d Dict, opts DecodeOptions) (Color, error) {
	rep, ok := Lookup(d.Type)
	if !ok {
		return nil, fmt.Errorf("%w: color type %q is not in %v", ErrInvalidValue, d.Type, Spaces())
	}
	c, err := rep.Decode(d.Value, d.Info(), opts.precision())
	if err != nil {
		return nil, err
	}

	space := opts.Space
	if space == "" {
		space = d.Type
	}
	return c.ToColorSpace(space)
}

// Decode parses a JSON colour dictionary.
func Decode(data []byte, opts DecodeOptions) (Color, error) {
	var d Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: failed to parse colour: %w", ErrInvalidValue, err)
	}
	return FromDict(d, opts)
}

// EncodeJSON renders v as indented JSON terminated by a newline. Map keys
// are sorted, so equal values always produce identical bytes.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DumpJSON writes v to path as indented JSON. An existing file is only
// replaced when overwrite is set.
func DumpJSON(path string, v any, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %w: %s", ErrFileExists, fs.ErrExist, path)
	}
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads path, reporting a missing file as ErrNotFound.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller chooses which colour file to read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return bytes.TrimSpace(data), nil
}

// LoadJSON reads a colour dictionary from path.
func LoadJSON(path string, opts DecodeOptions) (Color, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}
