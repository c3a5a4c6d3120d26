package group

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

func init() {
	mustRegister(Kind{
		Name: TypePalette,
		From: func(src Group, _ ConvertArgs) (Group, error) {
			return NewPalette(src.Colors(), WithInfo(src.Info()))
		},
		Decode: func(data []byte, opts colour.DecodeOptions) (Group, error) {
			return decodePalette(data, opts)
		},
	})
}

// Palette is an ordered, discrete collection of colours used for
// categorical data, themes and branding.
type Palette struct {
	base
	colors []colour.Color
}

// NewPalette creates a palette from colors. Every element must be non-nil.
func NewPalette(colors []colour.Color, opts ...Option) (*Palette, error) {
	if err := validateColors(colors); err != nil {
		return nil, err
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &Palette{base: b, colors: slices.Clone(colors)}, nil
}

func (p *Palette) Type() string { return TypePalette }

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.colors) }

func (p *Palette) Colors() []colour.Color { return slices.Clone(p.colors) }

// Get returns the color at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (colour.Color, error) {
	if index < 0 || index >= len(p.colors) {
		return nil, fmt.Errorf("%w: index out of bounds: %d (palette has %d colors)", colour.ErrNotFound, index, len(p.colors))
	}
	return p.colors[index], nil
}

// All returns an iterator over all colors in the palette.
func (p *Palette) All() iter.Seq2[int, colour.Color] {
	return func(yield func(int, colour.Color) bool) {
		for i, c := range p.colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Native returns the member colours' native values in order.
func (p *Palette) Native() any { return natives(p.colors) }

// Cycle returns a cursor that walks the palette endlessly.
func (p *Palette) Cycle() *Cycler {
	return &Cycler{colors: p.colors}
}

// Reverse returns a new palette with the order of the colors reversed.
func (p *Palette) Reverse() *Palette {
	colors := slices.Clone(p.colors)
	slices.Reverse(colors)
	return &Palette{base: p.base, colors: colors}
}

func (p *Palette) ToColorSpace(space string) (Group, error) {
	colors, err := convertColors(p.colors, space)
	if err != nil {
		return nil, err
	}
	return &Palette{base: p.base, colors: colors}, nil
}

func (p *Palette) ToPalette() (*Palette, error) { return p, nil }

func (p *Palette) ToScale(stops []float64) (*Scale, error) {
	return convertTo[*Scale](p, TypeScale, ConvertArgs{Stops: stops})
}

func (p *Palette) ToMap(names []string) (*Map, error) {
	return convertTo[*Map](p, TypeMap, ConvertArgs{Names: names})
}

func (p *Palette) WithInfo(info colour.Info) (Group, error) {
	return NewPalette(p.colors, WithInfo(info))
}

func (p *Palette) Equal(other Group) bool {
	o, ok := other.(*Palette)
	return ok && nativesEqual(p.colors, o.colors)
}

type paletteJSON struct {
	header
	Colors []colour.Color `json:"colors"`
}

func (p *Palette) MarshalJSON() ([]byte, error) {
	colors := p.colors
	if colors == nil {
		colors = []colour.Color{}
	}
	return json.Marshal(paletteJSON{header: p.header(TypePalette), Colors: colors})
}

func decodePalette(data []byte, opts colour.DecodeOptions) (*Palette, error) {
	var raw struct {
		header
		Colors []json.RawMessage `json:"colors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse palette: %w", colour.ErrInvalidValue, err)
	}
	colors, err := decodeColors(raw.Colors, opts)
	if err != nil {
		return nil, err
	}
	return NewPalette(colors, WithInfo(raw.info()))
}

func (p *Palette) String() string {
	parts := make([]string, len(p.colors))
	for i, c := range p.colors {
		parts[i] = c.String()
	}
	return "Palette(" + strings.Join(parts, ", ") + ")"
}

// Cycler walks a palette cyclically. It is not safe for concurrent use.
type Cycler struct {
	colors []colour.Color
	next   int
}

// Next returns the current colour and advances, wrapping round to the
// start after the last colour. It returns nil for an empty palette.
func (c *Cycler) Next() colour.Color {
	if len(c.colors) == 0 {
		return nil
	}
	current := c.colors[c.next]
	c.next = (c.next + 1) % len(c.colors)
	return current
}

// Reset moves the cursor back to the first colour.
func (c *Cycler) Reset() { c.next = 0 }
