package colour

import (
	"encoding/json"
	"fmt"
)

// BaseColor is the representation-free colour: fractional RGB channels in
// [0,1] with an optional alpha. Every other representation converts through it.
type BaseColor struct {
	*canonical
}

func init() {
	mustRegister(Representation{
		Name: SpaceBase,
		FromCanonical: func(c Canonical) (Color, error) {
			core, err := newCanonical(c.R, c.G, c.B, c.options())
			if err != nil {
				return nil, err
			}
			return &BaseColor{canonical: core}, nil
		},
		Decode: func(value json.RawMessage, info Info, precision int) (Color, error) {
			var t Tuple
			if err := json.Unmarshal(value, &t); err != nil {
				return nil, fmt.Errorf("invalid %s value: %w", SpaceBase, err)
			}
			opts := []Option{WithInfo(info), WithPrecision(precision)}
			if alpha, ok := t.Alpha(); ok {
				opts = append(opts, WithAlpha(alpha))
			}
			return NewBaseColor(t.At(0), t.At(1), t.At(2), opts...)
		},
	})
}

// NewBaseColor creates a colour from fractional red, green and blue channels.
func NewBaseColor(r, g, b float64, opts ...Option) (*BaseColor, error) {
	c, err := newCanonical(r, g, b, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return &BaseColor{canonical: c}, nil
}

func (b *BaseColor) Space() string { return SpaceBase }
func (b *BaseColor) Native() any { return b.FractionalRGB() }
func (b *BaseColor) String() string { return "BaseColor" + b.FractionalRGB().String() }

// CSS renders the colour as an rgb() function.
func (b *BaseColor) CSS() string { return "rgb" + b.RGB().String() }

func (b *BaseColor) ToColorSpace(space string) (Color, error) {
	if space == SpaceBase {
		return b, nil
	}
	return convert(b.canonical, space)
}

// ChangeAlpha returns a new colour with alpha replaced.
func (b *BaseColor) ChangeAlpha(alpha float64) (Color, error) {
	o := b.options()
	o.alpha, o.hasAlpha = alpha, true
	c, err := b.with(o)
	if err != nil {
		return nil, err
	}
	return &BaseColor{canonical: c}, nil
}

// WithInfo returns a copy of the colour with new descriptive metadata.
func (b *BaseColor) WithInfo(info Info) (Color, error) {
	o := b.options()
	o.info = info
	c, err := b.with(o)
	if err != nil {
		return nil, err
	}
	return &BaseColor{canonical: c}, nil
}

func (b *BaseColor) Add(other Color) (Color, error) { return add(b, other) }
func (b *BaseColor) Equal(other any) bool { return equalNative(b.Native(), other) }
func (b *BaseColor) Equivalent(other Color) bool { return equivalent(b, other) }
func (b *BaseColor) Hash() uint64 { return hashNative(b.Native()) }
func (b *BaseColor) Dict() (Dict, error) { return dict(b) }
func (b *BaseColor) MarshalJSON() ([]byte, error) { return marshal(b) }
