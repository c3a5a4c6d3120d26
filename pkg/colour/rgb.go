package colour

import (
	"encoding/json"
	"fmt"
	"math"
)

// RGB is a colour written as 8-bit red, green and blue channels [0,255]
// with an optional fractional alpha. It behaves as its tuple through At,
// Len, Values and Contains.
type RGB struct {
	*canonical
	value Tuple
}

func init() {
	mustRegister(Representation{
		Name: SpaceRGB,
		FromCanonical: func(c Canonical) (Color, error) {
			core, err := newCanonical(c.R, c.G, c.B, c.options())
			if err != nil {
				return nil, err
			}
			return &RGB{canonical: core, value: core.RGB()}, nil
		},
		Decode: func(value json.RawMessage, info Info, precision int) (Color, error) {
			var t Tuple
			if err := json.Unmarshal(value, &t); err != nil {
				return nil, fmt.Errorf("invalid %s value: %w", SpaceRGB, err)
			}
			var channels [3]int
			for i := range channels {
				v := t.At(i)
				if v != math.Trunc(v) {
					return nil, fmt.Errorf("%w: %s channels must be integers, got %v", ErrInvalidType, SpaceRGB, v)
				}
				channels[i] = int(v)
			}
			opts := []Option{WithInfo(info), WithPrecision(precision)}
			if alpha, ok := t.Alpha(); ok {
				opts = append(opts, WithAlpha(alpha))
			}
			return NewRGB(channels[0], channels[1], channels[2], opts...)
		},
	})
}

// NewRGB creates a colour from 8-bit red, green and blue channels.
func NewRGB(r, g, b int, opts ...Option) (*RGB, error) {
	for i, v := range [3]int{r, g, b} {
		if err := ValidateByte([3]string{"red", "green", "blue"}[i], v); err != nil {
			return nil, err
		}
	}
	o := newOptions(opts)
	c, err := newCanonical(float64(r)/255, float64(g)/255, float64(b)/255, o)
	if err != nil {
		return nil, err
	}
	value := tuple3(float64(r), float64(g), float64(b)).withAlpha(o.alpha, o.hasAlpha)
	return &RGB{canonical: c, value: value}, nil
}

func (c *RGB) Space() string { return SpaceRGB }
func (c *RGB) Native() any { return c.value }
func (c *RGB) RGB() Tuple { return c.value }
func (c *RGB) String() string { return "RGB" + c.value.String() }

// CSS renders the colour as an rgb() function.
func (c *RGB) CSS() string { return "rgb" + c.value.String() }

func (c *RGB) Red() int { return int(c.value.At(0)) }
func (c *RGB) Green() int { return int(c.value.At(1)) }
func (c *RGB) Blue() int { return int(c.value.At(2)) }

// At returns the tuple value at index i.
func (c *RGB) At(i int) float64 { return c.value.At(i) }

// Len returns 3, or 4 when alpha is set.
func (c *RGB) Len() int { return c.value.Len() }

// Values returns a copy of the tuple values.
func (c *RGB) Values() []float64 { return c.value.Values() }

// Contains reports whether v is one of the tuple values.
func (c *RGB) Contains(v float64) bool { return c.value.Contains(v) }

func (c *RGB) ToColorSpace(space string) (Color, error) {
	if space == SpaceRGB {
		return c, nil
	}
	return convert(c.canonical, space)
}

// ChangeAlpha returns a new RGB with alpha replaced.
func (c *RGB) ChangeAlpha(alpha float64) (Color, error) {
	o := c.options()
	o.alpha, o.hasAlpha = alpha, true
	core, err := c.with(o)
	if err != nil {
		return nil, err
	}
	return &RGB{canonical: core, value: c.value.withAlpha(alpha, true)}, nil
}

// WithInfo returns a copy of the colour with new descriptive metadata.
func (c *RGB) WithInfo(info Info) (Color, error) {
	o := c.options()
	o.info = info
	core, err := c.with(o)
	if err != nil {
		return nil, err
	}
	return &RGB{canonical: core, value: c.value}, nil
}

// ChangeRed returns a new RGB with the red channel [0,255] replaced.
// The name, description and metadata are dropped unless keepInfo is set.
func (c *RGB) ChangeRed(red int, keepInfo bool) (*RGB, error) {
	return c.changeRGB(red, c.Green(), c.Blue(), keepInfo)
}

// ChangeGreen returns a new RGB with the green channel [0,255] replaced.
func (c *RGB) ChangeGreen(green int, keepInfo bool) (*RGB, error) {
	return c.changeRGB(c.Red(), green, c.Blue(), keepInfo)
}

// ChangeBlue returns a new RGB with the blue channel [0,255] replaced.
func (c *RGB) ChangeBlue(blue int, keepInfo bool) (*RGB, error) {
	return c.changeRGB(c.Red(), c.Green(), blue, keepInfo)
}

func (c *RGB) changeRGB(r, g, b int, keepInfo bool) (*RGB, error) {
	opts := []Option{WithPrecision(c.precision)}
	if c.hasAlpha {
		opts = append(opts, WithAlpha(c.alpha))
	}
	if keepInfo {
		opts = append(opts, WithInfo(c.info))
	}
	return NewRGB(r, g, b, opts...)
}

func (c *RGB) Add(other Color) (Color, error) { return add(c, other) }
func (c *RGB) Equal(other any) bool { return equalNative(c.value, other) }
func (c *RGB) Equivalent(other Color) bool { return equivalent(c, other) }
func (c *RGB) Hash() uint64 { return hashNative(c.value) }
func (c *RGB) Dict() (Dict, error) { return dict(c) }
func (c *RGB) MarshalJSON() ([]byte, error) { return marshal(c) }
