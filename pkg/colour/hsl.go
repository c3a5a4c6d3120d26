package colour

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// HSL is a colour written as hue [0,360], saturation [0,1] and lightness
// [0,1] with an optional alpha. It behaves as its tuple through At, Len,
// Values and Contains.
type HSL struct {
	*canonical
	value Tuple
}

func init() {
	mustRegister(Representation{
		Name: SpaceHSL,
		FromCanonical: func(c Canonical) (Color, error) {
			core, err := newCanonical(c.R, c.G, c.B, c.options())
			if err != nil {
				return nil, err
			}
			return &HSL{canonical: core, value: core.HSL()}, nil
		},
		Decode: func(value json.RawMessage, info Info, precision int) (Color, error) {
			var t Tuple
			if err := json.Unmarshal(value, &t); err != nil {
				return nil, fmt.Errorf("invalid %s value: %w", SpaceHSL, err)
			}
			opts := []Option{WithInfo(info), WithPrecision(precision)}
			if alpha, ok := t.Alpha(); ok {
				opts = append(opts, WithAlpha(alpha))
			}
			return NewHSL(t.At(0), t.At(1), t.At(2), opts...)
		},
	})
}

// NewHSL creates a colour from hue [0,360], saturation [0,1] and lightness [0,1].
func NewHSL(h, s, l float64, opts ...Option) (*HSL, error) {
	if err := ValidateHue(h); err != nil {
		return nil, err
	}
	if err := ValidateFraction("saturation", s); err != nil {
		return nil, err
	}
	if err := ValidateFraction("lightness", l); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	hsl := tuple3(h, s, l)
	frgb := HSLToRGB(hsl)
	c, err := newCanonical(frgb.At(0), frgb.At(1), frgb.At(2), o)
	if err != nil {
		return nil, err
	}
	return &HSL{canonical: c, value: hsl.withAlpha(o.alpha, o.hasAlpha)}, nil
}

func (c *HSL) Space() string { return SpaceHSL }
func (c *HSL) Native() any { return c.value }
func (c *HSL) HSL() Tuple { return c.value }
func (c *HSL) String() string { return "HSL" + c.value.String() }

func (c *HSL) Hue() float64 { return c.value.At(0) }
func (c *HSL) Saturation() float64 { return c.value.At(1) }
func (c *HSL) Lightness() float64 { return c.value.At(2) }

// At returns the tuple value at index i.
func (c *HSL) At(i int) float64 { return c.value.At(i) }

// Len returns 3, or 4 when alpha is set.
func (c *HSL) Len() int { return c.value.Len() }

// Values returns a copy of the tuple values.
func (c *HSL) Values() []float64 { return c.value.Values() }

// Contains reports whether v is one of the tuple values.
func (c *HSL) Contains(v float64) bool { return c.value.Contains(v) }

// CSS renders the colour as a space separated hsl() function, e.g.
// "hsl(158 100% 54%)" or "hsl(158 100% 54% / 0.5)".
func (c *HSL) CSS() string {
	alpha := ""
	if a, ok := c.Alpha(); ok {
		alpha = " / " + strconv.FormatFloat(a, 'f', -1, 64)
	}
	return fmt.Sprintf("hsl(%.0f %.0f%% %.0f%%%s)", c.Hue(), c.Saturation()*100, c.Lightness()*100, alpha)
}

func (c *HSL) ToColorSpace(space string) (Color, error) {
	if space == SpaceHSL {
		return c, nil
	}
	return convert(c.canonical, space)
}

// ChangeAlpha returns a new HSL with alpha replaced.
func (c *HSL) ChangeAlpha(alpha float64) (Color, error) {
	o := c.options()
	o.alpha, o.hasAlpha = alpha, true
	core, err := c.with(o)
	if err != nil {
		return nil, err
	}
	return &HSL{canonical: core, value: c.value.withAlpha(alpha, true)}, nil
}

// WithInfo returns a copy of the colour with new descriptive metadata.
func (c *HSL) WithInfo(info Info) (Color, error) {
	o := c.options()
	o.info = info
	core, err := c.with(o)
	if err != nil {
		return nil, err
	}
	return &HSL{canonical: core, value: c.value}, nil
}

// ChangeHue returns a new HSL with the hue [0,360] replaced.
// The name, description and metadata are dropped unless keepInfo is set.
func (c *HSL) ChangeHue(hue float64, keepInfo bool) (*HSL, error) {
	return c.changeHSL(hue, c.Saturation(), c.Lightness(), keepInfo)
}

// ChangeSaturation returns a new HSL with the saturation [0,1] replaced.
func (c *HSL) ChangeSaturation(saturation float64, keepInfo bool) (*HSL, error) {
	return c.changeHSL(c.Hue(), saturation, c.Lightness(), keepInfo)
}

// ChangeLightness returns a new HSL with the lightness [0,1] replaced.
func (c *HSL) ChangeLightness(lightness float64, keepInfo bool) (*HSL, error) {
	return c.changeHSL(c.Hue(), c.Saturation(), lightness, keepInfo)
}

func (c *HSL) changeHSL(h, s, l float64, keepInfo bool) (*HSL, error) {
	opts := []Option{WithPrecision(c.precision)}
	if c.hasAlpha {
		opts = append(opts, WithAlpha(c.alpha))
	}
	if keepInfo {
		opts = append(opts, WithInfo(c.info))
	}
	return NewHSL(h, s, l, opts...)
}

func (c *HSL) Add(other Color) (Color, error) { return add(c, other) }
func (c *HSL) Equal(other any) bool { return equalNative(c.value, other) }
func (c *HSL) Equivalent(other Color) bool { return equivalent(c, other) }
func (c *HSL) Hash() uint64 { return hashNative(c.value) }
func (c *HSL) Dict() (Dict, error) { return dict(c) }
func (c *HSL) MarshalJSON() ([]byte, error) { return marshal(c) }
