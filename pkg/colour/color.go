// Package colour models single colours in interchangeable representations
// (hex strings, 8-bit RGB tuples, HSL tuples) over a shared canonical form
// of fractional RGB plus an optional alpha channel.
package colour

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"sync"
)

// Names of the built-in representations.
const (
	SpaceBase = "BaseColor"
	SpaceHex  = "Hex"
	SpaceRGB  = "RGB"
	SpaceHSL  = "HSL"
)

// Equivalence tolerances. Hex and RGB are quantised to 1/255, so anything
// closer than half a step is the same colour.
const (
	byteTolerance    = 1.0 / (255 * 2)
	defaultTolerance = 1e-9
)

// Color is an immutable colour value in one representation.
//
// Every representation derives the others on demand from its canonical
// fractional RGB channels, so conversions never lose information.
type Color interface {
	// Space returns the representation name, e.g. "Hex".
	Space() string

	Name() string
	Description() string
	Metadata() map[string]any
	Info() Info

	// Channels returns the canonical fractional red, green and blue values.
	Channels() (r, g, b float64)
	Alpha() (float64, bool)

	// FractionalRGB returns the canonical channels, followed by alpha when set.
	FractionalRGB() Tuple
	// RGB returns integer channels [0,255], followed by alpha when set.
	RGB() Tuple
	// HSL returns hue [0,360], saturation and lightness [0,1], followed by alpha when set.
	HSL() Tuple
	// Hex returns "#RRGGBB", with two more digits when alpha is set.
	Hex() string

	// Native returns the representation's primitive value: a string for Hex
	// and a Tuple for the others.
	Native() any
	CSS() string

	ToColorSpace(space string) (Color, error)
	ChangeAlpha(alpha float64) (Color, error)
	WithInfo(info Info) (Color, error)
	Add(other Color) (Color, error)

	// Equal reports whether the native primitives are identical.
	Equal(other any) bool
	// Equivalent compares canonical channels across representations.
	Equivalent(other Color) bool
	Hash() uint64

	Dict() (Dict, error)
	json.Marshaler
	fmt.Stringer
}

// Canonical is the representation-independent state of a colour. It is what
// a Representation's FromCanonical factory receives.
type Canonical struct {
	R, G, B   float64
	Alpha     float64
	HasAlpha  bool
	Info      Info
	Precision int
}

func (c Canonical) options() options {
	return options{info: c.Info, alpha: c.Alpha, hasAlpha: c.HasAlpha, precision: c.Precision}
}

// canonical holds the state shared by every representation. Derived values
// are computed at most once.
type canonical struct {
	info      Info
	frac      [3]float64
	alpha     float64
	hasAlpha  bool
	precision int

	rgb func() Tuple
	hsl func() Tuple
	hex func() string
}

func newCanonical(r, g, b float64, o options) (*canonical, error) {
	for i, v := range [3]float64{r, g, b} {
		if err := ValidateFraction([3]string{"red", "green", "blue"}[i], v); err != nil {
			return nil, err
		}
	}
	if o.hasAlpha {
		if err := ValidateFraction("alpha", o.alpha); err != nil {
			return nil, err
		}
	}
	if o.precision < 0 {
		return nil, fmt.Errorf("%w: precision must not be negative", ErrInvalidValue)
	}
	if err := o.info.Validate(); err != nil {
		return nil, err
	}

	c := &canonical{
		info:      o.info.Clone(),
		frac:      [3]float64{r, g, b},
		alpha:     o.alpha,
		hasAlpha:  o.hasAlpha,
		precision: o.precision,
	}
	c.rgb = sync.OnceValue(func() Tuple {
		return tuple3(
			math.RoundToEven(c.frac[0]*255),
			math.RoundToEven(c.frac[1]*255),
			math.RoundToEven(c.frac[2]*255),
		).withAlpha(c.alpha, c.hasAlpha)
	})
	c.hsl = sync.OnceValue(func() Tuple {
		return RGBToHSL(c.FractionalRGB(), c.precision)
	})
	c.hex = sync.OnceValue(func() string {
		return RGBToHex(c.rgb())
	})
	return c, nil
}

// with rebuilds the canonical state with different options.
func (c *canonical) with(o options) (*canonical, error) {
	return newCanonical(c.frac[0], c.frac[1], c.frac[2], o)
}

func (c *canonical) options() options {
	return options{info: c.info, alpha: c.alpha, hasAlpha: c.hasAlpha, precision: c.precision}
}

func (c *canonical) export() Canonical {
	return Canonical{
		R: c.frac[0], G: c.frac[1], B: c.frac[2],
		Alpha: c.alpha, HasAlpha: c.hasAlpha,
		Info: c.info.Clone(), Precision: c.precision,
	}
}

func (c *canonical) Name() string        { return c.info.Name }
func (c *canonical) Description() string { return c.info.Description }

// Metadata returns a copy of the metadata map.
func (c *canonical) Metadata() map[string]any { return c.info.Clone().Metadata }

// Info returns a copy of the descriptive metadata.
func (c *canonical) Info() Info { return c.info.Clone() }

func (c *canonical) Channels() (r, g, b float64) { return c.frac[0], c.frac[1], c.frac[2] }

func (c *canonical) Alpha() (float64, bool) { return c.alpha, c.hasAlpha }

func (c *canonical) FractionalRGB() Tuple {
	return tuple3(c.frac[0], c.frac[1], c.frac[2]).withAlpha(c.alpha, c.hasAlpha)
}

func (c *canonical) RGB() Tuple  { return c.rgb() }
func (c *canonical) HSL() Tuple  { return c.hsl() }
func (c *canonical) Hex() string { return c.hex() }

// Precision returns the number of decimal places used for derived HSL values.
func (c *canonical) Precision() int { return c.precision }

// convert builds target from c's exact canonical state.
func convert(c *canonical, target string) (Color, error) {
	rep, ok := Lookup(target)
	if !ok {
		return nil, fmt.Errorf("%w: color type %q is not in %v", ErrInvalidValue, target, Spaces())
	}
	return rep.FromCanonical(c.export())
}

func equalNative(native, other any) bool {
	switch o := other.(type) {
	case Color:
		return native == o.Native()
	case string:
		n, ok := native.(string)
		return ok && n == o
	case Tuple:
		n, ok := native.(Tuple)
		return ok && n == o
	case []float64:
		n, ok := native.(Tuple)
		return ok && slices.Equal(n.Values(), o)
	case []int:
		n, ok := native.(Tuple)
		if !ok || n.Len() != len(o) {
			return false
		}
		for i, v := range o {
			if n.At(i) != float64(v) {
				return false
			}
		}
		return true
	}
	return false
}

func equivalent(c Color, other Color) bool {
	if other == nil {
		return false
	}
	tol := defaultTolerance
	if s := c.Space(); s == SpaceHex || s == SpaceRGB {
		tol = byteTolerance
	}

	a, b := c.FractionalRGB(), other.FractionalRGB()
	for i := range max(a.Len(), b.Len()) {
		x, y := 1.0, 1.0
		if i < a.Len() {
			x = a.At(i)
		}
		if i < b.Len() {
			y = b.At(i)
		}
		if !isClose(x, y, tol) {
			return false
		}
	}
	return true
}

// isClose mirrors the usual relative/absolute closeness test with a relative tolerance of 1e-9.
func isClose(a, b, absTol float64) bool {
	return math.Abs(a-b) <= math.Max(1e-9*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

func hashNative(native any) uint64 {
	h := fnv.New64a()
	switch n := native.(type) {
	case string:
		fmt.Fprintf(h, "s:%s", n)
	case Tuple:
		fmt.Fprintf(h, "t:%s", n.String())
	default:
		fmt.Fprintf(h, "%T:%v", n, n)
	}
	return h.Sum64()
}

// add averages two colours channel-wise. Alpha is not mixed.
func add(c Color, other Color) (Color, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: addition is only supported between two colours", ErrInvalidType)
	}
	r1, g1, b1 := c.Channels()
	r2, g2, b2 := other.Channels()
	mixed, err := NewBaseColor((r1+r2)/2, (g1+g2)/2, (b1+b2)/2)
	if err != nil {
		return nil, err
	}
	return mixed.ToColorSpace(c.Space())
}

func dict(c Color) (Dict, error) {
	value, err := json.Marshal(c.Native())
	if err != nil {
		return Dict{}, fmt.Errorf("failed to encode %s value: %w", c.Space(), err)
	}
	info := c.Info()
	return Dict{
		Type:        c.Space(),
		Name:        NullableString(info.Name),
		Description: NullableString(info.Description),
		Metadata:    info.Metadata,
		Value:       value,
	}, nil
}

func marshal(c Color) ([]byte, error) {
	d, err := dict(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}
