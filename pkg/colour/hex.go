package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Hex is a colour written as a hexadecimal string such as "#FF15AA".
// It behaves as its string: String, Len, Lower, Upper and Slice operate on
// the upper-case hex text.
type Hex struct {
	*canonical
	value string
}

func init() {
	mustRegister(Representation{
		Name: SpaceHex,
		FromCanonical: func(c Canonical) (Color, error) {
			core, err := newCanonical(c.R, c.G, c.B, c.options())
			if err != nil {
				return nil, err
			}
			return &Hex{canonical: core, value: RGBToHex(core.RGB())}, nil
		},
		Decode: func(value json.RawMessage, info Info, precision int) (Color, error) {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: invalid %s value: %w", ErrInvalidType, SpaceHex, err)
			}
			return NewHex(s, WithInfo(info), WithPrecision(precision))
		},
	})
}

// NewHex creates a colour from a '#' prefixed string of 3, 4, 6 or 8 hex digits.
// WithAlpha replaces any alpha encoded in the string.
func NewHex(s string, opts ...Option) (*Hex, error) {
	if err := ValidateHexString(s); err != nil {
		return nil, err
	}
	rgb, err := HexToRGB(s)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	value := strings.ToUpper(s)
	if o.hasAlpha {
		if err := ValidateFraction("alpha", o.alpha); err != nil {
			return nil, err
		}
		value, o.alpha = adjustHexAlpha(value, o.alpha)
	} else if alpha, ok := rgb.Alpha(); ok {
		o.alpha, o.hasAlpha = alpha, true
	}

	c, err := newCanonical(rgb.At(0)/255, rgb.At(1)/255, rgb.At(2)/255, o)
	if err != nil {
		return nil, err
	}
	return &Hex{canonical: c, value: value}, nil
}

// adjustHexAlpha replaces or appends the alpha digits of a hex string,
// keeping shorthand strings in shorthand. It also returns alpha quantised to
// the digits written, so the string and the stored alpha always agree.
func adjustHexAlpha(s string, alpha float64) (string, float64) {
	if len(s) > 5 {
		b := toByte(alpha * 255)
		return s[:7] + fmt.Sprintf("%02X", b), float64(b) / 255
	}
	d := int(math.RoundToEven(math.Max(0, math.Min(1, alpha)) * 15))
	return s[:4] + fmt.Sprintf("%X", d), float64(d*17) / 255
}

func (h *Hex) Space() string { return SpaceHex }
func (h *Hex) Native() any { return h.value }
func (h *Hex) Hex() string { return h.value }
func (h *Hex) String() string { return h.value }
func (h *Hex) CSS() string { return h.value }

// Len returns the length of the hex string.
func (h *Hex) Len() int { return len(h.value) }

// Lower returns the hex string in lower case.
func (h *Hex) Lower() string { return strings.ToLower(h.value) }

// Upper returns the hex string in upper case.
func (h *Hex) Upper() string { return h.value }

// Slice returns h[i:j] of the hex string.
func (h *Hex) Slice(i, j int) string { return h.value[i:j] }

func (h *Hex) Red() int { return int(h.RGB().At(0)) }
func (h *Hex) Green() int { return int(h.RGB().At(1)) }
func (h *Hex) Blue() int { return int(h.RGB().At(2)) }

func (h *Hex) ToColorSpace(space string) (Color, error) {
	if space == SpaceHex {
		return h, nil
	}
	return convert(h.canonical, space)
}

// ChangeAlpha returns a new Hex with alpha replaced.
func (h *Hex) ChangeAlpha(alpha float64) (Color, error) {
	if err := ValidateFraction("alpha", alpha); err != nil {
		return nil, err
	}
	value, quantised := adjustHexAlpha(h.value, alpha)
	o := h.options()
	o.alpha, o.hasAlpha = quantised, true
	c, err := h.with(o)
	if err != nil {
		return nil, err
	}
	return &Hex{canonical: c, value: value}, nil
}

// WithInfo returns a copy of the colour with new descriptive metadata.
func (h *Hex) WithInfo(info Info) (Color, error) {
	o := h.options()
	o.info = info
	c, err := h.with(o)
	if err != nil {
		return nil, err
	}
	return &Hex{canonical: c, value: h.value}, nil
}

// ChangeRed returns a new Hex with the red channel [0,255] replaced.
// The name, description and metadata are dropped unless keepInfo is set.
func (h *Hex) ChangeRed(red int, keepInfo bool) (*Hex, error) {
	if err := ValidateByte("red", red); err != nil {
		return nil, err
	}
	rgb := h.RGB()
	return h.changeRGB(float64(red), rgb.At(1), rgb.At(2), keepInfo)
}

// ChangeGreen returns a new Hex with the green channel [0,255] replaced.
func (h *Hex) ChangeGreen(green int, keepInfo bool) (*Hex, error) {
	if err := ValidateByte("green", green); err != nil {
		return nil, err
	}
	rgb := h.RGB()
	return h.changeRGB(rgb.At(0), float64(green), rgb.At(2), keepInfo)
}

// ChangeBlue returns a new Hex with the blue channel [0,255] replaced.
func (h *Hex) ChangeBlue(blue int, keepInfo bool) (*Hex, error) {
	if err := ValidateByte("blue", blue); err != nil {
		return nil, err
	}
	rgb := h.RGB()
	return h.changeRGB(rgb.At(0), rgb.At(1), float64(blue), keepInfo)
}

func (h *Hex) changeRGB(r, g, b float64, keepInfo bool) (*Hex, error) {
	opts := []Option{WithPrecision(h.precision)}
	if h.hasAlpha {
		opts = append(opts, WithAlpha(h.alpha))
	}
	if keepInfo {
		opts = append(opts, WithInfo(h.info))
	}
	return NewHex(RGBToHex(tuple3(r, g, b)), opts...)
}

func (h *Hex) Add(other Color) (Color, error) { return add(h, other) }
func (h *Hex) Equal(other any) bool { return equalNative(h.value, other) }
func (h *Hex) Equivalent(other Color) bool { return equivalent(h, other) }
func (h *Hex) Hash() uint64 { return hashNative(h.value) }
func (h *Hex) Dict() (Dict, error) { return dict(h) }
func (h *Hex) MarshalJSON() ([]byte, error) { return marshal(h) }
