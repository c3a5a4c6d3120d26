package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPrecision is the number of decimal places HSL values are rounded to.
const DefaultPrecision = 6

// HexToRGB converts a hex string into integer RGB channels [0,255].
// The leading '#' is optional and 3/4 digit shorthand is expanded by
// replicating each digit. A 4 or 8 digit string yields a fourth, fractional
// alpha value (byte/255).
func HexToRGB(s string) (Tuple, error) {
	digits := strings.TrimPrefix(s, "#")
	if !hexDigitsRegex.MatchString(digits) {
		return Tuple{}, fmt.Errorf("%w: invalid hex_code: %q", ErrInvalidValue, s)
	}

	var channels []float64
	if len(digits) > 4 {
		for i := 0; i < len(digits); i += 2 {
			v, err := strconv.ParseUint(digits[i:i+2], 16, 8)
			if err != nil {
				return Tuple{}, fmt.Errorf("%w: invalid hex_code: %q", ErrInvalidValue, s)
			}
			channels = append(channels, float64(v))
		}
	} else {
		for _, d := range digits {
			v, err := strconv.ParseUint(string([]rune{d, d}), 16, 8)
			if err != nil {
				return Tuple{}, fmt.Errorf("%w: invalid hex_code: %q", ErrInvalidValue, s)
			}
			channels = append(channels, float64(v))
		}
	}

	if len(channels) == 4 {
		channels[3] /= 255
	}
	return NewTuple(channels...)
}

// RGBToHex formats integer RGB channels as an upper-case "#RRGGBB" string.
// A fourth (fractional) alpha value is appended as round(alpha*255).
func RGBToHex(rgb Tuple) string {
	hex := fmt.Sprintf("#%02X%02X%02X", toByte(rgb.At(0)), toByte(rgb.At(1)), toByte(rgb.At(2)))
	if alpha, ok := rgb.Alpha(); ok {
		hex += fmt.Sprintf("%02X", toByte(alpha*255))
	}
	return hex
}

// RGBToHSL converts fractional RGB channels into hue [0,360], saturation and
// lightness [0,1], rounded to precision decimal places. Alpha is preserved.
func RGBToHSL(frgb Tuple, precision int) Tuple {
	h, s, l := colorful.Color{R: frgb.At(0), G: frgb.At(1), B: frgb.At(2)}.Hsl()
	alpha, ok := frgb.Alpha()
	return tuple3(roundTo(h, precision), roundTo(s, precision), roundTo(l, precision)).withAlpha(alpha, ok)
}

// HSLToRGB converts hue, saturation and lightness into fractional RGB.
// Alpha is preserved.
func HSLToRGB(hsl Tuple) Tuple {
	c := colorful.Hsl(hsl.At(0), hsl.At(1), hsl.At(2))
	alpha, ok := hsl.Alpha()
	return tuple3(clamp01(c.R), clamp01(c.G), clamp01(c.B)).withAlpha(alpha, ok)
}

// toByte rounds a [0,255] value half to even and clamps it into a byte.
func toByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.RoundToEven(v))))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(v*p) / p
}

// clamp01 absorbs floating point noise such as 1.0000000000000002.
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
