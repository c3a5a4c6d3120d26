package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a colour written in one of the common text forms:
//
//	#FF15AA, FF15AA, #F1A8
//	rgb(255, 21, 170), rgba(255, 21, 170, 0.5), 255,21,170
//	hsl(158 100% 54%), hsl(158 100% 54% / 0.5), hsl(158, 100%, 54%)
//
// Hex input yields a Hex, rgb() input an RGB and hsl() input an HSL.
func Parse(s string, opts ...Option) (Color, error) {
	text := strings.TrimSpace(s)
	lower := strings.ToLower(text)

	switch {
	case text == "":
		return nil, fmt.Errorf("%w: empty colour", ErrInvalidValue)
	case strings.HasPrefix(text, "#"):
		return NewHex(text, opts...)
	case strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba("):
		return parseRGB(functionArgs(text), opts)
	case strings.HasPrefix(lower, "hsl(") || strings.HasPrefix(lower, "hsla("):
		return parseHSL(functionArgs(text), opts)
	case hexDigitsRegex.MatchString(text):
		return NewHex("#"+text, opts...)
	case strings.Contains(text, ","):
		return parseRGB(splitArgs(text), opts)
	}
	return nil, fmt.Errorf("%w: unrecognised colour %q", ErrInvalidValue, s)
}

// functionArgs returns the arguments of "name(a, b, c)".
func functionArgs(s string) []string {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil
	}
	return splitArgs(s[open+1 : end])
}

func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})
}

func parseRGB(args []string, opts []Option) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("%w: rgb needs 3 or 4 values, got %d", ErrInvalidValue, len(args))
	}
	var channels [3]int
	for i := range channels {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid rgb channel %q", ErrInvalidValue, args[i])
		}
		channels[i] = v
	}
	if len(args) == 4 {
		alpha, err := parseFraction(args[3])
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAlpha(alpha))
	}
	return NewRGB(channels[0], channels[1], channels[2], opts...)
}

func parseHSL(args []string, opts []Option) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("%w: hsl needs 3 or 4 values, got %d", ErrInvalidValue, len(args))
	}
	hue, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hue %q", ErrInvalidValue, args[0])
	}
	saturation, err := parseFraction(args[1])
	if err != nil {
		return nil, err
	}
	lightness, err := parseFraction(args[2])
	if err != nil {
		return nil, err
	}
	if len(args) == 4 {
		alpha, err := parseFraction(args[3])
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithAlpha(alpha))
	}
	return NewHSL(hue, saturation, lightness, opts...)
}

// parseFraction reads "0.5" or "50%".
func parseFraction(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid percentage %q", ErrInvalidValue, s)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", ErrInvalidValue, s)
	}
	return v, nil
}
