package group

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/lucasb-eyer/go-colorful"
)

func init() {
	mustRegister(Kind{
		Name: TypeScale,
		From: func(src Group, args ConvertArgs) (Group, error) {
			return NewScale(src.Colors(), args.Stops, WithInfo(src.Info()))
		},
		Decode: func(data []byte, opts colour.DecodeOptions) (Group, error) {
			return decodeScale(data, opts)
		},
	})
}

// Scale is an ordered, continuous collection of colours. Each colour sits
// at a stop in [0,1] along the gradient.
type Scale struct {
	base
	colors []colour.Color
	stops  []float64
}

// NewScale creates a scale. When stops is nil the colours are spread
// evenly with the last colour at 1; otherwise stops must match colors in
// length, lie within [0,1] and be sorted ascending.
func NewScale(colors []colour.Color, stops []float64, opts ...Option) (*Scale, error) {
	if err := validateColors(colors); err != nil {
		return nil, err
	}
	if stops == nil {
		stops = DefaultStops(len(colors))
	} else if err := ValidateStops(stops, len(colors)); err != nil {
		return nil, err
	}
	b, err := newBase(opts)
	if err != nil {
		return nil, err
	}
	return &Scale{base: b, colors: slices.Clone(colors), stops: slices.Clone(stops)}, nil
}

// DefaultStops returns n evenly spaced stops i/(n-1), with the last stop at 1.
func DefaultStops(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	stops := make([]float64, n)
	for i := range n - 1 {
		stops[i] = float64(i) / float64(n-1)
	}
	stops[n-1] = 1
	return stops
}

// ValidateStops checks that stops has n ascending values within [0,1].
func ValidateStops(stops []float64, n int) error {
	if len(stops) != n || !slices.IsSorted(stops) {
		return fmt.Errorf("%w: stops must be sorted in ascending order and be of the same length as colors", colour.ErrInvalidValue)
	}
	for _, s := range stops {
		if err := colour.ValidateFraction("stop", s); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scale) Type() string { return TypeScale }

func (s *Scale) Len() int { return len(s.colors) }

func (s *Scale) Colors() []colour.Color { return slices.Clone(s.colors) }

// Stops returns a copy of the colour stops.
func (s *Scale) Stops() []float64 { return slices.Clone(s.stops) }

// All returns an iterator over each stop and its colour.
func (s *Scale) All() iter.Seq2[float64, colour.Color] {
	return func(yield func(float64, colour.Color) bool) {
		for i, c := range s.colors {
			if !yield(s.stops[i], c) {
				return
			}
		}
	}
}

func (s *Scale) Native() any { return natives(s.colors) }

// Reverse returns a new scale with the colours reversed. The stops keep
// their order.
func (s *Scale) Reverse() *Scale {
	colors := slices.Clone(s.colors)
	slices.Reverse(colors)
	return &Scale{base: s.base, colors: colors, stops: slices.Clone(s.stops)}
}

// At interpolates the scale at position t in [0,1]. Positions before the
// first stop or after the last take the end colours. The result uses the
// representation of the first colour.
func (s *Scale) At(t float64) (colour.Color, error) {
	if len(s.colors) == 0 {
		return nil, fmt.Errorf("%w: can not interpolate an empty scale", colour.ErrInvalidValue)
	}
	if err := colour.ValidateFraction("position", t); err != nil {
		return nil, err
	}

	last := len(s.colors) - 1
	switch {
	case t <= s.stops[0]:
		return s.colors[0], nil
	case t >= s.stops[last]:
		return s.colors[last], nil
	}

	i, found := slices.BinarySearch(s.stops, t)
	if found {
		return s.colors[i], nil
	}
	lo, hi := s.colors[i-1], s.colors[i]
	span := s.stops[i] - s.stops[i-1]
	if span == 0 {
		return hi, nil
	}
	return blend(lo, hi, (t-s.stops[i-1])/span, s.colors[0].Space())
}

// blend mixes two colours linearly in RGB. Alpha is interpolated when
// either side carries one.
func blend(a, b colour.Color, frac float64, space string) (colour.Color, error) {
	ar, ag, ab := a.Channels()
	br, bg, bb := b.Channels()
	mixed := colorful.Color{R: ar, G: ag, B: ab}.BlendRgb(colorful.Color{R: br, G: bg, B: bb}, frac).Clamped()

	var opts []colour.Option
	aa, aok := a.Alpha()
	ba, bok := b.Alpha()
	if aok || bok {
		if !aok {
			aa = 1
		}
		if !bok {
			ba = 1
		}
		opts = append(opts, colour.WithAlpha(math.Max(0, math.Min(1, aa+(ba-aa)*frac))))
	}

	c, err := colour.NewBaseColor(mixed.R, mixed.G, mixed.B, opts...)
	if err != nil {
		return nil, err
	}
	return c.ToColorSpace(space)
}

// Sample returns a palette of n colours evenly spaced along the scale.
func (s *Scale) Sample(n int) (*Palette, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample size must be at least 1, got %d", colour.ErrInvalidValue, n)
	}
	positions := DefaultStops(n)
	if n == 1 {
		positions[0] = 0
	}
	colors := make([]colour.Color, n)
	for i, t := range positions {
		c, err := s.At(t)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	return NewPalette(colors, WithInfo(s.info))
}

func (s *Scale) ToColorSpace(space string) (Group, error) {
	colors, err := convertColors(s.colors, space)
	if err != nil {
		return nil, err
	}
	return &Scale{base: s.base, colors: colors, stops: slices.Clone(s.stops)}, nil
}

func (s *Scale) ToPalette() (*Palette, error) {
	return convertTo[*Palette](s, TypePalette, ConvertArgs{})
}

// ToScale returns the scale itself. Stops are ignored, as with any
// conversion to a group's own type.
func (s *Scale) ToScale(_ []float64) (*Scale, error) { return s, nil }

func (s *Scale) ToMap(names []string) (*Map, error) {
	return convertTo[*Map](s, TypeMap, ConvertArgs{Names: names})
}

func (s *Scale) WithInfo(info colour.Info) (Group, error) {
	return NewScale(s.colors, s.stops, WithInfo(info))
}

func (s *Scale) Equal(other Group) bool {
	o, ok := other.(*Scale)
	return ok && nativesEqual(s.colors, o.colors) && slices.Equal(s.stops, o.stops)
}

type scaleJSON struct {
	header
	Colors []colour.Color `json:"colors"`
	Stops  []float64      `json:"stops"`
}

func (s *Scale) MarshalJSON() ([]byte, error) {
	colors := s.colors
	if colors == nil {
		colors = []colour.Color{}
	}
	return json.Marshal(scaleJSON{header: s.header(TypeScale), Colors: colors, Stops: s.stops})
}

func decodeScale(data []byte, opts colour.DecodeOptions) (*Scale, error) {
	var raw struct {
		header
		Colors []json.RawMessage `json:"colors"`
		Stops  []float64         `json:"stops"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse scale: %w", colour.ErrInvalidValue, err)
	}
	colors, err := decodeColors(raw.Colors, opts)
	if err != nil {
		return nil, err
	}
	return NewScale(colors, raw.Stops, WithInfo(raw.info()))
}

func (s *Scale) String() string {
	parts := make([]string, len(s.colors))
	for i, c := range s.colors {
		parts[i] = "(" + c.String() + ", " + strconv.FormatFloat(s.stops[i], 'f', -1, 64) + ")"
	}
	return "Scale(" + strings.Join(parts, ", ") + ")"
}
