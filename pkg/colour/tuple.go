package colour

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Tuple is an immutable sequence of three channel values with an optional
// fourth alpha value. Tuples are comparable, so two tuples holding the same
// values are == to each other.
type Tuple struct {
	vals [4]float64
	n    int
}

// NewTuple builds a tuple from three or four values.
func NewTuple(vals ...float64) (Tuple, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return Tuple{}, fmt.Errorf("%w: expected 3 or 4 channels, got %d", ErrInvalidValue, len(vals))
	}
	var t Tuple
	for i, v := range vals {
		t.vals[i] = unsignedZero(v)
	}
	t.n = len(vals)
	return t, nil
}

func tuple3(a, b, c float64) Tuple {
	return Tuple{vals: [4]float64{unsignedZero(a), unsignedZero(b), unsignedZero(c)}, n: 3}
}

// unsignedZero maps -0 to 0 so equal tuples also print and hash the same.
func unsignedZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// withAlpha returns the first three channels followed by alpha when ok is set.
func (t Tuple) withAlpha(alpha float64, ok bool) Tuple {
	out := Tuple{vals: [4]float64{t.vals[0], t.vals[1], t.vals[2]}, n: 3}
	if ok {
		out.vals[3] = unsignedZero(alpha)
		out.n = 4
	}
	return out
}

// Len returns the number of values in the tuple.
func (t Tuple) Len() int {
	return t.n
}

// At returns the value at index i. It panics if i is out of range, like a slice index.
func (t Tuple) At(i int) float64 {
	if i < 0 || i >= t.n {
		panic(fmt.Sprintf("colour: tuple index %d out of range [0:%d]", i, t.n))
	}
	return t.vals[i]
}

// Values returns a copy of the tuple's values.
func (t Tuple) Values() []float64 {
	return slices.Clone(t.vals[:t.n])
}

// Contains reports whether v is one of the tuple's values.
func (t Tuple) Contains(v float64) bool {
	return slices.Contains(t.vals[:t.n], v)
}

// Alpha returns the fourth value, if present.
func (t Tuple) Alpha() (float64, bool) {
	if t.n == 4 {
		return t.vals[3], true
	}
	return 0, false
}

// String formats the tuple as "(a, b, c)".
func (t Tuple) String() string {
	parts := make([]string, t.n)
	for i, v := range t.vals[:t.n] {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalJSON encodes the tuple as a JSON array.
func (t Tuple) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.vals[:t.n])
}

// UnmarshalJSON decodes a JSON array of three or four numbers.
func (t *Tuple) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidType, err)
	}
	parsed, err := NewTuple(vals...)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
