package group

import (
	"errors"
	"testing"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

func TestDefaultStops(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{0, []float64{}},
		{1, []float64{1}},
		{2, []float64{0, 1}},
		{4, []float64{0, 1.0 / 3, 2.0 / 3, 1}},
	}

	for _, tt := range tests {
		got := DefaultStops(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("DefaultStops(%d) = %v, want %v", tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("DefaultStops(%d)[%d] = %v, want %v", tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestScaleStops(t *testing.T) {
	colors := testColors(t)

	scale, err := NewScale(colors, nil)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}
	want := []float64{0, 1.0 / 3, 2.0 / 3, 1}
	for i, s := range scale.Stops() {
		if s != want[i] {
			t.Errorf("stop %d = %v, want %v", i, s, want[i])
		}
	}

	tests := []struct {
		name  string
		stops []float64
		want  error
	}{
		{"unsorted", []float64{0, 0.5, 0.4, 1}, colour.ErrInvalidValue},
		{"too short", []float64{0, 1}, colour.ErrInvalidValue},
		{"too long", []float64{0, 0.1, 0.2, 0.3, 1}, colour.ErrInvalidValue},
		{"above one", []float64{0, 0.5, 0.8, 1.5}, colour.ErrNumericInterval},
		{"below zero", []float64{-1, 0.5, 0.8, 1}, colour.ErrNumericInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScale(colors, tt.stops); !errors.Is(err, tt.want) {
				t.Errorf("NewScale error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestScaleReverse(t *testing.T) {
	scale, _ := NewScale(testColors(t), []float64{0, 0.1, 0.2, 1})
	reversed := scale.Reverse()

	if got := reversed.Colors()[0].Name(); got != "sky" {
		t.Errorf("reversed first = %s, want sky", got)
	}
	if got := reversed.Stops(); got[1] != 0.1 || got[3] != 1 {
		t.Errorf("Reverse must keep stops, got %v", got)
	}
}

func TestScaleAt(t *testing.T) {
	red, _ := colour.NewRGB(255, 0, 0)
	blue, _ := colour.NewRGB(0, 0, 255)
	scale, err := NewScale([]colour.Color{red, blue}, nil)
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}

	tests := []struct {
		t    float64
		want []int
	}{
		{0, []int{255, 0, 0}},
		{1, []int{0, 0, 255}},
		{0.5, []int{128, 0, 128}},
	}

	for _, tt := range tests {
		got, err := scale.At(tt.t)
		if err != nil {
			t.Fatalf("At(%v) failed: %v", tt.t, err)
		}
		if got.Space() != colour.SpaceRGB || !got.Equal(tt.want) {
			t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	if _, err := scale.At(1.5); !errors.Is(err, colour.ErrNumericInterval) {
		t.Errorf("At(1.5) error = %v, want ErrNumericInterval", err)
	}

	empty, _ := NewScale(nil, nil)
	if _, err := empty.At(0.5); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("At on empty scale error = %v, want ErrInvalidValue", err)
	}
}

func TestScaleAtOffsetStops(t *testing.T) {
	black, _ := colour.NewHex("#000000")
	white, _ := colour.NewHex("#FFFFFF80")
	scale, _ := NewScale([]colour.Color{black, white}, []float64{0.25, 0.75})

	before, _ := scale.At(0.1)
	if !before.Equal("#000000") {
		t.Errorf("At before first stop = %v, want #000000", before)
	}
	after, _ := scale.At(0.9)
	if !after.Equal("#FFFFFF80") {
		t.Errorf("At after last stop = %v, want #FFFFFF80", after)
	}

	mid, err := scale.At(0.5)
	if err != nil {
		t.Fatalf("At(0.5) failed: %v", err)
	}
	if alpha, ok := mid.Alpha(); !ok || alpha <= 0.5 || alpha >= 1 {
		t.Errorf("At(0.5) alpha = %v, %v, want between the end alphas", alpha, ok)
	}
}

func TestScaleSample(t *testing.T) {
	red, _ := colour.NewRGB(255, 0, 0)
	blue, _ := colour.NewRGB(0, 0, 255)
	scale, _ := NewScale([]colour.Color{red, blue}, nil, WithName("fade"))

	palette, err := scale.Sample(3)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	want := [][]int{{255, 0, 0}, {128, 0, 128}, {0, 0, 255}}
	for i, c := range palette.Colors() {
		if !c.Equal(want[i]) {
			t.Errorf("sample %d = %v, want %v", i, c, want[i])
		}
	}
	if palette.Name() != "fade" {
		t.Error("Sample keeps the scale's info")
	}

	if _, err := scale.Sample(0); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("Sample(0) error = %v, want ErrInvalidValue", err)
	}
}
