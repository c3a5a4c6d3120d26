package camp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

// testCamp builds a camp holding one object per bucket plus a second colour.
func testCamp(t *testing.T) *Camp {
	t.Helper()

	pink, err := colour.NewHex("#FF15AA", colour.WithName("pink"), colour.WithMetadata(map[string]any{"mood": "loud"}))
	if err != nil {
		t.Fatalf("NewHex failed: %v", err)
	}
	mustard, err := colour.NewRGB(255, 170, 21, colour.WithName("mustard"), colour.WithMetadata(map[string]any{"rank": 2}))
	if err != nil {
		t.Fatalf("NewRGB failed: %v", err)
	}
	palette, err := group.NewPalette([]colour.Color{pink, mustard}, group.WithName("warm"),
		group.WithMetadata(map[string]any{"theme": "summer"}))
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	scale, err := group.NewScale([]colour.Color{pink, mustard}, []float64{0, 1}, group.WithName("ramp"))
	if err != nil {
		t.Fatalf("NewScale failed: %v", err)
	}
	m, err := group.NewMap([]group.Entry{{Key: "accent", Color: pink}, {Key: "warning", Color: mustard}},
		group.WithName("roles"), group.WithMetadata(map[string]any{"mood-board": "summer"}))
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}

	c, err := New(colour.Info{Name: "demo", Description: "demo camp"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.AddObjects([]any{pink, mustard, palette, scale, m}, false); err != nil {
		t.Fatalf("AddObjects failed: %v", err)
	}
	return c
}

func TestNewRequiresName(t *testing.T) {
	if _, err := New(colour.Info{}); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("New() error = %v, want ErrInvalidValue", err)
	}
}

func TestAddRoutesToBuckets(t *testing.T) {
	c := testCamp(t)

	tests := []struct {
		bucket string
		got    []string
		want   []string
	}{
		{BucketColors, c.Colors.Names(), []string{"pink", "mustard"}},
		{BucketPalettes, c.Palettes.Names(), []string{"warm"}},
		{BucketScales, c.Scales.Names(), []string{"ramp"}},
		{BucketMaps, c.Maps.Names(), []string{"roles"}},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			if strings.Join(tt.got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("names = %v, want %v", tt.got, tt.want)
			}
		})
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestAddRejects(t *testing.T) {
	c := testCamp(t)

	if err := c.Add("not a colour"); !errors.Is(err, colour.ErrInvalidType) {
		t.Errorf("Add(string) error = %v, want ErrInvalidType", err)
	}

	unnamed, _ := colour.NewHex("#000000")
	if err := c.Add(unnamed); !errors.Is(err, colour.ErrAttribute) {
		t.Errorf("Add(unnamed) error = %v, want ErrAttribute", err)
	}

	dup, _ := colour.NewHex("#000000", colour.WithName("pink"))
	if err := c.Add(dup); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("Add(duplicate) error = %v, want ErrInvalidValue", err)
	}

	var nilPalette *group.Palette
	if err := c.Add(nilPalette); !errors.Is(err, colour.ErrInvalidType) {
		t.Errorf("Add(nil palette) error = %v, want ErrInvalidType", err)
	}
}

func TestAddObjectsExistsOK(t *testing.T) {
	c := testCamp(t)
	dup, _ := colour.NewHex("#000000", colour.WithName("pink"))
	black, _ := colour.NewHex("#000000", colour.WithName("black"))

	if err := c.AddObjects([]any{dup, black}, false); !errors.Is(err, colour.ErrInvalidValue) {
		t.Fatalf("AddObjects(existsOK=false) error = %v, want ErrInvalidValue", err)
	}
	if err := c.AddObjects([]any{dup, black}, true); err != nil {
		t.Fatalf("AddObjects(existsOK=true) error = %v", err)
	}

	got, _ := c.Colors.Get("pink")
	if got.Hex() != "#FF15AA" {
		t.Errorf("pink = %s, want the first object to win", got.Hex())
	}
	if _, ok := c.Colors.Get("black"); !ok {
		t.Error("black was not added")
	}
}

func TestCampJSON(t *testing.T) {
	c := testCamp(t)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var header map[string]any
	if err := json.Unmarshal(data, &header); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if header["type"] != TypeCamp || header["name"] != "demo" {
		t.Errorf("header = %v %v, want Camp demo", header["type"], header["name"])
	}

	decoded, err := DecodeCamp(data, colour.DecodeOptions{})
	if err != nil {
		t.Fatalf("DecodeCamp failed: %v", err)
	}
	if decoded.Len() != c.Len() || decoded.Description() != "demo camp" {
		t.Errorf("decoded = %s, want %s", decoded, c)
	}
	mustard, _ := decoded.Colors.Get("mustard")
	if mustard.Space() != colour.SpaceRGB {
		t.Errorf("mustard space = %s, want the stored RGB", mustard.Space())
	}
}

func TestDecodeCampErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad json", `{`, colour.ErrInvalidValue},
		{"wrong type", `{"type":"Palette","name":"x"}`, colour.ErrInvalidValue},
		{"no name", `{"type":"Camp"}`, colour.ErrInvalidValue},
		{
			"scale in palettes",
			`{"type":"Camp","name":"x","palettes":[{"type":"Scale","name":"s","description":null,"metadata":{},"colors":[],"stops":[]}]}`,
			colour.ErrInvalidType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCamp([]byte(tt.data), colour.DecodeOptions{}); !errors.Is(err, tt.want) {
				t.Errorf("DecodeCamp() error = %v, want %v", err, tt.want)
			}
		})
	}
}
