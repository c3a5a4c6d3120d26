// Package camp organises named colours, palettes, scales and maps into a
// project level container that can be saved to and loaded from disk,
// searched by metadata and exchanged as an archive.
package camp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

// TypeCamp is the "type" field of camp files.
const TypeCamp = "Camp"

// Bucket directory names.
const (
	BucketColors   = "colors"
	BucketPalettes = "palettes"
	BucketScales   = "scales"
	BucketMaps     = "maps"
)

// BucketNames lists the buckets in the order they are saved and searched.
var BucketNames = []string{BucketColors, BucketPalettes, BucketScales, BucketMaps}

// Camp is a named collection of colour objects.
type Camp struct {
	info colour.Info

	Colors   *Bucket[colour.Color]
	Palettes *Bucket[*group.Palette]
	Scales   *Bucket[*group.Scale]
	Maps     *Bucket[*group.Map]

	logger hclog.Logger
}

// Option configures a Camp.
type Option func(*Camp)

// WithLogger sets the logger used for save, load and find diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Camp) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty camp. A camp must be named.
func New(info colour.Info, opts ...Option) (*Camp, error) {
	if info.Name == "" {
		return nil, fmt.Errorf("%w: camps need a name", colour.ErrInvalidValue)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	c := &Camp{
		info:     info.Clone(),
		Colors:   newBucket[colour.Color](BucketColors),
		Palettes: newBucket[*group.Palette](BucketPalettes),
		Scales:   newBucket[*group.Scale](BucketScales),
		Maps:     newBucket[*group.Map](BucketMaps),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Camp) Name() string        { return c.info.Name }
func (c *Camp) Description() string { return c.info.Description }

// Metadata returns a copy of the camp's metadata.
func (c *Camp) Metadata() map[string]any { return c.info.Clone().Metadata }

func (c *Camp) Info() colour.Info { return c.info.Clone() }

// Logger returns the camp's logger.
func (c *Camp) Logger() hclog.Logger { return c.logger }

// Len returns the number of objects across all buckets.
func (c *Camp) Len() int {
	return c.Colors.Len() + c.Palettes.Len() + c.Scales.Len() + c.Maps.Len()
}

// Add routes one object to its bucket.
func (c *Camp) Add(item any) error {
	switch v := item.(type) {
	case *group.Palette:
		return c.Palettes.Add(v)
	case *group.Scale:
		return c.Scales.Add(v)
	case *group.Map:
		return c.Maps.Add(v)
	case colour.Color:
		return c.Colors.Add(v)
	}
	return fmt.Errorf("%w: %T can not be added to a camp", colour.ErrInvalidType, item)
}

// AddObjects routes each item to its bucket. With existsOK, name collisions
// are skipped and the first object added under a name wins.
func (c *Camp) AddObjects(items []any, existsOK bool) error {
	for _, item := range items {
		err := c.Add(item)
		if err == nil {
			continue
		}
		if existsOK && errors.Is(err, colour.ErrInvalidValue) {
			c.logger.Debug("skipping existing object", "camp", c.info.Name, "error", err)
			continue
		}
		return err
	}
	return nil
}

// campInfo is the content of camp_info.json.
type campInfo struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

func (c *Camp) campInfo() campInfo {
	info := c.info.Clone()
	return campInfo{
		Type:        TypeCamp,
		Name:        info.Name,
		Description: colour.NullableString(info.Description),
		Metadata:    info.Metadata,
	}
}

func (ci campInfo) info() colour.Info {
	return colour.Info{Name: ci.Name, Description: colour.StringValue(ci.Description), Metadata: ci.Metadata}
}

type campJSON struct {
	campInfo
	Colors   []colour.Color   `json:"colors"`
	Palettes []*group.Palette `json:"palettes"`
	Scales   []*group.Scale   `json:"scales"`
	Maps     []*group.Map     `json:"maps"`
}

func values[T Named](b *Bucket[T]) []T {
	out := make([]T, 0, b.Len())
	for _, item := range b.All() {
		out = append(out, item)
	}
	return out
}

// MarshalJSON encodes the whole camp as a single document.
func (c *Camp) MarshalJSON() ([]byte, error) {
	return json.Marshal(campJSON{
		campInfo: c.campInfo(),
		Colors:   values(c.Colors),
		Palettes: values(c.Palettes),
		Scales:   values(c.Scales),
		Maps:     values(c.Maps),
	})
}

// DecodeCamp rebuilds a camp from a single JSON document.
func DecodeCamp(data []byte, opts colour.DecodeOptions, campOpts ...Option) (*Camp, error) {
	var raw struct {
		campInfo
		Colors   []json.RawMessage `json:"colors"`
		Palettes []json.RawMessage `json:"palettes"`
		Scales   []json.RawMessage `json:"scales"`
		Maps     []json.RawMessage `json:"maps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse camp: %w", colour.ErrInvalidValue, err)
	}
	if raw.Type != "" && raw.Type != TypeCamp {
		return nil, fmt.Errorf("%w: expected type %q, got %q", colour.ErrInvalidValue, TypeCamp, raw.Type)
	}

	c, err := New(raw.info(), campOpts...)
	if err != nil {
		return nil, err
	}

	for _, data := range raw.Colors {
		item, err := colour.Decode(data, opts)
		if err != nil {
			return nil, err
		}
		if err := c.Colors.Add(item); err != nil {
			return nil, err
		}
	}
	if err := decodeGroups(raw.Palettes, opts, c.Palettes); err != nil {
		return nil, err
	}
	if err := decodeGroups(raw.Scales, opts, c.Scales); err != nil {
		return nil, err
	}
	if err := decodeGroups(raw.Maps, opts, c.Maps); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeGroups[T group.Group](raw []json.RawMessage, opts colour.DecodeOptions, bucket *Bucket[T]) error {
	for _, data := range raw {
		g, err := group.Decode(data, opts)
		if err != nil {
			return err
		}
		item, err := asType[T](g, bucket.Kind())
		if err != nil {
			return err
		}
		if err := bucket.Add(item); err != nil {
			return err
		}
	}
	return nil
}

func asType[T any](g group.Group, kind string) (T, error) {
	item, ok := g.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s can not hold a %s", colour.ErrInvalidType, kind, g.Type())
	}
	return item, nil
}

func (c *Camp) String() string {
	return fmt.Sprintf("Camp(%s: %s, %s, %s, %s)", c.info.Name, c.Colors, c.Palettes, c.Scales, c.Maps)
}
