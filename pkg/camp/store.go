package camp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourcamp/internal/compression"
	"github.com/jmylchreest/colourcamp/internal/security"
	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
	"github.com/jmylchreest/colourcamp/pkg/settings"
)

// InfoFile is the camp metadata file at the root of a saved camp directory.
const InfoFile = "camp_info.json"

// files renders the directory layout of the camp, relative to its parent
// directory:
//
//	<name>/camp_info.json
//	<name>/colors/<object>.json
//	<name>/palettes/<object>.json
//	<name>/scales/<object>.json
//	<name>/maps/<object>.json
func (c *Camp) files() ([]compression.File, error) {
	info, err := colour.EncodeJSON(c.campInfo())
	if err != nil {
		return nil, fmt.Errorf("failed to encode camp info: %w", err)
	}
	files := []compression.File{{Name: path.Join(c.info.Name, InfoFile), Data: info}}

	for _, add := range []func([]compression.File) ([]compression.File, error){
		func(f []compression.File) ([]compression.File, error) { return appendBucket(f, c.info.Name, c.Colors) },
		func(f []compression.File) ([]compression.File, error) { return appendBucket(f, c.info.Name, c.Palettes) },
		func(f []compression.File) ([]compression.File, error) { return appendBucket(f, c.info.Name, c.Scales) },
		func(f []compression.File) ([]compression.File, error) { return appendBucket(f, c.info.Name, c.Maps) },
	} {
		if files, err = add(files); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func appendBucket[T Named](files []compression.File, campName string, b *Bucket[T]) ([]compression.File, error) {
	for name, item := range b.All() {
		data, err := colour.EncodeJSON(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s/%s: %w", b.Kind(), name, err)
		}
		files = append(files, compression.File{Name: path.Join(campName, b.Kind(), name+".json"), Data: data})
	}
	return files, nil
}

// Save writes the camp to <dir>/<name>/ as one JSON file per object. An
// existing file with identical content is left alone; differing content is
// only replaced when overwrite is set. A failure part way through leaves
// the files already written in place.
func (c *Camp) Save(dir string, overwrite bool) error {
	if err := validateDir(dir); err != nil {
		return err
	}
	dest := filepath.Join(dir, c.info.Name)
	if err := security.ValidateDir(dest, dir); err != nil {
		return fmt.Errorf("%w: %w", colour.ErrInvalidValue, err)
	}
	for _, kind := range BucketNames {
		if err := os.MkdirAll(filepath.Join(dest, kind), 0o755); err != nil {
			return fmt.Errorf("failed to create camp directory: %w", err)
		}
	}

	files, err := c.files()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := c.writeFile(filepath.Join(dir, filepath.FromSlash(f.Name)), f.Data, overwrite); err != nil {
			return err
		}
	}
	c.logger.Debug("saved camp", "name", c.info.Name, "dir", dest, "objects", c.Len())
	return nil
}

// SaveFile writes the whole camp to <dir>/<name>.json as a single document.
func (c *Camp) SaveFile(dir string, overwrite bool) error {
	if err := validateDir(dir); err != nil {
		return err
	}
	data, err := colour.EncodeJSON(c)
	if err != nil {
		return fmt.Errorf("failed to encode camp: %w", err)
	}
	dest := filepath.Join(dir, c.info.Name+".json")
	if err := c.writeFile(dest, data, overwrite); err != nil {
		return err
	}
	c.logger.Debug("saved camp file", "name", c.info.Name, "path", dest)
	return nil
}

func (c *Camp) writeFile(path string, data []byte, overwrite bool) error {
	existing, err := os.ReadFile(path) // #nosec G304 - path built from the camp directory
	switch {
	case err == nil && bytes.Equal(existing, data):
		c.logger.Trace("unchanged", "path", path)
		return nil
	case err == nil && !overwrite:
		return fmt.Errorf("%w: %w: file already exists with different content: %s", colour.ErrFileExists, fs.ErrExist, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func validateDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: invalid directory: %s", colour.ErrInvalidValue, dir)
	}
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func loggerFrom(opts []Option) hclog.Logger {
	c := &Camp{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c.logger
}

// Load reads the camp called name. When dir is empty the settings' camp
// paths are searched in order and the first match wins. Both the directory
// layout and the single file layout are recognised. Colours are decoded
// into space, or the settings' default representation when space is empty.
func Load(cfg settings.Settings, name, dir, space string, opts ...Option) (*Camp, error) {
	if space == "" {
		space = cfg.DefaultColorSpace
	}
	if err := colour.ValidateSpace(space); err != nil {
		return nil, err
	}
	return load(cfg, name, dir, colour.DecodeOptions{Space: space, Precision: colour.Places(cfg.MaxPrecision)}, opts)
}

// LoadStored is Load without the conversion: every colour keeps the
// representation it was saved in, so saving the camp again rewrites
// nothing.
func LoadStored(cfg settings.Settings, name, dir string, opts ...Option) (*Camp, error) {
	return load(cfg, name, dir, colour.DecodeOptions{Precision: colour.Places(cfg.MaxPrecision)}, opts)
}

func load(cfg settings.Settings, name, dir string, decode colour.DecodeOptions, opts []Option) (*Camp, error) {
	logger := loggerFrom(opts)

	found, single, err := Locate(cfg, name, dir)
	if err != nil {
		return nil, err
	}
	if single {
		campFile := filepath.Join(found, name+".json")
		logger.Debug("loading camp file", "name", name, "path", campFile)
		return loadFile(campFile, name, decode, opts)
	}
	campDir := filepath.Join(found, name)
	logger.Debug("loading camp directory", "name", name, "dir", campDir)
	return loadDir(campDir, name, decode, opts)
}

// Locate returns the directory holding the camp called name, searching
// like Load, and whether the camp is stored as a single file.
func Locate(cfg settings.Settings, name, dir string) (string, bool, error) {
	dirs := cfg.CampPaths
	if dir != "" {
		if err := validateDir(dir); err != nil {
			return "", false, err
		}
		dirs = []string{dir}
	}

	for _, d := range dirs {
		if isFile(filepath.Join(d, name, InfoFile)) {
			return d, false, nil
		}
		if isFile(filepath.Join(d, name+".json")) {
			return d, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: %w: no camp %q found in %v", colour.ErrNotFound, fs.ErrNotExist, name, dirs)
}

func loadFile(path, name string, decode colour.DecodeOptions, opts []Option) (*Camp, error) {
	data, err := colour.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := DecodeCamp(data, decode, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name() != name {
		return nil, fmt.Errorf("%w: names do not match: %s, %s", colour.ErrAttribute, c.Name(), name)
	}
	return c, nil
}

func loadDir(campDir, name string, decode colour.DecodeOptions, opts []Option) (*Camp, error) {
	data, err := colour.ReadFile(filepath.Join(campDir, InfoFile))
	if err != nil {
		return nil, err
	}
	var ci campInfo
	if err := json.Unmarshal(data, &ci); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", colour.ErrInvalidValue, InfoFile, err)
	}
	if ci.Type != "" && ci.Type != TypeCamp {
		return nil, fmt.Errorf("%w: expected type %q in %s, got %q", colour.ErrInvalidValue, TypeCamp, InfoFile, ci.Type)
	}
	if ci.Name != name {
		return nil, fmt.Errorf("%w: names do not match: %s, %s", colour.ErrAttribute, ci.Name, name)
	}

	c, err := New(ci.info(), opts...)
	if err != nil {
		return nil, err
	}

	loadGroup := func(path string) (group.Group, error) { return group.LoadJSON(path, decode) }
	if err := loadBucket(campDir, c.Colors, func(path string) (colour.Color, error) {
		return colour.LoadJSON(path, decode)
	}); err != nil {
		return nil, err
	}
	if err := loadBucket(campDir, c.Palettes, func(path string) (*group.Palette, error) {
		return loadAs[*group.Palette](path, BucketPalettes, loadGroup)
	}); err != nil {
		return nil, err
	}
	if err := loadBucket(campDir, c.Scales, func(path string) (*group.Scale, error) {
		return loadAs[*group.Scale](path, BucketScales, loadGroup)
	}); err != nil {
		return nil, err
	}
	if err := loadBucket(campDir, c.Maps, func(path string) (*group.Map, error) {
		return loadAs[*group.Map](path, BucketMaps, loadGroup)
	}); err != nil {
		return nil, err
	}

	c.logger.Debug("loaded camp", "name", name, "objects", c.Len())
	return c, nil
}

func loadAs[T group.Group](path, kind string, load func(string) (group.Group, error)) (T, error) {
	g, err := load(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return asType[T](g, kind)
}

// loadBucket reads every *.json file of a bucket directory. A file's stem
// must equal the name of the object it holds.
func loadBucket[T Named](campDir string, b *Bucket[T], load func(path string) (T, error)) error {
	dir := filepath.Join(campDir, b.Kind())
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	for _, entry := range entries {
		stem, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		item, err := load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if item.Name() != stem {
			return fmt.Errorf("%w: names do not match: %s, %s", colour.ErrAttribute, item.Name(), stem)
		}
		if err := b.Add(item); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// Find scans dir, or the settings' camp paths when dir is empty, for
// camps. Directory camps are recognised by their camp_info.json and single
// file camps by a top level "type" of "Camp". The result maps each searched
// directory to the sorted camp names found in it.
func Find(cfg settings.Settings, dir string, opts ...Option) (map[string][]string, error) {
	logger := loggerFrom(opts)

	dirs := cfg.CampPaths
	if dir != "" {
		if err := validateDir(dir); err != nil {
			return nil, err
		}
		dirs = []string{dir}
	}

	found := make(map[string][]string, len(dirs))
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			logger.Debug("skipping camp path", "dir", d, "error", err)
			continue
		}

		names := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				if isCampFile(filepath.Join(d, entry.Name(), InfoFile)) {
					names = append(names, entry.Name())
				}
				continue
			}
			if stem, ok := strings.CutSuffix(entry.Name(), ".json"); ok && isCampFile(filepath.Join(d, entry.Name())) {
				names = append(names, stem)
			}
		}
		slices.Sort(names)
		found[d] = slices.Compact(names)
		logger.Debug("searched camp path", "dir", d, "camps", len(names))
	}
	return found, nil
}

// isCampFile reports whether path holds JSON with a top level type of "Camp".
func isCampFile(path string) bool {
	data, err := os.ReadFile(path) // #nosec G304 - scanning user chosen camp directories
	if err != nil {
		return false
	}
	var header struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(data, &header) == nil && header.Type == TypeCamp
}
