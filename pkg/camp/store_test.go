package camp

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
	"github.com/jmylchreest/colourcamp/pkg/settings"
)

func testSettings(paths ...string) settings.Settings {
	return settings.Settings{
		DefaultColorSpace: colour.SpaceHex,
		CampPaths:         paths,
		MaxPrecision:      colour.DefaultPrecision,
	}
}

func TestSaveLayout(t *testing.T) {
	dir := t.TempDir()
	c := testCamp(t)

	if err := c.Save(dir, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, rel := range []string{
		"demo/camp_info.json",
		"demo/colors/pink.json",
		"demo/colors/mustard.json",
		"demo/palettes/warm.json",
		"demo/scales/ramp.json",
		"demo/maps/roles.json",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	c := testCamp(t)
	if err := c.Save(dir, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(testSettings(dir), "demo", "", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name() != "demo" || loaded.Description() != "demo camp" {
		t.Errorf("loaded info = %q %q", loaded.Name(), loaded.Description())
	}
	if loaded.Len() != c.Len() {
		t.Fatalf("loaded %d objects, want %d", loaded.Len(), c.Len())
	}

	for name, want := range c.Colors.All() {
		got, ok := loaded.Colors.Get(name)
		if !ok {
			t.Errorf("color %s missing", name)
			continue
		}
		if got.Space() != colour.SpaceHex {
			t.Errorf("color %s space = %s, want the default Hex", name, got.Space())
		}
		if !got.Equivalent(want) {
			t.Errorf("color %s = %s, want equivalent of %s", name, got, want)
		}
	}

	roles, ok := loaded.Maps.Get("roles")
	if !ok {
		t.Fatal("map roles missing")
	}
	if keys := roles.Keys(); !slices.Equal(keys, []string{"accent", "warning"}) {
		t.Errorf("map keys = %v, want [accent warning]", keys)
	}
	ramp, _ := loaded.Scales.Get("ramp")
	if stops := ramp.Stops(); !slices.Equal(stops, []float64{0, 1}) {
		t.Errorf("scale stops = %v, want [0 1]", stops)
	}
}

func TestSaveAndLoadStoredEqual(t *testing.T) {
	tests := []struct {
		name string
		save func(c *Camp, dir string) error
	}{
		{"directory", func(c *Camp, dir string) error { return c.Save(dir, false) }},
		{"single file", func(c *Camp, dir string) error { return c.SaveFile(dir, false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			c := testCamp(t)
			if err := tt.save(c, dir); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			loaded, err := LoadStored(testSettings(), "demo", dir)
			if err != nil {
				t.Fatalf("LoadStored failed: %v", err)
			}
			if loaded.Len() != c.Len() {
				t.Fatalf("loaded %d objects, want %d", loaded.Len(), c.Len())
			}

			for name, want := range c.Colors.All() {
				got, ok := loaded.Colors.Get(name)
				if !ok || !got.Equal(want) || got.Space() != want.Space() || got.Name() != want.Name() {
					t.Errorf("color %s = %v, want %v", name, got, want)
				}
			}
			checkGroups(t, c.Palettes, loaded.Palettes)
			checkGroups(t, c.Scales, loaded.Scales)
			checkGroups(t, c.Maps, loaded.Maps)
		})
	}
}

func checkGroups[T group.Group](t *testing.T, want, got *Bucket[T]) {
	t.Helper()
	if !slices.Equal(got.Names(), want.Names()) {
		t.Errorf("%s names = %v, want %v", want.Kind(), got.Names(), want.Names())
	}
	for name, w := range want.All() {
		g, ok := got.Get(name)
		if !ok {
			t.Errorf("%s %s missing", want.Kind(), name)
			continue
		}
		if !g.Equal(w) || g.Description() != w.Description() {
			t.Errorf("%s %s = %v, want %v", want.Kind(), name, g, w)
		}
	}
}

func TestLoadIntoSpace(t *testing.T) {
	dir := t.TempDir()
	if err := testCamp(t).Save(dir, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(testSettings(), "demo", dir, colour.SpaceRGB)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	pink, _ := loaded.Colors.Get("pink")
	if !pink.Equal([]int{255, 21, 170}) {
		t.Errorf("pink = %v, want RGB (255, 21, 170)", pink.Native())
	}
	warm, _ := loaded.Palettes.Get("warm")
	for _, c := range warm.Colors() {
		if c.Space() != colour.SpaceRGB {
			t.Errorf("palette colour space = %s, want RGB", c.Space())
		}
	}

	if _, err := Load(testSettings(), "demo", dir, "CMYK"); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("Load(CMYK) error = %v, want ErrInvalidValue", err)
	}
}

func TestSaveConflicts(t *testing.T) {
	dir := t.TempDir()
	if err := testCamp(t).Save(dir, false); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Identical content is a no-op.
	if err := testCamp(t).Save(dir, false); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	changed, _ := New(colour.Info{Name: "demo", Description: "changed"})
	err := changed.Save(dir, false)
	if !errors.Is(err, colour.ErrFileExists) || !errors.Is(err, fs.ErrExist) {
		t.Fatalf("Save(changed) error = %v, want ErrFileExists", err)
	}

	if err := changed.Save(dir, true); err != nil {
		t.Fatalf("Save(overwrite) failed: %v", err)
	}
	loaded, err := Load(testSettings(dir), "demo", "", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Description() != "changed" {
		t.Errorf("description = %q, want changed", loaded.Description())
	}
	// Objects saved earlier stay on disk.
	if loaded.Len() != 5 {
		t.Errorf("Len() = %d, want 5", loaded.Len())
	}
}

func TestSaveInvalidDir(t *testing.T) {
	c := testCamp(t)
	missing := filepath.Join(t.TempDir(), "missing")

	if err := c.Save(missing, false); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("Save() error = %v, want ErrInvalidValue", err)
	}
	if err := c.SaveFile(missing, false); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("SaveFile() error = %v, want ErrInvalidValue", err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, err := Load(testSettings(t.TempDir()), "nothing", "", "")
		if !errors.Is(err, colour.ErrNotFound) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid dir", func(t *testing.T) {
		_, err := Load(testSettings(), "demo", filepath.Join(t.TempDir(), "missing"), "")
		if !errors.Is(err, colour.ErrInvalidValue) {
			t.Errorf("Load() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("file name mismatch", func(t *testing.T) {
		dir := t.TempDir()
		if err := testCamp(t).Save(dir, false); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		colors := filepath.Join(dir, "demo", BucketColors)
		if err := os.Rename(filepath.Join(colors, "pink.json"), filepath.Join(colors, "rose.json")); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(testSettings(dir), "demo", "", ""); !errors.Is(err, colour.ErrAttribute) {
			t.Errorf("Load() error = %v, want ErrAttribute", err)
		}
	})

	t.Run("camp name mismatch", func(t *testing.T) {
		dir := t.TempDir()
		if err := testCamp(t).Save(dir, false); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := os.Rename(filepath.Join(dir, "demo"), filepath.Join(dir, "other")); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(testSettings(dir), "other", "", ""); !errors.Is(err, colour.ErrAttribute) {
			t.Errorf("Load() error = %v, want ErrAttribute", err)
		}
	})

	t.Run("wrong bucket", func(t *testing.T) {
		dir := t.TempDir()
		c := testCamp(t)
		if err := c.Save(dir, false); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		ramp, _ := c.Scales.Get("ramp")
		if err := group.DumpJSON(filepath.Join(dir, "demo", BucketPalettes, "ramp.json"), ramp, false); err != nil {
			t.Fatalf("DumpJSON failed: %v", err)
		}
		if _, err := Load(testSettings(dir), "demo", "", ""); !errors.Is(err, colour.ErrInvalidType) {
			t.Errorf("Load() error = %v, want ErrInvalidType", err)
		}
	})
}

func TestLoadSearchOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	a, _ := New(colour.Info{Name: "demo", Description: "first"})
	b, _ := New(colour.Info{Name: "demo", Description: "second"})
	if err := a.Save(first, false); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(second, false); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(testSettings(filepath.Join(first, "missing"), second, first), "demo", "", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Description() != "second" {
		t.Errorf("description = %q, want the first matching path to win", loaded.Description())
	}
}

func TestSaveFileAndLoad(t *testing.T) {
	dir := t.TempDir()
	c := testCamp(t)

	if err := c.SaveFile(dir, false); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if err := c.SaveFile(dir, false); err != nil {
		t.Fatalf("second SaveFile failed: %v", err)
	}

	loaded, err := Load(testSettings(dir), "demo", "", colour.SpaceHSL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != c.Len() {
		t.Errorf("loaded %d objects, want %d", loaded.Len(), c.Len())
	}
	mustard, _ := loaded.Colors.Get("mustard")
	if mustard.Space() != colour.SpaceHSL {
		t.Errorf("mustard space = %s, want HSL", mustard.Space())
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	c := testCamp(t)
	if err := c.Save(dir, false); err != nil {
		t.Fatal(err)
	}
	single, _ := New(colour.Info{Name: "single"})
	if err := single.SaveFile(dir, false); err != nil {
		t.Fatal(err)
	}
	// Neither of these is a camp.
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	pink, _ := c.Colors.Get("pink")
	if err := colour.DumpJSON(filepath.Join(dir, "pink.json"), pink, false); err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(dir, "missing")
	found, err := Find(testSettings(dir, missing), "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got := found[dir]; !slices.Equal(got, []string{"demo", "single"}) {
		t.Errorf("Find()[dir] = %v, want [demo single]", got)
	}
	if _, ok := found[missing]; ok {
		t.Error("Find reported a missing camp path")
	}

	if _, err := Find(testSettings(), missing); !errors.Is(err, colour.ErrInvalidValue) {
		t.Errorf("Find(missing) error = %v, want ErrInvalidValue", err)
	}
}

func TestLocate(t *testing.T) {
	dirLayout, fileLayout := t.TempDir(), t.TempDir()
	c := testCamp(t)
	if err := c.Save(dirLayout, false); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveFile(fileLayout, false); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		cfg        settings.Settings
		dir        string
		wantDir    string
		wantSingle bool
	}{
		{"directory layout", testSettings(dirLayout), "", dirLayout, false},
		{"single file", testSettings(fileLayout), "", fileLayout, true},
		{"explicit dir wins", testSettings(dirLayout), fileLayout, fileLayout, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, single, err := Locate(tt.cfg, "demo", tt.dir)
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}
			if dir != tt.wantDir || single != tt.wantSingle {
				t.Errorf("Locate() = %s, %v, want %s, %v", dir, single, tt.wantDir, tt.wantSingle)
			}
		})
	}
}

func TestLoadStoredResave(t *testing.T) {
	dir := t.TempDir()
	if err := testCamp(t).Save(dir, false); err != nil {
		t.Fatal(err)
	}

	c, err := LoadStored(testSettings(dir), "demo", "")
	if err != nil {
		t.Fatalf("LoadStored failed: %v", err)
	}
	mustard, _ := c.Colors.Get("mustard")
	if mustard.Space() != colour.SpaceRGB {
		t.Errorf("mustard space = %s, want the stored RGB", mustard.Space())
	}

	black, _ := colour.NewHex("#000000", colour.WithName("black"))
	if err := c.Add(black); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(dir, false); err != nil {
		t.Fatalf("Save after LoadStored failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo", BucketColors, "black.json")); err != nil {
		t.Errorf("new colour not saved: %v", err)
	}
}
