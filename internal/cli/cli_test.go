package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/settings"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(settings.EnvDefaultColorSpace, "")
	t.Setenv(settings.EnvCampPaths, "")
	t.Setenv(settings.EnvMaxPrecision, "")

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("colourcamp %s failed: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all spaces", []string{"convert", "#FF15AA"}, []string{"BaseColor", "Hex", "#FF15AA", "rgb(255, 21, 170)", "HSL"}},
		{"to rgb", []string{"convert", "--to", "RGB", "#FF15AA"}, []string{"rgb(255, 21, 170)\n"}},
		{"from rgb", []string{"convert", "--to", "Hex", "rgb(255, 21, 170)"}, []string{"#FF15AA\n"}},
		{"json", []string{"convert", "--json", "--to", "RGB", "FF15AA"}, []string{`"type": "RGB"`, "255"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, tt.args...)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := [][]string{
		{"convert", "not-a-colour"},
		{"convert", "--to", "CMYK", "#FF15AA"},
		{"convert"},
		{"--space", "CMYK", "convert", "#FF15AA"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("colourcamp %s succeeded, want error", strings.Join(args, " "))
		}
	}
}

func TestCampWorkflow(t *testing.T) {
	dir := t.TempDir()
	campPath := []string{"--camp-path", dir}
	with := func(args ...string) []string { return append(append([]string{}, args...), campPath...) }

	mustRun(t, with("camp", "new", "demo", "--description", "demo camp")...)
	if _, err := os.Stat(filepath.Join(dir, "demo", "camp_info.json")); err != nil {
		t.Fatalf("camp not created: %v", err)
	}

	mustRun(t, with("camp", "add", "demo", "colour", "pink", "#FF15AA")...)
	mustRun(t, with("camp", "add", "demo", "colour", "mustard", "rgb(255, 170, 21)")...)
	mustRun(t, with("camp", "add", "demo", "palette", "warm", "#FF15AA", "rgb(255, 170, 21)")...)
	mustRun(t, with("camp", "add", "demo", "scale", "heat", "#000000", "#FF0000", "#FFFF00", "--stops", "0,0.7,1")...)
	mustRun(t, with("camp", "add", "demo", "map", "roles", "accent=#FF15AA", "warning=#FFAA15")...)

	if _, err := run(t, with("camp", "add", "demo", "colour", "pink", "#000000")...); err == nil {
		t.Error("adding a duplicate colour succeeded")
	}
	if out := mustRun(t, with("camp", "add", "demo", "colour", "pink", "#000000", "--exists-ok")...); !strings.Contains(out, "Skipped colour pink") {
		t.Errorf("--exists-ok output = %q, want a skip notice", out)
	}

	show := mustRun(t, with("camp", "show", "demo")...)
	for _, want := range []string{"pink", "#FF15AA", "mustard", "#FFAA15", "warm", "heat", "#FF0000@0.7", "accent=#FF15AA"} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}

	find := mustRun(t, with("camp", "find")...)
	if !strings.Contains(find, "demo") {
		t.Errorf("find output missing demo:\n%s", find)
	}

	query := mustRun(t, with("camp", "query", "demo", "anything")...)
	if strings.Contains(query, "pink") {
		t.Errorf("query matched an object without metadata:\n%s", query)
	}
	if _, err := run(t, with("camp", "query", "demo", "(")...); err == nil {
		t.Error("query with an invalid pattern succeeded")
	}
	if _, err := run(t, with("camp", "query", "demo", "x", "--bucket", "shapes")...); err == nil {
		t.Error("query with an unknown bucket succeeded")
	}

	archive := filepath.Join(t.TempDir(), "demo.tar.xz")
	mustRun(t, with("camp", "export", "demo", archive)...)
	if _, err := run(t, with("camp", "export", "demo", archive)...); err == nil {
		t.Error("export over an existing archive succeeded")
	}

	imported := t.TempDir()
	out := mustRun(t, with("camp", "import", archive, "--dir", imported)...)
	if !strings.Contains(out, "demo") {
		t.Errorf("import output = %q, want camp name", out)
	}
	show = mustRun(t, "camp", "show", "demo", "--dir", imported)
	if !strings.Contains(show, "accent=#FF15AA") {
		t.Errorf("imported camp is missing objects:\n%s", show)
	}

	swatches := filepath.Join(t.TempDir(), "swatches")
	mustRun(t, with("swatch", "demo", "--out", swatches, "--cell-width", "16", "--cell-height", "8")...)
	for _, name := range []string{"colors-pink.png", "palettes-warm.png", "scales-heat.png", "maps-roles.png"} {
		if _, err := os.Stat(filepath.Join(swatches, name)); err != nil {
			t.Errorf("missing swatch %s: %v", name, err)
		}
	}
}

func TestCampSingleFile(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "camp", "new", "loose", "--single-file", "--dir", dir)
	mustRun(t, "camp", "add", "loose", "colour", "sky", "#0FB6FF", "--camp-path", dir)

	if _, err := os.Stat(filepath.Join(dir, "loose.json")); err != nil {
		t.Fatalf("single file camp missing: %v", err)
	}
	show := mustRun(t, "camp", "show", "loose", "--camp-path", dir)
	if !strings.Contains(show, "#0FB6FF") {
		t.Errorf("show output missing sky:\n%s", show)
	}
}

func TestCampErrors(t *testing.T) {
	dir := t.TempDir()
	tests := [][]string{
		{"camp", "show", "missing", "--camp-path", dir},
		{"camp", "new", "bad name", "--dir", dir},
		{"camp", "add", "missing", "colour", "x", "#000000", "--camp-path", dir},
		{"camp", "find", "--dir", filepath.Join(dir, "missing")},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("colourcamp %s succeeded, want error", strings.Join(args, " "))
		}
	}
}

func TestBuildObject(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		values  []string
		stops   []float64
		wantErr bool
	}{
		{"colour", kindColour, []string{"#FF15AA"}, nil, false},
		{"colour needs one value", kindColour, []string{"#FF15AA", "#000000"}, nil, true},
		{"palette", kindPalette, []string{"#FF15AA", "255,170,21"}, nil, false},
		{"scale with stops", kindScale, []string{"#000000", "#FFFFFF"}, []float64{0, 1}, false},
		{"scale with bad stops", kindScale, []string{"#000000", "#FFFFFF"}, []float64{1, 0}, true},
		{"map", kindMap, []string{"a=#000000"}, nil, false},
		{"map without key", kindMap, []string{"#000000"}, nil, true},
		{"unknown kind", "gradient", []string{"#000000"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildObject(tt.kind, colour.Info{Name: "obj"}, tt.values, tt.stops)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildObject() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet bool
		want           hclog.Level
	}{
		{"default", false, false, hclog.Warn},
		{"verbose", true, false, hclog.Debug},
		{"quiet", false, true, hclog.Off},
		{"quiet wins", true, true, hclog.Off},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newLogger(tt.verbose, tt.quiet, &bytes.Buffer{})
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out := mustRun(t, "version")
	if !strings.HasPrefix(out, "colourcamp version") {
		t.Errorf("version output = %q", out)
	}
}
