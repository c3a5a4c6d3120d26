// Package settings holds the configuration consumed by camps and decoders:
// the default colour representation, the camp search paths and the HSL
// rounding precision.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

// Environment variables read by FromEnv.
const (
	EnvDefaultColorSpace = "COLOURCAMP_DEFAULT_COLOR_SPACE"
	EnvCampPaths         = "COLOURCAMP_CAMP_PATHS"
	EnvMaxPrecision      = "COLOURCAMP_MAX_PRECISION"
)

// Settings configures how colours are decoded and where camps are found.
type Settings struct {
	// DefaultColorSpace is the representation colours are decoded into.
	DefaultColorSpace string

	// CampPaths are the directories searched, in order, for camps.
	CampPaths []string

	// MaxPrecision is the number of decimal places HSL values are rounded to.
	MaxPrecision int
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		DefaultColorSpace: colour.SpaceHex,
		CampPaths:         defaultCampPaths(),
		MaxPrecision:      colour.DefaultPrecision,
	}
}

func defaultCampPaths() []string {
	paths := []string{}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "colourcamp", "camps"))
	}
	return append(paths, ".")
}

// DecodeOptions returns the decode options these settings imply.
func (s Settings) DecodeOptions() colour.DecodeOptions {
	return colour.DecodeOptions{Space: s.DefaultColorSpace, Precision: colour.Places(s.MaxPrecision)}
}

// Validate checks the representation name and precision.
func (s Settings) Validate() error {
	if err := colour.ValidateSpace(s.DefaultColorSpace); err != nil {
		return fmt.Errorf("invalid default color space: %w", err)
	}
	if s.MaxPrecision < 0 {
		return fmt.Errorf("%w: max precision must not be negative, got %d", colour.ErrInvalidValue, s.MaxPrecision)
	}
	return nil
}

// Builder provides a fluent interface for constructing Settings.
type Builder struct {
	settings Settings
	envFiles []string
	useEnv   bool
}

// NewBuilder creates a builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{settings: Default()}
}

// WithSettings replaces the starting settings.
func (b *Builder) WithSettings(s Settings) *Builder {
	b.settings = s
	return b
}

// WithEnvFiles adds .env files consulted by WithEnvConfig. Missing files are ignored.
func (b *Builder) WithEnvFiles(files ...string) *Builder {
	b.envFiles = append(b.envFiles, files...)
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads COLOURCAMP_DEFAULT_COLOR_SPACE, COLOURCAMP_CAMP_PATHS and COLOURCAMP_MAX_PRECISION.
// Process environment variables take precedence over .env files.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// Build applies the environment and validates the result.
func (b *Builder) Build() (Settings, error) {
	s := b.settings
	s.CampPaths = append([]string(nil), s.CampPaths...)

	if b.useEnv {
		lookup, err := envLookup(b.envFiles)
		if err != nil {
			return Settings{}, err
		}
		if space, ok := lookup(EnvDefaultColorSpace); ok {
			s.DefaultColorSpace = space
		}
		if paths, ok := lookup(EnvCampPaths); ok {
			s.CampPaths = parsePathList(paths)
		}
		if precision, ok := lookup(EnvMaxPrecision); ok {
			n, err := strconv.Atoi(precision)
			if err != nil {
				return Settings{}, fmt.Errorf("%w: %s must be an integer, got %q", colour.ErrInvalidValue, EnvMaxPrecision, precision)
			}
			s.MaxPrecision = n
		}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// FromEnv builds settings from the defaults, the given .env files and the
// process environment.
func FromEnv(files ...string) (Settings, error) {
	return NewBuilder().WithEnvFiles(files...).WithEnvConfig().Build()
}

// envLookup merges the .env files, earlier files winning, under the process environment.
func envLookup(files []string) (func(string) (string, bool), error) {
	values := map[string]string{}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		read, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range read {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok && v != ""
	}, nil
}

// parsePathList splits an OS path list, dropping empty entries.
func parsePathList(s string) []string {
	parts := filepath.SplitList(s)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
