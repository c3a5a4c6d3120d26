package camp

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/jmylchreest/colourcamp/internal/compression"
)

// WriteArchive writes the camp's directory layout to w as a tar.xz stream.
func (c *Camp) WriteArchive(w io.Writer) error {
	files, err := c.files()
	if err != nil {
		return err
	}
	if err := compression.WriteTarXz(w, files, time.Now()); err != nil {
		return fmt.Errorf("failed to write camp archive: %w", err)
	}
	c.logger.Debug("wrote camp archive", "name", c.info.Name, "files", len(files))
	return nil
}

// ExtractArchive unpacks a camp archive into dir and returns the names of
// the camps it contained. Existing files are only replaced with overwrite.
func ExtractArchive(r io.Reader, dir string, overwrite bool) ([]string, error) {
	if err := validateDir(dir); err != nil {
		return nil, err
	}
	extracted, err := compression.ExtractTarXz(r, dir, compression.Limits{}, overwrite)
	if err != nil {
		return nil, fmt.Errorf("failed to extract camp archive: %w", err)
	}

	names := []string{}
	for _, p := range extracted {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			continue
		}
		if campDir, file := filepath.Split(rel); file == InfoFile && campDir != "" {
			name := filepath.Clean(campDir)
			if filepath.Dir(name) == "." {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}
