// Package compression writes and extracts the tar.xz archives camps are
// exchanged in.
package compression

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/colourcamp/internal/security"
)

// Default extraction limits.
const (
	DefaultMaxFileSize  = 10 * 1024 * 1024
	DefaultMaxTotalSize = 100 * 1024 * 1024
	DefaultMaxFiles     = 10000
)

// File is one regular file stored in an archive.
type File struct {
	// Name is the slash separated path inside the archive.
	Name string
	Data []byte
}

// Limits bounds what ExtractTarXz accepts. Zero values select the defaults.
type Limits struct {
	MaxFileSize  int64
	MaxTotalSize int64
	MaxFiles     int
}

func (l Limits) withDefaults() Limits {
	if l.MaxFileSize <= 0 {
		l.MaxFileSize = DefaultMaxFileSize
	}
	if l.MaxTotalSize <= 0 {
		l.MaxTotalSize = DefaultMaxTotalSize
	}
	if l.MaxFiles <= 0 {
		l.MaxFiles = DefaultMaxFiles
	}
	return l
}

// WriteTarXz writes files to w as an xz compressed tar stream. Parent
// directory entries are added before the first file inside them.
func WriteTarXz(w io.Writer, files []File, modTime time.Time) error {
	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	seen := map[string]bool{}
	for _, f := range files {
		if err := security.ValidateFilePath(f.Name, "."); err != nil {
			return fmt.Errorf("invalid archive entry %q: %w", f.Name, err)
		}
		for _, dir := range parents(f.Name) {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			hdr := &tar.Header{Typeflag: tar.TypeDir, Name: dir + "/", Mode: 0o755, ModTime: modTime}
			if err := tw.WriteHeader(hdr); err != nil {
				return fmt.Errorf("failed to write tar header: %w", err)
			}
		}

		hdr := &tar.Header{Typeflag: tar.TypeReg, Name: f.Name, Mode: 0o644, Size: int64(len(f.Data)), ModTime: modTime}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header: %w", err)
		}
		if _, err := tw.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to close tar writer: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to close xz writer: %w", err)
	}
	return nil
}

// parents returns the directories leading to name, outermost first.
func parents(name string) []string {
	var dirs []string
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		dirs = append([]string{dir}, dirs...)
	}
	return dirs
}

// ExtractTarXz extracts an xz compressed tar stream into destDir and
// returns the paths of the extracted files. Only directories and regular
// files are accepted; entries escaping destDir are rejected. Existing files
// are only replaced when overwrite is set or their content is unchanged.
func ExtractTarXz(r io.Reader, destDir string, limits Limits, overwrite bool) ([]string, error) {
	limits = limits.withDefaults()

	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	tr := tar.NewReader(security.NewLimitedReader(xzr, limits.MaxTotalSize))

	var extracted []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return extracted, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return extracted, fmt.Errorf("invalid archive entry %q: %w", header.Name, err)
		}
		target := filepath.Join(destDir, filepath.FromSlash(header.Name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return extracted, fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		case tar.TypeReg:
		default:
			return extracted, fmt.Errorf("unsupported archive entry %q (type %c)", header.Name, header.Typeflag)
		}

		if len(extracted) >= limits.MaxFiles {
			return extracted, fmt.Errorf("archive has more than %d files", limits.MaxFiles)
		}
		if header.Size > limits.MaxFileSize {
			return extracted, fmt.Errorf("archive entry %q is larger than %d bytes", header.Name, limits.MaxFileSize)
		}
		if err := writeFile(target, tr, limits.MaxFileSize, overwrite); err != nil {
			return extracted, err
		}
		extracted = append(extracted, target)
	}

	return extracted, nil
}

// writeFile writes one entry. Without overwrite, an existing file is only
// accepted when its content is identical.
func writeFile(target string, r io.Reader, maxSize int64, overwrite bool) error {
	data, err := io.ReadAll(security.NewLimitedReader(r, maxSize))
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", target, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		existing, err := os.ReadFile(target) // #nosec G304 - target validated against destDir
		switch {
		case err == nil && bytes.Equal(existing, data):
			return nil
		case err == nil:
			return fmt.Errorf("refusing to replace %s: %w", target, fs.ErrExist)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to read %s: %w", target, err)
		}
		flags |= os.O_EXCL
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	out, err := os.OpenFile(target, flags, 0o644) // #nosec G304 - target validated against destDir
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("refusing to replace %s: %w", target, err)
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, writeErr := out.Write(data)
	closeErr := out.Close()

	if writeErr != nil {
		return fmt.Errorf("failed to extract %s: %w", target, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", target, closeErr)
	}
	return nil
}
