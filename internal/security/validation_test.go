package security

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateFilePath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple", "camp/camp_info.json", false},
		{"nested", "camp/colors/pink.json", false},
		{"dots in name", "camp/colors/pink..old.json", false},
		{"empty", "", true},
		{"parent", "../camp_info.json", true},
		{"nested parent", "camp/../../etc/passwd", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.path, base)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	base := t.TempDir()

	if err := ValidateDir(filepath.Join(base, "camp"), base); err != nil {
		t.Errorf("ValidateDir inside base failed: %v", err)
	}
	if err := ValidateDir(base, base); err != nil {
		t.Errorf("ValidateDir on base failed: %v", err)
	}
	if err := ValidateDir(filepath.Join(base, "..", "other"), base); err == nil {
		t.Error("ValidateDir outside base should fail")
	}
	if err := ValidateDir("", base); err == nil {
		t.Error("ValidateDir on empty path should fail")
	}
}

func TestLimitedReader(t *testing.T) {
	data, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello"), 5))
	if err != nil || string(data) != "hello" {
		t.Errorf("ReadAll at exact limit = %q, %v", data, err)
	}

	_, err = io.ReadAll(NewLimitedReader(strings.NewReader("hello world"), 5))
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("ReadAll over limit error = %v, want ErrSizeLimit", err)
	}
}
