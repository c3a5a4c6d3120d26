package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

func TestPreviewerDisabled(t *testing.T) {
	p := newPreviewer(&bytes.Buffer{})
	pink, _ := colour.NewHex("#FF15AA")

	if p.enabled {
		t.Fatal("previews enabled for a buffer")
	}
	if got := p.Block(pink, 4); got != "" {
		t.Errorf("Block() = %q, want empty", got)
	}
	if got := p.Label(pink, "pink", 8); got != "pink" {
		t.Errorf("Label() = %q, want plain text", got)
	}
}

func TestPreviewerEnabled(t *testing.T) {
	p := previewer{enabled: true}
	pink, _ := colour.NewHex("#FF15AA")
	white, _ := colour.NewRGB(255, 255, 255)

	block := p.Block(pink, 3)
	if block != "\x1b[48;2;255;21;170m   \x1b[0m" {
		t.Errorf("Block() = %q", block)
	}
	if displayWidth(block) != 3 {
		t.Errorf("Block() width = %d, want 3", displayWidth(block))
	}

	label := p.Label(white, "ab", 6)
	if !strings.Contains(label, "\x1b[38;2;0;0;0m") {
		t.Errorf("Label() on white = %q, want black text", label)
	}
	if plain := ansiEscape.ReplaceAllString(label, ""); plain != "  ab  " {
		t.Errorf("Label() text = %q, want centred", plain)
	}
	if plain := ansiEscape.ReplaceAllString(p.Label(pink, "truncated", 4), ""); plain != "trun" {
		t.Errorf("Label() text = %q, want truncated", plain)
	}

	palette, err := group.NewPalette([]colour.Color{pink, white})
	if err != nil {
		t.Fatal(err)
	}
	if got := displayWidth(p.Group(palette)); got != 4 {
		t.Errorf("Group() width = %d, want 4", got)
	}
}
