package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/colourcamp/internal/swatch"
	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

// ANSI escape codes for truecolour terminals.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// previewer renders colour blocks when enabled and nothing otherwise.
type previewer struct {
	enabled bool
}

// newPreviewer enables previews when w is a terminal.
func newPreviewer(w io.Writer) previewer {
	f, ok := w.(*os.File)
	return previewer{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

// Block returns a solid block of width cells in c.
func (p previewer) Block(c colour.Color, width int) string {
	if !p.enabled {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// Label returns text centred on a block of c in a contrasting colour.
func (p previewer) Label(c colour.Color, text string, width int) string {
	if !p.enabled {
		return text
	}
	if width <= 0 {
		width = defaultWidth
	}

	r, g, b, _ := swatch.ContrastColor(c).RGBA()
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, r>>8, g>>8, b>>8, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}
	return background(c) + fg + display + ansiReset
}

// Strip returns one narrow block per colour.
func (p previewer) Strip(colors []colour.Color) string {
	if !p.enabled {
		return ""
	}
	var sb strings.Builder
	for _, c := range colors {
		sb.WriteString(p.Block(c, 2))
	}
	return sb.String()
}

// Group previews a group as a strip of its colours.
func (p previewer) Group(g group.Group) string {
	return p.Strip(g.Colors())
}

func background(c colour.Color) string {
	rgb := c.RGB()
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, int(rgb.At(0)), int(rgb.At(1)), int(rgb.At(2)), ansiSuffix)
}
