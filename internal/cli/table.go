package cli

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscape matches the SGR sequences used by colour previews.
var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Table is a plain text table with dynamic column widths. Cells may hold
// colour previews; escape sequences take no width.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // column index to wrap width, 0 = no limit
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps a column's cells at word boundaries once they are
// wider than maxWidth.
func (t *Table) SetColumnMaxWidth(colIndex int, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow appends a row, padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render returns the table as a string.
func (t *Table) Render() string {
	var sb strings.Builder
	_, _ = t.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the header, a dashed separator and the rows to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	if len(t.headers) == 0 {
		return 0, nil
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	lines := t.wrapRows()
	widths := t.columnWidths(lines)
	gap := strings.Repeat(" ", t.padding)

	writeLine := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				bw.WriteString(gap)
			}
			bw.WriteString(padRight(cell, widths[i]))
		}
		bw.WriteByte('\n')
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	writeLine(sep)

	for _, row := range lines {
		height := 1
		for _, cell := range row {
			height = max(height, len(cell))
		}
		for line := range height {
			cells := make([]string, len(t.headers))
			for i, cell := range row {
				if line < len(cell) {
					cells[i] = cell[line]
				}
			}
			writeLine(cells)
		}
	}

	err := bw.Flush()
	return cw.n, err
}

// wrapRows splits every cell into its display lines.
func (t *Table) wrapRows() [][][]string {
	out := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = make([][]string, len(row))
		for c, cell := range row {
			out[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}
	return out
}

// columnWidths sizes each column to its widest line. A wrapped column never
// grows past its limit, except for a header wider than the limit.
func (t *Table) columnWidths(rows [][][]string) []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			for _, line := range cell {
				w := displayWidth(line)
				if limit := t.maxWidths[i]; limit > 0 {
					w = min(w, limit)
				}
				widths[i] = max(widths[i], w)
			}
		}
	}
	return widths
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// displayWidth returns the number of runes shown for s, ignoring escape sequences.
func displayWidth(s string) int {
	return utf8.RuneCountInString(ansiEscape.ReplaceAllString(s, ""))
}

// padRight pads s with spaces to width. Wider strings are returned unchanged.
func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// wrapText breaks text into lines of at most width display columns at word
// boundaries. Words longer than width are split by rune. Cells holding
// escape sequences are never split.
func wrapText(text string, width int) []string {
	if width <= 0 || displayWidth(text) <= width || ansiEscape.MatchString(text) {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	var line []rune
	for _, word := range words {
		runes := []rune(word)
		switch {
		case len(line) == 0:
		case len(line)+1+len(runes) <= width:
			line = append(line, ' ')
			line = append(line, runes...)
			continue
		default:
			lines = append(lines, string(line))
		}
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		line = runes
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
