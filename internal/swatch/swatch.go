// Package swatch renders colours and colour groups as PNG preview images.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/colourcamp/pkg/colour"
	"github.com/jmylchreest/colourcamp/pkg/group"
)

// Default cell dimensions in pixels.
const (
	DefaultCellWidth  = 120
	DefaultCellHeight = 60
)

// basicfont.Face7x13 glyph metrics.
const (
	glyphWidth  = 7
	glyphAscent = 11
	labelMargin = 4
)

// Options controls swatch layout.
type Options struct {
	CellWidth  int
	CellHeight int
	// Labels draws the hex value (and key, for maps) on each cell.
	Labels bool
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = DefaultCellHeight
	}
	return o
}

// Render draws obj, which must be a colour or one of the group types.
// Colours and palettes become a row of cells, scales a gradient band and
// maps one row per key.
func Render(obj any, opts Options) (image.Image, error) {
	opts = opts.withDefaults()

	switch v := obj.(type) {
	case *group.Palette:
		return renderRow(v.Colors(), opts)
	case *group.Scale:
		return renderScale(v, opts)
	case *group.Map:
		return renderMap(v, opts)
	case colour.Color:
		return renderRow([]colour.Color{v}, opts)
	}
	return nil, fmt.Errorf("%w: can not render %T", colour.ErrInvalidType, obj)
}

func renderRow(colors []colour.Color, opts Options) (image.Image, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: nothing to render", colour.ErrInvalidValue)
	}
	canvas := imaging.New(opts.CellWidth*len(colors), opts.CellHeight, color.Transparent)
	for i, c := range colors {
		cell := imaging.New(opts.CellWidth, opts.CellHeight, ToNRGBA(c))
		if opts.Labels {
			drawLabel(cell, c.Hex(), c)
		}
		canvas = imaging.Paste(canvas, cell, image.Pt(i*opts.CellWidth, 0))
	}
	return canvas, nil
}

func renderMap(m *group.Map, opts Options) (image.Image, error) {
	if m.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to render", colour.ErrInvalidValue)
	}
	width := opts.CellWidth * 3
	canvas := imaging.New(width, opts.CellHeight*m.Len(), color.Transparent)
	row := 0
	for key, c := range m.All() {
		cell := imaging.New(width, opts.CellHeight, ToNRGBA(c))
		if opts.Labels {
			drawLabel(cell, fmt.Sprintf("%s  %s", key, c.Hex()), c)
		}
		canvas = imaging.Paste(canvas, cell, image.Pt(0, row*opts.CellHeight))
		row++
	}
	return canvas, nil
}

func renderScale(s *group.Scale, opts Options) (image.Image, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to render", colour.ErrInvalidValue)
	}
	width := opts.CellWidth * max(s.Len(), 2)
	canvas := imaging.New(width, opts.CellHeight, color.Transparent)
	for x := range width {
		c, err := s.At(float64(x) / float64(width-1))
		if err != nil {
			return nil, err
		}
		fill := ToNRGBA(c)
		for y := range opts.CellHeight {
			canvas.SetNRGBA(x, y, fill)
		}
	}

	if opts.Labels {
		for stop, c := range s.All() {
			x := int(math.Round(stop * float64(width-1)))
			label := c.Hex()
			x = min(max(x-len(label)*glyphWidth/2, 0), max(width-len(label)*glyphWidth-labelMargin, 0))
			drawText(canvas, x, label, ContrastColor(c))
		}
	}
	return canvas, nil
}

// ToNRGBA converts c to an image colour, keeping its alpha when set.
func ToNRGBA(c colour.Color) color.NRGBA {
	rgb := c.RGB()
	a := uint8(255)
	if alpha, ok := c.Alpha(); ok {
		a = uint8(math.RoundToEven(alpha * 255))
	}
	return color.NRGBA{R: uint8(rgb.At(0)), G: uint8(rgb.At(1)), B: uint8(rgb.At(2)), A: a}
}

// ContrastColor picks black or white, whichever reads better on c.
func ContrastColor(c colour.Color) color.Color {
	r, g, b := c.Channels()
	l, _, _ := colorful.Color{R: r, G: g, B: b}.Lab()
	if l > 0.6 {
		return color.Black
	}
	return color.White
}

func drawLabel(dst *image.NRGBA, text string, c colour.Color) {
	drawText(dst, labelMargin, text, ContrastColor(c))
}

// drawText draws text along the bottom edge of dst starting at x.
func drawText(dst *image.NRGBA, x int, text string, col color.Color) {
	y := dst.Bounds().Dy() - labelMargin - (13 - glyphAscent)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

// Save writes img to path. The format follows the file extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save swatch: %w", err)
	}
	return nil
}
