package fonts

import (
	"github.com/clktmr/bui/bitmap"
	"github.com/clktmr/bui/drivers/display"
	"golang.org/x/text/encoding/charmap"
)

// Dir selects which point of a character or string is placed at the drawing
// position. Without a horizontal or vertical component the text is
// centered on that axis.
type Dir uint8

const (
	Left Dir = 1 << iota
	Right
	Top
	Bottom

	Center      Dir = 0
	LeftTop         = Left | Top
	LeftBottom      = Left | Bottom
	RightTop        = Right | Top
	RightBottom     = Right | Bottom
)

func (d Dir) hCenter() bool { return d&(Left|Right) == 0 }
func (d Dir) vCenter() bool { return d&(Top|Bottom) == 0 }

// center returns the offset that centers n pixels, rounding towards the
// lower coordinate.
func center(n int) int {
	return n/2 + n%2
}

func printable(r rune) rune {
	if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok {
		return '?'
	}
	return r
}

func drawCell(ctx *display.Context, cell *bitmap.Bitmap, x, y int, c bitmap.Color) {
	if cell == nil {
		return
	}
	colored := *cell
	colored.Palette = bitmap.Palette{bitmap.Transparent, c}
	ctx.DrawMaskedBitmapFull(&colored, x, y)
}

// DrawChar draws r in color c with the point of its cell selected by align
// at (x, y).
func DrawChar(ctx *display.Context, r rune, x, y int, align Dir, face *Face, c bitmap.Color) {
	if x >= display.Width || y >= display.Height {
		return
	}
	cell, w := face.Cell(printable(r))
	h := int(face.Height)
	switch {
	case align.hCenter():
		x -= center(w)
	case align&Right != 0:
		x -= w
	}
	switch {
	case align.vCenter():
		y -= center(h)
	case align&Bottom != 0:
		y -= h
	}
	drawCell(ctx, cell, x, y, c)
}

// StringWidth returns the width of s drawn with face.
func StringWidth(face *Face, s string) int {
	w := 0
	for _, r := range s {
		_, adv := face.Cell(printable(r))
		w += adv + face.Kerning
	}
	return w
}

// DrawString draws s in color c. Vertical alignment is relative to the
// baseline, horizontal alignment to the width of the whole string.
func DrawString(ctx *display.Context, s string, x, y int, align Dir, face *Face, c bitmap.Color) {
	switch {
	case align.vCenter():
		y -= center(int(face.Ascent))
	case align&Bottom != 0:
		y -= int(face.Ascent)
	}
	if y >= display.Height || y+int(face.Height) <= 0 {
		return
	}
	if align&Left == 0 {
		w := StringWidth(face, s)
		if align.hCenter() {
			x -= center(w)
		} else {
			x -= w
		}
		if x+w <= 0 {
			return
		}
	}
	for _, r := range s {
		if x >= display.Width {
			break
		}
		cell, adv := face.Cell(printable(r))
		drawCell(ctx, cell, x, y, c)
		x += adv + face.Kerning
	}
}
