// Package fonts provides 1 bit fonts for the display and draws aligned
// characters and strings with them.
package fonts

import (
	"image"

	"github.com/clktmr/bui/bitmap"
	"github.com/embeddedgo/display/font/subfont"
)

// Face is a font split into subfonts of consecutive runes. Subfonts missing
// from Subfonts are requested from the Loader on first use.
type Face struct {
	subfont.Face

	// Kerning is added to the advance of every character drawn with
	// DrawString.
	Kerning int
}

// Cell returns the 1 bit glyph cell of r and its advance. The cell is
// Height pixels high with the baseline Ascent pixels below its top. Runes
// not covered by any subfont are replaced by '?'.
func (f *Face) Cell(r rune) (*bitmap.Bitmap, int) {
	sf := getSubfont(f, r)
	if sf == nil {
		r = '?'
		if sf = getSubfont(f, r); sf == nil {
			return nil, 0
		}
	}
	if d, ok := sf.Data.(*SubfontData); ok {
		g := &d.glyphs[int(r-sf.First)+int(sf.Offset)]
		return g.bm, g.advance
	}
	img, _, advance := sf.Data.Glyph(int(r-sf.First) + int(sf.Offset))
	if bm, ok := img.(*bitmap.Bitmap); ok {
		return bm, advance
	}
	return threshold(img, img.Bounds()), advance
}

func getSubfont(f *Face, r rune) (sf *subfont.Subfont) {
	for _, sf = range f.Subfonts {
		if sf != nil && sf.First <= r && r <= sf.Last {
			return sf
		}
	}
	if f.Loader == nil {
		return nil
	}
	sf, f.Subfonts = f.Loader.Load(r, f.Subfonts)
	return sf
}

// threshold converts the alpha channel of r in img to a 1 bit glyph.
func threshold(img image.Image, r image.Rectangle) *bitmap.Bitmap {
	bm := bitmap.New(max(r.Dx(), 1), max(r.Dy(), 1), 1, glyphPalette())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a >= 0x8000 {
				bm.SetIndex(x-r.Min.X, y-r.Min.Y, 1)
			}
		}
	}
	return bm
}

func glyphPalette() bitmap.Palette {
	return bitmap.Palette{bitmap.Transparent, bitmap.White}
}
