package fonts

import (
	"image"
	"sync"

	"github.com/clktmr/bui/bitmap"
	"github.com/embeddedgo/display/font/subfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// BlockSize is the number of runes rasterized at once by a Loader.
const BlockSize = 256

// SubfontData implements [subfont.Data] with pre-rendered 1 bit glyph cells.
type SubfontData struct {
	ascent int
	glyphs []glyph
}

type glyph struct {
	bm      *bitmap.Bitmap
	advance int
}

func (p *SubfontData) Advance(i int) int {
	return p.glyphs[i].advance
}

// Glyph returns the cell of the i-th glyph with the origin on its baseline.
func (p *SubfontData) Glyph(i int) (img image.Image, origin image.Point, advance int) {
	g := &p.glyphs[i]
	return g.bm, image.Pt(0, p.ascent), g.advance
}

// Rasterize renders the runes first to last of face into 1 bit cells of the
// given height. Runes missing from face get the glyph of '?'.
func Rasterize(face font.Face, height, ascent int, first, last rune) *SubfontData {
	d := &SubfontData{ascent: ascent, glyphs: make([]glyph, last-first+1)}
	dot := fixed.P(0, ascent)
	cell := image.Rect(0, 0, 0, height)
	for r := first; r <= last; r++ {
		dr, mask, mp, advance, ok := face.Glyph(dot, r)
		if !ok {
			dr, mask, mp, advance, _ = face.Glyph(dot, '?')
		}
		cell.Max.X = max(advance.Ceil(), 1)
		bm := bitmap.New(cell.Dx(), cell.Dy(), 1, glyphPalette())
		if mask != nil {
			ink := dr.Intersect(cell)
			for y := ink.Min.Y; y < ink.Max.Y; y++ {
				for x := ink.Min.X; x < ink.Max.X; x++ {
					p := mp.Add(image.Pt(x, y).Sub(dr.Min))
					if _, _, _, a := mask.At(p.X, p.Y).RGBA(); a >= 0x8000 {
						bm.SetIndex(x, y, 1)
					}
				}
			}
		}
		d.glyphs[r-first] = glyph{bm, advance.Ceil()}
	}
	return d
}

// Loader implements [subfont.Loader] by rasterizing blocks of BlockSize
// runes from a [font.Face] on demand.
type Loader struct {
	Face           font.Face
	Height, Ascent int
	Last           rune // highest rune to load
}

func (l *Loader) Load(r rune, current []*subfont.Subfont) (containing *subfont.Subfont, updated []*subfont.Subfont) {
	if r < 0 || r > l.Last {
		return nil, current
	}
	first := r &^ (BlockSize - 1)
	last := min(first+BlockSize-1, l.Last)
	containing = &subfont.Subfont{
		First: first,
		Last:  last,
		Data:  Rasterize(l.Face, l.Height, l.Ascent, first, last),
	}
	return containing, append(current, containing)
}

// NewFace returns a face loading its glyphs from f.
func NewFace(f font.Face, last rune) *Face {
	m := f.Metrics()
	height, ascent := m.Height.Ceil(), m.Ascent.Ceil()
	return &Face{
		Face: subfont.Face{
			Height: int16(height),
			Ascent: int16(ascent),
			Loader: &Loader{Face: f, Height: height, Ascent: ascent, Last: last},
		},
	}
}

// Basic returns the 7x13 basic font. Runes outside ASCII are drawn as a
// replacement box.
func Basic() *Face {
	return NewFace(basicfont.Face7x13, 0xff)
}

var (
	gomonoOnce sync.Once
	gomonoFont *opentype.Font
	gomonoErr  error
)

// Mono returns Go Mono at the given size in pixels.
func Mono(size float64) (*Face, error) {
	gomonoOnce.Do(func() {
		gomonoFont, gomonoErr = opentype.Parse(gomono.TTF)
	})
	if gomonoErr != nil {
		return nil, gomonoErr
	}
	f, err := opentype.NewFace(gomonoFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return NewFace(f, 0xffff), nil
}
