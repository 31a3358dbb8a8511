package bitmap

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied ARGB8888 color, alpha in the most significant
// byte.
type Color uint32

const (
	Transparent Color = 0x00000000
	Black       Color = 0xff000000
	White       Color = 0xffffffff
)

func ARGB(a, r, g, b uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Opaque reports whether drawing c has any effect. Colors with an alpha
// value of 127 or less are treated as fully transparent.
func (c Color) Opaque() bool { return c.A() > 127 }

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{c.R(), c.G(), c.B(), c.A()}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("0x%08x", uint32(c))
}

var ColorModel color.Model = color.ModelFunc(colorModel)

func colorModel(c color.Color) color.Color {
	return ColorOf(c)
}

// ColorOf converts any color to Color.
func ColorOf(c color.Color) Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Palette maps pixel indices to colors.
type Palette []Color

// FindExact returns the lowest index holding exactly c.
func (p Palette) FindExact(c Color) (int, bool) {
	for i, pc := range p {
		if pc == c {
			return i, true
		}
	}
	return 0, false
}

// FindBest returns the index of the entry closest to c. An exact match
// wins, otherwise the squared RGB distance decides with alpha ignored. Ties
// resolve to the lowest index.
func (p Palette) FindBest(c Color) int {
	if len(p) <= 1 {
		return 0
	}
	if i, ok := p.FindExact(c); ok {
		return i
	}
	best, bestDist := 0, -1
	for i, pc := range p {
		dr := int(pc.R()) - int(c.R())
		dg := int(pc.G()) - int(c.G())
		db := int(pc.B()) - int(c.B())
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// ColorPalette returns p as a standard library palette.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Mono is the default two color palette of a display.
var Mono = Palette{Black, White}
