// Package bitmap implements indexed bitmaps with up to 16 colors in the
// memory layout of the display.
//
// Pixels are packed row-major with rows and columns reversed: the first bits
// of Bits hold the bottom right pixel and the last bits the top left one.
// Within a byte the most significant bits come first.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/clktmr/bui/bitblit"
	"github.com/clktmr/bui/debug"
)

const MaxBPP = 4

var (
	ErrBPP     = errors.New("bits per pixel out of range")
	ErrPalette = errors.New("palette size mismatch")
	ErrSize    = errors.New("invalid dimensions")
)

// Bitmap is an indexed image. With BPP 0 the whole bitmap has the color
// Palette[0] and Bits is never read.
type Bitmap struct {
	W, H    int
	BPP     int
	Palette Palette
	Bits    []byte
}

// New allocates a w×h bitmap. The palette must have 1<<bpp entries.
func New(w, h, bpp int, palette Palette) *Bitmap {
	b := &Bitmap{W: w, H: h, BPP: bpp, Palette: palette}
	b.Bits = make([]byte, Size(max(w, 0), max(h, 0), bpp))
	debug.AssertErrNil(b.Validate())
	return b
}

// Size returns the number of bytes needed for a w×h bitmap.
func Size(w, h, bpp int) int {
	return (w*h*bpp + 7) / 8
}

// Validate checks the structural invariants of b.
func (b *Bitmap) Validate() error {
	if b.BPP < 0 || b.BPP > MaxBPP {
		return fmt.Errorf("%w: %d", ErrBPP, b.BPP)
	}
	if len(b.Palette) != 1<<b.BPP {
		return fmt.Errorf("%w: %d colors for %d bpp", ErrPalette, len(b.Palette), b.BPP)
	}
	if b.W <= 0 || b.H <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, b.W, b.H)
	}
	if b.BPP > 0 && len(b.Bits) < Size(b.W, b.H, b.BPP) {
		return fmt.Errorf("%w: %d bytes for %dx%dx%d", ErrSize, len(b.Bits), b.W, b.H, b.BPP)
	}
	return nil
}

// BitOffset returns the offset of the first bit of pixel (x, y).
func (b *Bitmap) BitOffset(x, y int) int {
	return ((b.H-1-y)*b.W + (b.W - 1 - x)) * b.BPP
}

// RowOffset returns the offset of the first bit of the run of pixels
// (x+w-1, y) ... (x, y), which are stored consecutively.
func (b *Bitmap) RowOffset(x, y, w int) int {
	return b.BitOffset(x+w-1, y)
}

func (b *Bitmap) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.W && y < b.H
}

// Index returns the palette index of pixel (x, y).
func (b *Bitmap) Index(x, y int) int {
	if b.BPP == 0 || !b.in(x, y) {
		return 0
	}
	return int(bitblit.Get(b.Bits, b.BitOffset(x, y), b.BPP))
}

// SetIndex sets the palette index of pixel (x, y).
func (b *Bitmap) SetIndex(x, y, i int) {
	if b.BPP == 0 || !b.in(x, y) {
		return
	}
	bitblit.Put(b.Bits, b.BitOffset(x, y), b.BPP, uint8(i))
}

// Fill sets every pixel to the palette entry closest to c. Transparent
// colors leave the bitmap unchanged.
func (b *Bitmap) Fill(c Color) {
	if !c.Opaque() || b.BPP == 0 {
		return
	}
	i := uint8(b.Palette.FindBest(c))

	// 24 bits hold a whole number of pixels for every depth up to 4.
	var pattern [3]byte
	for off := 0; off+b.BPP <= 24; off += b.BPP {
		bitblit.Put(pattern[:], off, b.BPP, i)
	}
	nbits := b.W * b.H * b.BPP
	full := nbits / 8
	for j := 0; j < full; j++ {
		b.Bits[j] = pattern[j%3]
	}
	if rem := nbits % 8; rem != 0 {
		bitblit.Copy(b.Bits, full*8, pattern[:], (full%3)*8, rem)
	}
}

// DrawPixel sets pixel (x, y) to the palette entry closest to c. Pixels
// outside of b and transparent colors are ignored.
func (b *Bitmap) DrawPixel(x, y int, c Color) {
	if !c.Opaque() || !b.in(x, y) {
		return
	}
	b.SetIndex(x, y, b.Palette.FindBest(c))
}

// LowestUnusedIndex returns the lowest palette index no pixel refers to.
func (b *Bitmap) LowestUnusedIndex() (int, bool) {
	for i := range b.Palette {
		used := false
		for y := 0; y < b.H && !used; y++ {
			for x := 0; x < b.W; x++ {
				if b.Index(x, y) == i {
					used = true
					break
				}
			}
		}
		if !used {
			return i, true
		}
	}
	return 0, false
}

// Invert replaces every index i by (1<<BPP)-1-i.
func (b *Bitmap) Invert() {
	if b.BPP == 0 {
		return
	}
	nbits := b.W * b.H * b.BPP
	full := nbits / 8
	for j := 0; j < full; j++ {
		b.Bits[j] = ^b.Bits[j]
	}
	if rem := nbits % 8; rem != 0 {
		b.Bits[full] ^= ^byte(0xff >> uint(rem))
	}
}

func (b *Bitmap) ColorModel() color.Model { return ColorModel }

func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.W, b.H)
}

func (b *Bitmap) At(x, y int) color.Color {
	if !b.in(x, y) {
		return Transparent
	}
	return b.Palette[b.Index(x, y)]
}

// Set implements draw.Image. Unlike DrawPixel it also applies transparent
// colors by their best match.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetIndex(x, y, b.Palette.FindBest(ColorOf(c)))
}

// SubImage returns a copy of the part of b inside r.
func (b *Bitmap) SubImage(r image.Rectangle) *Bitmap {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil
	}
	sub := New(r.Dx(), r.Dy(), b.BPP, b.Palette)
	if b.BPP == 0 {
		return sub
	}
	for y := 0; y < r.Dy(); y++ {
		bitblit.Copy(sub.Bits, sub.RowOffset(0, y, sub.W),
			b.Bits, b.RowOffset(r.Min.X, r.Min.Y+y, sub.W), sub.W*b.BPP)
	}
	return sub
}
