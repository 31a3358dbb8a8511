package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var gray4 = Palette{Black, 0xff555555, 0xffaaaaaa, White}

func palette(bpp int) Palette {
	p := make(Palette, 1<<bpp)
	for i := range p {
		v := uint8(i * 255 / max(len(p)-1, 1))
		p[i] = ARGB(0xff, v, v, v)
	}
	return p
}

func TestLayoutIsReflected(t *testing.T) {
	b := New(4, 2, 1, Mono)
	b.DrawPixel(0, 0, White)
	assert.True(t, bytes.Equal([]byte{0x01}, b.Bits))

	b = New(4, 2, 1, Mono)
	b.DrawPixel(3, 1, White)
	assert.True(t, bytes.Equal([]byte{0x80}, b.Bits))

	b = New(4, 2, 1, Mono)
	b.DrawPixel(3, 0, White)
	assert.True(t, bytes.Equal([]byte{0x08}, b.Bits))
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		b   Bitmap
		err error
	}{
		"ok":        {Bitmap{W: 2, H: 2, BPP: 1, Palette: Mono, Bits: []byte{0}}, nil},
		"bpp0":      {Bitmap{W: 2, H: 2, BPP: 0, Palette: Palette{White}}, nil},
		"bpp5":      {Bitmap{W: 2, H: 2, BPP: 5, Palette: make(Palette, 32)}, ErrBPP},
		"palette":   {Bitmap{W: 2, H: 2, BPP: 2, Palette: Mono, Bits: []byte{0}}, ErrPalette},
		"width":     {Bitmap{W: 0, H: 2, BPP: 1, Palette: Mono}, ErrSize},
		"shortBits": {Bitmap{W: 4, H: 4, BPP: 1, Palette: Mono, Bits: []byte{0}}, ErrSize},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.b.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tc.err))
			}
		})
	}
}

func TestFill(t *testing.T) {
	for bpp := 1; bpp <= MaxBPP; bpp++ {
		pal := palette(bpp)
		// 5x3 pixels never end on a byte boundary.
		b := New(5, 3, bpp, pal)
		want := len(pal) - 1
		b.Fill(pal[want])
		for y := 0; y < b.H; y++ {
			for x := 0; x < b.W; x++ {
				if b.Index(x, y) != want {
					t.Fatalf("bpp %d: pixel (%d,%d) = %d, want %d", bpp, x, y, b.Index(x, y), want)
				}
			}
		}
		if rem := 15 * bpp % 8; rem != 0 {
			last := b.Bits[len(b.Bits)-1]
			assert.Equal(t, byte(0), last&(0xff>>uint(rem)))
		}
	}
}

func TestFillIgnoresTransparent(t *testing.T) {
	b := New(8, 1, 1, Mono)
	b.Fill(0x7fffffff)
	assert.Equal(t, byte(0), b.Bits[0])
	b.Fill(0x80ffffff)
	assert.Equal(t, byte(0xff), b.Bits[0])
}

func TestDrawPixelBounds(t *testing.T) {
	b := New(3, 3, 2, gray4)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		b.DrawPixel(p.X, p.Y, White)
	}
	b.DrawPixel(1, 1, Transparent)
	assert.True(t, bytes.Equal(make([]byte, len(b.Bits)), b.Bits))

	b.DrawPixel(1, 1, 0xffa0a0a0)
	assert.Equal(t, 2, b.Index(1, 1))
	assert.Equal(t, Color(0xffaaaaaa), b.At(1, 1).(Color))
}

func TestFindBest(t *testing.T) {
	tests := map[string]struct {
		p    Palette
		c    Color
		want int
	}{
		"exact":        {gray4, 0xff555555, 1},
		"nearest":      {gray4, 0xff606060, 1},
		"alphaIgnored": {gray4, 0x10ffffff, 3},
		"tieLowest":    {Palette{0xff000000, 0xff000002}, 0xff000001, 0},
		"exactFirst":   {Palette{White, Black, Black}, Black, 1},
		"single":       {Palette{0xff123456}, White, 0},
		"exactAlpha":   {Palette{0xffffffff, 0x00ffffff}, 0x00ffffff, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.FindBest(tc.c))
		})
	}
}

func TestColorConversion(t *testing.T) {
	assert.Equal(t, Color(0xff102030), ColorOf(color.RGBA{0x10, 0x20, 0x30, 0xff}))
	assert.Equal(t, Color(0xff102030), ColorOf(Color(0xff102030)))
	assert.Equal(t, Transparent, ColorOf(color.Transparent))
	assert.True(t, White.Opaque())
	assert.False(t, Color(0x7f000000).Opaque())
}

func TestLowestUnusedIndex(t *testing.T) {
	b := New(2, 2, 2, gray4)
	i, ok := b.LowestUnusedIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	b.SetIndex(0, 0, 1)
	b.SetIndex(1, 0, 2)
	i, ok = b.LowestUnusedIndex()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	b.SetIndex(0, 1, 3)
	_, ok = b.LowestUnusedIndex()
	assert.False(t, ok)
}

func TestInvert(t *testing.T) {
	b := New(3, 1, 2, gray4)
	b.SetIndex(0, 0, 1)
	b.Invert()
	assert.Equal(t, 2, b.Index(0, 0))
	assert.Equal(t, 3, b.Index(1, 0))
	assert.Equal(t, 3, b.Index(2, 0))
	assert.Equal(t, byte(0), b.Bits[0]&0x03)
}

func TestSubImage(t *testing.T) {
	b := New(6, 4, 1, Mono)
	b.DrawPixel(2, 1, White)
	b.DrawPixel(4, 2, White)
	sub := b.SubImage(image.Rect(2, 1, 5, 3))
	assert.Equal(t, 3, sub.W)
	assert.Equal(t, 2, sub.H)
	for y := 0; y < sub.H; y++ {
		for x := 0; x < sub.W; x++ {
			assert.Equal(t, b.Index(x+2, y+1), sub.Index(x, y))
		}
	}
	assert.True(t, b.SubImage(image.Rect(10, 10, 12, 12)) == nil)
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 18, 14))
	for y := 10; y < 14; y++ {
		for x := 10; x < 18; x++ {
			if x < 14 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	b, err := FromImage(img, 2, false)
	assert.NoError(t, err)
	assert.Equal(t, 8, b.W)
	assert.Equal(t, 4, b.H)
	assert.Equal(t, 1, b.BPP)
	assert.Equal(t, 2, len(b.Palette))
	assert.True(t, b.Palette[0] < b.Palette[1])
	assert.Equal(t, 1, b.Index(0, 0))
	assert.Equal(t, 0, b.Index(7, 3))
}

func TestFromImageErrors(t *testing.T) {
	_, err := FromImage(image.NewRGBA(image.Rectangle{}), 2, false)
	assert.True(t, errors.Is(err, ErrSize))
	_, err = FromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), 17, false)
	assert.True(t, errors.Is(err, ErrPalette))
}
