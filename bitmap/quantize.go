package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/bits"
	"slices"

	"github.com/ericpauley/go-quantize/quantize"
)

// FromImage converts img to an indexed bitmap with at most maxColors colors.
// The palette is sorted by ARGB value, entries no pixel uses are dropped and
// BPP is the smallest depth that can address the remaining colors.
func FromImage(img image.Image, maxColors int, dither bool) (*Bitmap, error) {
	r := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrSize)
	}
	if maxColors < 1 || maxColors > 1<<MaxBPP {
		return nil, fmt.Errorf("%w: %d colors", ErrPalette, maxColors)
	}

	q := quantize.MedianCutQuantizer{}
	qp := q.Quantize(make([]color.Color, 0, maxColors), img)
	var pal Palette
	for _, c := range qp {
		pal = append(pal, ColorOf(c))
	}
	slices.Sort(pal)
	pal = slices.Compact(pal)
	if len(pal) == 0 {
		pal = Palette{Transparent}
	}

	var d draw.Drawer = draw.Src
	if dither {
		d = draw.FloydSteinberg
	}
	paletted := image.NewPaletted(r, pal.ColorPalette())
	d.Draw(paletted, r, img, r.Min)

	var used [1 << MaxBPP]bool
	for _, i := range paletted.Pix {
		used[i] = true
	}
	var remap [1 << MaxBPP]int
	var compact Palette
	for i, c := range pal {
		if used[i] {
			remap[i] = len(compact)
			compact = append(compact, c)
		}
	}

	bpp := bits.Len(uint(len(compact) - 1))
	for len(compact) < 1<<bpp {
		compact = append(compact, Transparent)
	}

	b := New(r.Dx(), r.Dy(), bpp, compact)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.SetIndex(x-r.Min.X, y-r.Min.Y, remap[paletted.ColorIndexAt(x, y)])
		}
	}
	return b, nil
}
