package display

import (
	"image"

	"github.com/clktmr/bui/bitblit"
	"github.com/clktmr/bui/bitmap"
)

// Fill sets the whole framebuffer to the palette entry closest to col and
// marks it dirty.
func (c *Context) Fill(col bitmap.Color) {
	c.fb.Fill(col)
	c.dirty = Bounds
}

// clip clips the w×h rectangle at (x, y) against the display.
func clip(x, y, w, h int) (image.Rectangle, bool) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w <= 0 || h <= 0 || x >= Width || y >= Height {
		return image.Rectangle{}, false
	}
	w = min(w, Width-x)
	h = min(h, Height-y)
	return image.Rect(x, y, x+w, y+h), true
}

// FillRect sets the w×h rectangle at (x, y) to col. Parts outside of the
// display are ignored.
func (c *Context) FillRect(x, y, w, h int, col bitmap.Color) {
	if !col.Opaque() {
		return
	}
	r, ok := clip(x, y, w, h)
	if !ok {
		return
	}
	c.extend(r)

	i := c.fb.Palette.FindBest(col)
	if c.fb.BPP == 1 {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			bitblit.SetBits(c.fb.Bits, c.fb.RowOffset(r.Min.X, y, r.Dx()), r.Dx(), i == 1)
		}
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.fb.SetIndex(x, y, i)
		}
	}
}

// DrawPixel sets pixel (x, y) to col.
func (c *Context) DrawPixel(x, y int, col bitmap.Color) {
	if !col.Opaque() {
		return
	}
	r, ok := clip(x, y, 1, 1)
	if !ok {
		return
	}
	c.extend(r)
	c.fb.DrawPixel(x, y, col)
}

// clipBlit clips a w×h blit from (srcX, srcY) of bm to (dstX, dstY) against
// the display and bm, shifting both origins.
func clipBlit(bm *bitmap.Bitmap, srcX, srcY, dstX, dstY, w, h int) (src image.Point, dst image.Rectangle, ok bool) {
	if dstX < 0 {
		srcX -= dstX
		w += dstX
		dstX = 0
	}
	if dstY < 0 {
		srcY -= dstY
		h += dstY
		dstY = 0
	}
	if srcX < 0 {
		dstX -= srcX
		w += srcX
		srcX = 0
	}
	if srcY < 0 {
		dstY -= srcY
		h += srcY
		srcY = 0
	}
	if w <= 0 || h <= 0 {
		return
	}
	if dstX >= Width || dstY >= Height || srcX >= bm.W || srcY >= bm.H {
		return
	}
	w = min(w, Width-dstX, bm.W-srcX)
	h = min(h, Height-dstY, bm.H-srcY)
	return image.Pt(srcX, srcY), image.Rect(dstX, dstY, dstX+w, dstY+h), true
}

// DrawBitmap copies the w×h region at (srcX, srcY) of bm to (dstX, dstY).
// Pixels with a transparent palette color leave the framebuffer unchanged.
func (c *Context) DrawBitmap(bm *bitmap.Bitmap, srcX, srcY, dstX, dstY, w, h int) {
	c.blit(bm, srcX, srcY, dstX, dstY, w, h, false)
}

// DrawMaskedBitmap is like DrawBitmap, but also treats pixels with index 0
// as transparent.
func (c *Context) DrawMaskedBitmap(bm *bitmap.Bitmap, srcX, srcY, dstX, dstY, w, h int) {
	c.blit(bm, srcX, srcY, dstX, dstY, w, h, true)
}

// DrawBitmapFull draws all of bm at (x, y).
func (c *Context) DrawBitmapFull(bm *bitmap.Bitmap, x, y int) {
	c.DrawBitmap(bm, 0, 0, x, y, bm.W, bm.H)
}

// DrawMaskedBitmapFull draws all of bm at (x, y), index 0 transparent.
func (c *Context) DrawMaskedBitmapFull(bm *bitmap.Bitmap, x, y int) {
	c.DrawMaskedBitmap(bm, 0, 0, x, y, bm.W, bm.H)
}

func (c *Context) classify(col bitmap.Color) bitblit.Semantic {
	if !col.Opaque() {
		return bitblit.Transparent
	}
	if c.fb.Palette.FindBest(col) == 0 {
		return bitblit.Zero
	}
	return bitblit.One
}

func (c *Context) blit(bm *bitmap.Bitmap, srcX, srcY, dstX, dstY, w, h int, masked bool) {
	sp, r, ok := clipBlit(bm, srcX, srcY, dstX, dstY, w, h)
	if !ok {
		return
	}
	c.extend(r)

	if bm.BPP == 1 && c.fb.BPP == 1 {
		c0 := bitblit.Transparent
		if !masked {
			c0 = c.classify(bm.Palette[0])
		}
		op := bitblit.SemanticOp(c0, c.classify(bm.Palette[1]))
		w := r.Dx()
		for i := 0; i < r.Dy(); i++ {
			bitblit.Blit(op,
				c.fb.Bits, c.fb.RowOffset(r.Min.X, r.Min.Y+i, w),
				bm.Bits, bm.RowOffset(sp.X, sp.Y+i, w), w)
		}
		return
	}

	// Map source to framebuffer indices once, -1 is transparent.
	var lut [1 << bitmap.MaxBPP]int
	for i, col := range bm.Palette {
		lut[i] = -1
		if col.Opaque() && !(masked && i == 0) {
			lut[i] = c.fb.Palette.FindBest(col)
		}
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if i := lut[bm.Index(sp.X+x, sp.Y+y)]; i >= 0 {
				c.fb.SetIndex(r.Min.X+x, r.Min.Y+y, i)
			}
		}
	}
}
