package display

import (
	"fmt"
	"image"

	"github.com/clktmr/bui/bitblit"
	"github.com/clktmr/bui/bitmap"
	"github.com/retroenv/retrogolib/log"
)

// Flush sends the next chunk of the dirty rectangle and reports whether
// anything was sent. Call it again for every transport acknowledgement until
// it returns false.
//
// The chunk starts at the top left corner of the dirty rectangle. If the
// rectangle is wider than high it is cut down in width, otherwise in
// height, until it fits into a single frame. On error the dirty rectangle
// is left unchanged.
func (c *Context) Flush() (bool, error) {
	if c.IsDisplayed() {
		return false, nil
	}
	d := c.dirty
	bpp := c.fb.BPP
	w, h := d.Dx(), d.Dy()
	if w > h {
		for w > 1 && bitmap.Size(w, h, bpp) > len(c.frame) {
			w--
		}
	} else {
		for h > 1 && bitmap.Size(w, h, bpp) > len(c.frame) {
			h--
		}
	}
	r := image.Rect(d.Min.X, d.Min.Y, d.Min.X+w, d.Min.Y+h)

	buf := c.frame[:bitmap.Size(w, h, bpp)]
	clear(buf)
	for i := 0; i < h; i++ {
		bitblit.Merge(buf, w*i*bpp, c.fb.Bits, c.fb.RowOffset(r.Min.X, r.Max.Y-1-i, w), w*bpp)
	}
	bitblit.ReverseBytes(buf)

	if err := c.transport.DisplayBitmap(r, c.fb.Palette, bpp, buf); err != nil {
		return false, fmt.Errorf("display: sending %v: %w", r, err)
	}
	c.log.Debug("Flushed", log.Stringer("rect", r), log.Int("bytes", len(buf)))

	if w != d.Dx() {
		c.dirty.Min.X += w
	} else {
		c.dirty.Min.Y += h
	}
	if c.dirty.Empty() {
		c.dirty = image.Rectangle{}
	}
	return true, nil
}
