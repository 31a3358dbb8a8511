package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/clktmr/bui/bitmap"
)

// Driver implements pix.Driver on top of a Context, so a pix.Display can
// render text and images into the framebuffer.
type Driver struct {
	ctx  *Context
	fill bitmap.Color
}

func (c *Context) Driver() *Driver {
	return &Driver{ctx: c, fill: bitmap.White}
}

func (d *Driver) Draw(r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op draw.Op) {
	ctx := d.ctx
	if mask == nil {
		switch src := src.(type) {
		case *image.Uniform:
			col := bitmap.ColorOf(src.C)
			if op == draw.Src && !col.Opaque() {
				col = ctx.fb.Palette[0]
			}
			ctx.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), col)
			return
		case *bitmap.Bitmap:
			ctx.DrawBitmap(src, sp.X, sp.Y, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
			return
		}
	}

	dr := r.Intersect(Bounds)
	if dr.Empty() {
		return
	}
	sp = sp.Add(dr.Min.Sub(r.Min))
	mp = mp.Add(dr.Min.Sub(r.Min))
	ctx.extend(dr)

	for y := 0; y < dr.Dy(); y++ {
		for x := 0; x < dr.Dx(); x++ {
			if mask != nil {
				if _, _, _, a := mask.At(mp.X+x, mp.Y+y).RGBA(); a < 0x8000 {
					continue
				}
			}
			col := bitmap.ColorOf(src.At(sp.X+x, sp.Y+y))
			if !col.Opaque() {
				if op == draw.Over {
					continue
				}
				col = ctx.fb.Palette[0]
			}
			ctx.fb.SetIndex(dr.Min.X+x, dr.Min.Y+y, ctx.fb.Palette.FindBest(col))
		}
	}
}

func (d *Driver) Fill(r image.Rectangle) {
	d.ctx.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), d.fill)
}

func (d *Driver) SetColor(c color.Color) {
	d.fill = bitmap.ColorOf(c)
}

func (d *Driver) SetDir(dir int) image.Rectangle {
	return Bounds
}

// Flush is a no-op, drawing is synchronous. The dirty rectangle is sent by
// Context.Flush.
func (d *Driver) Flush() {}

func (d *Driver) Err(clear bool) error {
	return nil
}
