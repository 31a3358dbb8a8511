package seproxyhal

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/clktmr/bui/bitmap"
)

// BitmapCommand draws a packed bitmap onto the display. Data holds the
// pixels in the framebuffer layout, byte reversed.
type BitmapCommand struct {
	Rect    image.Rectangle
	BPP     int
	Palette bitmap.Palette
	Data    []byte
}

// x, y, w, h (int16 each) and bpp
const bitmapHeaderLen = 9

func (c *BitmapCommand) MarshalBinary() ([]byte, error) {
	if c.BPP < 1 || c.BPP > bitmap.MaxBPP || len(c.Palette) != 1<<c.BPP {
		return nil, fmt.Errorf("%w: %d colors at %d bpp", ErrLength, len(c.Palette), c.BPP)
	}
	if want := bitmap.Size(c.Rect.Dx(), c.Rect.Dy(), c.BPP); len(c.Data) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrLength, len(c.Data), want)
	}
	buf := make([]byte, bitmapHeaderLen, bitmapHeaderLen+4*len(c.Palette)+len(c.Data))
	binary.BigEndian.PutUint16(buf[0:], uint16(int16(c.Rect.Min.X)))
	binary.BigEndian.PutUint16(buf[2:], uint16(int16(c.Rect.Min.Y)))
	binary.BigEndian.PutUint16(buf[4:], uint16(c.Rect.Dx()))
	binary.BigEndian.PutUint16(buf[6:], uint16(c.Rect.Dy()))
	buf[8] = byte(c.BPP)
	for _, col := range c.Palette {
		buf = binary.BigEndian.AppendUint32(buf, uint32(col))
	}
	return append(buf, c.Data...), nil
}

func (c *BitmapCommand) UnmarshalBinary(data []byte) error {
	if len(data) < bitmapHeaderLen {
		return fmt.Errorf("%w: bitmap header", ErrLength)
	}
	x := int(int16(binary.BigEndian.Uint16(data[0:])))
	y := int(int16(binary.BigEndian.Uint16(data[2:])))
	w := int(binary.BigEndian.Uint16(data[4:]))
	h := int(binary.BigEndian.Uint16(data[6:]))
	bpp := int(data[8])
	if bpp < 1 || bpp > bitmap.MaxBPP {
		return fmt.Errorf("%w: %d bpp", ErrLength, bpp)
	}
	data = data[bitmapHeaderLen:]
	ncolors := 1 << bpp
	if len(data) != 4*ncolors+bitmap.Size(w, h, bpp) {
		return fmt.Errorf("%w: %d bytes for %dx%d at %d bpp", ErrLength, len(data), w, h, bpp)
	}
	c.Rect = image.Rect(x, y, x+w, y+h)
	c.BPP = bpp
	c.Palette = make(bitmap.Palette, ncolors)
	for i := range c.Palette {
		c.Palette[i] = bitmap.Color(binary.BigEndian.Uint32(data[4*i:]))
	}
	c.Data = append([]byte(nil), data[4*ncolors:]...)
	return nil
}

// Transport sends display commands as packets to W.
type Transport struct {
	W io.Writer
}

func (t *Transport) DisplayBitmap(r image.Rectangle, palette bitmap.Palette, bpp int, data []byte) error {
	cmd := BitmapCommand{Rect: r, BPP: bpp, Palette: palette, Data: data}
	payload, err := cmd.MarshalBinary()
	if err != nil {
		return err
	}
	return WritePacket(t.W, Packet{TagDisplayBitmap, payload})
}
