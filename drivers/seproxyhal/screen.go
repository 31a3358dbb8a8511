package seproxyhal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Screen models the display side of the peripheral controller. It applies
// display commands to an RGBA image.
type Screen struct {
	img *image.RGBA

	// Processed is called after every applied command, usually to
	// acknowledge it with a DisplayProcessed packet.
	Processed func()
}

func NewScreen(r image.Rectangle) *Screen {
	return &Screen{img: image.NewRGBA(r)}
}

func (s *Screen) Image() *image.RGBA {
	return s.img
}

// Apply draws cmd onto the screen.
//
// The payload is the framebuffer run from the bottom right to the top left
// pixel of the rectangle, MSB first, byte reversed. Reading it LSB first
// after skipping the padding bits yields the pixels from the top left,
// least significant value bit first.
func (s *Screen) Apply(cmd *BitmapCommand) {
	w, h := cmd.Rect.Dx(), cmd.Rect.Dy()
	n := w * h
	pad := 8*len(cmd.Data) - n*cmd.BPP
	for p := 0; p < n; p++ {
		pos := pad + p*cmd.BPP
		var v int
		for b := 0; b < cmd.BPP; b++ {
			bit := pos + b
			v |= int(cmd.Data[bit/8]>>uint(bit%8)&1) << uint(b)
		}
		s.img.Set(cmd.Rect.Min.X+p%w, cmd.Rect.Min.Y+p/w, cmd.Palette[v])
	}
	if s.Processed != nil {
		s.Processed()
	}
}

// HandlePacket applies a TagDisplayBitmap packet.
func (s *Screen) HandlePacket(p Packet) error {
	if p.Tag != TagDisplayBitmap {
		return fmt.Errorf("%w: %v", ErrTag, p.Tag)
	}
	var cmd BitmapCommand
	if err := cmd.UnmarshalBinary(p.Data); err != nil {
		return err
	}
	s.Apply(&cmd)
	return nil
}

// ReadPackets handles packets from r until it is exhausted.
func (s *Screen) ReadPackets(r io.Reader) error {
	for {
		p, err := ReadPacket(r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.HandlePacket(p); err != nil {
			return err
		}
	}
}

// At returns the color of pixel (x, y).
func (s *Screen) At(x, y int) color.Color {
	return s.img.At(x, y)
}
