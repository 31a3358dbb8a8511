// Package display implements the rendering context of the 128x32 display.
//
// All drawing goes to an indexed framebuffer in the memory layout of the
// display. The context tracks the bounding box of all pixels modified since
// they were last sent, the dirty rectangle, and Flush sends it in chunks
// small enough for a single transport frame.
package display

import (
	"image"

	"github.com/clktmr/bui/bitmap"
	"github.com/clktmr/bui/debug"
	"github.com/clktmr/bui/drivers/buttons"
	"github.com/retroenv/retrogolib/log"
)

const (
	Width  = 128
	Height = 32

	// DefaultFrameSize is the payload limit of a single bitmap transfer.
	DefaultFrameSize = 64
	// DefaultTickerInterval is the time between ticker events in
	// milliseconds.
	DefaultTickerInterval = 100
)

var Bounds = image.Rect(0, 0, Width, Height)

// Transport sends packed pixel data to the display. It must only be called
// when the display is ready to accept the next bitmap.
type Transport interface {
	DisplayBitmap(r image.Rectangle, palette bitmap.Palette, bpp int, data []byte) error
}

type discard struct{}

func (discard) DisplayBitmap(image.Rectangle, bitmap.Palette, int, []byte) error { return nil }

// Config holds the parameters of a Context. Zero values select the defaults.
type Config struct {
	BPP            int // 1 to 4, defaults to 1
	Palette        bitmap.Palette
	Transport      Transport
	FrameSize      int    // bytes, defaults to DefaultFrameSize
	TickerInterval uint32 // milliseconds, defaults to DefaultTickerInterval
	Logger         *log.Logger
}

func (cfg *Config) setDefaults() {
	if cfg.BPP == 0 {
		cfg.BPP = 1
	}
	if cfg.Palette == nil {
		cfg.Palette = grayscale(cfg.BPP)
	}
	if cfg.Transport == nil {
		cfg.Transport = discard{}
	}
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = DefaultFrameSize
	}
	// A frame must hold at least one full column.
	cfg.FrameSize = max(cfg.FrameSize, bitmap.Size(1, Height, cfg.BPP))
	if cfg.TickerInterval == 0 {
		cfg.TickerInterval = DefaultTickerInterval
	}
	cfg.Logger = debug.LoggerOrDefault(cfg.Logger)
}

func grayscale(bpp int) bitmap.Palette {
	if bpp == 1 {
		return bitmap.Mono
	}
	p := make(bitmap.Palette, 1<<bpp)
	for i := range p {
		v := uint8(i * 255 / (len(p) - 1))
		p[i] = bitmap.ARGB(0xff, v, v, v)
	}
	return p
}

// Context owns the framebuffer, the dirty rectangle and the button state of
// one display.
type Context struct {
	fb    *bitmap.Bitmap
	dirty image.Rectangle

	transport Transport
	frame     []byte
	ticker    uint32

	buttons *buttons.Decoder
	handler buttons.Handler

	log *log.Logger
}

// New returns a context with a cleared framebuffer, all of it dirty.
func New(cfg Config) *Context {
	cfg.setDefaults()
	debug.Assert(cfg.BPP >= 1 && cfg.BPP <= bitmap.MaxBPP, "display depth out of range")
	debug.Assert(len(cfg.Palette) == 1<<cfg.BPP, "display palette size mismatch")

	c := &Context{
		fb:        bitmap.New(Width, Height, cfg.BPP, cfg.Palette),
		dirty:     Bounds,
		transport: cfg.Transport,
		frame:     make([]byte, cfg.FrameSize),
		ticker:    cfg.TickerInterval,
		buttons:   buttons.NewDecoder(cfg.Logger),
		log:       cfg.Logger,
	}
	return c
}

// IsDisplayed reports whether the display shows the framebuffer.
func (c *Context) IsDisplayed() bool {
	return c.dirty.Empty()
}

// Dirty returns the region not yet sent to the display.
func (c *Context) Dirty() image.Rectangle {
	return c.dirty
}

func (c *Context) extend(r image.Rectangle) {
	c.dirty = c.dirty.Union(r)
}

// Framebuffer returns the framebuffer. Modifying it directly bypasses the
// dirty tracking.
func (c *Context) Framebuffer() *bitmap.Bitmap {
	return c.fb
}

// At returns the palette index of pixel (x, y).
func (c *Context) At(x, y int) int {
	return c.fb.Index(x, y)
}

func (c *Context) Palette() bitmap.Palette {
	return c.fb.Palette
}

// Buttons returns the button state decoded from button push packets.
func (c *Context) Buttons() *buttons.Decoder {
	return c.buttons
}
