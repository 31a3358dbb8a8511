// Package bkb implements a binary keyboard: every choice of the left or
// right button halves the set of candidate keys until a single key is left.
//
// Layouts and typed text are ISO-8859-1 encoded bytes. The option keys
// switch to the numeric or symbol layout for the next key, or toggle the
// case of the layout.
package bkb

import (
	"sync"

	"github.com/clktmr/bui/bitmap"
	"github.com/clktmr/bui/debug"
	"github.com/clktmr/bui/drivers/buttons"
	"github.com/clktmr/bui/drivers/display"
	"github.com/clktmr/bui/fonts"
	"github.com/clktmr/bui/icons"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/text/encoding/charmap"
)

const (
	OptionNumerics   = '\x01'
	OptionSymbols    = '\x02'
	OptionToggleCase = '\x03'
)

const (
	Alphabetic   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Numeric      = "0123456789"
	Alphanumeric = Alphabetic + string(OptionNumerics)
	Hexadecimal  = "0123456789ABCDEF"
	Symbols      = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	Standard     = Alphabetic + " " + string(OptionNumerics) + string(OptionSymbols) + string(OptionToggleCase)
)

// Capacity is the maximum number of typed characters.
const Capacity = 19

// Animation lengths in ticks.
const (
	slideTicks  = 9
	cursorTicks = 25 // half the blink period
)

var (
	numeric = []byte(Numeric)
	symbols = []byte(Symbols)
)

var keyFace = sync.OnceValue(func() *fonts.Face {
	if f, err := fonts.Mono(8); err == nil {
		return f
	}
	return fonts.Basic()
})

// Result is the outcome of a choice: the typed character, None or
// Backspace.
type Result int

const (
	None      Result = -1
	Backspace Result = -2
)

// Rune returns the typed character.
func (r Result) Rune() (rune, bool) {
	if r < 0 {
		return 0, false
	}
	return rune(r), true
}

type Keyboard struct {
	// Face is used for the keys and the typed text.
	Face *fonts.Face

	layout []byte
	typed  []byte
	option byte

	// choices so far, starting at the MSB, 1 is right
	bits  uint8
	nbits int

	slide      *gween.Tween // nil without animations
	slideTick  int
	cursorTick int
}

// New returns a keyboard for layout with typed already entered.
func New(layout string, typed []byte, animations bool) *Keyboard {
	debug.Assert(len(layout) > 0, "empty keyboard layout")
	k := &Keyboard{
		Face:   keyFace(),
		layout: []byte(layout),
	}
	k.SetTyped(typed)
	if animations {
		k.slide = gween.New(0, 1, slideTicks, ease.Linear)
		k.slideTick = slideTicks
	}
	return k
}

// SetTyped replaces the typed text and restarts the current choice.
func (k *Keyboard) SetTyped(typed []byte) {
	debug.Assert(len(typed) <= Capacity, "typed text exceeds keyboard capacity")
	k.typed = append(make([]byte, 0, Capacity), typed...)
	k.bits, k.nbits = 0, 0
}

// Typed returns the typed characters.
func (k *Keyboard) Typed() []byte {
	return k.typed
}

// Text returns the typed characters decoded to UTF-8.
func (k *Keyboard) Text() string {
	s, err := charmap.ISO8859_1.NewDecoder().String(string(k.typed))
	if err != nil {
		return string(k.typed)
	}
	return s
}

func (k *Keyboard) keys() []byte {
	switch k.option {
	case OptionNumerics:
		return numeric
	case OptionSymbols:
		return symbols
	}
	return k.layout
}

func ceilDiv(x, y int) int {
	return (x + y - 1) / y
}

// section returns the keys left after the first n choices. Past the end of
// the active layout is the backspace key.
func (k *Keyboard) section(n int) (first, count int) {
	count = len(k.keys())
	if len(k.typed) != 0 && k.option == 0 {
		count++
	}
	for i := range n {
		if k.bits>>(7-i)&1 == 0 {
			count = ceilDiv(count, 2)
		} else {
			first += ceilDiv(count, 2)
			count /= 2
		}
	}
	return first, count
}

func (k *Keyboard) restartSlide() {
	if k.slide != nil {
		k.slideTick = 0
	}
}

func (k *Keyboard) finishSlide() {
	if k.slide != nil {
		k.slideTick = slideTicks
	}
}

// Choose selects the left or right half of the remaining keys.
func (k *Keyboard) Choose(side buttons.Button) Result {
	if len(k.typed) == Capacity {
		// only the backspace key is left
		if side == buttons.Left {
			k.typed = k.typed[:len(k.typed)-1]
			k.finishSlide()
			return Backspace
		}
		return None
	}

	if side == buttons.Right {
		k.bits |= 0x80 >> k.nbits
	}
	k.nbits++
	keys := k.keys()
	i, n := k.section(k.nbits)
	if n != 1 {
		k.restartSlide()
		return None
	}

	k.bits, k.nbits = 0, 0
	k.finishSlide()
	if i == len(keys) {
		k.typed = k.typed[:len(k.typed)-1]
		return Backspace
	}
	switch ch := keys[i]; ch {
	case OptionNumerics, OptionSymbols:
		k.option = ch
		return None
	case OptionToggleCase:
		toggleCase(k.layout)
		k.option = 0
		return None
	default:
		k.typed = append(k.typed, ch)
		k.option = 0
		return Result(ch)
	}
}

func toggleCase(s []byte) {
	for i, c := range s {
		switch {
		case 'A' <= c && c <= 'Z':
			s[i] += 'a' - 'A'
		case 'a' <= c && c <= 'z':
			s[i] -= 'a' - 'A'
		}
	}
}

// Tick advances the animations by one step and reports whether the
// keyboard must be redrawn.
func (k *Keyboard) Tick() bool {
	changed := false
	if k.slide != nil && k.slideTick < slideTicks {
		k.slideTick++
		changed = true
	}
	k.cursorTick = (k.cursorTick + 1) % (2 * cursorTicks)
	if k.cursorTick == 0 || k.cursorTick == cursorTicks {
		changed = true
	}
	return changed
}

func keyPos(right bool, i int) (x, y int) {
	x = 1 + 6*(i%9)
	if right {
		x += 73
	}
	if i >= 9 {
		y = 9
	}
	return x, y
}

// slidePos interpolates between the previous and the current position of a
// key.
func (k *Keyboard) slidePos(px, py, x, y int) (int, int) {
	t, _ := k.slide.Set(float32(k.slideTick))
	return px + int(float32(x-px)*t), py + int(float32(y-py)*t)
}

func (k *Keyboard) drawKey(ctx *display.Context, key byte, x, y int) {
	switch key {
	case OptionNumerics:
		key = '#'
	case OptionSymbols:
		key = '@'
	case OptionToggleCase:
		ctx.DrawBitmapFull(icons.ToggleCase, x, y)
		return
	case ' ':
		ctx.DrawBitmapFull(icons.Space, x, y)
		return
	}
	fonts.DrawChar(ctx, rune(key), x, y, fonts.LeftTop, k.Face, bitmap.White)
}

// Draw draws the keys of both halves above the text box.
func (k *Keyboard) Draw(ctx *display.Context) {
	for i := range Capacity + 1 {
		ctx.FillRect(4+i*6, 31, 5, 1, bitmap.White)
	}
	for i, ch := range k.typed {
		fonts.DrawChar(ctx, rune(ch), 4+i*6, 22, fonts.LeftTop, k.Face, bitmap.White)
	}
	if k.slide == nil || k.cursorTick < 10 {
		ctx.FillRect(6+len(k.typed)*6, 22, 1, 7, bitmap.White)
	}

	ctx.DrawBitmapFull(icons.Left, 58, 5)
	ctx.DrawBitmapFull(icons.Right, 66, 5)

	if len(k.typed) == Capacity {
		ctx.DrawBitmapFull(icons.LeftFilled, 1, 0)
		return
	}

	keys := k.keys()
	prevFirst, prevCount := k.section(max(k.nbits-1, 0))
	first, count := k.section(k.nbits)
	leftFirst, leftCount := first, ceilDiv(count, 2)
	rightFirst, rightCount := first+leftCount, count/2
	prevLeftFirst := prevFirst
	prevRightFirst := prevFirst + ceilDiv(prevCount, 2)
	sliding := k.slide != nil && k.slideTick < slideTicks

	for i := range leftCount {
		key := leftFirst + i
		x, y := keyPos(false, i)
		if sliding && key >= prevRightFirst {
			// keys coming from the right start on its top row
			px, _ := keyPos(true, key-prevRightFirst)
			x, y = k.slidePos(px, 0, x, y)
		}
		k.drawKey(ctx, keys[key], x, y)
	}

	for i := range rightCount {
		key := rightFirst + i
		x, y := keyPos(true, i)
		if sliding {
			var px, py int
			if key < prevRightFirst {
				px, py = keyPos(false, key-prevLeftFirst)
			} else {
				px, py = keyPos(true, key-prevRightFirst)
			}
			x, y = k.slidePos(px, py, x, y)
		}
		if key == len(keys) {
			ctx.DrawBitmapFull(icons.LeftFilled, x+1, y)
		} else {
			k.drawKey(ctx, keys[key], x, y)
		}
	}
}
