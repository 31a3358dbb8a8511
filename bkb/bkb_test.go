package bkb

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/clktmr/bui/drivers/buttons"
	"github.com/clktmr/bui/drivers/display"
	"github.com/retroenv/retrogolib/assert"
)

const (
	L = buttons.Left
	R = buttons.Right
)

func choose(k *Keyboard, sides ...buttons.Button) []Result {
	var res []Result
	for _, s := range sides {
		res = append(res, k.Choose(s))
	}
	return res
}

func TestChoose(t *testing.T) {
	tests := map[string]struct {
		layout string
		typed  string
		sides  []buttons.Button
		last   Result
		want   string
	}{
		"first key":  {Alphabetic, "", []buttons.Button{L, L, L, L, L}, 'A', "A"},
		"last key":   {Alphabetic, "", []buttons.Button{R, R, R, R}, 'Z', "Z"},
		"backspace":  {Alphabetic, "AB", []buttons.Button{R, R, R, R}, Backspace, "A"},
		"hex":        {Hexadecimal, "", []buttons.Button{R, L, R, L}, 'A', "A"},
		"single key": {"X", "", []buttons.Button{L}, 'X', "X"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			k := New(tt.layout, []byte(tt.typed), false)
			res := choose(k, tt.sides...)
			for _, r := range res[:len(res)-1] {
				assert.Equal(t, None, r)
			}
			assert.Equal(t, tt.last, res[len(res)-1])
			assert.Equal(t, tt.want, string(k.Typed()))
		})
	}
}

func TestOptionKeys(t *testing.T) {
	k := New(Standard, nil, false)

	// index 27 of 30
	res := choose(k, R, R, R, L, L)
	assert.Equal(t, None, res[4])
	assert.Equal(t, byte(OptionNumerics), k.option)

	// no backspace key in the numeric layout
	res = choose(k, L, L, L, L)
	assert.Equal(t, Result('0'), res[3])
	assert.Equal(t, byte(0), k.option)

	// symbols, index 28 of 31 with backspace
	res = choose(k, R, R, R, L, L)
	assert.Equal(t, None, res[4])
	assert.Equal(t, byte(OptionSymbols), k.option)
	res = choose(k, L, L, L, L, L)
	assert.Equal(t, Result('!'), res[4])
	assert.Equal(t, "0!", k.Text())
}

func TestToggleCase(t *testing.T) {
	k := New(Standard, nil, false)
	res := choose(k, R, R, R, R)
	assert.Equal(t, None, res[3])
	assert.Equal(t, byte('a'), k.layout[0])

	assert.Equal(t, Result('a'), choose(k, L, L, L, L, L)[4])
	// index 29 of 31 with backspace
	choose(k, R, R, R, L, R)
	assert.Equal(t, byte('A'), k.layout[0])
}

func TestCapacity(t *testing.T) {
	k := New(Alphabetic, bytes.Repeat([]byte{'A'}, Capacity), true)
	assert.Equal(t, None, k.Choose(R))
	assert.Equal(t, Capacity, len(k.Typed()))
	assert.Equal(t, Backspace, k.Choose(L))
	assert.Equal(t, Capacity-1, len(k.Typed()))

	r, ok := Result('A').Rune()
	assert.True(t, ok)
	assert.Equal(t, 'A', r)
	_, ok = Backspace.Rune()
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	k := New(Alphabetic, []byte{'a', 0xe9}, false)
	assert.Equal(t, "aé", k.Text())
}

func TestTick(t *testing.T) {
	k := New(Alphabetic, nil, true)
	assert.False(t, k.Tick())

	k.Choose(L)
	for range slideTicks {
		assert.True(t, k.Tick())
	}
	// cursor tick 11 to 24
	for range cursorTicks - 11 {
		assert.False(t, k.Tick())
	}
	assert.True(t, k.Tick())
}

func TestTickWithoutAnimations(t *testing.T) {
	k := New(Alphabetic, nil, false)
	k.Choose(L)
	changes := 0
	for range 4 * cursorTicks {
		if k.Tick() {
			changes++
		}
	}
	assert.Equal(t, 4, changes)
}

func TestDraw(t *testing.T) {
	ctx := display.New(display.Config{})
	New(Alphabetic, nil, false).Draw(ctx)

	assert.Equal(t, 1, ctx.At(4, 31)) // text box
	assert.Equal(t, 1, ctx.At(6, 22)) // cursor
	assert.Equal(t, 1, ctx.At(61, 5)) // left arrow tip
	assert.Equal(t, 1, ctx.At(66, 5)) // right arrow tip
	assert.Equal(t, 0, ctx.At(7, 22))
}

func TestDrawFull(t *testing.T) {
	ctx := display.New(display.Config{})
	New(Alphabetic, bytes.Repeat([]byte{'A'}, Capacity), false).Draw(ctx)
	for x := 1; x < 5; x++ {
		assert.Equal(t, 1, ctx.At(x, 3))
	}
}

func TestRandomChoices(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, layout := range []string{Standard, Alphanumeric, Symbols, Hexadecimal, Numeric} {
		k := New(layout, nil, true)
		ctx := display.New(display.Config{BPP: 2})
		for range 300 {
			side := L
			if rng.Intn(2) == 1 {
				side = R
			}
			k.Choose(side)
			for range rng.Intn(slideTicks + 2) {
				k.Tick()
				k.Draw(ctx)
			}
			assert.True(t, len(k.Typed()) <= Capacity)
		}
	}
}
