// Package menu implements a vertically scrolling list of elements with the
// focused element centered on the display.
package menu

import (
	"math"

	"github.com/clktmr/bui/drivers/display"
	"github.com/clktmr/bui/icons"
)

// MaxElems is the maximum number of elements of a menu.
const MaxElems = 32

// Element heights in pixels.
const (
	SmallHeight = 12
	LargeHeight = 32
)

const (
	// scrollInterval is the time in milliseconds per halving of the scroll
	// offset.
	scrollInterval = 30
	scrollDuration = 10 * scrollInterval
)

// Elems describes the elements of a menu. Bit 31-i of Sizes is set if
// element i is large.
type Elems struct {
	Count int
	Sizes uint32
}

// Large reports whether element i is large.
func (e Elems) Large(i int) bool {
	return e.Sizes<<i&(1<<31) != 0
}

// Height returns the height of element i.
func (e Elems) Height(i int) int {
	if e.Large(i) {
		return LargeHeight
	}
	return SmallHeight
}

// ElemDrawer draws element i of m with its top at y. y may be negative or
// beyond the display for partly visible elements.
type ElemDrawer interface {
	DrawElem(m *Menu, i int, ctx *display.Context, y int)
}

type ElemDrawerFunc func(m *Menu, i int, ctx *display.Context, y int)

func (f ElemDrawerFunc) DrawElem(m *Menu, i int, ctx *display.Context, y int) { f(m, i, ctx, y) }

type Menu struct {
	elems  Elems
	focus  int
	drawer ElemDrawer

	animations bool
	elapsed    uint32 // not yet applied to scroll
	scroll     int    // viewport position relative to the focused element
}

// New returns a menu focused on element focus. Without animations the
// focused element is drawn at its final position right after scrolling.
func New(elems Elems, focus int, drawer ElemDrawer, animations bool) *Menu {
	return &Menu{
		elems:      elems,
		focus:      focus,
		drawer:     drawer,
		animations: animations,
	}
}

func (m *Menu) Elems() Elems {
	return m.elems
}

// SetElems replaces the elements, moving the focus to the last element if
// it is out of range, and stops any scroll animation.
func (m *Menu) SetElems(elems Elems) {
	m.elems = elems
	if m.focus >= elems.Count {
		m.focus = max(elems.Count-1, 0)
	}
	m.scroll = 0
	m.elapsed = 0
}

// Insert inserts an element before element i.
func (m *Menu) Insert(i int, large bool) {
	bit := uint32(1<<31) >> i
	tail := uint32(math.MaxUint32) >> i
	sizes := m.elems.Sizes&^tail | (m.elems.Sizes&tail)>>1
	if large {
		sizes |= bit
	} else {
		sizes &^= bit
	}
	m.elems.Sizes = sizes
	m.elems.Count++
}

// Remove removes element i.
func (m *Menu) Remove(i int) {
	head := uint32(math.MaxUint32) >> i
	tail := uint32(math.MaxUint32) >> (i + 1)
	m.elems.Sizes = m.elems.Sizes&^head | (m.elems.Sizes&tail)<<1
	m.elems.Count--
}

// Scroll moves the focus one element up or down and reports whether it
// moved.
func (m *Menu) Scroll(up bool) bool {
	if m.elems.Count == 0 {
		return false
	}
	if up && m.focus != 0 {
		m.focus--
		if m.animations {
			m.scroll += m.elems.Height(m.focus)
		}
		return true
	}
	if !up && m.focus+1 != m.elems.Count {
		m.focus++
		if m.animations {
			m.scroll -= m.elems.Height(m.focus)
		}
		return true
	}
	return false
}

// Animate advances the scroll animation by elapsed milliseconds and
// reports whether the menu must be redrawn.
func (m *Menu) Animate(elapsed uint32) bool {
	if elapsed == 0 || m.scroll == 0 {
		return false
	}
	elapsed += m.elapsed
	if elapsed >= scrollDuration {
		m.scroll = 0
		m.elapsed = 0
		return true
	}
	m.scroll /= 1 << (elapsed / scrollInterval)
	m.elapsed = elapsed % scrollInterval
	return true
}

// Focused returns the focused element, false if the menu is empty.
func (m *Menu) Focused() (int, bool) {
	if m.elems.Count == 0 {
		return 0, false
	}
	return m.focus, true
}

// Draw draws the scroll arrows and all visible elements.
func (m *Menu) Draw(ctx *display.Context) {
	count := m.elems.Count
	if count == 0 {
		return
	}
	focus := m.focus

	if focus != 0 {
		ctx.DrawBitmapFull(icons.Up, 3, 14)
	}
	if focus+1 != count {
		ctx.DrawBitmapFull(icons.Down, 118, 14)
	}

	if !m.animations {
		if m.elems.Large(focus) {
			m.drawer.DrawElem(m, focus, ctx, 0)
			return
		}
		m.drawer.DrawElem(m, focus, ctx, 10)
		if focus != 0 {
			y := -2
			if m.elems.Large(focus - 1) {
				y = -22
			}
			m.drawer.DrawElem(m, focus-1, ctx, y)
		}
		if focus+1 != count {
			m.drawer.DrawElem(m, focus+1, ctx, 22)
		}
		return
	}

	// Move to the element nearest to the viewport.
	scroll := m.scroll
	for focus != 0 && focus+1 != count {
		h := m.elems.Height(focus)
		if scroll > h {
			scroll -= h
			focus++
		} else if scroll < -h {
			scroll += h
			focus--
		} else {
			break
		}
	}

	h := m.elems.Height(focus)
	top := display.Height/2 - h/2 - h%2 - scroll
	m.drawer.DrawElem(m, focus, ctx, top)

	for i, y := focus+1, top+h; y < display.Height && i != count; i++ {
		m.drawer.DrawElem(m, i, ctx, y)
		y += m.elems.Height(i)
	}
	for i, y := focus, top; y > 0 && i != 0; {
		i--
		y -= m.elems.Height(i)
		m.drawer.DrawElem(m, i, ctx, y)
	}
}
