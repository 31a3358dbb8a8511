// Package buttons decodes the raw state of the two device buttons into press,
// release, click and hold events.
package buttons

import (
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/exp/constraints"
)

// Button is a bitmask of buttons.
type Button uint8

const (
	Left  Button = 1 << iota
	Right
	Both = Left | Right
)

func (b Button) String() string {
	switch b {
	case Left:
		return "left"
	case Right:
		return "right"
	case Both:
		return "both"
	}
	return "none"
}

// Tempo classifies the time between releasing a button and pressing it
// again.
type Tempo uint8

const (
	Fast Tempo = iota
	Medium
	Slow
)

func (t Tempo) String() string {
	return [...]string{"fast", "medium", "slow"}[t]
}

type State uint8

const (
	Released State = iota
	Pressed
	Held
)

func (s State) String() string {
	return [...]string{"released", "pressed", "held"}[s]
}

// Durations in milliseconds.
const (
	FastTempo   = 300
	LongPress   = 800
	MaxDuration = 1<<16 - 1
)

type button struct {
	pressed  bool
	duration uint32 // since the last edge
	tempo    Tempo
	short    bool // last release was before LongPress
	reported bool // last release was reported as click
}

// Decoder tracks the state of the left and right button.
type Decoder struct {
	current, last Button
	state         [2]button

	handler Handler
	log     *log.Logger
}

func NewDecoder(logger *log.Logger) *Decoder {
	d := &Decoder{log: logger}
	d.state[0].reported = true
	d.state[1].reported = true
	return d
}

func (d *Decoder) SetHandler(h Handler) {
	d.handler = h
}

func (d *Decoder) emit(e Event) {
	if d.log != nil {
		if s, ok := e.(interface{ String() string }); ok {
			d.log.Debug("Button event", log.String("event", s.String()))
		}
	}
	if d.handler != nil {
		d.handler.HandleEvent(e)
	}
}

func (d *Decoder) Changed() Button {
	return d.current ^ d.last
}

func (d *Decoder) Pressed() Button {
	return d.Changed() & d.current
}

func (d *Decoder) Released() Button {
	return d.Changed() & d.last
}

// Update applies the current button mask, emitting ButtonPressed and
// ButtonReleased for every edge.
func (d *Decoder) Update(down Button) {
	d.last, d.current = d.current, down&Both
	pressed, released := d.Pressed(), d.Released()

	for i, b := range []Button{Left, Right} {
		s := &d.state[i]
		switch {
		case pressed&b != 0:
			s.tempo = tempo(s.duration)
			s.pressed = true
			s.duration = 0
			s.reported = false
			d.emit(ButtonPressed{b, s.tempo})
		case released&b != 0:
			prior := d.State(b)
			s.short = s.duration < LongPress
			s.pressed = false
			s.duration = 0
			d.emit(ButtonReleased{b, prior})
		}
	}
}

func tempo(released uint32) Tempo {
	switch {
	case released < FastTempo:
		return Fast
	case released < LongPress:
		return Medium
	}
	return Slow
}

func saturatingAdd[T constraints.Unsigned](a, b, limit T) T {
	if a > limit-min(b, limit) {
		return limit
	}
	return a + b
}

// Tick advances time by elapsed milliseconds.
func (d *Decoder) Tick(elapsed uint32) {
	for i, b := range []Button{Left, Right} {
		s := &d.state[i]
		before := s.duration
		s.duration = saturatingAdd(s.duration, elapsed, MaxDuration)
		if s.pressed && before < LongPress && s.duration >= LongPress {
			d.emit(ButtonHeld{b})
		}
	}

	if !d.state[0].pressed && !d.state[1].pressed {
		var clicked Button
		for i, b := range []Button{Left, Right} {
			s := &d.state[i]
			if !s.reported && s.short {
				clicked |= b
			}
			s.reported = true
		}
		if clicked != 0 {
			d.emit(ButtonClicked{clicked})
		}
	}

	d.emit(TimeElapsed{elapsed})
}

// State returns the state of a single button.
func (d *Decoder) State(b Button) State {
	var s *button
	switch b {
	case Left:
		s = &d.state[0]
	case Right:
		s = &d.state[1]
	default:
		return Released
	}
	if !s.pressed {
		return Released
	}
	if s.duration >= LongPress {
		return Held
	}
	return Pressed
}
