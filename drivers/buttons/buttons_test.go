package buttons

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) {
	if _, ok := e.(TimeElapsed); ok {
		return
	}
	r.events = append(r.events, e)
}

func (r *recorder) take() []Event {
	e := r.events
	r.events = nil
	return e
}

func newDecoder(t *testing.T) (*Decoder, *recorder) {
	t.Helper()
	d := NewDecoder(log.NewTestLogger(t))
	r := &recorder{}
	d.SetHandler(r)
	return d, r
}

func equalEvents(t *testing.T, want, got []Event) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("got %d events %v, want %v", len(got), got, want)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("event %d: got %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestClick(t *testing.T) {
	d, r := newDecoder(t)
	d.Tick(1000)
	d.Update(Left)
	equalEvents(t, []Event{ButtonPressed{Left, Slow}}, r.take())
	assert.Equal(t, Pressed, d.State(Left))

	d.Tick(100)
	d.Update(0)
	equalEvents(t, []Event{ButtonReleased{Left, Pressed}}, r.take())

	d.Tick(100)
	equalEvents(t, []Event{ButtonClicked{Left}}, r.take())

	// Reported only once.
	d.Tick(100)
	equalEvents(t, nil, r.take())
}

func TestHeld(t *testing.T) {
	d, r := newDecoder(t)
	d.Update(Right)
	r.take()

	for i := 0; i < 7; i++ {
		d.Tick(100)
	}
	equalEvents(t, nil, r.take())
	d.Tick(100)
	equalEvents(t, []Event{ButtonHeld{Right}}, r.take())
	assert.Equal(t, Held, d.State(Right))
	d.Tick(100)
	equalEvents(t, nil, r.take())

	d.Update(0)
	equalEvents(t, []Event{ButtonReleased{Right, Held}}, r.take())
	d.Tick(100)
	equalEvents(t, nil, r.take())
	assert.Equal(t, Released, d.State(Right))
}

func TestBothClick(t *testing.T) {
	d, r := newDecoder(t)
	d.Update(Left)
	d.Update(Both)
	d.Tick(100)
	d.Update(Right)
	d.Tick(100)
	d.Update(0)
	equalEvents(t, []Event{
		ButtonPressed{Left, Fast},
		ButtonPressed{Right, Fast},
		ButtonReleased{Left, Pressed},
		ButtonReleased{Right, Pressed},
	}, r.take())

	d.Tick(100)
	equalEvents(t, []Event{ButtonClicked{Both}}, r.take())
}

// A short release stays pending while the other button is down and is
// merged into the click reported after both are released, however many
// ticks apart the releases are.
func TestClickWaitsForAllReleased(t *testing.T) {
	tests := []struct {
		name  string
		ticks int // while only the right button is down
		want  []Event
	}{
		{"both short", 4, []Event{
			ButtonReleased{Right, Pressed},
			ButtonClicked{Both},
		}},
		{"right held", 8, []Event{
			ButtonHeld{Right},
			ButtonReleased{Right, Held},
			ButtonClicked{Left},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r := newDecoder(t)
			d.Update(Both)
			d.Update(Right)
			equalEvents(t, []Event{
				ButtonPressed{Left, Fast},
				ButtonPressed{Right, Fast},
				ButtonReleased{Left, Pressed},
			}, r.take())

			for i := 0; i < tt.ticks; i++ {
				d.Tick(100)
			}
			d.Update(0)
			d.Tick(100)
			equalEvents(t, tt.want, r.take())
		})
	}
}

func TestSimultaneousEdges(t *testing.T) {
	d, r := newDecoder(t)
	d.Update(Both)
	d.Update(0)
	equalEvents(t, []Event{
		ButtonPressed{Left, Fast},
		ButtonPressed{Right, Fast},
		ButtonReleased{Left, Pressed},
		ButtonReleased{Right, Pressed},
	}, r.take())
	d.Tick(100)
	equalEvents(t, []Event{ButtonClicked{Both}}, r.take())
}

func TestTempo(t *testing.T) {
	tests := map[string]struct {
		released uint32
		want     Tempo
	}{
		"fast":        {200, Fast},
		"medium":      {300, Medium},
		"mediumUpper": {700, Medium},
		"slow":        {800, Slow},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d, r := newDecoder(t)
			d.Update(Left)
			d.Update(0)
			d.Tick(tc.released)
			r.take()
			d.Update(Left)
			equalEvents(t, []Event{ButtonPressed{Left, tc.want}}, r.take())
		})
	}
}

func TestDurationSaturates(t *testing.T) {
	d, _ := newDecoder(t)
	d.Update(Left)
	d.Tick(MaxDuration - 10)
	d.Tick(100)
	assert.Equal(t, uint32(MaxDuration), d.state[0].duration)
	assert.Equal(t, Held, d.State(Left))
}

func TestTimeElapsed(t *testing.T) {
	d := NewDecoder(nil)
	var elapsed []uint32
	d.SetHandler(HandlerFunc(func(e Event) {
		if te, ok := e.(TimeElapsed); ok {
			elapsed = append(elapsed, te.Elapsed)
		}
	}))
	d.Tick(100)
	d.Tick(50)
	assert.Equal(t, 2, len(elapsed))
	assert.Equal(t, uint32(100), elapsed[0])
	assert.Equal(t, uint32(50), elapsed[1])
}

func TestMaskHelpers(t *testing.T) {
	d := NewDecoder(nil)
	d.Update(Left)
	d.Update(Right | 0x80)
	assert.Equal(t, Both, d.Changed())
	assert.Equal(t, Right, d.Pressed())
	assert.Equal(t, Left, d.Released())
	assert.Equal(t, Released, d.State(Both))
}
