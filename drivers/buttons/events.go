package buttons

import "fmt"

// Event is delivered to a Handler.
type Event interface {
	event()
}

// Displayed signals that the whole framebuffer reached the display.
type Displayed struct{}

// TimeElapsed is emitted on every ticker event.
type TimeElapsed struct {
	Elapsed uint32 // milliseconds
}

type ButtonPressed struct {
	Button Button
	Tempo  Tempo // time since the previous release
}

type ButtonReleased struct {
	Button Button
	Prior  State
}

// ButtonClicked reports a short press after all buttons are released again.
// Button is Both if both buttons were clicked together.
type ButtonClicked struct {
	Button Button
}

type ButtonHeld struct {
	Button Button
}

func (Displayed) event()      {}
func (TimeElapsed) event()    {}
func (ButtonPressed) event()  {}
func (ButtonReleased) event() {}
func (ButtonClicked) event()  {}
func (ButtonHeld) event()     {}

func (e ButtonPressed) String() string {
	return fmt.Sprintf("pressed %v (%v)", e.Button, e.Tempo)
}

func (e ButtonReleased) String() string {
	return fmt.Sprintf("released %v (%v)", e.Button, e.Prior)
}

func (e ButtonClicked) String() string { return fmt.Sprintf("clicked %v", e.Button) }
func (e ButtonHeld) String() string    { return fmt.Sprintf("held %v", e.Button) }

// Handler receives events synchronously.
type Handler interface {
	HandleEvent(e Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(e Event)

func (f HandlerFunc) HandleEvent(e Event) { f(e) }
