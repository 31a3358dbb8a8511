// Package room implements navigation between modal UI units, rooms, as a
// stack of frames in a fixed byte arena.
//
// Every frame starts with a 4 byte aligned handle of its room followed by
// the arguments the room was entered with and whatever the room pushes or
// allocates. A linkage record between two frames stores the padding before
// the handle, and the size and argument size of the frame below:
//
//	... | padding | pad len (1) | frame size (2) | args size (2) | handle (4) | args | locals ...
//	                                                                         ^fp           ^sp
//
// Locals left on top of a frame when its room exits are moved to the top of
// the parent frame, which is how rooms return values. Arguments are not
// returned unless the room popped them and pushed new bytes in their place.
package room

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/clktmr/bui/debug"
	"github.com/clktmr/bui/drivers/buttons"
	"github.com/clktmr/bui/drivers/display"
	"github.com/retroenv/retrogolib/log"
)

var ErrBaseRoom = errors.New("cannot exit the base room")

const (
	handleSize  = 4
	linkageSize = 5
)

// Event is delivered to the room on top of the stack.
type Event interface {
	roomEvent()
}

// Entered is dispatched to a room that became the top of the stack. Up is
// true if the room was just entered and false if a room above it exited.
type Entered struct {
	Up bool
}

// Exited is dispatched to the top room before it stops being the top. Up is
// true if another room is entered above it and false if it exits.
type Exited struct {
	Up bool
}

// Draw asks the room to render itself.
type Draw struct {
	Display *display.Context
}

// Forward passes an input event to the room.
type Forward struct {
	Input buttons.Event
}

func (Entered) roomEvent() {}
func (Exited) roomEvent()  {}
func (Draw) roomEvent()    {}
func (Forward) roomEvent() {}

type Handler interface {
	HandleEvent(s *Stack, e Event)
}

type HandlerFunc func(s *Stack, e Event)

func (f HandlerFunc) HandleEvent(s *Stack, e Event) { f(s, e) }

// Room describes one kind of room. Rooms without a Handler ignore all
// events.
type Room struct {
	Name    string
	Handler Handler
}

// Stack holds the frames of all active rooms.
type Stack struct {
	arena  []byte
	sp, fp int
	base   int
	locals int // lowest sp since the arguments of the frame were pushed

	rooms   []*Room
	handles map[*Room]uint32

	log *log.Logger
}

// New allocates a stack with an arena of size bytes. Overflowing the arena
// panics.
func New(size int, logger *log.Logger) *Stack {
	return &Stack{
		arena:   make([]byte, size),
		handles: make(map[*Room]uint32),
		log:     debug.LoggerOrDefault(logger),
	}
}

func (s *Stack) handle(r *Room) uint32 {
	if h, ok := s.handles[r]; ok {
		return h
	}
	h := uint32(len(s.rooms))
	s.rooms = append(s.rooms, r)
	s.handles[r] = h
	return h
}

func (s *Stack) putHandle(r *Room) {
	debug.Assert(s.sp%handleSize == 0, "misaligned room handle")
	binary.BigEndian.PutUint32(s.arena[s.sp:s.sp+handleSize], s.handle(r))
	s.sp += handleSize
	s.fp = s.sp
}

// Init resets the stack to a single frame of base and enters it.
func (s *Stack) Init(base *Room, args []byte) {
	s.sp = 0
	s.putHandle(base)
	s.base = s.fp
	s.Push(args)
	s.locals = s.sp
	s.log.Debug("Room init", log.String("room", base.Name))
	s.Dispatch(Entered{Up: true})
}

// Enter exits the current room upwards and enters r with a new frame.
func (s *Stack) Enter(r *Room, args []byte) {
	s.Dispatch(Exited{Up: true})

	frameSize := s.sp - s.fp
	debug.Assert(frameSize <= 0xffff, "room frame too large")
	pad := (handleSize - (s.sp+linkageSize)%handleSize) % handleSize
	s.sp += pad
	link := s.arena[s.sp : s.sp+linkageSize]
	link[0] = byte(pad)
	binary.BigEndian.PutUint16(link[1:], uint16(frameSize))
	binary.BigEndian.PutUint16(link[3:], uint16(s.locals-s.fp))
	s.sp += linkageSize
	s.putHandle(r)
	s.Push(args)
	s.locals = s.sp

	s.log.Debug("Room enter", log.String("room", r.Name), log.Int("fp", s.fp))
	s.Dispatch(Entered{Up: true})
}

// Exit exits the current room and reenters its parent. The locals of the
// current frame are moved to the top of the parent frame. Exiting the base
// room only dispatches Exited and returns ErrBaseRoom.
func (s *Stack) Exit() error {
	s.Dispatch(Exited{Up: false})
	if s.fp == s.base {
		return fmt.Errorf("%w %q", ErrBaseRoom, s.Current().Name)
	}
	name := s.Current().Name

	ret := s.locals
	retSize := s.sp - ret
	link := s.fp - handleSize - linkageSize
	pad := int(s.arena[link])
	frameSize := int(binary.BigEndian.Uint16(s.arena[link+1:]))
	argsSize := int(binary.BigEndian.Uint16(s.arena[link+3:]))
	s.sp = link - pad
	s.fp = s.sp - frameSize
	s.locals = s.fp + argsSize
	copy(s.arena[s.sp:s.sp+retSize], s.arena[ret:ret+retSize])
	s.sp += retSize

	s.log.Debug("Room exit", log.String("room", name), log.Int("returned", retSize))
	s.Dispatch(Entered{Up: false})
	return nil
}

// Current returns the room on top of the stack.
func (s *Stack) Current() *Room {
	h := binary.BigEndian.Uint32(s.arena[s.fp-handleSize:])
	return s.rooms[h]
}

// Depth returns the number of frames on the stack.
func (s *Stack) Depth() int {
	n := 1
	for fp := s.fp; fp != s.base; n++ {
		link := fp - handleSize - linkageSize
		fp = link - int(s.arena[link]) - int(binary.BigEndian.Uint16(s.arena[link+1:]))
	}
	return n
}

// SP returns the offset of the top of the stack.
func (s *Stack) SP() int { return s.sp }

// FP returns the offset of the current frame, just past its room handle.
func (s *Stack) FP() int { return s.fp }

// Frame returns the arguments and locals of the current frame.
func (s *Stack) Frame() []byte {
	return s.arena[s.fp:s.sp]
}

// Args returns the arguments of the current frame that were not popped.
func (s *Stack) Args() []byte {
	return s.arena[s.fp:s.locals]
}

func (s *Stack) lower() {
	s.locals = min(s.locals, s.sp)
}

// DeallocFrame drops everything on the current frame.
func (s *Stack) DeallocFrame() {
	s.sp = s.fp
	s.lower()
}

// Push copies b on top of the stack.
func (s *Stack) Push(b []byte) {
	copy(s.arena[s.sp:s.sp+len(b)], b)
	s.sp += len(b)
}

// Pop moves the top len(b) bytes of the stack into b.
func (s *Stack) Pop(b []byte) {
	debug.Assert(s.sp-len(b) >= s.fp, "pop past frame")
	s.sp -= len(b)
	copy(b, s.arena[s.sp:])
	s.lower()
}

// Peek copies len(b) bytes starting offset bytes below the top of the stack
// into b.
func (s *Stack) Peek(b []byte, offset int) {
	debug.Assert(s.sp-offset >= s.fp && len(b) <= offset, "peek past frame")
	copy(b, s.arena[s.sp-offset:s.sp])
}

// Alloc reserves n bytes on top of the stack and returns them.
func (s *Stack) Alloc(n int) []byte {
	b := s.arena[s.sp : s.sp+n : s.sp+n]
	s.sp += n
	return b
}

// Dealloc releases the top n bytes of the stack and returns them. They stay
// valid until the next Push or Alloc.
func (s *Stack) Dealloc(n int) []byte {
	debug.Assert(s.sp-n >= s.fp, "dealloc past frame")
	s.sp -= n
	s.lower()
	return s.arena[s.sp : s.sp+n : s.sp+n]
}

// Dispatch delivers e to the current room.
func (s *Stack) Dispatch(e Event) {
	if r := s.Current(); r.Handler != nil {
		r.Handler.HandleEvent(s, e)
	}
}

// Forward delivers an input event to the current room.
func (s *Stack) Forward(e buttons.Event) {
	s.Dispatch(Forward{Input: e})
}

// Draw asks the current room to draw itself onto ctx.
func (s *Stack) Draw(ctx *display.Context) {
	s.Dispatch(Draw{Display: ctx})
}
