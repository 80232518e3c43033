// Package drag turns pointer down/move/up sequences on a target into
// dragstart, drag and dragend notifications carrying per-move deltas.
package drag

import (
	"github.com/mmcdole/turntable/internal/event"
	"github.com/mmcdole/turntable/internal/pointer"
)

// Event names fired by a Source
const (
	EventDragStart = "dragstart"
	EventDrag      = "drag"
	EventDragEnd   = "dragend"
)

// DraggableClass is applied to class-aware targets while dragging is enabled
const DraggableClass = "draggable"

// Delta is the pointer movement since the previously reported position
type Delta struct {
	X, Y int
}

// classList is implemented by targets that carry a class attribute
type classList interface {
	AddClass(name string)
	RemoveClass(name string)
}

// state is the mutable drag state shared by the pointer handlers
type state struct {
	enabled bool
	active  bool
	posX    int
	posY    int

	// Document-wide listeners, present only while active
	global []*pointer.Subscription
}

// Source listens for drags that start on a target. Once a drag starts it
// follows the pointer across the whole document until release.
type Source struct {
	bus     *pointer.Bus
	target  pointer.Target
	emitter *event.Emitter
	st      *state

	// Listeners on the target itself
	start []*pointer.Subscription
}

// Attach starts listening for mouse down and touch start on target.
func Attach(bus *pointer.Bus, target pointer.Target) *Source {
	s := &Source{
		bus:     bus,
		target:  target,
		emitter: event.New(),
		st:      &state{enabled: true},
	}
	s.start = []*pointer.Subscription{
		bus.Listen(pointer.TouchStart, target, func(ev *pointer.Event) { s.startDrag(s.st, ev) }),
		bus.Listen(pointer.MouseDown, target, func(ev *pointer.Event) { s.startDrag(s.st, ev) }),
	}
	if cl, ok := target.(classList); ok {
		cl.AddClass(DraggableClass)
	}
	return s
}

// OnDragStart registers fn for the start of each drag
func (s *Source) OnDragStart(fn func(ev *pointer.Event)) {
	s.emitter.On(EventDragStart, func(payload any, _ []any) {
		fn(payload.(*pointer.Event))
	})
}

// OnDrag registers fn for each pointer move during a drag
func (s *Source) OnDrag(fn func(d Delta)) {
	s.emitter.On(EventDrag, func(payload any, _ []any) {
		fn(payload.(Delta))
	})
}

// OnDragEnd registers fn for the release that ends each drag
func (s *Source) OnDragEnd(fn func(ev *pointer.Event)) {
	s.emitter.On(EventDragEnd, func(payload any, _ []any) {
		fn(payload.(*pointer.Event))
	})
}

// Dragging reports whether a drag is in progress
func (s *Source) Dragging() bool {
	return s.st.active
}

// Enabled reports whether new drags start
func (s *Source) Enabled() bool {
	return s.st.enabled
}

// SetEnabled gates new drags. A drag already in progress runs to its end.
func (s *Source) SetEnabled(enabled bool) {
	s.st.enabled = enabled
	cl, ok := s.target.(classList)
	if !ok {
		return
	}
	if enabled {
		cl.AddClass(DraggableClass)
	} else {
		cl.RemoveClass(DraggableClass)
	}
}

// Detach removes every listener the source registered and drops subscribers.
// An in-progress drag is abandoned without a dragend.
func (s *Source) Detach() {
	s.removeGlobal(s.st)
	for _, sub := range s.start {
		sub.Remove()
	}
	s.start = nil
	s.st.active = false
	s.emitter.ClearAll()
	if cl, ok := s.target.(classList); ok {
		cl.RemoveClass(DraggableClass)
	}
}

func (s *Source) startDrag(st *state, ev *pointer.Event) {
	// One drag at a time keeps the global listeners from piling up
	if !st.enabled || st.active {
		return
	}
	st.active = true
	st.posX, st.posY = ev.X, ev.Y

	onMove := func(ev *pointer.Event) { s.drag(st, ev) }
	onEnd := func(ev *pointer.Event) { s.endDrag(st, ev) }
	st.global = []*pointer.Subscription{
		s.bus.Listen(pointer.TouchMove, nil, onMove),
		s.bus.Listen(pointer.TouchEnd, nil, onEnd),
		s.bus.Listen(pointer.MouseMove, nil, onMove),
		s.bus.Listen(pointer.MouseUp, nil, onEnd),
	}

	s.emitter.Fire(EventDragStart, ev)
}

func (s *Source) drag(st *state, ev *pointer.Event) {
	if !st.active {
		return
	}
	ev.PreventDefault()

	d := Delta{X: ev.X - st.posX, Y: ev.Y - st.posY}
	st.posX, st.posY = ev.X, ev.Y

	s.emitter.Fire(EventDrag, d)
}

func (s *Source) endDrag(st *state, ev *pointer.Event) {
	if !st.active {
		return
	}
	s.removeGlobal(st)
	st.active = false

	s.emitter.Fire(EventDragEnd, ev)
}

func (s *Source) removeGlobal(st *state) {
	for _, sub := range st.global {
		sub.Remove()
	}
	st.global = nil
}
