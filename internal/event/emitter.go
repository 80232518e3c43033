// Package event provides a small named-event emitter owned by the object
// that fires the events. There is no shared registry between emitters.
package event

// Handler receives the payload passed to Fire along with the arguments bound
// when the handler was registered.
type Handler func(payload any, args []any)

// subscriber pairs a handler with its bound arguments
type subscriber struct {
	fn   Handler
	args []any
}

// Emitter maps event names to an ordered list of subscribers.
// The zero value is ready to use. It is not safe for concurrent use.
type Emitter struct {
	registry map[string][]subscriber
}

// unknownEvent is the name used when On is called without one
const unknownEvent = "unknown"

// New creates an empty emitter
func New() *Emitter {
	return &Emitter{registry: make(map[string][]subscriber)}
}

// On registers fn to run whenever name fires. Handlers run in registration order.
func (e *Emitter) On(name string, fn Handler, args ...any) {
	if name == "" {
		name = unknownEvent
	}
	if fn == nil {
		fn = func(any, []any) {}
	}
	if e.registry == nil {
		e.registry = make(map[string][]subscriber)
	}
	e.registry[name] = append(e.registry[name], subscriber{fn: fn, args: args})
}

// Fire runs every handler registered for name with payload.
// Returns false if name is empty.
func (e *Emitter) Fire(name string, payload any) bool {
	if name == "" {
		return false
	}

	// Iterate a snapshot so handlers can subscribe while firing
	subs := append([]subscriber(nil), e.registry[name]...)
	for _, s := range subs {
		s.fn(payload, s.args)
	}
	return true
}

// Clear removes every handler registered for name
func (e *Emitter) Clear(name string) {
	delete(e.registry, name)
}

// ClearAll removes every handler for every event
func (e *Emitter) ClearAll() {
	e.registry = make(map[string][]subscriber)
}

// Count returns the number of handlers registered for name
func (e *Emitter) Count(name string) int {
	return len(e.registry[name])
}
