// Package pointer is the document-wide listener table for mouse and touch
// input. Hosts translate their native input into Events and Dispatch them;
// widgets Listen on a target region or on the whole document.
package pointer

// Kind identifies a pointer event type
type Kind int

const (
	MouseDown Kind = iota
	MouseMove
	MouseUp
	TouchStart
	TouchMove
	TouchEnd
)

func (k Kind) String() string {
	switch k {
	case MouseDown:
		return "mousedown"
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Event is a single pointer event in document coordinates
type Event struct {
	Kind Kind
	X, Y int

	prevented bool
}

// PreventDefault marks the event so the host skips its default handling
// (selection, scrolling, key routing).
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Target is a hit region that can receive targeted listeners.
type Target interface {
	Contains(x, y int) bool
}

// HandlerFunc handles a dispatched event
type HandlerFunc func(ev *Event)
