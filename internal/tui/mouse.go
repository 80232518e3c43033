package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/turntable/internal/pointer"
)

// pointerEvent translates a terminal mouse message into a pointer event.
// Only the left button drags; wheel and other buttons are not pointer input.
func pointerEvent(msg tea.MouseMsg) (*pointer.Event, bool) {
	ev := &pointer.Event{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
		ev.Kind = pointer.MouseDown
	case tea.MouseActionMotion:
		ev.Kind = pointer.MouseMove
	case tea.MouseActionRelease:
		ev.Kind = pointer.MouseUp
	default:
		return nil, false
	}

	return ev, true
}
