package tui

import "github.com/mmcdole/turntable/internal/display"

// Vertical chrome around the rotator
const (
	HeaderHeight = 1
	FooterHeight = 1
	BorderSize   = 2 // One cell on each side
)

// viewerRect returns the screen region of the rotator box, border included
func (m Model) viewerRect() display.Rect {
	return display.Rect{
		X:      0,
		Y:      HeaderHeight,
		Width:  m.Width,
		Height: max(0, m.Height-HeaderHeight-FooterHeight),
	}
}

// frameSize returns the cells available to the picture inside the border
func (m Model) frameSize() (width, height int) {
	r := m.viewerRect()
	return max(0, r.Width-BorderSize), max(0, r.Height-BorderSize)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.element.SetBounds(m.viewerRect())
	m.Picker.SetHeight(m.Height)
	m.Progress.Width = min(20, max(5, m.Width/5))
}
