// Package display holds the element a rotator draws into: the current image
// source, a class list the host styles from, and the on-screen bounds used
// for pointer hit testing.
package display

import "strings"

// Rect is a cell-aligned region of the screen
type Rect struct {
	X, Y          int
	Width, Height int
}

// Element is a display surface. It implements pointer.Target.
type Element struct {
	source  string
	classes []string
	bounds  Rect
	fill    bool // Covers the whole screen regardless of bounds
}

// NewElement creates an element occupying bounds
func NewElement(bounds Rect) *Element {
	return &Element{bounds: bounds}
}

// Body returns an element that contains every point, the fallback when no
// container is supplied.
func Body() *Element {
	return &Element{fill: true}
}

// Source returns the url of the displayed image
func (e *Element) Source() string {
	return e.source
}

// SetSource swaps the displayed image
func (e *Element) SetSource(url string) {
	e.source = url
}

// Bounds returns the element's region
func (e *Element) Bounds() Rect {
	return e.bounds
}

// SetBounds moves or resizes the element
func (e *Element) SetBounds(r Rect) {
	e.bounds = r
}

// Contains reports whether the point lies inside the element
func (e *Element) Contains(x, y int) bool {
	if e.fill {
		return true
	}
	r := e.bounds
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// HasClass reports whether name is in the class list
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends name unless already present
func (e *Element) AddClass(name string) {
	name = strings.TrimSpace(name)
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass drops every occurrence of name
func (e *Element) RemoveClass(name string) {
	kept := e.classes[:0]
	for _, c := range e.classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

// ClassName returns the class list as a space separated string
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// SetClassName replaces the class list, splitting on whitespace
func (e *Element) SetClassName(className string) {
	e.classes = e.classes[:0]
	for _, c := range strings.Fields(className) {
		e.AddClass(c)
	}
}
