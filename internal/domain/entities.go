package domain

import "fmt"

// FrameSet is a named, ordered sequence of frame urls.
// Order is significant: it defines the rotation sequence.
type FrameSet struct {
	Name          string   `mapstructure:"name"`
	Circumference float64  `mapstructure:"circumference"` // Cells for one full turn, 0 = default
	URLs          []string `mapstructure:"urls"`
}

// FrameCount returns the number of frames in the set
func (s FrameSet) FrameCount() int {
	return len(s.URLs)
}

// Description returns secondary info for list display
func (s FrameSet) Description() string {
	if len(s.URLs) == 1 {
		return "1 frame"
	}
	return fmt.Sprintf("%d frames", len(s.URLs))
}
