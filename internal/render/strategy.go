// Package render draws frame pictures as terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Strategy selects how pictures are drawn
type Strategy int

const (
	// Accelerated draws two pixels per cell with true-colour half blocks
	Accelerated Strategy = iota
	// Legacy draws a luminance ramp of plain ASCII characters
	Legacy
)

func (s Strategy) String() string {
	switch s {
	case Accelerated:
		return "accelerated"
	case Legacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Detect picks the strategy a terminal with the given colour profile can show
func Detect(profile termenv.Profile) Strategy {
	switch profile {
	case termenv.TrueColor, termenv.ANSI256:
		return Accelerated
	default:
		return Legacy
	}
}

// Resolve turns a configured strategy name into a Strategy. "auto" and the
// empty string defer to Detect.
func Resolve(name string, profile termenv.Profile) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Detect(profile), nil
	case "accelerated":
		return Accelerated, nil
	case "legacy":
		return Legacy, nil
	default:
		return Legacy, fmt.Errorf("unknown render strategy %q", name)
	}
}
