// Package rotator maps horizontal drags on a display element to a frame
// index and swaps the displayed image, simulating rotation of an object
// photographed from a sequence of angles.
package rotator

import (
	"context"
	"image"
	"log/slog"
	"math"

	"github.com/mmcdole/turntable/internal/display"
	"github.com/mmcdole/turntable/internal/domain"
	"github.com/mmcdole/turntable/internal/drag"
	"github.com/mmcdole/turntable/internal/frame"
	"github.com/mmcdole/turntable/internal/pointer"
)

// DefaultCircumference is the drag distance for one full turn when the
// config leaves it unset.
const DefaultCircumference = 200

// ActiveClass marks the container while a drag is in progress
const ActiveClass = "active"

// State is the coordinator's drag lifecycle state
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Config describes a rotator. It is not modified after New.
type Config struct {
	Circumference float64 // Drag distance for one full turn
	FrameURLs     []string
	Container     *display.Element
}

// Coordinator owns the frames of one rotator and its rotation state.
type Coordinator struct {
	circumference float64
	container     *display.Element
	frames        []*frame.Image
	source        *drag.Source
	logger        *slog.Logger
	cancel        context.CancelFunc

	state  State
	amount float64 // Position around the turn, in [0, 1)
	index  int
}

// Deps are the collaborators a coordinator is wired to
type Deps struct {
	Bus      *pointer.Bus
	Loader   frame.Loader
	Observer domain.LoadObserver
	Logger   *slog.Logger
}

// New builds a coordinator: it starts loading every frame, shows the first
// one and starts listening for drags on the container.
func New(ctx context.Context, cfg Config, deps Deps) *Coordinator {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Bus == nil {
		deps.Bus = pointer.NewBus()
	}
	if deps.Loader == nil {
		deps.Loader = frame.LoaderFunc(func(context.Context, string) (image.Image, error) {
			return nil, domain.ErrUnsupportedScheme
		})
	}
	if cfg.Circumference <= 0 {
		cfg.Circumference = DefaultCircumference
	}
	urls := cfg.FrameURLs
	if len(urls) == 0 {
		urls = []string{""}
	}
	if cfg.Container == nil {
		cfg.Container = display.Body()
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Coordinator{
		circumference: cfg.Circumference,
		container:     cfg.Container,
		logger:        deps.Logger,
		cancel:        cancel,
	}

	c.container.SetSource(urls[0])
	c.frames = make([]*frame.Image, len(urls))
	for i, url := range urls {
		c.frames[i] = frame.New(ctx, url, deps.Loader, frame.Options{
			Index:    i,
			Observer: deps.Observer,
			Logger:   deps.Logger,
		})
	}

	c.source = drag.Attach(deps.Bus, c.container)
	c.source.OnDrag(func(d drag.Delta) { c.Update(float64(d.X), float64(d.Y)) })
	c.source.OnDragStart(func(*pointer.Event) { c.setState(StateDragging) })
	c.source.OnDragEnd(func(*pointer.Event) { c.setState(StateIdle) })

	c.logger.Debug("rotator created", "frames", len(urls), "circumference", c.circumference)
	return c
}

func (c *Coordinator) setState(s State) {
	c.state = s
	if s == StateDragging {
		c.container.AddClass(ActiveClass)
	} else {
		c.container.RemoveClass(ActiveClass)
	}
}

// Update advances the rotation by a drag delta. Only the horizontal
// component turns the object. The displayed frame changes only when the
// target frame has loaded; otherwise the previous frame stays on screen
// while the amount keeps tracking the true position.
func (c *Coordinator) Update(deltaX, deltaY float64) {
	if c.state != StateDragging {
		return
	}

	c.amount = Advance(c.amount, deltaX, c.circumference)

	// amount stays in [0, 1), so the bounds check only catches n*amount
	// rounding up to n
	target := int(math.Floor(float64(len(c.frames)) * c.amount))
	if target == c.index || target < 0 || target >= len(c.frames) {
		return
	}
	if !c.frames[target].IsReady() {
		return
	}

	c.container.SetSource(c.frames[target].URL())
	c.index = target
}

// Advance returns amount moved by a horizontal drag of deltaX cells over a
// turn of circumference cells. The delta is reduced modulo the
// circumference, then at most one turn of overshoot is corrected.
func Advance(amount, deltaX, circumference float64) float64 {
	amount += math.Mod(deltaX, circumference) / circumference
	if amount < 0 {
		amount += 1
	}
	if amount >= 1 {
		amount -= 1
	}
	return amount
}

// FrameAt returns the index of the frame amount falls in
func FrameAt(amount float64, frames int) int {
	i := int(math.Floor(float64(frames) * amount))
	return min(max(i, 0), frames-1)
}

// Amount returns the position around the turn in [0, 1)
func (c *Coordinator) Amount() float64 {
	return c.amount
}

// Index returns the index of the displayed frame
func (c *Coordinator) Index() int {
	return c.index
}

// State returns the drag lifecycle state
func (c *Coordinator) State() State {
	return c.state
}

// Circumference returns the drag distance for one full turn
func (c *Coordinator) Circumference() float64 {
	return c.circumference
}

// Frames returns the frames in rotation order
func (c *Coordinator) Frames() []*frame.Image {
	return c.frames
}

// FrameCount returns the number of frames
func (c *Coordinator) FrameCount() int {
	return len(c.frames)
}

// ReadyCount returns how many frames have loaded
func (c *Coordinator) ReadyCount() int {
	n := 0
	for _, f := range c.frames {
		if f.IsReady() {
			n++
		}
	}
	return n
}

// Current returns the displayed frame
func (c *Coordinator) Current() *frame.Image {
	return c.frames[c.index]
}

// Container returns the element the rotator draws into
func (c *Coordinator) Container() *display.Element {
	return c.container
}

// SetEnabled gates new drags on the container. A drag in progress runs to
// its end.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.source.SetEnabled(enabled)
}

// Enabled reports whether new drags are accepted
func (c *Coordinator) Enabled() bool {
	return c.source.Enabled()
}

// Close stops listening for drags and abandons loads still in flight.
func (c *Coordinator) Close() {
	c.source.Detach()
	c.container.RemoveClass(ActiveClass)
	c.state = StateIdle
	c.cancel()
}
