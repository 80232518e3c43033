package rotator

import (
	"context"
	"image"
	"math/rand"
	"testing"
	"time"

	"github.com/mmcdole/turntable/internal/display"
	"github.com/mmcdole/turntable/internal/frame"
	"github.com/mmcdole/turntable/internal/pointer"
)

// fakeLoader resolves urls in ready immediately and holds every other url
// until it is released or the load is cancelled.
type fakeLoader struct {
	ready   map[string]bool
	release map[string]chan struct{}
}

func newFakeLoader(ready ...string) *fakeLoader {
	l := &fakeLoader{ready: make(map[string]bool), release: make(map[string]chan struct{})}
	for _, u := range ready {
		l.ready[u] = true
	}
	return l
}

// hold registers url as pending; must be called before the coordinator is built
func (l *fakeLoader) hold(url string) {
	l.release[url] = make(chan struct{})
}

func (l *fakeLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if ch, ok := l.release[url]; ok {
		select {
		case <-ch:
			return image.NewGray(image.Rect(0, 0, 1, 1)), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !l.ready[url] {
		return nil, context.Canceled
	}
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

var fourFrames = []string{"f0.png", "f1.png", "f2.png", "f3.png"}

// harness wires a coordinator to a bus and waits for loads that can finish
type harness struct {
	t   *testing.T
	bus *pointer.Bus
	c   *Coordinator
	x   int
}

func newHarness(t *testing.T, cfg Config, loader frame.Loader, waitFor ...int) *harness {
	t.Helper()
	bus := pointer.NewBus()
	c := New(context.Background(), cfg, Deps{Bus: bus, Loader: loader})
	t.Cleanup(c.Close)

	for _, i := range waitFor {
		waitFrame(t, c.Frames()[i])
	}
	return &harness{t: t, bus: bus, c: c}
}

func waitFrame(t *testing.T, f *frame.Image) {
	t.Helper()
	select {
	case <-f.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("frame %q never finished loading", f.URL())
	}
}

func (h *harness) press() {
	h.bus.Dispatch(&pointer.Event{Kind: pointer.MouseDown, X: h.x})
}

func (h *harness) move(dx int) {
	h.x += dx
	h.bus.Dispatch(&pointer.Event{Kind: pointer.MouseMove, X: h.x})
}

func (h *harness) release() {
	h.bus.Dispatch(&pointer.Event{Kind: pointer.MouseUp, X: h.x})
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestQuarterTurnSelectsSecondFrame(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.press()
	h.move(50)

	if !approx(h.c.Amount(), 0.25) {
		t.Errorf("Amount = %v, want 0.25", h.c.Amount())
	}
	if h.c.Index() != 1 {
		t.Errorf("Index = %d, want 1", h.c.Index())
	}
	if got := h.c.Container().Source(); got != "f1.png" {
		t.Errorf("displayed %q, want f1.png", got)
	}
}

func TestDeltaIsReducedModuloCircumference(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.press()
	h.move(250)

	if !approx(h.c.Amount(), 0.25) {
		t.Errorf("Amount = %v, want 0.25", h.c.Amount())
	}
	if h.c.Index() != 1 {
		t.Errorf("Index = %d, want 1", h.c.Index())
	}
}

func TestNegativeDragWrapsBackwards(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.press()
	h.move(-50)

	if !approx(h.c.Amount(), 0.75) {
		t.Errorf("Amount = %v, want 0.75", h.c.Amount())
	}
	if h.c.Index() != 3 {
		t.Errorf("Index = %d, want 3", h.c.Index())
	}
}

func TestVerticalDeltaIgnored(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.press()
	h.bus.Dispatch(&pointer.Event{Kind: pointer.MouseMove, X: 0, Y: 120})

	if h.c.Amount() != 0 || h.c.Index() != 0 {
		t.Errorf("vertical drag moved rotation: amount=%v index=%d", h.c.Amount(), h.c.Index())
	}
}

func TestAmountStaysInUnitInterval(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)
	rng := rand.New(rand.NewSource(7))

	h.press()
	for i := 0; i < 2000; i++ {
		h.move(rng.Intn(399) - 199)
		if a := h.c.Amount(); a < 0 || a >= 1 {
			t.Fatalf("step %d: Amount = %v outside [0, 1)", i, a)
		}
		if idx := h.c.Index(); idx < 0 || idx >= 4 {
			t.Fatalf("step %d: Index = %d out of range", i, idx)
		}
	}
}

func TestHalfPlusHalfWrapsToZero(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.press()
	h.move(100)
	h.move(100)

	if h.c.Amount() != 0 {
		t.Errorf("Amount = %v, want 0", h.c.Amount())
	}
	if h.c.Index() != 0 {
		t.Errorf("Index = %d, want 0", h.c.Index())
	}
}

func TestUnreadyFrameHoldsStaleImage(t *testing.T) {
	loader := newFakeLoader("f0.png", "f2.png", "f3.png")
	loader.hold("f1.png")
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, loader, 0, 2, 3)

	h.press()
	h.move(50)

	if h.c.Index() != 0 {
		t.Fatalf("Index = %d, want 0 while f1 is loading", h.c.Index())
	}
	if got := h.c.Container().Source(); got != "f0.png" {
		t.Fatalf("displayed %q, want stale f0.png", got)
	}
	if !approx(h.c.Amount(), 0.25) {
		t.Errorf("Amount = %v, want 0.25 even though display lagged", h.c.Amount())
	}

	// Rotation continues from the true position
	h.move(50)
	if h.c.Index() != 2 {
		t.Errorf("Index = %d, want 2", h.c.Index())
	}
}

func TestLoadBetweenDragsAppliesOnNextDrag(t *testing.T) {
	loader := newFakeLoader("f0.png", "f2.png", "f3.png")
	loader.hold("f1.png")
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, loader, 0, 2, 3)

	h.press()
	h.move(50)

	close(loader.release["f1.png"])
	waitFrame(t, h.c.Frames()[1])

	if h.c.Index() != 0 {
		t.Fatalf("load completion changed the index without a drag")
	}

	h.move(1)
	if h.c.Index() != 1 {
		t.Errorf("Index = %d, want 1 after the next drag", h.c.Index())
	}
}

func TestFailedFrameIsSkipped(t *testing.T) {
	// f1 is unknown to the loader and fails
	loader := newFakeLoader("f0.png", "f2.png", "f3.png")
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, loader, 0, 1, 2, 3)

	h.press()
	h.move(60)
	if h.c.Index() != 0 {
		t.Errorf("Index = %d, failed frame should never display", h.c.Index())
	}
	if h.c.ReadyCount() != 3 {
		t.Errorf("ReadyCount = %d, want 3", h.c.ReadyCount())
	}
}

func TestDragLifecycleState(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)
	el := h.c.Container()

	if h.c.State() != StateIdle || el.HasClass(ActiveClass) {
		t.Fatal("coordinator should start idle without the active class")
	}

	h.press()
	if h.c.State() != StateDragging || !el.HasClass(ActiveClass) {
		t.Fatal("press should enter dragging and mark the container active")
	}

	h.release()
	if h.c.State() != StateIdle || el.HasClass(ActiveClass) {
		t.Fatal("release should return to idle and clear the active class")
	}
}

func TestDisabledIgnoresDrags(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)
	if !h.c.Enabled() {
		t.Fatal("new rotator should accept drags")
	}

	h.c.SetEnabled(false)
	h.press()
	h.move(50)
	h.release()
	if h.c.State() != StateIdle || h.c.Index() != 0 {
		t.Errorf("disabled rotator moved: state %v, index %d", h.c.State(), h.c.Index())
	}
	if h.c.Enabled() {
		t.Error("Enabled should report false")
	}

	h.c.SetEnabled(true)
	h.press()
	h.move(50)
	if h.c.Index() != 1 {
		t.Errorf("Index = %d after re-enabling, want 1", h.c.Index())
	}
}

func TestAdvanceAndFrameAt(t *testing.T) {
	tests := []struct {
		amount, dx, circumference float64
		want                      float64
		frame                     int
	}{
		{0, 50, 200, 0.25, 1},
		{0, -50, 200, 0.75, 3},
		{0.5, 100, 200, 0, 0},
		{0.9, 450, 200, 0.15, 0},
		{0, 3, 80, 0.0375, 0},
	}
	for _, tt := range tests {
		got := Advance(tt.amount, tt.dx, tt.circumference)
		if !approx(got, tt.want) {
			t.Errorf("Advance(%v, %v, %v) = %v, want %v", tt.amount, tt.dx, tt.circumference, got, tt.want)
		}
		if f := FrameAt(got, 4); f != tt.frame {
			t.Errorf("FrameAt(%v, 4) = %d, want %d", got, f, tt.frame)
		}
	}
	if f := FrameAt(1, 4); f != 3 {
		t.Errorf("FrameAt(1, 4) = %d, want clamp to 3", f)
	}
}

func TestUpdateIgnoredWhenIdle(t *testing.T) {
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	h.c.Update(50, 0)
	if h.c.Amount() != 0 || h.c.Index() != 0 {
		t.Errorf("idle Update changed state: amount=%v index=%d", h.c.Amount(), h.c.Index())
	}
}

func TestEmptyURLsDefaultToBlankFrame(t *testing.T) {
	h := newHarness(t, Config{}, newFakeLoader(), 0)

	if h.c.FrameCount() != 1 {
		t.Fatalf("FrameCount = %d, want 1", h.c.FrameCount())
	}
	if got := h.c.Frames()[0].URL(); got != "" {
		t.Errorf("placeholder url = %q, want empty", got)
	}
	if h.c.Circumference() != DefaultCircumference {
		t.Errorf("Circumference = %v, want %d", h.c.Circumference(), DefaultCircumference)
	}

	h.press()
	h.move(75)
	h.release()
	if h.c.Index() != 0 {
		t.Errorf("Index = %d, want 0", h.c.Index())
	}
}

func TestInitialSourceAndContainerBounds(t *testing.T) {
	el := display.NewElement(display.Rect{X: 10, Y: 0, Width: 20, Height: 5})
	h := newHarness(t, Config{Circumference: 200, FrameURLs: fourFrames, Container: el}, newFakeLoader(fourFrames...), 0, 1, 2, 3)

	if el.Source() != "f0.png" {
		t.Errorf("initial source = %q, want f0.png", el.Source())
	}

	// Press outside the container does not start a drag
	h.press()
	if h.c.State() != StateIdle {
		t.Fatal("press outside container started a drag")
	}

	h.x = 12
	h.press()
	h.move(50)
	if h.c.Index() != 1 {
		t.Errorf("Index = %d, want 1", h.c.Index())
	}
}

func TestCloseDetaches(t *testing.T) {
	bus := pointer.NewBus()
	c := New(context.Background(), Config{FrameURLs: fourFrames}, Deps{Bus: bus, Loader: newFakeLoader(fourFrames...)})
	c.Close()

	if n := bus.Count(pointer.MouseDown); n != 0 {
		t.Errorf("mousedown listeners = %d after Close", n)
	}
}
