package tui

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/turntable/internal/display"
	"github.com/mmcdole/turntable/internal/domain"
	"github.com/mmcdole/turntable/internal/frame"
	"github.com/mmcdole/turntable/internal/pointer"
	"github.com/mmcdole/turntable/internal/render"
	"github.com/mmcdole/turntable/internal/rotator"
	"github.com/mmcdole/turntable/internal/service"
	"github.com/mmcdole/turntable/internal/tui/components"
	"github.com/mmcdole/turntable/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateViewing ApplicationState = iota
	StatePicking
	StateHelp
)

const (
	tickInterval  = 100 * time.Millisecond
	statusTimeout = 3 * time.Second
)

// session is the runtime of one open frame set
type session struct {
	set        domain.FrameSet
	rotator    *rotator.Coordinator
	observer   *ChannelObserver
	generation int
	failed     map[int]bool
}

// Deps are the services the TUI is wired to
type Deps struct {
	Sets     *service.SetService
	Loader   frame.Loader
	Renderer *render.Renderer
	Launcher Launcher
	Logger   *slog.Logger

	// Circumference applies to sets that do not set their own
	Circumference float64
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	deps Deps

	// Pointer plumbing: the bus is the document, element the rotator's surface
	bus     *pointer.Bus
	element *display.Element

	session    *session
	generation int

	// UI Components
	Picker   components.SetPicker
	Progress progress.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model. When initial is nil the set
// picker opens first.
func NewModel(deps Deps, initial *domain.FrameSet) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Renderer == nil {
		deps.Renderer = render.NewRenderer(render.Legacy)
	}

	var sets []domain.FrameSet
	if deps.Sets != nil {
		sets = deps.Sets.Sets()
	}

	m := Model{
		State:   StateViewing,
		deps:    deps,
		bus:     pointer.NewBus(),
		element: display.NewElement(display.Rect{}),
		Picker:  components.NewSetPicker(sets),
		Progress: progress.New(
			progress.WithSolidFill(string(styles.Amber)),
			progress.WithoutPercentage(),
			progress.WithWidth(20),
		),
	}

	if initial != nil {
		m.openSet(*initial)
	} else {
		m.setState(StatePicking)
		m.Picker.Show()
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(tickInterval)}
	if m.session != nil {
		cmds = append(cmds, WaitForLoadCmd(m.session.observer, m.session.generation))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		prevW, prevH := m.frameSize()
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		// Renderings are per size; old sizes are never shown again
		if w, h := m.frameSize(); w != prevW || h != prevH {
			m.deps.Renderer.Reset()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case FrameLoadedMsg:
		// Loads from a closed session are stale
		if m.session == nil || msg.Generation != m.session.generation {
			return m, nil
		}
		if msg.Progress.Error != nil {
			m.session.failed[msg.Progress.Index] = true
		}
		return m, WaitForLoadCmd(m.session.observer, m.session.generation)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusTimeout)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.deps.Logger.Error("tui error", "error", msg.Error())
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusTimeout)
	}

	return m, nil
}

// handleMouseMsg forwards mouse input to the pointer bus
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateViewing || m.session == nil {
		return m, nil
	}
	ev, ok := pointerEvent(msg)
	if !ok {
		return m, nil
	}
	m.bus.Dispatch(ev)
	return m, nil
}

// openSet closes the current session and starts loading set
func (m *Model) openSet(set domain.FrameSet) tea.Cmd {
	m.closeSession()

	circumference := set.Circumference
	if circumference <= 0 {
		circumference = m.deps.Circumference
	}

	m.generation++
	obs := NewChannelObserver(len(set.URLs))
	coord := rotator.New(context.Background(), rotator.Config{
		Circumference: circumference,
		FrameURLs:     set.URLs,
		Container:     m.element,
	}, rotator.Deps{
		Bus:      m.bus,
		Loader:   m.deps.Loader,
		Observer: obs,
		Logger:   m.deps.Logger,
	})

	m.session = &session{
		set:        set,
		rotator:    coord,
		observer:   obs,
		generation: m.generation,
		failed:     make(map[int]bool),
	}
	m.deps.Renderer.Reset()
	m.setState(StateViewing)

	m.deps.Logger.Info("opened frame set", "name", set.Name, "frames", coord.FrameCount(),
		"circumference", coord.Circumference())
	return WaitForLoadCmd(obs, m.generation)
}

// closeSession tears down the open set, if any
func (m *Model) closeSession() {
	if m.session == nil {
		return
	}
	m.session.rotator.Close()
	m.session.observer.Close()
	m.session = nil
}

// Close releases the open session. Called once the program exits.
func (m Model) Close() {
	m.closeSession()
}

// nudge turns by at least one frame in dir (-1 or 1) by replaying a short
// drag through the pointer bus, so keyboard turns follow the same path as
// mouse drags.
func (m *Model) nudge(dir int) {
	if m.session == nil {
		return
	}
	coord := m.session.rotator
	if coord.State() == rotator.StateDragging {
		return
	}

	dx := nudgeCells(coord.Amount(), coord.Circumference(), coord.FrameCount(), dir)

	b := m.element.Bounds()
	x, y := b.X+b.Width/2, b.Y+b.Height/2
	m.bus.Dispatch(&pointer.Event{Kind: pointer.MouseDown, X: x, Y: y})
	m.bus.Dispatch(&pointer.Event{Kind: pointer.MouseMove, X: x + dx, Y: y})
	m.bus.Dispatch(&pointer.Event{Kind: pointer.MouseUp, X: x + dx, Y: y})
}

// nudgeCells returns the shortest whole-cell drag in dir that moves amount
// into the neighbouring frame. When the turn has fewer cells than frames
// some frames cannot be reached and a single cell is used.
func nudgeCells(amount, circumference float64, frames, dir int) int {
	target := (rotator.FrameAt(amount, frames) + dir + frames) % frames
	limit := max(1, int(math.Ceil(circumference)))
	for cells := 1; cells <= limit; cells++ {
		next := rotator.Advance(amount, float64(dir*cells), circumference)
		if rotator.FrameAt(next, frames) == target {
			return dir * cells
		}
	}
	return dir
}

// setState switches screens. Drags are only accepted while viewing.
func (m *Model) setState(s ApplicationState) {
	m.State = s
	if m.session != nil {
		m.session.rotator.SetEnabled(s == StateViewing)
	}
}
