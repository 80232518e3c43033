package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/turntable/internal/drag"
	"github.com/mmcdole/turntable/internal/rotator"
	"github.com/mmcdole/turntable/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StatePicking:
		return m.renderOverlay(m.renderPicker())
	case StateHelp:
		return m.renderOverlay(m.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderViewer(),
		m.renderFooter(),
	)
}

// renderOverlay centers a modal on the screen
func (m Model) renderOverlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderPicker() string {
	if m.deps.Sets == nil || len(m.deps.Sets.Sets()) == 0 {
		return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render("No frame sets configured"),
			styles.DimStyle.Render("Pass frame urls, -dir, or add sets to config.yaml"),
			styles.DimStyle.Render("esc to quit"),
		))
	}
	return m.Picker.View()
}

func (m Model) renderHelp() string {
	var rows []string
	rows = append(rows, styles.ModalTitleStyle.Render("Keys"))
	rows = append(rows, styles.HelpKeyStyle.Render(fmt.Sprintf("%-8s", "drag"))+" "+
		styles.HelpDescStyle.Render("turn the object"))
	for _, b := range Keys.HelpBindings() {
		h := b.Help()
		rows = append(rows, styles.HelpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key))+" "+
			styles.HelpDescStyle.Render(h.Desc))
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderHeader shows the set name, frame position and render strategy
func (m Model) renderHeader() string {
	if m.session == nil {
		return styles.TitleStyle.Render("turntable")
	}
	coord := m.session.rotator

	badge := styles.DimBadgeStyle.Render("locked")
	if m.element.HasClass(drag.DraggableClass) {
		badge = styles.BadgeStyle.Render("drag to turn")
	}
	left := styles.TitleStyle.Render(m.session.set.Name) + " " +
		styles.DimBadgeStyle.Render(fmt.Sprintf("frame %d/%d", coord.Index()+1, coord.FrameCount())) + " " + badge
	right := styles.DimStyle.Render(m.deps.Renderer.Strategy().String())

	gap := max(1, m.Width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderViewer draws the displayed frame inside a border that lights up
// while the element carries the active class
func (m Model) renderViewer() string {
	width, height := m.frameSize()

	border := styles.InactiveBorder
	if m.element.HasClass(rotator.ActiveClass) {
		border = styles.ActiveBorder
	}

	content := m.renderFrame(width, height)
	return border.
		Width(width).
		Height(height).
		Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content))
}

func (m Model) renderFrame(width, height int) string {
	if m.session == nil {
		return styles.DimStyle.Render("No frame set open")
	}
	coord := m.session.rotator
	current := coord.Current()

	switch {
	case current.URL() == "":
		return styles.DimStyle.Render("No frames")
	case current.IsReady():
		return m.deps.Renderer.Render(current.URL(), current.Picture(), width, height)
	case m.session.failed[current.Index()]:
		return styles.ErrorStyle.Render("Frame unavailable: " + styles.Truncate(current.URL(), width-20))
	default:
		spinner := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
		return styles.SpinnerStyle.Render(spinner) + " Loading frame..."
	}
}

// renderFooter shows load progress, rotation and status
func (m Model) renderFooter() string {
	if m.session == nil {
		return styles.DimStyle.Render("s sets • ? help • q quit")
	}
	coord := m.session.rotator

	ready, total := coord.ReadyCount(), coord.FrameCount()
	bar := m.Progress.ViewAs(float64(ready) / float64(total))
	loaded := fmt.Sprintf(" %d/%d loaded", ready, total)
	if failed := len(m.session.failed); failed > 0 {
		loaded += styles.ErrorStyle.Render(fmt.Sprintf(" (%d failed)", failed))
	}

	angle := fmt.Sprintf("  %3.0f°", coord.Amount()*360)
	state := ""
	if coord.State() == rotator.StateDragging {
		state = styles.AccentStyle.Render("  dragging")
	}

	right := styles.DimStyle.Render("? help")
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		right = style.Render(styles.Truncate(m.StatusMsg, m.Width/2))
	}

	left := bar + loaded + angle + state
	gap := max(1, m.Width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}
