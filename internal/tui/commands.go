package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Command factories for async operations

// Launcher opens a frame outside the terminal
type Launcher interface {
	Launch(url string) error
}

// TickCmd returns a command that sends a tick after the specified duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// WaitForLoadCmd waits for the next frame load of a session. It returns
// nil once the observer is closed.
func WaitForLoadCmd(obs *ChannelObserver, generation int) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-obs.ch:
			return FrameLoadedMsg{Generation: generation, Progress: p}
		case <-obs.done:
			return nil
		}
	}
}

// ClearStatusCmd returns a command that clears the status after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// LaunchViewerCmd opens url with the launcher
func LaunchViewerCmd(l Launcher, url string) tea.Cmd {
	return func() tea.Msg {
		if err := l.Launch(url); err != nil {
			return ErrMsg{Err: err, Context: "opening viewer"}
		}
		return StatusMsg{Message: "Opened " + url}
	}
}
