package adapter

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens a frame in an external image viewer
type Launcher struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	// start runs the built command; replaced in tests
	start func(cmd *exec.Cmd) error
}

// NewLauncher creates a new Launcher
func NewLauncher(cfg ViewerConfig, logger *slog.Logger) *Launcher {
	logger = ComponentLogger(logger, "launcher")
	return &Launcher{
		command: cfg.Command,
		args:    cfg.Args,
		logger:  logger,
		start:   func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// Launch opens url in the configured viewer or the system default
func (l *Launcher) Launch(url string) error {
	cmd := l.buildCommand(url)
	l.logger.Info("launching viewer", "command", cmd.Path, "args", cmd.Args[1:], "url", url)
	return l.start(cmd)
}

// buildCommand resolves the viewer invocation for url
func (l *Launcher) buildCommand(url string) *exec.Cmd {
	// URL goes at the end
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		return exec.Command(l.command, args...)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
