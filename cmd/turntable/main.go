package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/turntable/internal/adapter"
	"github.com/mmcdole/turntable/internal/domain"
	"github.com/mmcdole/turntable/internal/render"
	"github.com/mmcdole/turntable/internal/service"
	"github.com/mmcdole/turntable/internal/store"
	"github.com/mmcdole/turntable/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// options holds the parsed command line
type options struct {
	setName       string
	dir           string
	circumference float64
	strategy      string
	save          string
	clearCache    bool
	urls          []string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.setName, "set", "", "open the configured frame set `name`")
	flag.StringVar(&opts.dir, "dir", "", "use every image in `directory` as a frame, in name order")
	flag.Float64Var(&opts.circumference, "circumference", 0, "cells dragged for one full turn")
	flag.StringVar(&opts.strategy, "render", "", "render strategy: auto, accelerated or legacy")
	flag.StringVar(&opts.save, "save", "", "save the given frames to the config as set `name`")
	flag.BoolVar(&opts.clearCache, "clear-cache", false, "remove cached frames and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: turntable [flags] [frame-url ...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.urls = flag.Args()

	if showVersion {
		fmt.Printf("turntable %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.circumference > 0 {
		cfg.Rotator.Circumference = opts.circumference
	}
	if opts.strategy != "" {
		cfg.Render.Strategy = opts.strategy
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting turntable", "version", Version)

	if opts.clearCache {
		return clearCache(cfg, logger)
	}

	adHoc, err := adHocSet(opts)
	if err != nil {
		return err
	}

	if opts.save != "" {
		if adHoc == nil {
			return fmt.Errorf("-save needs frame urls or -dir")
		}
		adHoc.Name = opts.save
		if err := adapter.SaveSet(cfg, *adHoc); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s (%s)\n", adHoc.Name, adHoc.Description())
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("turntable needs an interactive terminal")
	}

	sets := service.NewSetService(cfg.Sets, logger)
	initial, err := initialSet(cfg, sets, opts, adHoc)
	if err != nil {
		return err
	}

	// Frame cache, memory-only when disabled
	cacheDir := ""
	if cfg.Cache.Enabled {
		cacheDir = cfg.Cache.Path
	}
	frameStore, err := store.NewFrameStore(cacheDir)
	if err != nil {
		logger.Warn("frame cache unavailable, using memory only", "path", cacheDir, "error", err)
		if frameStore, err = store.NewFrameStore(""); err != nil {
			return fmt.Errorf("failed to create frame store: %w", err)
		}
	}
	defer frameStore.Close()

	strategy, err := render.Resolve(cfg.Render.Strategy, lipgloss.ColorProfile())
	if err != nil {
		return err
	}
	logger.Info("render strategy", "strategy", strategy.String())

	fetcher := adapter.NewFetcher(cfg.Fetch, logger)
	frames := service.NewFrameService(fetcher, frameStore, logger)

	model := tui.NewModel(tui.Deps{
		Sets:          sets,
		Loader:        frames,
		Renderer:      render.NewRenderer(strategy),
		Launcher:      adapter.NewLauncher(cfg.Viewer, logger),
		Logger:        logger,
		Circumference: cfg.Rotator.Circumference,
	}, initial)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// clearCache drops every cached frame
func clearCache(cfg *adapter.Config, logger *slog.Logger) error {
	frameStore, err := store.NewFrameStore(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("failed to open frame cache: %w", err)
	}
	defer frameStore.Close()

	count, size := frameStore.Stats()
	frameStore.InvalidateAll()
	logger.Info("frame cache cleared", "frames", count, "bytes", size)
	fmt.Printf("✓ Cleared %d cached frames\n", count)
	return nil
}

// adHocSet builds a set from positional urls or -dir, nil when neither is given
func adHocSet(opts options) (*domain.FrameSet, error) {
	var urls []string
	name := "frames"

	if opts.dir != "" {
		found, err := adapter.ExpandDir(opts.dir)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
		name = filepath.Base(filepath.Clean(opts.dir))
	}
	urls = append(urls, opts.urls...)

	if len(urls) == 0 {
		return nil, nil
	}
	return &domain.FrameSet{
		Name:          name,
		Circumference: opts.circumference,
		URLs:          urls,
	}, nil
}

// initialSet picks the set opened at startup. nil opens the picker.
func initialSet(cfg *adapter.Config, sets *service.SetService, opts options, adHoc *domain.FrameSet) (*domain.FrameSet, error) {
	if adHoc != nil {
		return adHoc, nil
	}

	name := opts.setName
	if name == "" {
		name = cfg.Rotator.DefaultSet
	}
	if name != "" {
		set, err := sets.Find(name)
		if err != nil {
			if errors.Is(err, domain.ErrSetNotFound) && len(sets.Names()) > 0 {
				return nil, fmt.Errorf("%w\nconfigured sets: %s", err, strings.Join(sets.Names(), ", "))
			}
			return nil, err
		}
		return &set, nil
	}

	if all := sets.Sets(); len(all) == 1 {
		return &all[0], nil
	}
	return nil, nil
}
