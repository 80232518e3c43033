// Package frame caches one rotation frame: it starts loading the image as
// soon as it is created and exposes a non-blocking readiness flag.
package frame

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mmcdole/turntable/internal/domain"
)

// Loader resolves a frame url into a decoded picture.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// Image is a single cached frame. Readiness only ever goes false -> true.
type Image struct {
	url   string
	index int

	ready atomic.Bool
	done  chan struct{}

	mu      sync.RWMutex
	picture image.Image
}

// Options configures a frame load
type Options struct {
	Index    int // Position in the frame set, reported to the observer
	Observer domain.LoadObserver
	Logger   *slog.Logger
}

// New creates a frame for url and begins loading it in the background.
// There is no retry: a failed load leaves the frame permanently unready.
func New(ctx context.Context, url string, loader Loader, opts Options) *Image {
	if opts.Observer == nil {
		opts.Observer = domain.NoOpObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	img := &Image{
		url:   url,
		index: opts.Index,
		done:  make(chan struct{}),
	}
	go img.load(ctx, loader, opts)
	return img
}

func (i *Image) load(ctx context.Context, loader Loader, opts Options) {
	defer close(i.done)

	pic, err := loader.Load(ctx, i.url)
	if err == nil && pic == nil {
		err = domain.ErrFrameUnavailable
	}
	if err != nil {
		opts.Logger.Warn("frame load failed", "url", i.url, "index", i.index, "error", err)
		opts.Observer.OnLoad(domain.LoadProgress{URL: i.url, Index: i.index, Error: err})
		return
	}

	i.mu.Lock()
	i.picture = pic
	i.mu.Unlock()
	i.ready.Store(true)

	opts.Logger.Debug("frame loaded", "url", i.url, "index", i.index)
	opts.Observer.OnLoad(domain.LoadProgress{URL: i.url, Index: i.index})
}

// URL returns the url the frame was created with
func (i *Image) URL() string {
	return i.url
}

// Index returns the frame's position in its set
func (i *Image) Index() int {
	return i.index
}

// IsReady reports whether the picture has loaded. It never blocks.
func (i *Image) IsReady() bool {
	return i.ready.Load()
}

// Picture returns the decoded picture, nil until the frame is ready
func (i *Image) Picture() image.Image {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.picture
}

// Done is closed once the load attempt has finished, successfully or not
func (i *Image) Done() <-chan struct{} {
	return i.done
}
