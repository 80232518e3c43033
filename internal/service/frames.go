package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/mmcdole/turntable/internal/domain"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FrameService resolves frame urls into pictures, reading through the
// frame store before going to the fetcher. It implements frame.Loader.
type FrameService struct {
	fetcher domain.FrameFetcher
	store   domain.FrameStore
	logger  *slog.Logger
}

// NewFrameService creates a frame service. store may be nil to disable caching.
func NewFrameService(fetcher domain.FrameFetcher, store domain.FrameStore, logger *slog.Logger) *FrameService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "frames")
	return &FrameService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// Load returns the decoded picture for url
func (s *FrameService) Load(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, domain.ErrEmptyURL
	}

	if s.store != nil {
		if data, ok := s.store.GetFrame(url); ok {
			img, err := decode(data)
			if err == nil {
				s.logger.Debug("frame cache hit", "url", url)
				return img, nil
			}
			// Corrupt entry: drop it and fetch again
			s.logger.Warn("dropping undecodable cached frame", "url", url, "error", err)
			s.store.InvalidateFrame(url)
		}
	}

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", url, err)
	}

	// Only decodable frames are cached
	if s.store != nil {
		if err := s.store.SaveFrame(url, data); err != nil {
			s.logger.Warn("failed to cache frame", "url", url, "error", err)
		}
	}

	return img, nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
