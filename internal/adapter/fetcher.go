package adapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	"github.com/mmcdole/turntable/internal/domain"
)

const defaultTimeout = 30 * time.Second

// maxFrameBytes bounds a single frame download
const maxFrameBytes = 32 << 20

// Fetcher implements domain.FrameFetcher for http(s), file:// and local paths
type Fetcher struct {
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a frame fetcher
func NewFetcher(cfg FetchConfig, logger *slog.Logger) *Fetcher {
	logger = ComponentLogger(logger, "fetcher")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch returns the bytes behind a frame url
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, domain.ErrEmptyURL
	}

	// Only strings with a scheme are urls; anything else is a local path,
	// which may hold characters url.Parse rejects
	scheme, ok := urlScheme(rawURL)
	if !ok {
		return f.readFile(rawURL)
	}

	switch scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse frame url: %w", err)
		}
		return f.readFile(u.Path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedScheme, scheme)
	}
}

// urlScheme returns the lower-cased scheme of a "scheme://" string
func urlScheme(raw string) (string, bool) {
	i := strings.Index(raw, "://")
	if i <= 0 {
		return "", false
	}
	scheme := raw[:i]
	for j, r := range scheme {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (j == 0 || !strings.ContainsRune("0123456789+-.", r)) {
			return "", false
		}
	}
	return strings.ToLower(scheme), true
}

// fetchHTTP performs a GET request for a remote frame
func (f *Fetcher) fetchHTTP(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "image/*")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug("frame request", "url", reqURL)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("frame request failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFrameUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Error("frame request error", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrFrameUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFrameBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame file: %w", err)
	}
	return data, nil
}

// frameExtensions lists the file types picked up from a frame directory
var frameExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// ExpandDir returns the image files in dir sorted by name, which is the
// rotation order.
func ExpandDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoFrames, dir)
	}

	// frame2 sorts before frame10
	sort.Sort(natural.StringSlice(paths))
	return paths, nil
}
