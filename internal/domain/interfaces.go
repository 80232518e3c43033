package domain

import "context"

// FrameFetcher retrieves the raw bytes behind a frame url.
type FrameFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
