package domain

import "errors"

// Sentinel errors for frame operations
var (
	// ErrEmptyURL indicates a frame placeholder with no image behind it
	ErrEmptyURL = errors.New("frame url is empty")

	// ErrUnsupportedScheme indicates a frame url the fetcher cannot resolve
	ErrUnsupportedScheme = errors.New("unsupported frame url scheme")

	// ErrFrameUnavailable indicates the frame source answered with a non-success status
	ErrFrameUnavailable = errors.New("frame source is unavailable")

	// ErrSetNotFound indicates the requested frame set is not configured
	ErrSetNotFound = errors.New("frame set not found")

	// ErrNoFrames indicates a frame directory held no decodable images
	ErrNoFrames = errors.New("no frame images found")
)
