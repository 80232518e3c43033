package domain

// FrameStore caches raw frame bytes keyed by frame url.
// Implementations promote disk hits into memory for the drag hot path.
type FrameStore interface {
	GetFrame(url string) ([]byte, bool)
	SaveFrame(url string, data []byte) error
	InvalidateFrame(url string)
	InvalidateAll()
	Close() error
}

// LoadProgress reports the outcome of one frame load.
type LoadProgress struct {
	URL   string
	Index int // Position of the frame in its set
	Error error
}

// LoadObserver receives a LoadProgress each time a frame load finishes.
type LoadObserver interface {
	OnLoad(progress LoadProgress)
}

// NoOpObserver discards load updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnLoad(LoadProgress) {}
