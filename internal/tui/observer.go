package tui

import "github.com/mmcdole/turntable/internal/domain"

// ChannelObserver adapts domain.LoadObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch   chan domain.LoadProgress
	done chan struct{}
}

// NewChannelObserver creates an observer buffered for size loads.
func NewChannelObserver(size int) *ChannelObserver {
	return &ChannelObserver{
		ch:   make(chan domain.LoadProgress, max(size, 1)),
		done: make(chan struct{}),
	}
}

// OnLoad sends progress to the channel (non-blocking if full or closed).
func (o *ChannelObserver) OnLoad(progress domain.LoadProgress) {
	select {
	case <-o.done:
		return
	default:
	}
	select {
	case o.ch <- progress:
	default: // Non-blocking if channel full
	}
}

// Close releases anyone waiting on the observer. Later loads are dropped.
func (o *ChannelObserver) Close() {
	select {
	case <-o.done:
	default:
		close(o.done)
	}
}
