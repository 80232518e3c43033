package pointer

// Subscription is a registered listener. Remove is safe to call repeatedly.
type Subscription struct {
	bus     *Bus
	kind    Kind
	target  Target
	handler HandlerFunc
	removed bool
}

// Remove unregisters the listener
func (s *Subscription) Remove() {
	if s == nil || s.removed {
		return
	}
	s.removed = true
	s.bus.remove(s)
}

// Bus delivers pointer events to listeners. A Bus is owned by the host
// and used from its event loop only.
type Bus struct {
	listeners map[Kind][]*Subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]*Subscription)}
}

// Listen registers handler for kind. A nil target listens document-wide;
// otherwise the handler only sees events whose position is inside target.
func (b *Bus) Listen(kind Kind, target Target, handler HandlerFunc) *Subscription {
	s := &Subscription{bus: b, kind: kind, target: target, handler: handler}
	b.listeners[kind] = append(b.listeners[kind], s)
	return s
}

// Dispatch delivers ev to matching listeners in registration order and
// reports whether any of them prevented default handling.
func (b *Bus) Dispatch(ev *Event) bool {
	subs := append([]*Subscription(nil), b.listeners[ev.Kind]...)
	for _, s := range subs {
		// Removed by an earlier handler in this dispatch
		if s.removed {
			continue
		}
		if s.target != nil && !s.target.Contains(ev.X, ev.Y) {
			continue
		}
		s.handler(ev)
	}
	return ev.DefaultPrevented()
}

// Count returns the number of live listeners for kind
func (b *Bus) Count(kind Kind) int {
	return len(b.listeners[kind])
}

func (b *Bus) remove(s *Subscription) {
	subs := b.listeners[s.kind]
	for i, cur := range subs {
		if cur == s {
			b.listeners[s.kind] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
