package events

import "sync"

type subscription struct {
	id uint64
	h  Handler
}

// Bus is an in-process Emitter with per-name and catch-all subscribers.
// Handlers run synchronously on the emitting goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	byName map[Name][]subscription
	all    []subscription
}

func NewBus() *Bus {
	return &Bus{byName: map[Name][]subscription{}}
}

// Subscribe registers h for events called name. The returned func removes it.
func (b *Bus) Subscribe(name Name, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.byName[name] = append(b.byName[name], subscription{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.byName[name] = remove(b.byName[name], id)
	}
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = remove(b.all, id)
	}
}

// Emit delivers ev to the named subscribers first, then to catch-all ones.
func (b *Bus) Emit(ev Event) {
	b.mu.RLock()
	named := append([]subscription(nil), b.byName[ev.Name]...)
	all := append([]subscription(nil), b.all...)
	b.mu.RUnlock()

	for _, s := range named {
		s.h(ev)
	}
	for _, s := range all {
		s.h(ev)
	}
}

func remove(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Recorder is an Emitter that keeps every event; handy for tests and for
// replaying notifications into a UI that attaches late.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Named returns the recorded events called name, in order.
func (r *Recorder) Named(name Name) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// Last returns the most recent event called name.
func (r *Recorder) Last(name Name) (Event, bool) {
	evs := r.Named(name)
	if len(evs) == 0 {
		return Event{}, false
	}
	return evs[len(evs)-1], true
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
