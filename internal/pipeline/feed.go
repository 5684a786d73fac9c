package pipeline

import "sync"

// Feed is the in-memory notification list behind the dashboard's
// notification panel. Newest first, capped, at-most-once: events that
// scroll out of the buffer are gone.
type Feed struct {
	mu       sync.Mutex
	capacity int
	events   []Event
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 100
	}
	return &Feed{capacity: capacity}
}

func (f *Feed) Publish(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append([]Event{event}, f.events...)
	if len(f.events) > f.capacity {
		f.events = f.events[:f.capacity]
	}
}

func (f *Feed) List() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}
