package events

import "sync"

// History is a thread-safe circular buffer of the most recently written entries.
type History struct {
	entries   []EntryWrittenEvent
	size      int
	head      int
	count     int
	followers map[int]chan<- any
	nextID    int
	mu        sync.RWMutex
}

// NewHistory creates a history holding at most size entries.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{
		entries:   make([]EntryWrittenEvent, size),
		size:      size,
		followers: make(map[int]chan<- any),
	}
}

// Record subscribes the history to written entries on bus.
func (h *History) Record(bus *Bus) func() {
	return bus.Subscribe(func(e EntryWrittenEvent) {
		h.Add(e)
	})
}

// Add stores an entry, overwriting the oldest one when full, and passes it
// to every follower. Followers with a full channel miss the entry.
func (h *History) Add(entry EntryWrittenEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.head] = entry
	h.head = (h.head + 1) % h.size

	if h.count < h.size {
		h.count++
	}

	for _, ch := range h.followers {
		select {
		case ch <- entry:
		default:
		}
	}
}

// Follow returns the held entries and registers ch for every entry added
// afterwards. Both happen under one lock, so each entry is either in the
// returned slice or sent on ch, never both. The returned function stops
// the delivery.
func (h *History) Follow(ch chan<- any) ([]EntryWrittenEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.followers[id] = ch

	return h.snapshotLocked(), func() {
		h.mu.Lock()
		delete(h.followers, id)
		h.mu.Unlock()
	}
}

// ReadAll returns all entries in chronological order.
func (h *History) ReadAll() []EntryWrittenEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

func (h *History) snapshotLocked() []EntryWrittenEvent {
	if h.count == 0 {
		return nil
	}

	result := make([]EntryWrittenEvent, h.count)
	if h.count < h.size {
		copy(result, h.entries[:h.count])
	} else {
		n := copy(result, h.entries[h.head:])
		copy(result[n:], h.entries[:h.head])
	}
	return result
}

// Count returns the number of entries held.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
