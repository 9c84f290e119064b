// Package state holds the drawer's published app list and the list currently
// on display.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/ryan-rushton/drawer/internal/apps"
)

// Change is delivered to subscribers whenever the displayed list changes.
type Change struct {
	Query     string
	Displayed []apps.Record
	Empty     bool
}

// Holder owns the latest snapshot and the filtered view of it. Publish is
// the only writer of the snapshot. The snapshot is swapped atomically, so
// readers never see a partial list, and writes to the displayed list are
// serialized with mu.
type Holder struct {
	snapshot atomic.Pointer[apps.Snapshot]

	mu        sync.Mutex
	query     string
	displayed []apps.Record
	subs      map[int]chan Change
	nextSub   int
}

func New() *Holder {
	return &Holder{subs: make(map[int]chan Change)}
}

// Publish replaces the snapshot and refilters it against the current query.
func (h *Holder) Publish(snap apps.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot.Store(&snap)
	h.displayed = apps.Filter(snap.Records, h.query)
	h.notifyLocked()
}

// Search filters the latest snapshot by query. Before the first Publish it
// filters an empty list.
func (h *Holder) Search(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.query = query
	h.displayed = apps.Filter(h.All(), query)
	h.notifyLocked()
}

// Loaded reports whether a snapshot has been published.
func (h *Holder) Loaded() bool {
	return h.snapshot.Load() != nil
}

// Snapshot returns the latest published snapshot, or the zero value.
func (h *Holder) Snapshot() apps.Snapshot {
	if s := h.snapshot.Load(); s != nil {
		return *s
	}
	return apps.Snapshot{}
}

// All returns every record of the latest snapshot.
func (h *Holder) All() []apps.Record {
	return h.Snapshot().Records
}

func (h *Holder) Query() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query
}

func (h *Holder) Displayed() []apps.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.displayed
}

// Empty reports whether nothing is on display.
func (h *Holder) Empty() bool {
	return len(h.Displayed()) == 0
}

// Subscribe returns a channel of changes and a func to stop receiving them.
// The channel holds at most one pending change; a slow reader only ever sees
// the newest one.
func (h *Holder) Subscribe() (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSub
	h.nextSub++
	ch := make(chan Change, 1)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

func (h *Holder) notifyLocked() {
	c := Change{Query: h.query, Displayed: h.displayed, Empty: len(h.displayed) == 0}
	for _, ch := range h.subs {
		select {
		case ch <- c:
			continue
		default:
		}
		// Drop the stale pending change and replace it.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c:
		default:
		}
	}
}
