// Package journal keeps a bounded, filterable history of session events.
package journal

import (
	"sync"
	"time"

	"github.com/NickTran11/masterbait/internal/services/play/domain/level"
)

// DefaultCapacity is the number of events a session journal retains.
const DefaultCapacity = 256

// Entry is one journaled event.
type Entry struct {
	Seq     uint64          `json:"seq"`
	At      time.Time       `json:"ts"`
	Type    level.EventType `json:"type"`
	LevelID int             `json:"level_id,omitempty"`
	Event   level.Event     `json:"event"`
}

// Journal is a fixed-size ring of events. It is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	start   int
	size    int
	nextSeq uint64
}

// New returns a journal holding at most capacity entries. A non-positive
// capacity uses DefaultCapacity.
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{entries: make([]Entry, capacity)}
}

// OnEvent implements level.Listener.
func (j *Journal) OnEvent(e level.Event) { j.Append(e) }

// Append records e, evicting the oldest entry when full.
func (j *Journal) Append(e level.Event) Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.nextSeq++
	entry := Entry{Seq: j.nextSeq, At: e.At, Type: e.Type, LevelID: e.LevelID, Event: e}
	idx := (j.start + j.size) % len(j.entries)
	if j.size == len(j.entries) {
		j.start = (j.start + 1) % len(j.entries)
	} else {
		j.size++
	}
	j.entries[idx] = entry
	return entry
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.size
}

// List returns entries matching filter, oldest first. When limit is positive
// only the newest limit matches are returned.
func (j *Journal) List(filter string, limit int) ([]Entry, error) {
	match, err := ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	j.mu.Lock()
	out := make([]Entry, 0, j.size)
	for i := range j.size {
		e := j.entries[(j.start+i)%len(j.entries)]
		if match(e) {
			out = append(out, e)
		}
	}
	j.mu.Unlock()

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
