// Package clue keeps the bounded, newest-first log of hints a player has
// discovered during a level.
package clue

import "time"

// MaxEntries bounds the log.
const MaxEntries = 12

// Entry is one discovered hint.
type Entry struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Label formats the entry time the way the clue panel shows it.
func (e Entry) Label() string { return e.At.Format("15:04") }

// Log is a bounded clue log. The zero value is empty and ready to use.
type Log struct {
	entries []Entry
}

// Add prepends a clue and drops the oldest entries beyond MaxEntries.
func (l *Log) Add(at time.Time, text string) {
	l.entries = append(l.entries, Entry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = Entry{At: at, Text: text}
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
}

// Reset clears the log.
func (l *Log) Reset() { l.entries = nil }

// Len returns the number of retained clues.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
