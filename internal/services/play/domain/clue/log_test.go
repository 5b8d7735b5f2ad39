package clue

import (
	"fmt"
	"testing"
	"time"
)

func TestAddPrependsNewestFirst(t *testing.T) {
	var l Log
	base := time.Date(2026, 3, 1, 10, 21, 0, 0, time.UTC)
	l.Add(base, "first")
	l.Add(base.Add(time.Minute), "second")

	got := l.Entries()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "second" || got[1].Text != "first" {
		t.Fatalf("order = [%s %s], want [second first]", got[0].Text, got[1].Text)
	}
	if got[0].Label() != "10:22" {
		t.Fatalf("label = %q, want 10:22", got[0].Label())
	}
}

func TestAddCapsAtMaxEntries(t *testing.T) {
	var l Log
	now := time.Now()
	for i := range 30 {
		l.Add(now, fmt.Sprintf("clue %d", i))
		if l.Len() > MaxEntries {
			t.Fatalf("len = %d after %d adds, want <= %d", l.Len(), i+1, MaxEntries)
		}
		if newest := l.Entries()[0].Text; newest != fmt.Sprintf("clue %d", i) {
			t.Fatalf("newest = %q, want clue %d", newest, i)
		}
	}
	entries := l.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(entries), MaxEntries)
	}
	if oldest := entries[MaxEntries-1].Text; oldest != "clue 18" {
		t.Fatalf("oldest retained = %q, want clue 18", oldest)
	}
}

func TestResetAndCopy(t *testing.T) {
	var l Log
	l.Add(time.Now(), "hint")
	snapshot := l.Entries()
	snapshot[0].Text = "mutated"
	if l.Entries()[0].Text != "hint" {
		t.Fatal("expected Entries to return a copy")
	}
	l.Reset()
	if l.Len() != 0 || l.Entries() != nil {
		t.Fatalf("expected empty log after reset, got %v", l.Entries())
	}
}
