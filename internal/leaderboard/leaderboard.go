// internal/leaderboard/leaderboard.go
//
// Top-score table shared by every round in the process.
// Lives outside round state: restarting a round never touches it, and
// nothing survives a process restart.

package leaderboard

import (
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	// Capacity is the number of entries kept.
	Capacity = 10
	// DefaultName replaces an empty player name.
	DefaultName = "Anonymous"
)

// Entry is one finished round.
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

// Board is a concurrency-safe, descending-by-score table of at most Capacity entries.
type Board struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// New returns an empty leaderboard.
func New() *Board {
	return &Board{now: time.Now}
}

// Insert adds a result, re-sorts and truncates. Ties keep insertion order.
// Returns the table after insertion.
func (b *Board) Insert(name string, score int) []Entry {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{Name: name, Score: score, At: b.now().UTC()})
	slices.SortStableFunc(b.entries, func(x, y Entry) int { return y.Score - x.Score })
	if len(b.entries) > Capacity {
		b.entries = b.entries[:Capacity]
	}
	return slices.Clone(b.entries)
}

// Entries returns a copy of the current table.
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := slices.Clone(b.entries)
	if out == nil {
		out = []Entry{}
	}
	return out
}
