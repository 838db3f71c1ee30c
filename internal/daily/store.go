package daily

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Result is one player's finished daily round. Key identifies the player
// who started the round (see PlayerKey); results with an empty Key come
// from unnamed rounds and are never deduplicated.
type Result struct {
	Key    string `json:"-"`
	Player string `json:"player"`
	Date   string `json:"date"`
	Score  int    `json:"score"`
	Words  int    `json:"words"`
}

// PlayerKey is the identity a daily result is stored under: the name the
// round was started with, case-insensitive. Empty for unnamed rounds.
func PlayerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Store keeps daily results in memory, one per named player and date.
type Store struct {
	mu      sync.Mutex
	results map[string][]Result // keyed by date
}

func NewStore() *Store { return &Store{results: make(map[string][]Result)} }

// AlreadyPlayed reports whether player has a result for date.
// Unnamed players never have.
func (s *Store) AlreadyPlayed(ctx context.Context, player, date string) (bool, error) {
	key := PlayerKey(player)
	if key == "" {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.results[date], func(r Result) bool { return r.Key == key }), nil
}

// InsertResult ignores a second result for the same Key and date.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	r.Key = PlayerKey(r.Key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Key != "" && slices.ContainsFunc(s.results[r.Date], func(x Result) bool { return x.Key == r.Key }) {
		return nil
	}
	s.results[r.Date] = append(s.results[r.Date], r)
	return nil
}

// Leaderboard returns the best results for date, highest score first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	out := slices.Clone(s.results[date])
	s.mu.Unlock()
	slices.SortStableFunc(out, func(a, b Result) int { return b.Score - a.Score })
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []Result{}
	}
	return out, nil
}
