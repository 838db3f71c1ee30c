// internal/session/session.go
//
// A Session drives one player's rounds.
// Responsibilities:
//   - Serialize player actions and clock ticks on a single mutex, so the
//     round transitions in package game never run concurrently.
//   - Own the one-second ticker; stop it when the round finishes, when the
//     session is stopped, or when its context is cancelled.
//   - Fan out snapshots to subscribers (websocket clients, the shell).
//
// The session ID stays fixed across restarts; each round gets its own ID.

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/metrics"
)

// DefaultInterval is the real-time length of one tick.
const DefaultInterval = time.Second

const subscriberBuffer = 8

var (
	// ErrRoundFinished is returned by TrySubmit once the clock has run out.
	ErrRoundFinished = errors.New("round finished")
	// ErrPathTooShort is returned by TrySubmit for paths under game.MinPathLength cells.
	ErrPathTooShort = errors.New("path too short")
)

// Option configures a Session.
type Option func(*Session)

// WithInterval overrides the tick period (tests use milliseconds).
func WithInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithNamePrompt asks prompt for the leaderboard name when a round finishes.
// Without it the name set by SetName (or the round's player) is used.
func WithNamePrompt(prompt game.NamePrompt) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithLeaderboard supplies the table included in snapshots.
func WithLeaderboard(top func() []leaderboard.Entry) Option {
	return func(s *Session) { s.top = top }
}

// WithOnFinish runs fn (under the session lock) when a round finishes.
func WithOnFinish(fn func(game.Round)) Option {
	return func(s *Session) { s.onFinish = fn }
}

// Session is safe for concurrent use.
type Session struct {
	id       string
	ctrl     *game.Controller
	interval time.Duration
	prompt   game.NamePrompt
	top      func() []leaderboard.Entry
	onFinish func(game.Round)

	mu      sync.Mutex
	round   game.Round
	name    string
	parent  context.Context
	cancel  context.CancelFunc
	started bool
	subs    map[chan game.Snapshot]struct{}
	stopped bool

	finishedAt time.Time
}

// New wraps an initial round. The ticker is not running until Start.
func New(ctrl *game.Controller, r game.Round, opts ...Option) *Session {
	s := &Session{
		id:       r.ID,
		ctrl:     ctrl,
		interval: DefaultInterval,
		top:      func() []leaderboard.Entry { return nil },
		round:    r,
		name:     r.Player,
		parent:   context.Background(),
		subs:     make(map[chan game.Snapshot]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ID is the session identifier (the first round's ID).
func (s *Session) ID() string { return s.id }

// Round returns the current round value.
func (s *Session) Round() game.Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Snapshot returns the current view.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetName records the name to use when the current round finishes.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = strings.TrimSpace(name)
}

// Select applies a click on (row, col).
func (s *Session) Select(row, col int) game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round = s.ctrl.Select(s.round, row, col)
	return s.publishLocked()
}

// Submit scores the current path.
func (s *Session) Submit() (game.Record, game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round.Finished() {
		return game.Record{}, s.snapshotLocked()
	}
	return s.submitLocked()
}

// TrySubmit is Submit for clients that only offer submission on paths of
// game.MinPathLength cells or more. The check and the scoring share one lock.
func (s *Session) TrySubmit() (game.Record, game.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round.Finished() {
		return game.Record{}, s.snapshotLocked(), ErrRoundFinished
	}
	if len(s.round.Path) < game.MinPathLength {
		return game.Record{}, s.snapshotLocked(), ErrPathTooShort
	}
	rec, snap := s.submitLocked()
	return rec, snap, nil
}

func (s *Session) submitLocked() (game.Record, game.Snapshot) {
	var rec game.Record
	s.round, rec = s.ctrl.Submit(s.round)
	metrics.ObserveSubmission(rec.Accepted, rec.Replayed)
	log.Debug().
		Str("session", s.id).
		Str("word", rec.Word).
		Int("score", rec.Score).
		Bool("accepted", rec.Accepted).
		Msg("submit")
	return rec, s.publishLocked()
}

// Tick consumes one elapsed second. The ticker calls it; an external
// scheduler may call it instead of Start.
func (s *Session) Tick() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked()
	return s.snapshotLocked()
}

// Restart replaces the round with a fresh one. The leaderboard is kept.
// If the ticker had been started it is re-armed for the new round.
func (s *Session) Restart() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
	s.round = s.ctrl.Restart(s.round)
	s.finishedAt = time.Time{}
	metrics.RoundsStarted.WithLabelValues("restart").Inc()
	log.Info().Str("session", s.id).Str("round", s.round.ID).Msg("round restarted")
	if s.started && !s.stopped {
		s.startLocked()
	}
	return s.publishLocked()
}

// Start runs the ticker until ctx is cancelled, Stop is called, or the round finishes.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.parent = ctx
	s.started = true
	s.startLocked()
}

// Stop tears the session down: the ticker stops and subscribers are closed.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.stopTickerLocked()
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
}

// Subscribe returns a channel of snapshots published after every change,
// and a function to unsubscribe. Slow subscribers miss snapshots.
func (s *Session) Subscribe() (<-chan game.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan game.Snapshot, subscriberBuffer)
	if s.stopped {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

// Idle reports whether the session can be dropped: it is stopped, or its
// round finished at least grace before now and nobody is subscribed.
func (s *Session) Idle(now time.Time, grace time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return true
	}
	if !s.round.Finished() || len(s.subs) > 0 {
		return false
	}
	return !s.finishedAt.IsZero() && now.Sub(s.finishedAt) >= grace
}

// --- internals (s.mu held) --------------------------------------------------

func (s *Session) startLocked() {
	if s.cancel != nil || s.round.Finished() {
		return
	}
	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	go s.run(ctx)
}

func (s *Session) stopTickerLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.tickFromTimer(ctx) {
				return
			}
		}
	}
}

// tickFromTimer reports whether the loop should exit.
func (s *Session) tickFromTimer(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The ticker may have been replaced while waiting for the lock.
	if ctx.Err() != nil {
		return true
	}
	s.tickLocked()
	return s.round.Finished()
}

func (s *Session) tickLocked() {
	if s.round.Finished() {
		return
	}
	s.round = s.ctrl.Tick(s.round, s.namePrompt())
	if s.round.Finished() {
		s.finishedAt = time.Now()
		s.stopTickerLocked()
		metrics.ObserveFinish(s.round.Score)
		log.Info().
			Str("session", s.id).
			Str("round", s.round.ID).
			Str("player", s.round.Player).
			Int("score", s.round.Score).
			Msg("round finished")
		if s.onFinish != nil {
			s.onFinish(s.round)
		}
	}
	s.publishLocked()
}

func (s *Session) namePrompt() game.NamePrompt {
	if s.prompt != nil {
		return s.prompt
	}
	name := s.name
	return func() string { return name }
}

func (s *Session) snapshotLocked() game.Snapshot {
	snap := s.round.Snapshot(s.top())
	snap.Session = s.id
	return snap
}

func (s *Session) publishLocked() game.Snapshot {
	snap := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}
