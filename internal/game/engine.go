// internal/game/engine.go
//
// Round controller for the word grid.
// Responsibilities:
//   - Create rounds on a freshly rolled (or supplied) board.
//   - Apply cell selections through the path tracker.
//   - Validate and score submissions, guarding against replayed paths.
//   - Count down on ticks and finish the round: playing → finished.
//   - Record the final score on the shared leaderboard.
//
// Notes:
//   - Every transition takes a Round and returns the next Round; callers
//     serialize calls per round (see the session package).
//   - Finished rounds ignore everything except Restart.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/dice"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/path"
	"github.com/robalobadob/wordgrid/internal/words"
)

const (
	// DefaultDuration is the round length in ticks (seconds).
	DefaultDuration = 30
	// MinPathLength is the shortest path that may be submitted.
	MinPathLength = 3
)

// Dictionary validates raw board letters.
type Dictionary interface {
	Validate(raw string) words.Result
}

// Leaderboard records finished rounds.
type Leaderboard interface {
	Insert(name string, score int) []leaderboard.Entry
}

// NamePrompt asks for the player's name when a round finishes.
// An empty answer falls back to the round's player, then to Controller.DefaultName.
type NamePrompt func() string

// Controller holds what every round shares: dice, dictionary, leaderboard,
// randomness and round length. DefaultName is recorded for rounds that
// finish without any name; empty means leaderboard.DefaultName.
type Controller struct {
	Dice        dice.Set
	Dictionary  Dictionary
	Leaderboard Leaderboard
	Source      board.Source
	Duration    int
	DefaultName string
}

// NewController returns a controller over the classic dice with a
// process-wide random source and the default round length.
func NewController(dict Dictionary, lb Leaderboard) *Controller {
	return &Controller{
		Dice:        dice.Classic,
		Dictionary:  dict,
		Leaderboard: lb,
		Source:      board.NewSource(),
		Duration:    DefaultDuration,
		DefaultName: leaderboard.DefaultName,
	}
}

// NewRound rolls a new board and starts a round for player.
func (c *Controller) NewRound(player string) Round {
	return c.NewRoundOn(board.Generate(c.Dice, c.Source), player)
}

// NewRoundOn starts a round on a given board.
func (c *Controller) NewRoundOn(b board.Board, player string) Round {
	d := c.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return Round{
		ID:        randomID(),
		Player:    strings.TrimSpace(player),
		Board:     b,
		Path:      path.Path{},
		Used:      Used{},
		History:   []Record{},
		Remaining: d,
		Status:    StatusPlaying,
	}
}

// Select applies a click on (row, col). Off-grid clicks and clicks on a
// finished round leave the round unchanged.
func (c *Controller) Select(r Round, row, col int) Round {
	if r.Finished() || !board.InBounds(row, col) {
		return r
	}
	next := r.clone()
	next.Path = path.AttemptSelect(r.Path, path.Cell{Row: row, Col: col, Letter: r.Board.At(row, col)})
	return next
}

// Submit scores the current path and clears it.
//
// A submission scores positively only if the word is recognized and this
// exact path has not been credited before; the path is then recorded.
// Everything else, including paths shorter than MinPathLength, costs Penalty
// and is not recorded, so the same path may be retried (and penalized) again.
func (c *Controller) Submit(r Round) (Round, Record) {
	if r.Finished() {
		return r, Record{}
	}
	raw := path.Letters(r.Path)
	res := c.Dictionary.Validate(raw)
	hash := path.Hash(r.Path)

	recognized := res.Recognized && len(r.Path) >= MinPathLength
	replayed := recognized && IsPathReused(hash, r.Used)
	accepted := recognized && !replayed

	rec := Record{
		Word:     res.Display,
		Score:    Score(accepted, res.Length),
		Accepted: accepted,
		Replayed: replayed,
	}

	next := r.clone()
	if accepted {
		next.Used = RecordPath(hash, r.Used)
	}
	next.Score += rec.Score
	next.History = append(next.History, rec)
	next.Path = path.Path{}
	return next, rec
}

// Tick consumes one elapsed second. When the clock reaches zero the round
// finishes and its score goes on the leaderboard.
func (c *Controller) Tick(r Round, name NamePrompt) Round {
	if r.Finished() {
		return r
	}
	next := r.clone()
	next.Remaining--
	if next.Remaining > 0 {
		return next
	}
	next.Remaining = 0
	return c.finish(next, name)
}

// Restart discards r and starts a fresh round for the same player.
// The leaderboard is untouched.
func (c *Controller) Restart(r Round) Round {
	return c.NewRound(r.Player)
}

func (c *Controller) finish(r Round, name NamePrompt) Round {
	player := ""
	if name != nil {
		player = strings.TrimSpace(name())
	}
	if player == "" {
		player = r.Player
	}
	if player == "" {
		player = strings.TrimSpace(c.DefaultName)
	}
	if player == "" {
		player = leaderboard.DefaultName
	}
	r.Player = player
	r.Status = StatusFinished
	r.Path = path.Path{}
	if c.Leaderboard != nil {
		c.Leaderboard.Insert(player, r.Score)
	}
	return r
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
