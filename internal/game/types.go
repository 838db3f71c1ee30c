// internal/game/types.go
//
// Core type definitions for a timed word-grid round.
// Defines:
//   - Status: playing or finished.
//   - Record: one submission as shown in the history list.
//   - Round: the complete per-round state, threaded through Controller transitions.

package game

import (
	"slices"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/path"
)

// Status is the round lifecycle state.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Record is one submission attempt, valid or not.
type Record struct {
	Word     string `json:"word"`     // display form, Q expanded to QU
	Score    int    `json:"score"`    // delta applied to the round score
	Accepted bool   `json:"accepted"` // recognized and not a replayed path
	Replayed bool   `json:"replayed"` // recognized but the same path already scored
}

// Round holds the state of one round. Controller methods never modify a
// Round in place; they return the next value.
type Round struct {
	ID        string      // Unique round identifier (random hex string).
	Player    string      // Name recorded on the leaderboard; may be empty.
	Daily     string      // YYYY-MM-DD for daily boards, empty otherwise.
	Board     board.Board // Fixed for the round.
	Path      path.Path   // Current in-progress selection.
	Score     int         // Cumulative score.
	Used      Used        // Path hashes already credited.
	History   []Record    // Every submission in order.
	Remaining int         // Seconds left.
	Status    Status
}

// Finished reports whether the round is frozen.
func (r Round) Finished() bool { return r.Status == StatusFinished }

// clone copies the slice-backed fields so the returned value can be changed
// without touching r. Used is already copy-on-write.
func (r Round) clone() Round {
	r.Path = slices.Clone(r.Path)
	r.History = slices.Clone(r.History)
	return r
}
