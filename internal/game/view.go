// internal/game/view.go
//
// Read-only projection of a Round for the presentation layer
// (HTTP JSON, websocket stream, terminal shell).

package game

import (
	"github.com/samber/lo"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/path"
	"github.com/robalobadob/wordgrid/internal/words"
)

// CellStatus drives per-cell highlighting.
type CellStatus string

const (
	CellSelected   CellStatus = "selected"
	CellSelectable CellStatus = "selectable"
	CellInvalid    CellStatus = "invalid"
)

// CellView is one rendered grid cell.
type CellView struct {
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Letter string     `json:"letter"` // "Qu" for a Q face
	Status CellStatus `json:"status"`
}

// Snapshot is everything a client needs to draw the round.
type Snapshot struct {
	Session     string              `json:"session,omitempty"`
	ID          string              `json:"id"`
	Player      string              `json:"player,omitempty"`
	Daily       string              `json:"daily,omitempty"`
	Board       []string            `json:"board"`
	Cells       [][]CellView        `json:"cells"`
	Path        []path.Cell         `json:"path"`
	Word        string              `json:"word"`
	CanSubmit   bool                `json:"canSubmit"`
	Score       int                 `json:"score"`
	History     []Record            `json:"history"`
	Remaining   int                 `json:"remaining"`
	Status      Status              `json:"status"`
	Finished    bool                `json:"finished"`
	Leaderboard []leaderboard.Entry `json:"leaderboard"`
}

// Snapshot projects r together with the current leaderboard.
func (r Round) Snapshot(top []leaderboard.Entry) Snapshot {
	cells := make([][]CellView, board.Size)
	for row := 0; row < board.Size; row++ {
		cells[row] = make([]CellView, board.Size)
		for col := 0; col < board.Size; col++ {
			cells[row][col] = CellView{
				Row:    row,
				Col:    col,
				Letter: FaceLabel(r.Board.At(row, col)),
				Status: r.cellStatus(row, col),
			}
		}
	}
	if top == nil {
		top = []leaderboard.Entry{}
	}
	return Snapshot{
		ID:          r.ID,
		Player:      r.Player,
		Daily:       r.Daily,
		Board:       r.Board.Rows(),
		Cells:       cells,
		Path:        append([]path.Cell{}, r.Path...),
		Word:        words.Display(path.Letters(r.Path)),
		CanSubmit:   !r.Finished() && len(r.Path) >= MinPathLength,
		Score:       r.Score,
		History:     lo.Ternary(r.History == nil, []Record{}, append([]Record{}, r.History...)),
		Remaining:   r.Remaining,
		Status:      r.Status,
		Finished:    r.Finished(),
		Leaderboard: top,
	}
}

func (r Round) cellStatus(row, col int) CellStatus {
	switch {
	case path.IsSelected(r.Path, row, col):
		return CellSelected
	case !r.Finished() && path.IsSelectable(r.Path, row, col):
		return CellSelectable
	default:
		return CellInvalid
	}
}

// FaceLabel renders a board letter for display.
func FaceLabel(b byte) string {
	if b == 'Q' {
		return "Qu"
	}
	return string(b)
}
