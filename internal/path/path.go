// internal/path/path.go
//
// Path tracking for the player's in-progress selection.
//
// A Path is an ordered list of cells where consecutive cells are
// 8-directionally adjacent and no cell repeats. Every operation here
// returns a fresh slice; the caller's path is never modified.

package path

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordgrid/internal/board"
)

// Cell is a selected grid cell. Letter is captured at selection time.
type Cell struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Letter byte `json:"-"`
}

// Same reports whether a and b name the same grid position.
func (a Cell) Same(b Cell) bool { return a.Row == b.Row && a.Col == b.Col }

// Path is the ordered selection.
type Path []Cell

// Adjacent reports 8-directional adjacency (distinct cells only).
func Adjacent(a, b Cell) bool {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	return dr <= 1 && dc <= 1 && !(dr == 0 && dc == 0)
}

// AttemptSelect applies one click to p:
//  1. clicking the last cell removes it;
//  2. a cell not adjacent to the last one is ignored;
//  3. a cell already in the path is ignored;
//  4. anything else is appended.
//
// Off-grid cells are ignored. An empty path accepts any on-grid cell.
func AttemptSelect(p Path, c Cell) Path {
	if !board.InBounds(c.Row, c.Col) {
		return clone(p)
	}
	if n := len(p); n > 0 && p[n-1].Same(c) {
		return clone(p[:n-1])
	}
	if !IsSelectable(p, c.Row, c.Col) {
		return clone(p)
	}
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, c)
}

// IsSelected reports whether (row, col) is anywhere in p.
func IsSelected(p Path, row, col int) bool {
	return lo.ContainsBy(p, func(c Cell) bool { return c.Row == row && c.Col == col })
}

// IsSelectable reports whether selecting (row, col) would extend p.
// Reclicking the last cell is a deselect and is not counted here.
func IsSelectable(p Path, row, col int) bool {
	if !board.InBounds(row, col) {
		return false
	}
	c := Cell{Row: row, Col: col}
	if n := len(p); n > 0 && !Adjacent(p[n-1], c) {
		return false
	}
	return !IsSelected(p, row, col)
}

// Hash is the order-sensitive identity of p's coordinates, e.g. "0,0;0,1;1,1".
func Hash(p Path) string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(c.Row))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(c.Col))
	}
	return sb.String()
}

// Letters returns the raw board letters of p in order (a Q cell is one letter).
func Letters(p Path) string {
	b := make([]byte, len(p))
	for i, c := range p {
		b[i] = c.Letter
	}
	return string(b)
}

func clone(p Path) Path {
	if len(p) == 0 {
		return Path{}
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
