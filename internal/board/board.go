// internal/board/board.go
//
// Board generation for a single round.
// Responsibilities:
//   - Shuffle the dice set (every die used exactly once).
//   - Assign dice to cells in row-major order.
//   - Roll each die: one face sampled uniformly per cell.
//
// Boards are plain values; nothing mutates them after Generate returns.

package board

import (
	"errors"
	"fmt"
	"strings"

	"lukechampine.com/frand"

	"github.com/robalobadob/wordgrid/internal/dice"
)

// Size is the board edge length.
const Size = dice.GridSize

// ErrShape is returned by FromRows for anything that is not Size rows of Size letters.
var ErrShape = errors.New("board: rows must be 5 rows of 5 letters")

// Source is the randomness a board needs. *frand.RNG and *math/rand.Rand both satisfy it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Board is a resolved letter grid.
type Board struct {
	Letters [Size][Size]byte // uppercase; 'Q' reads as "Qu"
	Dice    [Size][Size]int  // index into the dice set rolled for the cell, -1 for fixed boards
}

// frandSource draws from frand's package-level generator, which is safe for
// concurrent use by every round in the process.
type frandSource struct{}

func (frandSource) Intn(n int) int                     { return frand.Intn(n) }
func (frandSource) Shuffle(n int, swap func(i, j int)) { frand.Shuffle(n, swap) }

// NewSource returns the default process-wide random source.
func NewSource() Source { return frandSource{} }

// SeededSource returns a deterministic source for a 32-byte seed.
// Not safe for concurrent use.
func SeededSource(seed [32]byte) Source { return frand.NewCustom(seed[:], 1024, 12) }

// Generate shuffles set and rolls one die per cell.
// set must hold exactly dice.Cells dice (see dice.Set.Validate).
func Generate(set dice.Set, src Source) Board {
	order := make([]int, len(set))
	for i := range order {
		order[i] = i
	}
	src.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			idx := order[row*Size+col]
			faces := set[idx].Faces()
			b.Dice[row][col] = idx
			b.Letters[row][col] = faces[src.Intn(len(faces))]
		}
	}
	return b
}

// FromRows builds a fixed board, e.g. "CATXX". Letters are upper-cased.
func FromRows(rows ...string) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, fmt.Errorf("%w: got %d rows", ErrShape, len(rows))
	}
	for r, line := range rows {
		line = strings.ToUpper(line)
		if len(line) != Size {
			return b, fmt.Errorf("%w: row %d has %d letters", ErrShape, r, len(line))
		}
		for c := 0; c < Size; c++ {
			ch := line[c]
			if ch < 'A' || ch > 'Z' {
				return b, fmt.Errorf("%w: row %d col %d is %q", ErrShape, r, c, ch)
			}
			b.Letters[r][c] = ch
			b.Dice[r][c] = -1
		}
	}
	return b, nil
}

// InBounds reports whether (row, col) is on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// At returns the letter at (row, col); callers check InBounds first.
func (b Board) At(row, col int) byte { return b.Letters[row][col] }

// Rows renders the grid as Size strings, one per row.
func (b Board) Rows() []string {
	out := make([]string, Size)
	for r := 0; r < Size; r++ {
		out[r] = string(b.Letters[r][:])
	}
	return out
}
