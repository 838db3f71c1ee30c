// internal/dice/dice.go
//
// Static dice configuration for a 5x5 word grid.
// A face of 'Q' stands for the digraph "Qu" everywhere else in the game.

package dice

import (
	"errors"
	"fmt"
)

const (
	// GridSize is the board edge length.
	GridSize = 5
	// Cells is the number of dice a set must carry to cover the grid.
	Cells = GridSize * GridSize
)

// ErrSetSize is returned by Validate when a set cannot cover the grid.
var ErrSetSize = errors.New("dice: set does not cover the grid")

// Die is the ordered list of face letters (uppercase A–Z).
type Die string

// Faces returns the die's face letters.
func (d Die) Faces() []byte { return []byte(d) }

// Set is an ordered collection of dice. It is never mutated after startup.
type Set []Die

// Classic is the 25-die "Big" set.
var Classic = Set{
	"AAAFRS", "AAEEEE", "AAFIRS", "ADENNN", "AEEEEM",
	"AEEGMU", "AEGMNN", "AFIRSY", "BJKQXZ", "CCENST",
	"CEIILT", "CEILPT", "CEIPST", "DDHNOT", "DHHLOR",
	"DHLNOR", "DHLNOR", "EIIITT", "EMOTTT", "ENSSSU",
	"FIPRSY", "GORRVW", "IPRRRY", "NOOTUW", "OOOTTU",
}

// Validate checks the configuration invariant: exactly one die per cell,
// every die with at least one A–Z face.
func (s Set) Validate() error {
	if len(s) != Cells {
		return fmt.Errorf("%w: have %d dice, need %d", ErrSetSize, len(s), Cells)
	}
	for i, d := range s {
		if len(d) == 0 {
			return fmt.Errorf("%w: die %d has no faces", ErrSetSize, i)
		}
		for _, f := range d.Faces() {
			if f < 'A' || f > 'Z' {
				return fmt.Errorf("dice: die %d has invalid face %q", i, f)
			}
		}
	}
	return nil
}
