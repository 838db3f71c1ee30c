package path

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func cell(r, c int) Cell { return Cell{Row: r, Col: c, Letter: 'A'} }

func TestAttemptSelectRules(t *testing.T) {
	is := is.New(t)

	p := AttemptSelect(nil, cell(2, 2))
	is.Equal(len(p), 1) // any first cell is accepted

	p = AttemptSelect(p, cell(3, 3))
	is.Equal(len(p), 2) // diagonal neighbour

	same := AttemptSelect(p, cell(0, 0))
	is.Equal(same, p) // not adjacent

	same = AttemptSelect(p, cell(2, 2))
	is.Equal(same, p) // reuse of a non-terminal cell

	p = AttemptSelect(p, cell(3, 3))
	is.Equal(len(p), 1) // reclick last pops it
	is.True(p[0].Same(cell(2, 2)))

	p = AttemptSelect(p, cell(2, 2))
	is.Equal(len(p), 0)
}

func TestAttemptSelectIgnoresOffGrid(t *testing.T) {
	is := is.New(t)
	is.Equal(len(AttemptSelect(nil, cell(-1, 0))), 0)
	p := Path{cell(4, 4)}
	is.Equal(AttemptSelect(p, cell(5, 5)), p)
}

func TestAttemptSelectDoesNotMutateInput(t *testing.T) {
	is := is.New(t)
	p := make(Path, 2, 8)
	p[0], p[1] = cell(0, 0), cell(0, 1)
	next := AttemptSelect(p, cell(0, 2))
	is.Equal(len(p), 2)
	is.Equal(len(next), 3)
	popped := AttemptSelect(next, cell(0, 2))
	is.Equal(len(next), 3)
	is.Equal(len(popped), 2)
}

func TestReclickRemovesExactlyOne(t *testing.T) {
	is := is.New(t)
	p := Path{cell(0, 0), cell(0, 1), cell(0, 2), cell(1, 2)}
	out := AttemptSelect(p, cell(1, 2))
	is.Equal(len(out), len(p)-1)
	is.Equal(out, p[:3])
}

// Random clicking never breaks the adjacency and uniqueness invariants.
func TestRandomClicksKeepInvariants(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(1))
	var p Path
	for i := 0; i < 5000; i++ {
		p = AttemptSelect(p, cell(rng.Intn(7)-1, rng.Intn(7)-1))
		seen := map[[2]int]bool{}
		for j, c := range p {
			k := [2]int{c.Row, c.Col}
			is.True(!seen[k])
			seen[k] = true
			if j > 0 {
				is.True(Adjacent(p[j-1], c))
			}
		}
	}
}

func TestSelectedAndSelectable(t *testing.T) {
	is := is.New(t)
	p := Path{cell(1, 1), cell(1, 2)}
	is.True(IsSelected(p, 1, 1))
	is.True(!IsSelected(p, 0, 0))
	is.True(IsSelectable(p, 0, 3))
	is.True(!IsSelectable(p, 1, 2)) // last cell is a deselect, not a selection
	is.True(!IsSelectable(p, 1, 1))
	is.True(!IsSelectable(p, 4, 4))
	is.True(!IsSelectable(p, 0, 5))
	is.True(IsSelectable(nil, 4, 4))
}

func TestHash(t *testing.T) {
	is := is.New(t)
	a := Path{cell(0, 0), cell(0, 1), cell(1, 1)}
	b := Path{cell(0, 0), cell(0, 1), cell(1, 1)}
	c := Path{cell(1, 1), cell(0, 1), cell(0, 0)}
	is.Equal(Hash(a), "0,0;0,1;1,1")
	is.Equal(Hash(a), Hash(b))
	is.True(Hash(a) != Hash(c))
	is.Equal(Hash(nil), "")
}

func TestLetters(t *testing.T) {
	is := is.New(t)
	p := Path{{0, 0, 'C'}, {0, 1, 'A'}, {1, 1, 'T'}}
	is.Equal(Letters(p), "CAT")
}
