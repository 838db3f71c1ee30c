package game

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/words"
)

// CAT runs (0,0)->(0,1)->(1,1); QUEEN runs down column 4 as Q,U,E,E,N;
// QEEN via the bottom row: (4,0)=Q (4,1)=E (4,2)=E (4,3)=N.
var testRows = []string{
	"CAXXQ",
	"XTXXU",
	"XXXXE",
	"XXXXE",
	"QEENN",
}

func newTestController(t *testing.T) (*Controller, *leaderboard.Board) {
	t.Helper()
	lb := leaderboard.New()
	c := NewController(words.New([]string{"cat", "queen", "act", "tax"}), lb)
	c.Source = rand.New(rand.NewSource(1))
	return c, lb
}

func newTestRound(t *testing.T, c *Controller) Round {
	t.Helper()
	b, err := board.FromRows(testRows...)
	if err != nil {
		t.Fatal(err)
	}
	return c.NewRoundOn(b, "tester")
}

func selectAll(c *Controller, r Round, cells ...[2]int) Round {
	for _, rc := range cells {
		r = c.Select(r, rc[0], rc[1])
	}
	return r
}

func TestNewRound(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := c.NewRound("amy")
	is.Equal(r.Status, StatusPlaying)
	is.Equal(r.Remaining, DefaultDuration)
	is.Equal(r.Score, 0)
	is.Equal(len(r.Path), 0)
	is.Equal(len(r.History), 0)
	is.Equal(len(r.Used), 0)
	is.Equal(len(r.ID), 16)
	is.Equal(r.Player, "amy")
}

func TestSubmitCat(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	r = selectAll(c, r, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1})
	is.Equal(len(r.Path), 3)

	next, rec := c.Submit(r)
	is.True(rec.Accepted)
	is.Equal(rec.Score, 1)
	is.Equal(rec.Word, "CAT")
	is.Equal(next.Score, 1)
	is.Equal(next.History, []Record{{Word: "CAT", Score: 1, Accepted: true}})
	is.Equal(len(next.Path), 0)

	// the input round is untouched
	is.Equal(len(r.Path), 3)
	is.Equal(r.Score, 0)
	is.Equal(len(r.Used), 0)
}

func TestSubmitQueenTracedLetterByLetter(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	r = selectAll(c, r, [2]int{0, 4}, [2]int{1, 4}, [2]int{2, 4}, [2]int{3, 4}, [2]int{4, 4})
	r, rec := c.Submit(r)
	is.True(rec.Accepted)
	is.Equal(rec.Word, "QUEEN")
	is.Equal(rec.Score, 2)
	is.Equal(r.Score, 2)
}

func TestSubmitQueenFromQuFace(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	r = selectAll(c, r, [2]int{4, 0}, [2]int{4, 1}, [2]int{4, 2}, [2]int{4, 3})
	r, rec := c.Submit(r)
	is.True(rec.Accepted)
	is.Equal(rec.Word, "QUEEN")
	is.Equal(rec.Score, 1) // four board letters
}

func TestReplayedPathScoresPenalty(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	cat := [][2]int{{0, 0}, {0, 1}, {1, 1}}

	r, first := c.Submit(selectAll(c, r, cat...))
	r, second := c.Submit(selectAll(c, r, cat...))
	is.Equal(first.Score, 1)
	is.Equal(second.Score, Penalty)
	is.True(second.Replayed)
	is.True(!second.Accepted)
	is.Equal(r.Score, 1-2)
	is.Equal(len(r.History), 2)
	is.Equal(len(r.Used), 1)
}

func TestUnknownWordIsNotRecorded(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	r, rec := c.Submit(selectAll(c, r, [2]int{1, 1}, [2]int{0, 1}, [2]int{0, 0}))
	is.True(!rec.Accepted)
	is.Equal(rec.Word, "TAC")
	is.Equal(rec.Score, Penalty)
	is.Equal(len(r.Used), 0) // invalid submissions are not recorded
}

func TestInvalidRetryPenalizedAgain(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	bad := [][2]int{{1, 1}, {0, 1}, {0, 0}}
	r, _ = c.Submit(selectAll(c, r, bad...))
	r, rec := c.Submit(selectAll(c, r, bad...))
	is.Equal(rec.Score, Penalty)
	is.Equal(r.Score, -4)
}

func TestShortPathIsPenalized(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	r, rec := c.Submit(selectAll(c, r, [2]int{0, 0}, [2]int{0, 1}))
	is.Equal(rec.Score, Penalty)
	is.True(!rec.Accepted)
	is.Equal(r.Score, Penalty)

	r, rec = c.Submit(r) // empty path
	is.Equal(rec.Score, Penalty)
	is.Equal(len(r.History), 2)
}

func TestTickFinishesRound(t *testing.T) {
	is := is.New(t)
	c, lb := newTestController(t)
	c.Duration = 3
	r := newTestRound(t, c)
	r, _ = c.Submit(selectAll(c, r, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}))

	r = c.Tick(r, nil)
	r = c.Tick(r, nil)
	is.Equal(r.Remaining, 1)
	is.Equal(r.Status, StatusPlaying)
	is.Equal(len(lb.Entries()), 0)

	r = c.Select(r, 4, 0)
	r = c.Tick(r, func() string { return "winner" })
	is.Equal(r.Remaining, 0)
	is.True(r.Finished())
	is.Equal(len(r.Path), 0)

	top := lb.Entries()
	is.Equal(len(top), 1)
	is.Equal(top[0].Name, "winner")
	is.Equal(top[0].Score, 1)

	// frozen: no more ticks, selections or submissions
	again := c.Tick(r, nil)
	is.Equal(again.Remaining, 0)
	is.Equal(len(lb.Entries()), 1)
	sel := c.Select(r, 0, 0)
	is.Equal(len(sel.Path), 0)
	sub, rec := c.Submit(sel)
	is.Equal(sub.Score, 1)
	is.Equal(rec, Record{})
}

func TestFinishNameFallbacks(t *testing.T) {
	is := is.New(t)
	c, lb := newTestController(t)
	c.Duration = 1

	r := newTestRound(t, c) // player "tester"
	r = c.Tick(r, func() string { return "  " })
	is.Equal(r.Player, "tester")

	anon := c.NewRound("")
	anon = c.Tick(anon, nil)
	is.Equal(anon.Player, leaderboard.DefaultName)

	is.Equal(len(lb.Entries()), 2)
}

func TestFinishUsesConfiguredDefaultName(t *testing.T) {
	is := is.New(t)
	c, lb := newTestController(t)
	c.Duration = 1
	c.DefaultName = "Mystery Guest"

	r := c.Tick(c.NewRound(""), func() string { return "" })
	is.Equal(r.Player, "Mystery Guest")
	is.Equal(lb.Entries()[0].Name, "Mystery Guest")

	c.DefaultName = "  "
	r = c.Tick(c.NewRound(""), nil)
	is.Equal(r.Player, leaderboard.DefaultName)
}

func TestRestartKeepsLeaderboard(t *testing.T) {
	is := is.New(t)
	c, lb := newTestController(t)
	c.Duration = 1
	r := newTestRound(t, c)
	r = c.Tick(r, nil)
	is.True(r.Finished())

	fresh := c.Restart(r)
	is.Equal(fresh.Status, StatusPlaying)
	is.Equal(fresh.Remaining, 1)
	is.Equal(fresh.Score, 0)
	is.Equal(fresh.Player, "tester")
	is.True(fresh.ID != r.ID)
	is.Equal(len(lb.Entries()), 1)
}

func TestSelectIgnoresOffGrid(t *testing.T) {
	is := is.New(t)
	c, _ := newTestController(t)
	r := newTestRound(t, c)
	is.Equal(len(c.Select(r, 9, 9).Path), 0)
	is.Equal(len(c.Select(r, -1, 0).Path), 0)
}

func TestSnapshot(t *testing.T) {
	is := is.New(t)
	c, lb := newTestController(t)
	r := newTestRound(t, c)
	r = selectAll(c, r, [2]int{3, 4}, [2]int{4, 3})
	s := r.Snapshot(lb.Entries())

	is.Equal(s.Board[0], "CAXXQ")
	is.Equal(s.Cells[0][4].Letter, "Qu")
	is.Equal(s.Cells[3][4].Status, CellSelected)
	is.Equal(s.Cells[4][3].Status, CellSelected)
	is.Equal(s.Cells[4][4].Status, CellSelectable)
	is.Equal(s.Cells[0][0].Status, CellInvalid)
	is.Equal(s.Word, "EN")
	is.True(!s.CanSubmit)
	is.Equal(len(s.Leaderboard), 0)

	r = c.Select(r, 4, 2)
	s = r.Snapshot(nil)
	is.Equal(s.Word, "ENE")
	is.True(s.CanSubmit)
}

func TestScoreTable(t *testing.T) {
	is := is.New(t)
	want := map[int]int{3: 1, 4: 1, 5: 2, 6: 3, 7: 5, 8: 11, 9: 11, 16: 11, 25: 11}
	for n, s := range want {
		is.Equal(Score(true, n), s)
		is.Equal(Score(false, n), Penalty)
	}
	is.Equal(Score(true, 2), 11) // unreachable in play: short words are never accepted
}

func TestReplayGuard(t *testing.T) {
	is := is.New(t)
	used := Used{}
	is.True(!IsPathReused("0,0;0,1", used))
	next := RecordPath("0,0;0,1", used)
	is.True(IsPathReused("0,0;0,1", next))
	is.True(!IsPathReused("0,0;0,1", used)) // original untouched
	is.True(!IsPathReused("0,1;0,0", next))
}
