package main

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
)

// renderSnapshot draws the grid: [X] selected, " X " selectable, " x " unavailable.
func renderSnapshot(s game.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("     0   1   2   3   4\n")
	for r, row := range s.Cells {
		fmt.Fprintf(&sb, "%d ", r)
		for _, c := range row {
			label := c.Letter
			switch c.Status {
			case game.CellSelected:
				fmt.Fprintf(&sb, "[%-2s]", label)
			case game.CellSelectable:
				fmt.Fprintf(&sb, " %-2s ", label)
			default:
				fmt.Fprintf(&sb, " %-2s ", strings.ToLower(label))
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "word: %s  score: %d  time: %ds", s.Word, s.Score, s.Remaining)
	if s.Finished {
		sb.WriteString("  (finished; type restart)")
	}
	sb.WriteByte('\n')
	return sb.String()
}

func renderLeaderboard(top []leaderboard.Entry) string {
	if len(top) == 0 {
		return "leaderboard is empty\n"
	}
	var sb strings.Builder
	for i, e := range top {
		fmt.Fprintf(&sb, "%2d. %-24s %4d\n", i+1, e.Name, e.Score)
	}
	return sb.String()
}

// announcer turns the snapshot stream into one-off notices. Every action
// republishes a snapshot, so each notice is printed once per round.
type announcer struct {
	round     string
	warned    int
	announced bool
}

func (a *announcer) message(s game.Snapshot) string {
	if s.ID != a.round {
		*a = announcer{round: s.ID}
	}
	switch {
	case s.Finished && !a.announced:
		a.announced = true
		return fmt.Sprintf("\ntime is up! final score %d\n%s", s.Score, renderLeaderboard(s.Leaderboard))
	case !s.Finished && (s.Remaining == 10 || s.Remaining == 5) && a.warned != s.Remaining:
		a.warned = s.Remaining
		return fmt.Sprintf("\n%d seconds left\n", s.Remaining)
	}
	return ""
}
