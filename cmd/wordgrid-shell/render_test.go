package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/words"
)

func newShellSession(t *testing.T) *session.Session {
	t.Helper()
	lb := leaderboard.New()
	ctrl := game.NewController(words.New([]string{"cat"}), lb)
	b, err := board.FromRows("CATXQ", "XXXXX", "XXXXX", "XXXXX", "XXXXX")
	if err != nil {
		t.Fatal(err)
	}
	return session.New(ctrl, ctrl.NewRoundOn(b, "sam"), session.WithLeaderboard(lb.Entries))
}

func TestRenderSnapshot(t *testing.T) {
	is := is.New(t)
	sess := newShellSession(t)
	out := renderSnapshot(sess.Select(0, 0))
	is.True(strings.Contains(out, "[C ]"))
	is.True(strings.Contains(out, " A  "))
	is.True(strings.Contains(out, " qu "))
	is.True(strings.Contains(out, "word: C"))
}

func TestRunCommand(t *testing.T) {
	is := is.New(t)
	sess := newShellSession(t)
	var out bytes.Buffer

	is.True(runCommand(&out, sess, "0 0"))
	is.True(runCommand(&out, sess, "0 1"))
	is.True(runCommand(&out, sess, "submit"))
	is.True(strings.Contains(out.String(), "select at least 3 cells"))

	is.True(runCommand(&out, sess, "0 2"))
	out.Reset()
	is.True(runCommand(&out, sess, "s"))
	is.True(strings.HasPrefix(out.String(), "CAT +1"))

	is.True(runCommand(&out, sess, "name Jo"))
	is.True(runCommand(&out, sess, "x y"))
	is.True(!runCommand(&out, sess, "exit"))
}

func TestRenderLeaderboard(t *testing.T) {
	is := is.New(t)
	is.Equal(renderLeaderboard(nil), "leaderboard is empty\n")
	out := renderLeaderboard([]leaderboard.Entry{{Name: "amy", Score: 12}})
	is.True(strings.Contains(out, " 1. amy"))
}

func TestAnnouncerPrintsEachNoticeOnce(t *testing.T) {
	is := is.New(t)
	var a announcer
	snap := game.Snapshot{ID: "r1", Remaining: 11}
	is.Equal(a.message(snap), "")

	snap.Remaining = 10
	is.Equal(a.message(snap), "\n10 seconds left\n")
	is.Equal(a.message(snap), "") // a click during the same second

	snap.Remaining = 0
	snap.Finished = true
	snap.Score = 4
	is.True(strings.HasPrefix(a.message(snap), "\ntime is up! final score 4\n"))
	is.Equal(a.message(snap), "") // clicks after the end

	// a restarted round announces again
	next := game.Snapshot{ID: "r2", Remaining: 10}
	is.Equal(a.message(next), "\n10 seconds left\n")
}
