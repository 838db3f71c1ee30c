// Command wordgrid-shell plays rounds in the terminal against the same
// core as the server. The clock runs in real time; type "help" for commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/dice"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	seconds   = flag.Int("seconds", game.DefaultDuration, "round length in seconds")
	wordsFile = flag.String("words", "", "word list file; empty uses the built-in list")
	logLevel  = flag.String("log-level", "warn", "zerolog level")
	anonName  = flag.String("default-name", leaderboard.DefaultName, "leaderboard name when none is given")
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<row> <col>  - click a cell (rows and columns count from 0)\n")
	io.WriteString(w, "submit | s   - submit the current path (3 cells or more)\n")
	io.WriteString(w, "board | b    - show the board\n")
	io.WriteString(w, "name <name>  - name to record on the leaderboard\n")
	io.WriteString(w, "restart      - new board; the leaderboard is kept\n")
	io.WriteString(w, "top          - show the leaderboard\n")
	io.WriteString(w, "exit         - quit\n")
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if err := dice.Classic.Validate(); err != nil {
		log.Fatal().Err(err).Msg("dice configuration")
	}
	if err := words.Init(*wordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[32mwordgrid>\033[0m ",
		HistoryFile:         "/tmp/wordgrid-readline.tmp",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	name := askName(l)

	lb := leaderboard.New()
	ctrl := game.NewController(words.Default(), lb)
	ctrl.Duration = *seconds
	ctrl.DefaultName = *anonName
	sess := session.New(ctrl, ctrl.NewRound(name), session.WithLeaderboard(lb.Entries))
	defer sess.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go announce(ctx, l.Stdout(), sess)
	sess.Start(ctx)

	out := l.Stdout()
	fmt.Fprint(out, renderSnapshot(sess.Snapshot()))
	usage(l.Stderr())

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if !runCommand(out, sess, strings.TrimSpace(line)) {
			break
		}
	}
}

// askName reads the leaderboard name once at startup; empty is allowed.
func askName(l *readline.Instance) string {
	l.SetPrompt("name> ")
	defer l.SetPrompt("\033[32mwordgrid>\033[0m ")
	line, err := l.Readline()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// announce prints the countdown at a few milestones and the final result.
func announce(ctx context.Context, w io.Writer, sess *session.Session) {
	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()
	var a announcer
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			io.WriteString(w, a.message(snap))
		}
	}
}

// runCommand executes one line. It returns false when the shell should exit.
func runCommand(w io.Writer, sess *session.Session, line string) bool {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
	case line == "exit" || line == "bye":
		return false
	case line == "help":
		usage(w)
	case line == "board" || line == "b":
		fmt.Fprint(w, renderSnapshot(sess.Snapshot()))
	case line == "top":
		fmt.Fprint(w, renderLeaderboard(sess.Snapshot().Leaderboard))
	case line == "restart":
		fmt.Fprint(w, renderSnapshot(sess.Restart()))
	case fields[0] == "name":
		sess.SetName(strings.TrimSpace(strings.TrimPrefix(line, "name")))
	case line == "submit" || line == "s":
		rec, snap, err := sess.TrySubmit()
		switch {
		case errors.Is(err, session.ErrPathTooShort):
			fmt.Fprintf(w, "select at least %d cells first\n", game.MinPathLength)
			return true
		case errors.Is(err, session.ErrRoundFinished):
			fmt.Fprintln(w, "the round is over; type restart")
			return true
		}
		fmt.Fprintf(w, "%s %+d\n", rec.Word, rec.Score)
		fmt.Fprint(w, renderSnapshot(snap))
	case len(fields) == 2:
		row, err1 := strconv.Atoi(fields[0])
		col, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			fmt.Fprintln(w, "usage: <row> <col>")
			return true
		}
		fmt.Fprint(w, renderSnapshot(sess.Select(row, col)))
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		fmt.Fprintln(w, "unknown command; try help")
	}
	return true
}
