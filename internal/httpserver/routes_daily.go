// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily board.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a round on today's board
//   - GET  /daily             → today's date and board rows
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=)
//
// Every player gets the same board on the same UTC date (seeded from
// HMAC(DAILY_SALT, date)). Each named player may finish it once per day; unnamed results are all kept.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordgrid/internal/board"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/metrics"
	"github.com/robalobadob/wordgrid/internal/session"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyBoard returns today's date key and board.
func (s *Server) dailyBoard() (string, board.Board) {
	now := s.now()
	seed := daily.Seed(now, s.cfg.DailySalt)
	return daily.DateKey(now), board.Generate(s.ctrl.Dice, board.SeededSource(seed))
}

type dailyInfoRes struct {
	Date  string   `json:"date"`
	Board []string `json:"board"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	date, b := s.dailyBoard()
	_ = json.NewEncoder(w).Encode(dailyInfoRes{Date: date, Board: b.Rows()})
}

type dailyNewRes struct {
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Round  *game.Snapshot `json:"round,omitempty"`
}

// handleDailyNew starts a round on today's board.
// A named player who already finished today gets Played=true and no round.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	name, err := playerName(r, req.Name)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	date, b := s.dailyBoard()

	if name != "" {
		if played, err := s.daily.AlreadyPlayed(r.Context(), name, date); err == nil && played {
			_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
			return
		}
	}

	round := s.ctrl.NewRoundOn(b, name)
	round.Daily = date
	sess, err := s.newSession(r.Context(), round, session.WithOnFinish(s.recordDaily(name)))
	if err != nil {
		log.Error().Err(err).Msg("save daily session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	metrics.RoundsStarted.WithLabelValues("daily").Inc()

	snap := sess.Snapshot()
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Round: &snap})
}

// recordDaily returns the finish hook for a daily round started as player.
// Results are stored under that starting name, so unnamed rounds (which
// finish as the default name) never shadow each other. Rounds restarted
// onto a random board carry no date and are skipped.
func (s *Server) recordDaily(player string) func(game.Round) {
	key := daily.PlayerKey(player)
	return func(r game.Round) {
		if r.Daily == "" {
			return
		}
		err := s.daily.InsertResult(context.Background(), daily.Result{
			Key:    key,
			Player: r.Player,
			Date:   r.Daily,
			Score:  r.Score,
			Words:  lo.CountBy(r.History, func(h game.Record) bool { return h.Accepted }),
		})
		if err != nil {
			log.Warn().Err(err).Str("round", r.ID).Msg("insert daily result")
		}
	}
}

type dailyLBRes struct {
	Date string         `json:"date"`
	Top  []daily.Result `json:"top"`
}

// handleDailyLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyLBRes{Date: date, Top: rows})
}
