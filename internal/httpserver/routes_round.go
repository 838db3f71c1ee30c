// internal/httpserver/routes_round.go
//
// HTTP routes for playing a round:
//   - POST   /round/new           → start a round (ticker starts immediately)
//   - GET    /round/{id}          → current snapshot
//   - POST   /round/{id}/select   → click a cell {row, col}
//   - POST   /round/{id}/submit   → score the current path (needs ≥ 3 cells)
//   - POST   /round/{id}/restart  → fresh board, same player, leaderboard kept
//   - POST   /round/{id}/name     → name to record when the round finishes
//   - DELETE /round/{id}          → stop and forget the session

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/metrics"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/store"
)

// mountRounds registers all /round routes.
func (s *Server) mountRounds(r chi.Router) {
	r.Route("/round", func(r chi.Router) {
		r.Post("/new", s.handleNewRound)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.withSession(s.handleGetRound))
			r.Delete("/", s.handleDeleteRound)
			r.Post("/select", s.withSession(s.handleSelect))
			r.Post("/submit", s.withSession(s.handleSubmit))
			r.Post("/restart", s.withSession(s.handleRestart))
			r.Post("/name", s.withSession(s.handleName))
		})
	})
}

// sessionHandler is a handler that already resolved {id}.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// withSession looks up {id} and 404s when it is unknown.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("get session")
			http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
			return
		}
		h(w, r, sess)
	}
}

// playerName picks the requested name, else the guest token's name.
// A requested name must pass normalizeName; empty means unnamed.
func playerName(r *http.Request, requested string) (string, error) {
	if strings.TrimSpace(requested) != "" {
		return normalizeName(requested)
	}
	if g := guestFrom(r.Context()); g != nil {
		return g.Name, nil
	}
	return "", nil
}

type newRoundReq struct {
	Name string `json:"name"`
}

// handleNewRound rolls a board and starts the session clock.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine

	name, err := playerName(r, req.Name)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	round := s.ctrl.NewRound(name)
	sess, err := s.newSession(r.Context(), round)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	metrics.RoundsStarted.WithLabelValues("random").Inc()
	log.Info().Str("session", sess.ID()).Str("player", round.Player).Msg("round started")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

func (s *Server) handleDeleteRound(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

type selectReq struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// handleSelect applies one click. Invalid cells are a no-op, not an error.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Select(*req.Row, *req.Col))
}

type submitRes struct {
	Result game.Record   `json:"result"`
	Round  game.Snapshot `json:"round"`
}

// handleSubmit scores the current path. Paths shorter than
// game.MinPathLength are refused here and never reach the scorer.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	rec, snap, err := sess.TrySubmit()
	switch {
	case errors.Is(err, session.ErrRoundFinished):
		http.Error(w, `{"error":"round_finished"}`, http.StatusConflict)
		return
	case errors.Is(err, session.ErrPathTooShort):
		http.Error(w, `{"error":"path_too_short"}`, http.StatusUnprocessableEntity)
		return
	}
	_ = json.NewEncoder(w).Encode(submitRes{Result: rec, Round: snap})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	_ = json.NewEncoder(w).Encode(sess.Restart())
}

type nameReq struct {
	Name string `json:"name"`
}

// handleName sets the name recorded on the leaderboard when the round ends.
func (s *Server) handleName(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req nameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) != "" {
		if _, err := normalizeName(req.Name); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
	}
	sess.SetName(req.Name)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
