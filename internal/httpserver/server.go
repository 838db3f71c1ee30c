// internal/httpserver/server.go
//
// HTTP server wiring for the wordgrid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Round endpoints (optional auth): /round/*, plus a websocket stream at /ws/round/{id}.
//   - Daily board endpoints (optional auth): mounted under /daily.
//   - Guest identity: /auth/* issues a JWT carrying the leaderboard name.
//   - Leaderboard: GET /leaderboard.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Every round runs in a session whose ticker lives until the round
//     finishes, the round is deleted, or the server is closed.
//   - Finished sessions nobody watches are swept after SESSION_TTL.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/session"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Server bundles router, session store, round controller and leaderboard.
type Server struct {
	r     *chi.Mux
	cfg   *config.Config
	store store.Store
	ctrl  *game.Controller
	lb    *leaderboard.Board
	daily *daily.Store
	dict  *words.Dictionary

	// base outlives requests; session tickers hang off it.
	base   context.Context
	cancel context.CancelFunc
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, ctrl *game.Controller, lb *leaderboard.Board, dict *words.Dictionary) *Server {
	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		store:  st,
		ctrl:   ctrl,
		lb:     lb,
		daily:  daily.NewStore(),
		dict:   dict,
		base:   base,
		cancel: cancel,
		now:    time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Websocket upgrades must not inherit the request timeout.
	s.r.Get("/ws/round/{id}", s.handleStream)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"wordgrid","endpoints":["/health","POST /round/new","POST /round/{id}/select","POST /round/{id}/submit","POST /round/{id}/restart","GET /leaderboard","GET /ws/round/{id}","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"words": s.dict.Len(), "sessions": s.store.Len()})
		})

		// Round endpoints: OPTIONAL AUTH (guests can play)
		s.mountRounds(r.With(s.withOptionalAuth()))

		// Daily board: OPTIONAL AUTH
		s.mountDaily(r.With(s.withOptionalAuth()))

		// Guest identity
		s.mountAuthRoutes(r)

		r.Get("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"top": s.lb.Entries()})
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	s.r.Handle("/metrics", promhttp.Handler())

	if cfg.SessionTTL > 0 {
		go s.runSweeper(min(cfg.SessionTTL, time.Minute))
	}
	return s
}

// sweepSessions drops sessions idle for longer than cfg.SessionTTL.
func (s *Server) sweepSessions() int {
	n := s.store.Sweep(s.base, s.cfg.SessionTTL)
	if n > 0 {
		log.Debug().Int("removed", n).Int("sessions", s.store.Len()).Msg("swept idle sessions")
	}
	return n
}

// runSweeper calls sweepSessions until the server is closed.
func (s *Server) runSweeper(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.base.Done():
			return
		case <-ticker.C:
			s.sweepSessions()
		}
	}
}

// Handler exposes the router (used by main and tests).
func (s *Server) Handler() http.Handler { return s.r }

// Close stops every session ticker started by this server.
func (s *Server) Close() {
	s.cancel()
	log.Info().Msg("session tickers stopped")
}

// newSession stores r in a running session.
func (s *Server) newSession(ctx context.Context, r game.Round, opts ...session.Option) (*session.Session, error) {
	base := []session.Option{
		session.WithInterval(s.cfg.TickInterval),
		session.WithLeaderboard(s.lb.Entries),
	}
	sess := session.New(s.ctrl, r, append(base, opts...)...)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	sess.Start(s.base)
	return sess, nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
