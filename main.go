package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/dice"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/leaderboard"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

const gracefulShutdownTimeout = 20 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := dice.Classic.Validate(); err != nil {
		log.Fatal().Err(err).Msg("dice configuration")
	}
	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	lb := leaderboard.New()
	ctrl := game.NewController(words.Default(), lb)
	ctrl.Duration = cfg.RoundSeconds
	ctrl.DefaultName = cfg.DefaultPlayer

	srv := httpserver.New(cfg, store.NewMemoryStore(), ctrl, lb, words.Default())
	httpSrv := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Handler()}

	idleConnsClosed := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().
		Str("port", cfg.Port).
		Int("words", words.Default().Len()).
		Int("roundSeconds", cfg.RoundSeconds).
		Msg("starting wordgrid server")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shut down")
}
