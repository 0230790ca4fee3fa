package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ticketboard/internal/config"
	"ticketboard/internal/database"
	"ticketboard/internal/repository/memory"
	"ticketboard/internal/repository/postgres"
	"ticketboard/internal/router"
	"ticketboard/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// storage
	deps, closeDeps := openStorage(l, cfg)
	defer closeDeps()

	// http
	r := router.New(l, deps, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}

func openStorage(l zerolog.Logger, cfg config.Config) (router.Deps, func()) {
	switch cfg.Storage {
	case "postgres":
		pool, err := database.Open(context.Background(), cfg)
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		tickets := postgres.NewTicketRepo(pool)
		return router.Deps{Tickets: tickets, Users: postgres.NewUserRepo(pool), DB: tickets}, pool.Close
	case "memory":
		tickets := memory.NewTicketRepo()
		return router.Deps{Tickets: tickets, Users: memory.NewUserRepo(), DB: tickets}, func() {}
	default:
		l.Fatal().Str("storage", cfg.Storage).Msg("unknown storage backend")
		return router.Deps{}, nil
	}
}
