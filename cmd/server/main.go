package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/Vivekkumarprince1/next-complete-vaani/internal/adapters/http"
	sig "github.com/Vivekkumarprince1/next-complete-vaani/internal/adapters/signal"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/adapters/ws"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/app"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/auth"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/config"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/translate"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("jwt_secret is required")
	}

	reg := app.NewRegistry(cfg.OfflineTTL)
	rooms := app.NewDirectory()
	hub := ws.NewHub(cfg.SendBuffer)
	life := &app.Lifecycle{
		Registry:  reg,
		Rooms:     rooms,
		Transport: hub,
		Pipeline:  translate.Logged{Next: translate.Noop{}},
	}
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	ctl := sig.NewController(cfg, reg, rooms, hub, life, verifier)

	go life.RunSweeper(ctx, cfg.SweepInterval)

	r := router.SetupRouter(ctx, cfg, ctl, reg, rooms)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Bool("relay_only", cfg.RelayOnly).Msg("signaling server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
