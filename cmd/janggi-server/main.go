// Command janggi-server serves games over the JSON API. Configuration
// comes from the environment, with .env honored for local runs.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"janggi/internal/server/game"
	httpserver "janggi/internal/server/http"
	"janggi/internal/server/store"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var st store.Store
	if path := os.Getenv("DB_PATH"); path != "" {
		s, err := store.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("open database")
		}
		st = s
		log.Info().Str("path", path).Msg("using sqlite store")
	} else {
		st = store.NewMemory()
		log.Info().Msg("no DB_PATH set; games vanish on restart")
	}
	defer st.Close()

	mgr := game.NewManager(st, getEnvDuration("GAME_TTL", 30*time.Minute))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n, err := mgr.Restore(ctx); err != nil {
		log.Fatal().Err(err).Msg("restore games")
	} else if n > 0 {
		log.Info().Int("games", n).Msg("restored live games")
	}
	go mgr.Janitor(ctx, getEnvDuration("JANITOR_INTERVAL", time.Minute))

	srv := httpserver.New(mgr, httpserver.Config{
		JWTSecret:   getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 0),
		EngineDepth: getEnvInt("ENGINE_DEPTH", 4),
	})

	addr := getEnv("ADDR", ":8080")
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("janggi server listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
