package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/fitjournal/internal/api"
	"example.com/fitjournal/internal/auth"
	"example.com/fitjournal/internal/config"
	"example.com/fitjournal/internal/domain"
	persistence "example.com/fitjournal/internal/persistence/postgres"
	httptransport "example.com/fitjournal/internal/transport/http"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := persistence.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("failed to configure token service: %v", err)
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	users := persistence.NewUserRepository(pool)
	accounts := domain.NewAccounts(users, hasher, tokens)

	handler := api.NewHandler(accounts, api.Repositories{
		Exercises: persistence.NewExerciseStore(pool),
		Goals:     persistence.NewGoalStore(pool),
		Progress:  persistence.NewProgressStore(pool),
		Workouts:  persistence.NewWorkoutSessionStore(pool),
		Plans:     persistence.NewWorkoutPlanStore(pool),
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	// Registration, login, health and metrics are the only unauthenticated paths.
	skipper := func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/api/auth/") ||
			r.URL.Path == "/healthz" ||
			r.URL.Path == "/metrics"
	}
	authMiddleware := auth.NewMiddleware(tokens, users, skipper)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.RequestID(httptransport.Logger(authMiddleware.Wrap(mux))))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("fitjournal api listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
