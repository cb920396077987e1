package main

import (
	"context"
	"errors"
	"flag"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/election/internal/adapters/auth/token"
	"github.com/vncsmyrnk/election/internal/adapters/handler/http"
	"github.com/vncsmyrnk/election/internal/app"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	a := app.New(store, cfg, services.NewSystemClock())

	electionHandler := http.NewElectionHandler(a.Elections, a.Queries)
	candidacyHandler := http.NewCandidacyHandler(a.Candidacy)
	voteHandler := http.NewVoteHandler(a.Votes)
	handler := http.NewHandler(electionHandler, candidacyHandler, voteHandler, token.NewHMAC(cfg.Auth.JWTSecret))

	server := &stdhttp.Server{Addr: cfg.Server.Addr, Handler: handler}

	go func() {
		log.Printf("Listening on %s (storage: %s)", cfg.Server.Addr, cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
