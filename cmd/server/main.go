package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/semdex/auth-service/audit"
	"github.com/semdex/auth-service/auth"
	"github.com/semdex/auth-service/devices/sqlite"
	"github.com/semdex/auth-service/directory"
	"github.com/semdex/auth-service/internal/config"
	"github.com/semdex/auth-service/internal/storage"
	"github.com/semdex/auth-service/server"
	"github.com/semdex/auth-service/token"
	"github.com/semdex/auth-service/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	displayAppname(cfg.GetAppName())

	tokens, err := token.NewService(cfg.GetSigningSecret(), cfg.GetTokenLifetime())
	if err != nil {
		return err
	}

	repos, cleanup, err := buildRepos(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := auth.NewSessionService(repos, directory.Semdex(), tokens,
		auth.WithMagicLinkScheme(cfg.GetMagicLinkScheme()))
	if err != nil {
		return err
	}

	handler, err := server.New(cfg, sessions)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// buildRepos wires the durable stores. Without a DATABASE_DSN the service
// runs on in-memory stores seeded with the allow-listed shareholders, which
// is only meant for local development.
func buildRepos(ctx context.Context, cfg config.Config) (auth.Repos, func(), error) {
	deviceStore, err := sqlite.Open(cfg.GetDeviceDBPath())
	if err != nil {
		return auth.Repos{}, nil, fmt.Errorf("open device store: %w", err)
	}

	if cfg.GetDatabaseDSN() == "" {
		log.Warn().Msg("no DATABASE_DSN configured, using in-memory stores")
		userRepo := users.NewInMemoryRepo()
		for _, identity := range directory.Semdex().Identities() {
			userRepo.Add(users.User{
				Email:    identity.Email,
				Phone:    identity.Phone,
				FullName: identity.FullName,
			})
		}
		repos := auth.Repos{
			Users:   userRepo,
			Audit:   audit.NewInMemoryRepo(),
			Devices: deviceStore,
		}
		return repos, func() { _ = deviceStore.Close() }, nil
	}

	db, err := storage.OpenPostgres(ctx, cfg.GetDatabaseDSN())
	if err != nil {
		_ = deviceStore.Close()
		return auth.Repos{}, nil, err
	}
	repos := auth.Repos{
		Users:   users.NewPostgresRepo(db),
		Audit:   audit.NewPostgresRepo(db),
		Devices: deviceStore,
	}
	cleanup := func() {
		_ = db.Close()
		_ = deviceStore.Close()
	}
	return repos, cleanup, nil
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
