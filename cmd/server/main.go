package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/courier-admin/api"
	"github.com/jrsteele09/courier-admin/auth"
	"github.com/jrsteele09/courier-admin/catalog"
	"github.com/jrsteele09/courier-admin/console"
	"github.com/jrsteele09/courier-admin/couriers"
	"github.com/jrsteele09/courier-admin/images"
	"github.com/jrsteele09/courier-admin/internal/config"
	"github.com/jrsteele09/courier-admin/server"
	"github.com/jrsteele09/courier-admin/session"
	"github.com/jrsteele09/courier-admin/users"
	fakeuserrepo "github.com/jrsteele09/courier-admin/users/repofake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const managerUserID = "1"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Err(err).Msg("Failed to load .env")
	}
	setupLogging(config.New())

	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	handler, err := compose(c)
	if err != nil {
		return err
	}

	server := &http.Server{Addr: c.GetPort(), Handler: handler}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(server) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(server)
}

// compose wires stores, services and the session gate for the configured data source.
func compose(c config.Config) (*server.Server, error) {
	sessionFile := c.GetSessionFile()
	if err := os.MkdirAll(filepath.Dir(sessionFile), 0o700); err != nil {
		return nil, fmt.Errorf("[compose] session directory: %w", err)
	}
	store := session.NewFileStore(sessionFile)

	var (
		catalogRepo   catalog.Repo
		courierRepo   couriers.Repo
		imageStore    images.Store
		authenticator session.Authenticator
	)

	switch c.GetDataSource() {
	case config.DataSourceRemote:
		client := api.NewFromConfig(c, session.NewTokenSource(store))
		catalogRepo = catalog.NewRemoteRepo(client)
		courierRepo = couriers.NewRemoteRepo(client)
		imageStore = images.NewRemoteStore(client)
		authenticator = auth.NewRemote(client)
		log.Info().Str("api", c.GetAPIBaseURL()).Msg("Using the remote API")

	default:
		memoryCouriers, err := couriers.NewInMemoryRepo(couriers.DemoCouriers()...)
		if err != nil {
			return nil, fmt.Errorf("[compose] couriers: %w", err)
		}
		userRepo := fakeuserrepo.NewFakeUserRepo()
		manager, err := users.NewManager(managerUserID, c.GetManagerUsername(), c.GetManagerPassword())
		if err != nil {
			return nil, fmt.Errorf("[compose] manager account: %w", err)
		}
		if err := userRepo.Upsert(manager); err != nil {
			return nil, fmt.Errorf("[compose] manager account: %w", err)
		}
		inMemoryAuth, err := auth.NewInMemory(auth.Repos{Users: userRepo, Couriers: memoryCouriers}, c)
		if err != nil {
			return nil, fmt.Errorf("[compose] authenticator: %w", err)
		}

		catalogRepo = catalog.NewDemoRepo()
		courierRepo = memoryCouriers
		imageStore = images.NewInMemoryStore()
		authenticator = inMemoryAuth
		log.Info().Str("manager", c.GetManagerUsername()).Msg("Using in-memory demo data")
	}

	gate := session.NewGate(store, authenticator)
	if state := gate.Restore(context.Background()); state != session.StateAuthenticated {
		log.Info().Str("state", string(state)).Msg("No saved session, sign-in required")
	}

	imageService := images.NewService(imageStore)
	consoleView := console.New(console.Services{
		Catalog:  catalog.NewService(catalogRepo),
		Couriers: couriers.NewService(courierRepo),
		Images:   imageService,
	}, console.NewNotifications())

	return server.New(c, gate, consoleView, imageService)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
