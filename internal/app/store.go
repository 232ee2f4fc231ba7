package app

import (
	"context"

	"github.com/adanyl0v/notebook-todo/internal/config"
	"github.com/adanyl0v/notebook-todo/internal/repository"
	"github.com/adanyl0v/notebook-todo/internal/services"
)

var globalTaskRepository services.TaskRepository

// MustConnectStore connects to the task store and pings it. The
// process does not start without a reachable store.
func MustConnectStore() {
	cfg := config.Global().Store
	kind := repository.Kind(cfg.URI)

	repo, err := repository.Open(context.Background(), repository.Params{
		URI:            cfg.URI,
		Database:       cfg.Database,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("store", kind).
			Msg("failed to connect to store")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = repo.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("store", kind).
			Msg("failed to ping store")
		_ = repo.Close(context.Background())
		panic(err)
	}

	globalTaskRepository = repo
	globalLogger.Info().
		Str("store", kind).
		Msg("connected to store")
}

func DisconnectStore() {
	err := globalTaskRepository.Close(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to disconnect from store")
		return
	}
	globalLogger.Info().Msg("disconnected from store")
}
