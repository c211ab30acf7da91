package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/database"
	"github.com/tLat87/SpiritLands/internal/storage"
	"github.com/tLat87/SpiritLands/internal/storage/memory"
	pgstorage "github.com/tLat87/SpiritLands/internal/storage/postgres"
	sqlitestorage "github.com/tLat87/SpiritLands/internal/storage/sqlite"
)

func createStorageBackend(storageCfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		log.Info().Msg("Postgres storage backend initialized")
		manager := database.NewManager(config.GetDBConfig(), storageCfg.SQLite.Path, log)
		return pgstorage.New(manager), nil

	case "sqlite":
		backend, err := sqlitestorage.New(storageCfg.SQLite, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		log.Info().Str("path", storageCfg.SQLite.Path).Msg("SQLite storage backend initialized")
		return backend, nil

	case "memory", "":
		log.Info().Str("snapshot", storageCfg.Memory.SnapshotPath).Msg("Memory storage backend initialized")
		return memory.New(storageCfg.Memory), nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
	}
}

// storageStatus reports what the running backend exposes about itself.
func storageStatus(a *app) map[string]any {
	status := map[string]any{"fallback": a.fallback}
	if b, ok := a.backend.(interface{ IsLocal() bool }); ok {
		status["localFallback"] = b.IsLocal()
	}
	if b, ok := a.backend.(interface{ GetLastDBWriteDuration() time.Duration }); ok {
		status["lastWrite"] = b.GetLastDBWriteDuration().String()
	}
	if b, ok := a.backend.(interface{ Keys() int }); ok {
		status["keys"] = b.Keys()
	}
	return status
}
