// Package postgres implements the storage.Backend interface on PostgreSQL,
// falling back to a local SQLite file when the server cannot be reached.
package postgres

import (
	"fmt"

	"github.com/tLat87/SpiritLands/internal/database"
	gormstorage "github.com/tLat87/SpiritLands/internal/storage/gorm"
)

// Backend wraps the GORM backend around a database.Manager connection.
type Backend struct {
	*gormstorage.Backend
	manager *database.Manager
}

// New creates a Postgres backend. The connection is opened by Init.
func New(manager *database.Manager) *Backend {
	return &Backend{manager: manager}
}

// Init connects (with SQLite fallback) and migrates the schema.
func (b *Backend) Init() error {
	if err := b.manager.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	if err := b.manager.Setup(); err != nil {
		return err
	}
	b.Backend = gormstorage.New(b.manager.DB, b.manager.Logger)
	return nil
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}

// IsLocal reports whether the backend fell back to SQLite.
func (b *Backend) IsLocal() bool {
	return b.manager.ShouldSaveLocal
}
