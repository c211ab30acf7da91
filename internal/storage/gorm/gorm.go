// Package gormstorage implements storage.Backend on any GORM dialect. The
// sqlite and postgres backends embed it and only differ in how the *gorm.DB
// is opened.
package gormstorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tLat87/SpiritLands/internal/database"
	"github.com/tLat87/SpiritLands/internal/model"
	"github.com/tLat87/SpiritLands/internal/storage"
)

// ErrInvalidValue is returned when a value is not a JSON document
var ErrInvalidValue = errors.New("value is not valid JSON")

// Backend stores key-value pairs in the kv_entries table.
type Backend struct {
	db     *gorm.DB
	log    zerolog.Logger
	closed bool
	mu     sync.RWMutex

	lastWrite atomic.Int64
}

var _ storage.Backend = (*Backend)(nil)

// New creates a backend over an open database handle.
func New(db *gorm.DB, log zerolog.Logger) *Backend {
	return &Backend{
		db:  db,
		log: log,
	}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if b.db == nil {
		return fmt.Errorf("gorm backend: no database")
	}
	if err := database.Migrate(b.db); err != nil {
		return err
	}
	b.log.Debug().Str("dialect", b.db.Dialector.Name()).Msg("Key-value schema ready")
	return nil
}

// Close closes the connection pool.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.db == nil {
		return nil
	}
	b.closed = true
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the underlying handle.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return "", false, storage.ErrClosed
	}

	var entry model.KVEntry
	err := b.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(entry.Value), true, nil
}

// Set upserts value under key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("%q: %w", key, ErrInvalidValue)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return storage.ErrClosed
	}

	start := time.Now()
	entry := model.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	elapsed := time.Since(start)
	b.lastWrite.Store(int64(elapsed))

	b.log.Debug().Str("key", key).Dur("duration", elapsed).Msg("Stored value")
	return nil
}

// GetLastDBWriteDuration returns the duration of the last write.
func (b *Backend) GetLastDBWriteDuration() time.Duration {
	return time.Duration(b.lastWrite.Load())
}
