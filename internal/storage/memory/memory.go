// internal/storage/memory/memory.go
package memory

import (
	"context"
	"sync"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/storage"
)

// Backend keeps key-value pairs in memory and, when a snapshot path is
// configured, mirrors them to a JSON file after every write.
type Backend struct {
	cfg    config.MemoryConfig
	values map[string]string
	closed bool
	mu     sync.RWMutex
}

var _ storage.Backend = (*Backend)(nil)

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		values: make(map[string]string),
	}
}

// Init loads the snapshot file, if any
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = false
	if b.cfg.SnapshotPath == "" {
		return nil
	}
	values, err := readSnapshot(b.cfg.SnapshotPath)
	if err != nil {
		return err
	}
	b.values = values
	return nil
}

// Close marks the backend closed; the snapshot is already current.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Get returns the value stored under key
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return "", false, storage.ErrClosed
	}
	v, ok := b.values[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the snapshot
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return storage.ErrClosed
	}
	b.values[key] = value

	if b.cfg.SnapshotPath == "" {
		return nil
	}
	return writeSnapshot(b.cfg.SnapshotPath, b.values)
}

// Keys returns the number of stored keys
func (b *Backend) Keys() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.values)
}
