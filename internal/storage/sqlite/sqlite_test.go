package sqlitestorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

func TestFileBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "spiritlands.db")

	b, err := New(config.SQLiteConfig{Path: path}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.Set(ctx, "bookmarkedAircraft", `[{"id":"9"}]`))
	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "double close is a no-op")

	reopened, err := New(config.SQLiteConfig{Path: path}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, reopened.Init())
	defer reopened.Close()

	v, found, err := reopened.Get(ctx, "bookmarkedAircraft")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"9"}]`, v)
}

func TestMemoryBackend_DumpsOnClose(t *testing.T) {
	ctx := context.Background()
	dump := filepath.Join(t.TempDir(), "dump.db")

	b, err := New(config.SQLiteConfig{DumpPath: dump, DumpInterval: time.Hour}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	require.NoError(t, b.Set(ctx, "bookmarkedVolcanoes", `[]`))
	require.NoError(t, b.Close())

	info, err := os.Stat(dump)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
