package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/model"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DBConfig{
		Host:     "db",
		Port:     "5433",
		Username: "guide",
		Password: "pw",
		Database: "spiritlands",
	})
	assert.Equal(t, "host=db port=5433 user=guide password=pw dbname=spiritlands sslmode=disable", dsn)
}

func TestGetSqliteDB_FileAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")

	db, err := GetSqliteDB(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	// second migration does not duplicate app info
	require.NoError(t, Migrate(db))

	var infos []model.AppInfo
	require.NoError(t, db.Find(&infos).Error)
	require.Len(t, infos, 1)
	assert.Equal(t, model.SchemaVersion, infos[0].SchemaVersion)
	assert.True(t, db.Migrator().HasTable(&model.KVEntry{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := GetSqliteDB("")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.KVEntry{Key: "k", Value: []byte(`["v"]`)}).Error)

	out := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, DumpMemoryDBToDisk(db, out))
	// dumping again replaces the previous file
	require.NoError(t, DumpMemoryDBToDisk(db, out))

	dumped, err := GetSqliteDB(out)
	require.NoError(t, err)
	var entry model.KVEntry
	require.NoError(t, dumped.Where("entry_key = ?", "k").Take(&entry).Error)
	assert.JSONEq(t, `["v"]`, string(entry.Value))
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	err := DumpMemoryDBToDisk(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not set")
}

func TestManager_ConnectFallsBackToSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.db")
	m := NewManager(config.DBConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "nobody",
		Password: "nothing",
		Database: "none",
	}, path, zerolog.Nop())

	require.NoError(t, m.Connect())
	defer m.Close()

	assert.True(t, m.IsValid)
	assert.True(t, m.ShouldSaveLocal)
	require.NoError(t, m.Setup())
	assert.True(t, m.DB.Migrator().HasTable(&model.KVEntry{}))
}

func TestManager_SetupWithoutConnect(t *testing.T) {
	m := NewManager(config.DBConfig{}, "", zerolog.Nop())
	assert.Error(t, m.Setup())
	assert.NoError(t, m.Close())
}
