package influx

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func readBackup(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

func TestDisabled_WritesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "usage.lp.gz")
	m := NewManager(config.InfluxConfig{BackupPath: path}, zerolog.Nop())
	require.NoError(t, m.Connect(context.Background()))
	assert.False(t, m.IsValid)

	at := time.Unix(1700000000, 0)
	m.Record(BookmarkPoint(core.KindAircraft, "4", true, at))
	m.Record(QuizPoint(5, 8, 62.5, at))
	require.NoError(t, m.Close())

	backup := readBackup(t, path)
	assert.NotContains(t, backup, "\n\n")
	assert.True(t, strings.HasSuffix(backup, "\n"))

	lines := strings.Split(strings.TrimSpace(backup), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "bookmark,id=4,kind=aircraft bookmarked=true 1700000000000000000", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "quiz "))
	assert.Contains(t, lines[1], "score=5i")
	assert.Contains(t, lines[1], "percent=62.5")
}

func TestUnreachable_FallsBackToBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.lp.gz")
	m := NewManager(config.InfluxConfig{
		Enabled:    true,
		Protocol:   "http",
		Host:       "127.0.0.1",
		Port:       "1",
		Org:        "spiritlands",
		Bucket:     "usage",
		BackupPath: path,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Connect(ctx))
	assert.False(t, m.IsValid)

	m.Record(CommandPoint("list", core.KindVolcano, 12*time.Millisecond, time.Unix(1, 0)))
	require.NoError(t, m.Close())

	assert.Contains(t, readBackup(t, path), "command,command=list,kind=volcano duration_ms=12i")
}

func TestNoSink(t *testing.T) {
	m := NewManager(config.InfluxConfig{}, zerolog.Nop())
	require.NoError(t, m.Connect(context.Background()))

	err := m.WritePoint(QuizPoint(1, 8, 12.5, time.Now()))
	assert.ErrorIs(t, err, ErrNoSink)

	// Record swallows the missing sink.
	m.Record(QuizPoint(1, 8, 12.5, time.Now()))
	assert.NoError(t, m.Close())
}

func TestRecord_NilManager(t *testing.T) {
	var m *Manager
	m.Record(QuizPoint(1, 8, 12.5, time.Now()))
}
