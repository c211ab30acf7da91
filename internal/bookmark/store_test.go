package bookmark

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/internal/config"
	"github.com/tLat87/SpiritLands/internal/storage/memory"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func aircraft(id, name string) core.Aircraft {
	return core.Aircraft{
		ID:      id,
		Name:    name,
		Country: "USA",
		Type:    core.AircraftFighter,
		Facts:   []string{"fact"},
	}
}

func newBackend(t *testing.T) *memory.Backend {
	t.Helper()
	b := memory.New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newStore(t *testing.T, backend *memory.Backend) *Store[core.AircraftType] {
	t.Helper()
	s, err := New[core.AircraftType](backend, nil)
	require.NoError(t, err)
	return s
}

func persisted(t *testing.T, b *memory.Backend, key string) []string {
	t.Helper()
	value, found, err := b.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, found, "key %s not persisted", key)
	items, err := Unmarshal[core.AircraftType](value)
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

// failingBackend fails every write.
type failingBackend struct {
	getErr error
	value  string
	mu     sync.Mutex
	sets   int
}

func (f *failingBackend) Init() error  { return nil }
func (f *failingBackend) Close() error { return nil }

func (f *failingBackend) Get(context.Context, string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.value, f.value != "", nil
}

func (f *failingBackend) Set(context.Context, string, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	return errors.New("disk full")
}

func TestNew_KeyPerKind(t *testing.T) {
	b := newBackend(t)

	planes, err := New[core.AircraftType](b, nil)
	require.NoError(t, err)
	assert.Equal(t, core.KindAircraft, planes.Kind())
	assert.Equal(t, "bookmarkedAircraft", planes.Key())

	volcanoes, err := New[core.VolcanoType](b, nil)
	require.NoError(t, err)
	assert.Equal(t, core.KindVolcano, volcanoes.Kind())
	assert.Equal(t, "bookmarkedVolcanoes", volcanoes.Key())
}

func TestAddRemove(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)

	s.Add(aircraft("1", "F-22 Raptor"))
	assert.True(t, s.IsBookmarked("1"))

	s.Remove("1")
	assert.False(t, s.IsBookmarked("1"))

	s.Wait()
	assert.Empty(t, persisted(t, b, s.Key()))
}

func TestAdd_Duplicate(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)

	s.Add(aircraft("1", "F-22 Raptor"))
	s.Add(aircraft("1", "renamed"))
	s.Wait()

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "F-22 Raptor", items[0].Name, "first snapshot is kept")
	assert.Equal(t, []string{"1"}, persisted(t, b, s.Key()))
}

func TestRemove_Absent(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)

	s.Remove("missing")
	s.Wait()

	_, found, err := b.Get(context.Background(), s.Key())
	require.NoError(t, err)
	assert.False(t, found, "no-op remove should not write")
}

func TestToggle_TwiceRestores(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)
	s.Add(aircraft("2", "Boeing 747"))

	for _, it := range []core.Aircraft{aircraft("1", "F-22 Raptor"), aircraft("2", "Boeing 747")} {
		before := s.IsBookmarked(it.ID)
		first := s.Toggle(it)
		assert.Equal(t, !before, first)
		second := s.Toggle(it)
		assert.Equal(t, before, second)
		assert.Equal(t, before, s.IsBookmarked(it.ID))
	}
}

func TestItems_InsertionOrder(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)

	s.Add(aircraft("3", "Concorde"))
	s.Add(aircraft("1", "F-22 Raptor"))
	s.Add(aircraft("2", "Boeing 747"))
	s.Remove("1")
	s.Wait()

	assert.Equal(t, []string{"3", "2"}, s.IDs())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"3", "2"}, persisted(t, b, s.Key()))
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := newStore(t, newBackend(t))
	s.Add(aircraft("1", "F-22 Raptor"))

	items := s.Items()
	items[0].Name = "mutated"
	ids := s.IDs()
	ids[0] = "x"

	assert.Equal(t, "F-22 Raptor", s.Items()[0].Name)
	assert.Equal(t, []string{"1"}, s.IDs())
}

func TestLoad_RoundTrip(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)
	s.Add(aircraft("1", "F-22 Raptor"))
	s.Add(aircraft("4", "SR-71 Blackbird"))
	s.Wait()

	reloaded := newStore(t, b)
	reloaded.Load(context.Background())

	assert.Equal(t, s.IDs(), reloaded.IDs())
	assert.Equal(t, s.Items(), reloaded.Items())
}

func TestLoad_MissingKey(t *testing.T) {
	s := newStore(t, newBackend(t))
	s.Load(context.Background())
	assert.Zero(t, s.Len())
}

func TestLoad_CorruptData(t *testing.T) {
	b := newBackend(t)
	require.NoError(t, b.Set(context.Background(), "bookmarkedAircraft", "{not json"))

	var buf bytes.Buffer
	s, err := New[core.AircraftType](b, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)
	s.Load(context.Background())

	assert.Zero(t, s.Len(), "corrupt data leaves the set empty")
	assert.Contains(t, buf.String(), "Discarding corrupt bookmark list")
}

func TestLoad_ReadError(t *testing.T) {
	var buf bytes.Buffer
	s, err := New[core.AircraftType](&failingBackend{getErr: errors.New("boom")},
		slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	s.Load(context.Background())
	assert.Zero(t, s.Len())
	assert.Contains(t, buf.String(), "Failed to read bookmarks")
}

func TestPersistFailure_KeepsMemoryState(t *testing.T) {
	var buf bytes.Buffer
	backend := &failingBackend{}
	s, err := New[core.AircraftType](backend, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	s.Add(aircraft("1", "F-22 Raptor"))
	s.Wait()

	assert.True(t, s.IsBookmarked("1"))
	assert.Equal(t, 1, backend.sets)
	assert.Contains(t, buf.String(), "Failed to persist bookmarks")
	assert.Contains(t, buf.String(), "disk full")
}

func TestSubscribe(t *testing.T) {
	s := newStore(t, newBackend(t))

	var got [][]string
	cancel := s.Subscribe(func(items []core.Aircraft) {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		got = append(got, ids)
	})

	s.Add(aircraft("1", "F-22 Raptor"))
	s.Toggle(aircraft("2", "Boeing 747"))
	s.Remove("1")
	s.Remove("1") // no change, no notification

	cancel()
	cancel()
	s.Add(aircraft("3", "Concorde"))
	s.Wait()

	assert.Equal(t, [][]string{{"1"}, {"1", "2"}, {"2"}}, got)
}

func TestConcurrentMutations(t *testing.T) {
	b := newBackend(t)
	s := newStore(t, b)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i%10))
			s.Toggle(aircraft(id, id))
			_ = s.IsBookmarked(id)
		}()
	}
	wg.Wait()
	s.Wait()

	// 50 toggles over 10 ids, five each: every id ends up bookmarked.
	assert.Equal(t, 10, s.Len())
	assert.ElementsMatch(t, s.IDs(), persisted(t, b, s.Key()), "newest list wins")
}

// switchBackend fails writes while fail is set.
type switchBackend struct {
	*memory.Backend
	fail atomic.Bool
}

func (b *switchBackend) Set(ctx context.Context, key, value string) error {
	if b.fail.Load() {
		return errors.New("disk full")
	}
	return b.Backend.Set(ctx, key, value)
}

func TestPersist_FailedNewerWriteBlocksOlder(t *testing.T) {
	b := &switchBackend{Backend: newBackend(t)}
	s, err := New[core.AircraftType](b, nil)
	require.NoError(t, err)

	b.fail.Store(true)
	s.persist([]core.Aircraft{aircraft("1", "F-22 Raptor"), aircraft("2", "Concorde")}, 2)
	s.Wait()

	b.fail.Store(false)
	s.persist([]core.Aircraft{aircraft("1", "F-22 Raptor")}, 1)
	s.Wait()

	_, found, err := b.Get(context.Background(), s.Key())
	require.NoError(t, err)
	assert.False(t, found, "stale list must not overwrite a newer attempt")

	s.persist([]core.Aircraft{aircraft("2", "Concorde")}, 3)
	s.Wait()
	assert.Equal(t, []string{"2"}, persisted(t, b.Backend, s.Key()))
}

func TestMarshalUnmarshal(t *testing.T) {
	empty, err := Marshal[core.AircraftType](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	items, err := Unmarshal[core.AircraftType](`[{"id":"1","name":"a","type":"fighter"},{"id":""},{"id":"1","name":"dup"}]`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Name)

	_, err = Unmarshal[core.AircraftType]("nope")
	assert.Error(t, err)
}
