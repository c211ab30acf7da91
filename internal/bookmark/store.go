// Package bookmark keeps the user's bookmarked catalog items and mirrors
// them to a key-value backend.
package bookmark

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tLat87/SpiritLands/internal/logging"
	"github.com/tLat87/SpiritLands/internal/storage"
	"github.com/tLat87/SpiritLands/pkg/core"
)

// writeTimeout bounds a single background persist.
const writeTimeout = 10 * time.Second

// Listener receives the bookmark list after every change.
type Listener[C core.Category] func(items []core.Item[C])

// Store holds the bookmarks of one item kind. The in-memory set is
// authoritative; every mutation schedules a background write of the whole
// list under the kind's bookmark key.
type Store[C core.Category] struct {
	kind    core.Kind
	key     string
	backend storage.Backend
	logger  logging.Logger

	mu    sync.RWMutex
	order []string
	items map[string]core.Item[C]
	seq   uint64

	subsMu  sync.Mutex
	subs    map[int]Listener[C]
	nextSub int

	// writes tracks in-flight persists; attempted is the sequence number of
	// the newest list handed to the backend, whether or not it was stored.
	writes    sync.WaitGroup
	writeMu   sync.Mutex
	attempted uint64

	// OTEL metrics
	mutations metric.Int64Counter
	failures  metric.Int64Counter
	kindAttr  attribute.KeyValue
}

// New creates an empty store for the kind of C. Call Load to read the
// persisted list. Uses the global OTel meter (no-op if not configured).
func New[C core.Category](backend storage.Backend, logger logging.Logger) (*Store[C], error) {
	var zero C
	kind := zero.Kind()

	if logger == nil {
		logger = logging.Discard()
	}

	s := &Store[C]{
		kind:     kind,
		key:      kind.BookmarkKey(),
		backend:  backend,
		logger:   logger,
		items:    make(map[string]core.Item[C]),
		subs:     make(map[int]Listener[C]),
		kindAttr: attribute.String("kind", string(kind)),
	}

	m := meter()

	var err error

	s.mutations, err = m.Int64Counter(
		"bookmark.mutations",
		metric.WithDescription("Bookmark additions and removals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mutations counter: %w", err)
	}

	s.failures, err = m.Int64Counter(
		"bookmark.persist_failures",
		metric.WithDescription("Bookmark list writes that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating persist failures counter: %w", err)
	}

	return s, nil
}

// Kind returns the item kind this store holds.
func (s *Store[C]) Kind() core.Kind { return s.kind }

// Key returns the backend key the list is persisted under.
func (s *Store[C]) Key() string { return s.key }

// Load replaces the in-memory set with the persisted list. A missing key
// leaves the set empty. Read and decode failures are logged and also leave
// the set empty; they are never returned to the caller.
func (s *Store[C]) Load(ctx context.Context) {
	items := s.read(ctx)

	s.mu.Lock()
	s.order = s.order[:0]
	clear(s.items)
	for _, it := range items {
		s.order = append(s.order, it.ID)
		s.items[it.ID] = it
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("Bookmarks loaded", "kind", s.kind, "count", len(snapshot))
	s.notify(snapshot)
}

func (s *Store[C]) read(ctx context.Context) []core.Item[C] {
	value, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("Failed to read bookmarks", "key", s.key, "error", err)
		return nil
	}
	if !found || value == "" {
		return nil
	}
	items, err := Unmarshal[C](value)
	if err != nil {
		s.logger.Error("Discarding corrupt bookmark list", "key", s.key, "error", err)
		return nil
	}
	return items
}

// Add bookmarks item. Adding an id that is already bookmarked changes
// nothing and does not write.
func (s *Store[C]) Add(item core.Item[C]) {
	s.mu.Lock()
	if _, ok := s.items[item.ID]; ok {
		s.mu.Unlock()
		return
	}
	s.order = append(s.order, item.ID)
	s.items[item.ID] = item
	snapshot, seq := s.commitLocked()
	s.mu.Unlock()

	s.changed("add", snapshot, seq)
}

// Remove drops the bookmark with the given id, if present.
func (s *Store[C]) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	snapshot, seq := s.commitLocked()
	s.mu.Unlock()

	s.changed("remove", snapshot, seq)
}

// Toggle removes item if bookmarked and adds it otherwise. It reports
// whether the item is bookmarked afterwards.
func (s *Store[C]) Toggle(item core.Item[C]) bool {
	s.mu.Lock()
	var op string
	if _, ok := s.items[item.ID]; ok {
		delete(s.items, item.ID)
		s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == item.ID })
		op = "remove"
	} else {
		s.order = append(s.order, item.ID)
		s.items[item.ID] = item
		op = "add"
	}
	snapshot, seq := s.commitLocked()
	s.mu.Unlock()

	s.changed(op, snapshot, seq)
	return op == "add"
}

// IsBookmarked reports whether id is bookmarked.
func (s *Store[C]) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// Items returns the bookmarked items in the order they were added.
func (s *Store[C]) Items() []core.Item[C] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// IDs returns the bookmarked ids in the order they were added.
func (s *Store[C]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Len returns the number of bookmarks.
func (s *Store[C]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Subscribe registers fn to be called with the new list after every
// change. The returned function unregisters it.
func (s *Store[C]) Subscribe(fn Listener[C]) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

// Wait blocks until every scheduled write has finished.
func (s *Store[C]) Wait() {
	s.writes.Wait()
}

func (s *Store[C]) snapshotLocked() []core.Item[C] {
	out := make([]core.Item[C], 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store[C]) commitLocked() ([]core.Item[C], uint64) {
	s.seq++
	return s.snapshotLocked(), s.seq
}

func (s *Store[C]) changed(op string, snapshot []core.Item[C], seq uint64) {
	s.mutations.Add(context.Background(), 1,
		metric.WithAttributes(s.kindAttr, attribute.String("op", op)))
	s.persist(snapshot, seq)
	s.notify(snapshot)
}

// persist writes snapshot in the background. A write older than the newest
// one already attempted is skipped, even when that newer write failed, so a
// slow goroutine cannot roll the persisted list back.
func (s *Store[C]) persist(snapshot []core.Item[C], seq uint64) {
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()

		value, err := Marshal(snapshot)
		if err != nil {
			s.fail(err)
			return
		}

		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if seq < s.attempted {
			return
		}
		s.attempted = seq

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.backend.Set(ctx, s.key, value); err != nil {
			s.fail(err)
		}
	}()
}

func (s *Store[C]) fail(err error) {
	s.failures.Add(context.Background(), 1, metric.WithAttributes(s.kindAttr))
	s.logger.Error("Failed to persist bookmarks", "key", s.key, "error", err)
}

func (s *Store[C]) notify(snapshot []core.Item[C]) {
	s.subsMu.Lock()
	listeners := make([]Listener[C], 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(snapshot))
	}
}
