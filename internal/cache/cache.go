// Package cache implements the single-slot dashboard cache with
// stale-while-revalidate semantics.
//
// The slot holds at most one entry per device. Staleness is a pure function
// of time and ownership, computed on every read; a stale or foreign entry is
// treated as absent without requiring eager deletion.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TTL is how long a snapshot stays fresh (1,800,000 ms).
const TTL = 30 * time.Minute

// Entry is the persisted envelope around one snapshot.
type Entry[T any] struct {
	Data      T      `json:"data"`
	Timestamp int64  `json:"timestamp"` // epoch ms at capture
	UserID    string `json:"userId"`
}

// Store persists the single slot. Implementations are best-effort: the slot
// never propagates a store failure to its caller.
type Store[T any] interface {
	Load(ctx context.Context) (Entry[T], bool, error)
	Save(ctx context.Context, e Entry[T]) error
	Delete(ctx context.Context) error
}

// Slot is the single-slot cache. Writes always overwrite (last-writer-wins);
// a new user's login evicts the prior entry semantically even though the
// ownership check only runs at read time.
type Slot[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	store Store[T]

	entry  *Entry[T]
	loaded bool

	now func() time.Time
}

// NewSlot creates a slot backed by an optional persistent store. A nil store
// keeps the slot memory-only.
func NewSlot[T any](ttl time.Duration, store Store[T]) *Slot[T] {
	return &Slot[T]{ttl: ttl, store: store, now: time.Now}
}

// Get returns the snapshot for currentUserID, or false when the slot is
// empty, expired, or owned by someone else. A stale entry is dropped from the
// persistent store as best-effort cleanup; correctness never depends on that
// delete because every Get re-checks staleness.
func (s *Slot[T]) Get(ctx context.Context, currentUserID string) (T, bool) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx)
	if s.entry == nil {
		return zero, false
	}

	age := s.now().UnixMilli() - s.entry.Timestamp
	expired := age > s.ttl.Milliseconds()
	foreign := s.entry.UserID != currentUserID
	if expired || foreign {
		slog.DebugContext(ctx, "Cache entry treated as absent",
			"expired", expired,
			"foreign", foreign,
			"age_ms", age)
		s.entry = nil
		if s.store != nil {
			if err := s.store.Delete(ctx); err != nil {
				slog.WarnContext(ctx, "Stale cache cleanup failed", "error", err)
			}
		}
		return zero, false
	}

	return s.entry.Data, true
}

// Put overwrites the slot with a fresh snapshot. A failed persistent write is
// logged and swallowed; the in-memory entry stays the source of truth for the
// session so the caller is never blocked by storage trouble.
func (s *Slot[T]) Put(ctx context.Context, data T, ownerUserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx)
	e := Entry[T]{
		Data:      data,
		Timestamp: s.now().UnixMilli(),
		UserID:    ownerUserID,
	}
	s.entry = &e
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Cache write failed, keeping in-memory snapshot",
			"user_id", ownerUserID,
			"error", err)
	}
}

// CleanExpired drops the entry when its TTL has lapsed, returning how many
// entries were removed (0 or 1). Used by the cache manager's periodic sweep.
func (s *Slot[T]) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == nil {
		return 0
	}
	if s.now().UnixMilli()-s.entry.Timestamp <= s.ttl.Milliseconds() {
		return 0
	}
	s.entry = nil
	return 1
}

// hydrate lazily reads the persisted envelope once per process. A read
// failure is treated as an empty slot.
func (s *Slot[T]) hydrate(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	if s.store == nil {
		return
	}
	e, ok, err := s.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Cache read failed, treating as absent", "error", err)
		return
	}
	if ok {
		s.entry = &e
	}
}
