package cache

import (
	"context"
	"log/slog"
	"sync"
)

// FetchFunc produces a fresh snapshot for one owner.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Refresher runs the stale-while-revalidate background refresh for a slot.
// At most one refresh is in flight at a time; a second trigger while one is
// outstanding is suppressed, not queued, so rapid re-entry to the dashboard
// cannot pile up duplicate fetches.
type Refresher[T any] struct {
	slot *Slot[T]

	mu       sync.Mutex
	inFlight bool
	owner    string
}

func NewRefresher[T any](slot *Slot[T]) *Refresher[T] {
	return &Refresher[T]{slot: slot}
}

// SetOwner records the active user. A refresh started for a previous owner
// discards its result when it completes after the owner changed (logout or a
// different login).
func (r *Refresher[T]) SetOwner(userID string) {
	r.mu.Lock()
	r.owner = userID
	r.mu.Unlock()
}

// Trigger starts a background refresh for ownerUserID unless one is already
// in flight. Returns whether a refresh was actually started. A failed fetch
// leaves any existing cache entry untouched.
func (r *Refresher[T]) Trigger(ctx context.Context, ownerUserID string, fetch FetchFunc[T]) bool {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		slog.DebugContext(ctx, "Refresh already in flight, suppressing", "user_id", ownerUserID)
		return false
	}
	r.inFlight = true
	r.owner = ownerUserID
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.inFlight = false
			r.mu.Unlock()
		}()

		data, err := fetch(ctx)
		if err != nil {
			slog.WarnContext(ctx, "Background refresh failed, cached snapshot kept",
				"user_id", ownerUserID,
				"error", err)
			return
		}

		r.mu.Lock()
		superseded := r.owner != ownerUserID
		r.mu.Unlock()
		if superseded {
			slog.InfoContext(ctx, "Discarding refresh result for superseded owner",
				"user_id", ownerUserID)
			return
		}

		r.slot.Put(ctx, data, ownerUserID)
	}()

	return true
}

// InFlight reports whether a background refresh is currently running.
func (r *Refresher[T]) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight
}
