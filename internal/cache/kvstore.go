package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// SnapshotKey is the fixed key the dashboard envelope is stored under.
const SnapshotKey = "dashboard_snapshot"

// KV is a byte-level key-value store; the SQLite repository implements it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// kvStore adapts a byte-level KV into a typed Store by JSON-encoding the
// envelope.
type kvStore[T any] struct {
	kv  KV
	key string
}

// NewKVStore wraps kv as a typed snapshot store under the given key.
func NewKVStore[T any](kv KV, key string) Store[T] {
	return &kvStore[T]{kv: kv, key: key}
}

func (s *kvStore[T]) Load(ctx context.Context) (Entry[T], bool, error) {
	var e Entry[T]
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return e, false, fmt.Errorf("load cache envelope: %w", err)
	}
	if !ok {
		return e, false, nil
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return e, false, fmt.Errorf("decode cache envelope: %w", err)
	}
	return e, true, nil
}

func (s *kvStore[T]) Save(ctx context.Context, e Entry[T]) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache envelope: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save cache envelope: %w", err)
	}
	return nil
}

func (s *kvStore[T]) Delete(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
