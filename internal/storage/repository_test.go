package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = (ok=%v, err=%v), want absent", ok, err)
	}

	if err := repo.Put(ctx, "snap", []byte(`{"total":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := repo.Get(ctx, "snap")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want present", ok, err)
	}
	if string(got) != `{"total":1}` {
		t.Errorf("Get = %s, want stored value", got)
	}
}

func TestSQLiteRepository_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Put(ctx, "snap", []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "snap", []byte("new")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, ok, err := repo.Get(ctx, "snap")
	if err != nil || !ok {
		t.Fatalf("Get = (ok=%v, err=%v), want present", ok, err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %s, want new", got)
	}
}

func TestSQLiteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.Put(ctx, "snap", []byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Delete(ctx, "snap"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := repo.Get(ctx, "snap"); err != nil || ok {
		t.Errorf("Get after delete = (ok=%v, err=%v), want absent", ok, err)
	}

	// Deleting an absent key is not an error.
	if err := repo.Delete(ctx, "snap"); err != nil {
		t.Errorf("Delete absent = %v, want nil", err)
	}
}
