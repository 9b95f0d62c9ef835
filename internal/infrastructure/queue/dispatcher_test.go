package queue

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/soundstash/media-catalog/internal/core/domain"
	"github.com/soundstash/media-catalog/internal/core/ports"
)

// syncMediaStore records deletions and signals each one.
type syncMediaStore struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
	signal    chan string
}

func newSyncMediaStore() *syncMediaStore {
	return &syncMediaStore{signal: make(chan string, 64)}
}

func (m *syncMediaStore) Put(_ context.Context, key, filename, contentType string, r io.Reader) (*ports.AssetRef, error) {
	return &ports.AssetRef{Key: key}, nil
}

func (m *syncMediaStore) Open(_ context.Context, key string) (*ports.AssetRef, io.ReadCloser, error) {
	return nil, nil, domain.ErrAssetNotFound
}

func (m *syncMediaStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	err := m.deleteErr
	m.mu.Unlock()
	m.signal <- key
	return err
}

func (m *syncMediaStore) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.deleted))
	copy(out, m.deleted)
	return out
}

func waitForDeletes(t *testing.T, store *syncMediaStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-store.signal:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delete %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeletesEnqueuedAssets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newSyncMediaStore()
	d := NewDispatcher(2, store, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.PurgeTask{AssetKey: "asset-a", Reason: "song_removed"})
	d.Enqueue(ports.PurgeTask{AssetKey: "asset-b", Reason: "song_removed"})

	waitForDeletes(t, store, 2)

	keys := store.deletedKeys()
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen["asset-a"] || !seen["asset-b"] {
		t.Fatalf("expected both assets deleted, got %v", keys)
	}
}

func TestDispatcher_IgnoresEmptyKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newSyncMediaStore()
	d := NewDispatcher(1, store, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.PurgeTask{AssetKey: "", Reason: "song_removed"})
	d.Enqueue(ports.PurgeTask{AssetKey: "asset-a", Reason: "song_removed"})

	waitForDeletes(t, store, 1)

	if keys := store.deletedKeys(); len(keys) != 1 || keys[0] != "asset-a" {
		t.Fatalf("expected only asset-a deleted, got %v", keys)
	}
}

func TestDispatcher_SameKeyAlwaysSameShard(t *testing.T) {
	d := NewDispatcher(4, newSyncMediaStore(), zerolog.Nop())

	for _, key := range []string{"asset-a", "asset-b", "asset-c"} {
		first := d.shardIndex(key)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(key); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", key, first, got)
			}
		}
	}
}

func TestDispatcher_StorageErrorDoesNotStopWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newSyncMediaStore()
	store.deleteErr = errors.New("storage down")
	d := NewDispatcher(1, store, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.PurgeTask{AssetKey: "asset-a", Reason: "song_removed"})
	waitForDeletes(t, store, 1)

	// Worker is still alive and keeps consuming after the failure.
	store.mu.Lock()
	store.deleteErr = nil
	store.mu.Unlock()

	d.Enqueue(ports.PurgeTask{AssetKey: "asset-b", Reason: "song_removed"})
	waitForDeletes(t, store, 1)

	if keys := store.deletedKeys(); len(keys) != 2 {
		t.Fatalf("expected both attempts recorded, got %v", keys)
	}
}
