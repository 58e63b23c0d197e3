package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, time.Hour), mr
}

func TestStoreSaveAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	s := NewSession("sess-1", "user-1")
	require.NoError(t, s.SetIdea("a todo app", "## Overview\nA todo app."))
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, StepUIUX, got.Step)
	assert.Equal(t, "a todo app", got.OriginalIdea)
	assert.False(t, got.UpdatedAt.IsZero())

	ids, err := store.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, ids)
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Get(context.Background(), "nope", "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreOwnershipMismatch(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewSession("sess-1", "user-1")))

	// Someone else's session reads like a missing one.
	_, err := store.Get(ctx, "sess-1", "user-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = store.Delete(ctx, "sess-1", "user-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Still there for the owner.
	_, err = store.Get(ctx, "sess-1", "user-1")
	assert.NoError(t, err)
}

func TestStoreDelete(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewSession("sess-1", "user-1")))
	require.NoError(t, store.Delete(ctx, "sess-1", "user-1"))

	_, err := store.Get(ctx, "sess-1", "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	ids, err := store.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStoreSweepUserIndexes(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewSession("live", "user-1")))
	require.NoError(t, store.Save(ctx, NewSession("dead", "user-1")))

	// Simulate TTL expiry of one session without touching the index.
	mr.Del(sessionKeyPrefix + "dead")

	removed, err := store.SweepUserIndexes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	ids, err := store.ListIDs(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, ids)
}
