package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/cache"
	"github.com/dmitrymomot/blogfront/pkg/session"
)

func TestSession_Lifecycle(t *testing.T) {
	t.Parallel()

	s := session.New("id", time.Now().Add(time.Hour))
	assert.True(t, s.IsNew())
	assert.True(t, s.IsDirty())
	assert.False(t, s.IsAuthenticated())

	s.MarkSaved()
	s.Set("k", "v")
	assert.True(t, s.IsDirty())

	s.MarkSaved()
	s.Set("k", "v")
	assert.False(t, s.IsDirty(), "same value keeps the session clean")

	s.SignIn("tok", "u1", "John", true)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "John", s.Get(session.KeyUserName))

	s.SignIn("tok2", "u2", "Jane", false)
	assert.False(t, s.IsAdmin())

	s.SignOut()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Get(session.KeyUserID))
	assert.Equal(t, "v", s.Get("k"))

	var nilSession *session.Session
	assert.Empty(t, nilSession.Get(session.KeyToken))
}

func TestCacheStore(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	t.Cleanup(func() { _ = mem.Close() })
	store := session.NewCacheStore(mem)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)

	s := session.New("abc", time.Now().Add(time.Hour))
	s.SignIn("tok", "u1", "John", false)
	require.NoError(t, store.Save(ctx, s))
	assert.False(t, s.IsDirty())
	assert.False(t, s.IsNew())

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token())
	assert.False(t, got.IsNew())

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	require.ErrorIs(t, err, session.ErrNotFound)

	expired := session.New("old", time.Now().Add(-time.Minute))
	require.ErrorIs(t, store.Save(ctx, expired), session.ErrExpired)
}

func TestCacheStore_Corrupted(t *testing.T) {
	t.Parallel()

	mem := cache.NewMemory()
	t.Cleanup(func() { _ = mem.Close() })
	require.NoError(t, mem.Set(context.Background(), "sess:bad", []byte("{"), time.Minute))

	_, err := session.NewCacheStore(mem).Get(context.Background(), "bad")
	require.ErrorIs(t, err, session.ErrCorrupted)
}
