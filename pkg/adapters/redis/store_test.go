package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/termfolio/pkg/adapters/redis"
	"github.com/aretw0/termfolio/pkg/domain"
	"github.com/aretw0/termfolio/pkg/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", domain.NewTerminalState(domain.LocaleFrench)))

	assert.True(t, mr.Exists("test:session:abc"))
	raw, err := mr.Get("test:session:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"locale":"fr","view":"welcome","history":[],"scroll":0}`, raw)

	members, err := mr.ZMembers("test:sessions")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, members)
	assert.NoError(t, store.Ping(ctx))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"

	// 1. Save
	err := store.Save(ctx, sessionID, domain.NewTerminalState(domain.LocaleEnglish))
	require.NoError(t, err)
	assert.Equal(t, time.Second, mr.TTL("termfolio:session:"+sessionID))

	// 2. Verify List (immediately)
	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// 5. Verify List drops the expired ID
	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	members, err := mr.ZMembers("termfolio:sessions")
	if err == nil {
		assert.Empty(t, members)
	}
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set("termfolio:session:bad", "{not json"))
	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "termfolio:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("termfolio:lock:abc"))

	// A second caller blocks until its context gives up.
	waitCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "abc", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("termfolio:lock:abc"))
}

func TestNewFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := redis.NewFromURL("redis://"+mr.Addr()+"/0", redis.WithPrefix("tf:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, "tf:", store.Prefix())

	_, err = redis.NewFromURL("http://nope")
	assert.Error(t, err)
}
