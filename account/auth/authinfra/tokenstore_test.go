package authinfra

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, store auth.TokenStore) {
	t.Helper()
	ctx := context.Background()

	s, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	want := &auth.Session{Token: "tok", Email: "ana@example.com", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.Email, got.Email)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Clear(ctx))
}

func TestMemoryTokenStore(t *testing.T) {
	exercise(t, NewMemoryTokenStore())
}

func TestFileTokenStore(t *testing.T) {
	exercise(t, NewFileTokenStore(fsxlocal.NewLocalFileSystem(t.TempDir()), "session.json"))
}

func TestRedisTokenStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS")})
	defer client.Close()

	exercise(t, NewRedisTokenStore(client, "aikyuu:test:session:"+time.Now().Format("150405.000000")))
}
