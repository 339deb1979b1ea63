package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	c, err := New("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func TestGetTokenVersion(t *testing.T) {
	c, s := newTestClient(t)
	ctx := context.Background()

	t.Run("missing_key_is_zero", func(t *testing.T) {
		v, err := c.GetTokenVersion(ctx, 42)
		require.NoError(t, err)
		assert.Zero(t, v)
	})

	t.Run("reads_auth_service_key", func(t *testing.T) {
		require.NoError(t, s.Set("tokenver:42", "7"))
		v, err := c.GetTokenVersion(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(7), v)
	})

	t.Run("garbage_value_errors", func(t *testing.T) {
		require.NoError(t, s.Set("tokenver:43", "seven"))
		_, err := c.GetTokenVersion(ctx, 43)
		assert.Error(t, err)
	})
}

func TestGetTokenVersion_RedisDown(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	c, err := New("redis://" + s.Addr())
	require.NoError(t, err)
	defer c.Close()

	s.Close()
	_, err = c.GetTokenVersion(context.Background(), 42)
	assert.Error(t, err)
}

func TestNew_Errors(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)

	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()

	_, err = New("redis://" + addr)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}
