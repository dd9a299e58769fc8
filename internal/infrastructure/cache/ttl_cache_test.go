package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	t.Run("get set delete", func(t *testing.T) {
		c := NewTTLCache(time.Minute)
		_, ok := c.Get("a")
		require.False(t, ok)

		c.Set("a", 1)
		v, ok := c.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)

		c.Delete("a")
		_, ok = c.Get("a")
		require.False(t, ok)
	})

	t.Run("expiry keeps a stale copy", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		c := NewTTLCache(time.Minute)
		c.now = func() time.Time { return now }

		c.Set("a", "x")
		now = now.Add(2 * time.Minute)

		_, ok := c.Get("a")
		require.False(t, ok)
		v, ok := c.GetStale("a")
		require.True(t, ok)
		require.Equal(t, "x", v)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		now := time.Now()
		c := NewTTLCache(0)
		c.now = func() time.Time { return now }
		c.Set("a", 1)
		now = now.Add(24 * time.Hour)
		_, ok := c.Get("a")
		require.True(t, ok)
	})

	t.Run("prefix and wholesale invalidation", func(t *testing.T) {
		c := NewTTLCache(time.Minute)
		c.Set("rooms:e1", 1)
		c.Set("rooms:e2", 2)
		c.Set("estimates", 3)

		require.Equal(t, 2, c.DeletePrefix("rooms:"))
		require.Equal(t, 1, c.Len())

		c.Invalidate()
		require.Equal(t, 0, c.Len())
	})
}
