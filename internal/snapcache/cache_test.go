package snapcache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JarvisCraft/persistring/internal/snapcache"
	"github.com/JarvisCraft/persistring/version"
)

func TestCacheMissThenHit(t *testing.T) {
	c := snapcache.New(16)

	_, ok := c.Get(1, version.Handle(0))
	require.False(t, ok)

	c.Put(1, version.Handle(0), "hello")
	// ristretto's Set is processed asynchronously on an internal buffer.
	time.Sleep(10 * time.Millisecond)

	got, ok := c.Get(1, version.Handle(0))
	require.True(t, ok)
	require.Equal(t, "hello", got)
}

func TestCacheDistinguishesOwners(t *testing.T) {
	c := snapcache.New(16)

	c.Put(1, version.Handle(0), "owner-one")
	c.Put(2, version.Handle(0), "owner-two")
	time.Sleep(10 * time.Millisecond)

	got1, ok1 := c.Get(1, version.Handle(0))
	require.True(t, ok1)
	require.Equal(t, "owner-one", got1)

	got2, ok2 := c.Get(2, version.Handle(0))
	require.True(t, ok2)
	require.Equal(t, "owner-two", got2)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *snapcache.Cache
	_, ok := c.Get(1, version.Handle(0))
	require.False(t, ok)
	require.NotPanics(t, func() { c.Put(1, version.Handle(0), "x") })
	require.Equal(t, "snapcache.Cache(nil)", c.String())
}
