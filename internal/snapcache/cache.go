// Package snapcache memoizes PersistentString.Snapshot results per version
// handle for strategies whose snapshot cost is proportional to version
// depth (delta) or tree shape (rope), so that repeated reads of the same
// historical version are not repeatedly recomputed.
//
// It never mutates the underlying versioned state: a materialized snapshot
// string is immutable once computed, so caching it is always safe, and a
// cache miss simply falls back to recomputing from the strategy's own
// storage. This is the optimization DESIGN NOTES invites explicitly and
// leaves optional; callers that never populate the cache behave exactly as
// if it did not exist.
package snapcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/JarvisCraft/persistring/internal/diag"
	"github.com/JarvisCraft/persistring/version"
)

// Cache memoizes snapshot strings keyed by (owner, version handle). owner
// distinguishes versions belonging to different engine instances sharing
// one Cache; the delta and rope strategies keep one Cache per instance and
// pass that instance's own id (drawn from a package-level counter) as
// owner, so a process that wants to pool memory across many small
// PersistentStrings could also share a single Cache among them.
type Cache struct {
	c *ristretto.Cache
}

// New constructs a Cache sized for a moderate number of distinct snapshots.
// maxEntries bounds roughly how many (owner, handle) pairs stay resident;
// ristretto evicts by estimated recency/frequency once the cost budget
// derived from it is exceeded.
func New(maxEntries int64) *Cache {
	cfg := &ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries * 256, // rough average snapshot size in bytes
		BufferItems: 64,
	}
	c, err := ristretto.NewCache(cfg)
	diag.AssertNoError(err, "snapcache.New: ristretto.NewCache")
	return &Cache{c: c}
}

type key struct {
	owner  uintptr
	handle version.Handle
}

// Get returns the memoized snapshot for (owner, h), if present.
func (c *Cache) Get(owner uintptr, h version.Handle) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.c.Get(key{owner, h})
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Put memoizes snapshot as the result for (owner, h).
func (c *Cache) Put(owner uintptr, h version.Handle, snapshot string) {
	if c == nil {
		return
	}
	c.c.Set(key{owner, h}, snapshot, int64(len(snapshot))+1)
}

// String renders a cache for debugging/benchmark output.
func (c *Cache) String() string {
	if c == nil {
		return "snapcache.Cache(nil)"
	}
	return fmt.Sprintf("snapcache.Cache(metrics=%v)", c.c.Metrics)
}
