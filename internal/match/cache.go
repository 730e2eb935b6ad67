package match

import (
	"sync"

	"github.com/google/uuid"
	"github.com/mateo/matchwork/internal/types"
)

// cacheMaxEntries bounds memory use; the whole cache is reset when exceeded.
const cacheMaxEntries = 4096

type cacheKey struct {
	jobID       uuid.UUID
	userID      uuid.UUID
	jobUpdated  int64
	userUpdated int64
}

// Cache memoizes direct match scores keyed by entity IDs and their
// updated-at timestamps: any mutation of either entity changes the key, so
// stale scores are never served and expired entries simply stop being hit.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Score
}

// NewCache returns an empty score cache safe for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]Score)}
}

// Get returns the memoized score for the pair, if present.
func (c *Cache) Get(job *types.Job, user *types.User) (Score, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[keyFor(job, user)]
	return s, ok
}

// Put memoizes a score for the pair.
func (c *Cache) Put(job *types.Job, user *types.User, score Score) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= cacheMaxEntries {
		c.entries = make(map[cacheKey]Score)
	}
	c.entries[keyFor(job, user)] = score
}

func keyFor(job *types.Job, user *types.User) cacheKey {
	return cacheKey{
		jobID:       job.ID,
		userID:      user.ID,
		jobUpdated:  job.UpdatedAt.UnixNano(),
		userUpdated: user.UpdatedAt.UnixNano(),
	}
}
