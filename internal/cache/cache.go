// Package cache holds short-lived copies of API responses so repeated page
// loads do not round-trip to the InvestX API.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Entry is one cached API response body.
type Entry struct {
	StatusCode int
	Body       []byte
	StoredAt   time.Time
}

type item struct {
	entry  *Entry
	expiry time.Time
	seq    int64
}

// ResponseCache is a TTL cache bounded by entry count. When full, the
// oldest inserted entry is evicted. Keys are "subject:method:path".
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]item
	ttl        time.Duration
	maxEntries int
	seq        int64
	now        func() time.Time
}

// New creates a cache. A non-positive maxEntries means one entry.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &ResponseCache{
		items:      make(map[string]item),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// MakeKey builds a cache key. The path should include the query string
// when the response depends on it.
func MakeKey(subject, method, path string) string {
	return subject + ":" + method + ":" + path
}

// Get returns the entry for key if present and not expired.
func (c *ResponseCache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().After(it.expiry) {
		c.mu.Lock()
		if cur, ok := c.items[key]; ok && c.now().After(cur.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.entry, true
}

// Set stores body under key, evicting the oldest entry when at capacity.
func (c *ResponseCache) Set(key string, statusCode int, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	it := item{
		entry:  &Entry{StatusCode: statusCode, Body: body, StoredAt: now},
		expiry: now.Add(c.ttl),
		seq:    c.seq,
	}
	c.seq++

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxEntries {
		c.evictOldest()
	}
	c.items[key] = it
}

// InvalidateSubject drops every entry cached for subject.
func (c *ResponseCache) InvalidateSubject(subject string) {
	if subject == "" {
		return
	}
	prefix := subject + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest must be called with mu held.
func (c *ResponseCache) evictOldest() {
	var oldestKey string
	var oldest int64 = -1
	for key, it := range c.items {
		if oldest == -1 || it.seq < oldest {
			oldest = it.seq
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
