// Package cache is the shared client-side query cache views read from and patch.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Query keys shared across views.
const (
	KeyFeed            = "posts:feed"
	KeySavedPosts      = "posts:saved"
	KeyWardrobeItems   = "wardrobe:items"
	KeyWardrobeTags    = "wardrobe:tags"
	KeyCalendarOutfits = "calendar:outfits"
	KeyStudioImages    = "studio:images"
	KeySavedImages     = "studio:saved"
	KeyProfile         = "user:profile"
)

// CommentsKey is the cache key of one post's comment list.
func CommentsKey(postID string) string {
	return "posts:comments:" + postID
}

// Entry is one cached value.
type Entry struct {
	Value     any
	UpdatedAt time.Time
}

// QueryCache is safe for concurrent use.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

func New() *QueryCache {
	return &QueryCache{entries: make(map[string]Entry), now: time.Now}
}

func (c *QueryCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *QueryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Value: value, UpdatedAt: c.now()}
}

// Update runs fn on the current value under the write lock and stores the result.
// fn receives nil and false when the key is absent. Returning keep=false leaves the entry untouched.
func (c *QueryCache) Update(key string, fn func(value any, ok bool) (next any, keep bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	next, keep := fn(e.Value, ok)
	if !keep {
		return
	}
	c.entries[key] = Entry{Value: next, UpdatedAt: c.now()}
}

func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *QueryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Clear drops everything. Logout calls this.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load returns the cached value for key as T.
func Load[T any](c *QueryCache, key string) (T, bool) {
	var zero T
	e, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := e.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Patch applies fn to the cached T under key. It is a no-op when the key is absent or holds another type.
func Patch[T any](c *QueryCache, key string, fn func(T) T) bool {
	patched := false
	c.Update(key, func(value any, ok bool) (any, bool) {
		if !ok {
			return nil, false
		}
		v, ok := value.(T)
		if !ok {
			return nil, false
		}
		patched = true
		return fn(v), true
	})
	return patched
}
