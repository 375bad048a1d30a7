// Package inflight tracks which user actions currently have a request outstanding.
package inflight

import "sync"

// Guard is a keyed set of in-flight actions. The zero value is ready to use.
type Guard struct {
	mu   sync.Mutex
	busy map[string]uint64
	seq  uint64
}

// TryAcquire marks key busy. ok is false when the key is already in flight.
// release is idempotent and only frees the acquisition it came from.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy == nil {
		g.busy = make(map[string]uint64)
	}
	if _, taken := g.busy[key]; taken {
		return func() {}, false
	}
	g.seq++
	token := g.seq
	g.busy[key] = token

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.busy[key] == token {
				delete(g.busy, key)
			}
		})
	}, true
}

// Busy reports whether key is in flight.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[key]
	return ok
}

// Keys used by the views.
func LikeKey(postID string) string    { return "like:" + postID }
func SaveKey(postID string) string    { return "save:" + postID }
func CommentKey(postID string) string { return "comment:" + postID }
