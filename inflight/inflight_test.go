package inflight

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardBlocksSameKey(t *testing.T) {
	var g Guard

	release, ok := g.TryAcquire(LikeKey("p1"))
	assert.True(t, ok)
	assert.True(t, g.Busy(LikeKey("p1")))

	_, ok = g.TryAcquire(LikeKey("p1"))
	assert.False(t, ok)

	release()
	release()
	assert.False(t, g.Busy(LikeKey("p1")))

	_, ok = g.TryAcquire(LikeKey("p1"))
	assert.True(t, ok)
}

func TestGuardDistinctKeysIndependent(t *testing.T) {
	var g Guard

	_, ok := g.TryAcquire(LikeKey("p1"))
	assert.True(t, ok)
	_, ok = g.TryAcquire(LikeKey("p2"))
	assert.True(t, ok)
	_, ok = g.TryAcquire(CommentKey("p1"))
	assert.True(t, ok)
}

func TestStaleReleaseDoesNotFreeNewerHolder(t *testing.T) {
	var g Guard

	first, _ := g.TryAcquire("chat")
	first()
	second, ok := g.TryAcquire("chat")
	assert.True(t, ok)

	first()
	assert.True(t, g.Busy("chat"))
	second()
	assert.False(t, g.Busy("chat"))
}

func TestGuardConcurrentAcquire(t *testing.T) {
	var g Guard
	var winners int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := g.TryAcquire(SaveKey("p1")); ok {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
}
