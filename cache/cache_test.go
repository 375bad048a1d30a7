package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAndPatch(t *testing.T) {
	c := New()

	_, ok := Load[[]string](c, KeyWardrobeTags)
	assert.False(t, ok)
	assert.False(t, Patch(c, KeyWardrobeTags, func(v []string) []string { return v }))

	c.Set(KeyWardrobeTags, []string{"denim"})
	assert.True(t, Patch(c, KeyWardrobeTags, func(v []string) []string { return append(v, "linen") }))

	got, ok := Load[[]string](c, KeyWardrobeTags)
	assert.True(t, ok)
	assert.Equal(t, []string{"denim", "linen"}, got)

	_, ok = Load[int](c, KeyWardrobeTags)
	assert.False(t, ok)
}

func TestInvalidatePrefixAndClear(t *testing.T) {
	c := New()
	c.Set(CommentsKey("p1"), 1)
	c.Set(CommentsKey("p2"), 2)
	c.Set(KeyFeed, 3)

	c.InvalidatePrefix("posts:comments:")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestUpdateIsAtomic(t *testing.T) {
	c := New()
	c.Set("counter", 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Patch(c, "counter", func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	n, _ := Load[int](c, "counter")
	assert.Equal(t, 50, n)
}
