package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := NewCache[string, int](time.Minute, 10)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := NewCache[string, int](time.Minute, 10)

	c.SetWithTTL("a", 1, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := NewCache[string, int](time.Minute, 10)

	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestLRUEviction(t *testing.T) {
	c := NewCache[string, int](time.Minute, 2)

	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the least recently used
	c.Get("a")
	time.Sleep(time.Millisecond)

	c.Set("c", 3)

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
}

func TestCloseStopsCleanup(t *testing.T) {
	c := NewCache[string, int](10*time.Millisecond, 10)
	c.Set("a", 1)

	c.Close()

	// Closing ends the background sweep but the cache stays usable
	c.SetWithTTL("b", 2, time.Minute)
	_, ok := c.Get("b")
	assert.True(t, ok)

	// Close is safe to call twice
	c.Close()
}

func TestClearAndSize(t *testing.T) {
	c := NewCache[string, int](time.Minute, 10)

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
