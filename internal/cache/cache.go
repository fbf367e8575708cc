// Package cache memoizes fetched chapters for the lifetime of a session.
package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"bible-tui/internal/bible"
)

// Key identifies one chapter of one version.
type Key struct {
	Version string
	BookID  string
	Chapter int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Version, k.BookID, k.Chapter)
}

// Chapters is an append-only chapter memo. The first stored value for a key
// wins and nothing is evicted until Clear.
type Chapters struct {
	mu     sync.RWMutex
	data   map[Key][]bible.Verse
	flight singleflight.Group
}

func New() *Chapters {
	return &Chapters{data: make(map[Key][]bible.Verse)}
}

// Get returns a cached chapter.
func (c *Chapters) Get(k Key) ([]bible.Verse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[k]
	return v, ok
}

// Put stores verses unless the key is already present. It returns the value
// that ends up cached.
func (c *Chapters) Put(k Key, verses []bible.Verse) []bible.Verse {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.data[k]; ok {
		return existing
	}
	c.data[k] = verses
	return verses
}

// Load returns the cached chapter or runs fn once for all concurrent callers
// of the same key. Errors are not cached.
func (c *Chapters) Load(k Key, fn func() ([]bible.Verse, error)) ([]bible.Verse, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}

	v, err, _ := c.flight.Do(k.String(), func() (any, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		verses, err := fn()
		if err != nil {
			return nil, err
		}
		return c.Put(k, verses), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]bible.Verse), nil
}

// Len reports the number of cached chapters.
func (c *Chapters) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear drops every entry. Called at session end.
func (c *Chapters) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[Key][]bible.Verse)
}
