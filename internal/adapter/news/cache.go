package news

import (
	"sync"
	"time"

	"marketbrief/internal/domain"
)

// articleCache is a small TTL'd LRU keyed by URL, so symbols that appear in
// consecutive briefs do not re-download their news pages.
type articleCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	article   domain.Article
	timestamp time.Time
}

func newArticleCache(maxSize int, ttl time.Duration) *articleCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &articleCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func (c *articleCache) get(url string) (domain.Article, bool) {
	c.mu.RLock()
	entry, exists := c.entries[url]
	c.mu.RUnlock()

	if !exists {
		return domain.Article{}, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, url)
		c.removeFromOrder(url)
		c.mu.Unlock()
		return domain.Article{}, false
	}

	c.mu.Lock()
	c.moveToEnd(url)
	c.mu.Unlock()

	return entry.article, true
}

func (c *articleCache) put(url string, article domain.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; exists {
		c.entries[url] = &cacheEntry{article: article, timestamp: time.Now()}
		c.moveToEnd(url)
		return
	}

	if len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[url] = &cacheEntry{article: article, timestamp: time.Now()}
	c.order = append(c.order, url)
}

func (c *articleCache) removeFromOrder(url string) {
	for i, k := range c.order {
		if k == url {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *articleCache) moveToEnd(url string) {
	c.removeFromOrder(url)
	c.order = append(c.order, url)
}
