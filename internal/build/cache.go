package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Cache holds rendered component sources with LRU eviction and a TTL.
// Size is measured in bytes of cached source.
type Cache struct {
	entries     map[string]*cacheEntry
	mutex       sync.Mutex
	maxSize     int64
	currentSize int64
	ttl         time.Duration
	now         func() time.Time

	// sentinels of the recency list; head.next is the most recent entry
	head *cacheEntry
	tail *cacheEntry

	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	key       string
	value     string
	createdAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// CacheStats reports cache usage.
type CacheStats struct {
	Entries   int   `json:"entries" yaml:"entries"`
	Size      int64 `json:"size" yaml:"size"`
	MaxSize   int64 `json:"max_size" yaml:"max_size"`
	Hits      int64 `json:"hits" yaml:"hits"`
	Misses    int64 `json:"misses" yaml:"misses"`
	Evictions int64 `json:"evictions" yaml:"evictions"`
}

// NewCache creates a cache bounded to maxSize bytes whose entries expire
// after ttl.
func NewCache(maxSize int64, ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		head:    &cacheEntry{},
		tail:    &cacheEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Key derives the cache key of one render. ok is false when config cannot
// be encoded, in which case the render must not be cached.
func Key(componentType string, config map[string]any, themeName string) (key string, ok bool) {
	encoded, err := json.Marshal(config)
	if err != nil {
		return "", false
	}

	h := sha256.New()
	h.Write([]byte(componentType))
	h.Write([]byte{0})
	h.Write([]byte(themeName))
	h.Write([]byte{0})
	h.Write(encoded)

	return hex.EncodeToString(h.Sum(nil)), true
}

// Get returns the cached source for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return "", false
	}

	if c.now().Sub(entry.createdAt) > c.ttl {
		c.remove(entry)
		atomic.AddInt64(&c.misses, 1)
		return "", false
	}

	c.unlink(entry)
	c.pushFront(entry)
	atomic.AddInt64(&c.hits, 1)

	return entry.value, true
}

// Set stores value under key. Values larger than the whole cache are not
// stored.
func (c *Cache) Set(key, value string) {
	size := int64(len(value))
	if size > c.maxSize {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, exists := c.entries[key]; exists {
		c.remove(existing)
	}

	for c.currentSize+size > c.maxSize && c.tail.prev != c.head {
		c.remove(c.tail.prev)
		atomic.AddInt64(&c.evictions, 1)
	}

	entry := &cacheEntry{key: key, value: value, createdAt: c.now()}
	c.entries[key] = entry
	c.currentSize += size
	c.pushFront(entry)
}

// Clear drops every entry and resets the statistics.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.currentSize = 0
	c.head.next = c.tail
	c.tail.prev = c.head

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
}

// Stats returns current usage counters.
func (c *Cache) Stats() CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return CacheStats{
		Entries:   len(c.entries),
		Size:      c.currentSize,
		MaxSize:   c.maxSize,
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}

func (c *Cache) remove(entry *cacheEntry) {
	c.unlink(entry)
	delete(c.entries, entry.key)
	c.currentSize -= int64(len(entry.value))
}

func (c *Cache) pushFront(entry *cacheEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *Cache) unlink(entry *cacheEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}
