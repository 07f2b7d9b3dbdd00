// Package cache provides a small generic LRU cache.
//
//	c := cache.New[string, int](8)
//	c.Put("key", 42)
//	value, ok := c.Get("key")
//
// The cache is not safe for concurrent use; it is meant to live inside a
// single-goroutine owner such as an engine.
package cache

// node is an entry in the recency list. The head is the most recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// LRU holds at most Cap entries and evicts the least recently used one
// when a new key would exceed that.
type LRU[K comparable, V any] struct {
	entries  map[K]*node[K, V]
	head     *node[K, V]
	tail     *node[K, V]
	capacity int
	stats    Stats
}

// Stats counts cache traffic since creation or the last Clear.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New creates a cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		entries:  make(map[K]*node[K, V]),
		capacity: max(capacity, 1),
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.moveToFront(n)
	return n.value, true
}

// Put stores value under key as the most recently used entry and returns
// the evicted value, if any.
func (c *LRU[K, V]) Put(key K, value V) (evicted V, ok bool) {
	if n, exists := c.entries[key]; exists {
		n.value = value
		c.moveToFront(n)
		return evicted, false
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)

	if len(c.entries) > c.capacity {
		old := c.tail
		c.unlink(old)
		delete(c.entries, old.key)
		c.stats.Evictions++
		return old.value, true
	}
	return evicted, false
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Cap returns the maximum number of entries.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// Stats returns the traffic counters.
func (c *LRU[K, V]) Stats() Stats {
	return c.stats
}

// Clear removes all entries and resets the counters.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.head = nil
	c.tail = nil
	c.stats = Stats{}
}

func (c *LRU[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *LRU[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// unlink removes n from the list and clears its links.
func (c *LRU[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
