package cache

import (
	"container/list"
	"sync"

	"github.com/atharv3903/skyroute/internal/model"
)

// defaultCapacity is used when a non-positive capacity is requested.
const defaultCapacity = 4096

// RouteKey identifies one query against one graph snapshot. Bumping the graph
// epoch makes every older key unreachable; they age out of the LRU.
type RouteKey struct {
	Start, Goal string
	Epoch       uint64
}

// Entry is a cached answer. Found=false caches a miss.
type Entry struct {
	Route model.Route
	Found bool
}

type routeEntry struct {
	key RouteKey
	val Entry
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
	Len       int `json:"len"`
}

// RouteCache is a bounded LRU of route results.
// It's safe for concurrent use.
type RouteCache struct {
	mu       sync.Mutex
	m        map[RouteKey]*list.Element
	ll       *list.List
	capacity int
	// stats
	puts      int
	gets      int
	hits      int
	evictions int
}

// NewRouteCache returns an LRU route cache holding up to capacity entries.
func NewRouteCache(capacity int) *RouteCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &RouteCache{
		m:        make(map[RouteKey]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Get returns the cached entry for k and updates its LRU position on hit.
func (c *RouteCache) Get(k RouteKey) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if el, ok := c.m[k]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		return el.Value.(routeEntry).val, true
	}
	return Entry{}, false
}

// Put inserts or replaces k, evicting the least recently used entry when full.
// The path is copied so callers may keep mutating theirs.
func (c *RouteCache) Put(k RouteKey, v Entry) {
	v.Route.Path = append([]string(nil), v.Route.Path...)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.puts++
	if el, ok := c.m[k]; ok {
		el.Value = routeEntry{key: k, val: v}
		c.ll.MoveToFront(el)
		return
	}

	c.m[k] = c.ll.PushFront(routeEntry{key: k, val: v})

	if c.ll.Len() > c.capacity {
		if tail := c.ll.Back(); tail != nil {
			delete(c.m, tail.Value.(routeEntry).key)
			c.ll.Remove(tail)
			c.evictions++
		}
	}
}

// Clear drops all entries and resets the counters.
func (c *RouteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[RouteKey]*list.Element, c.capacity)
	c.ll.Init()
	c.puts = 0
	c.gets = 0
	c.hits = 0
	c.evictions = 0
}

func (c *RouteCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Gets: c.gets, Hits: c.hits, Puts: c.puts, Evictions: c.evictions, Len: c.ll.Len()}
}
