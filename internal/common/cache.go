package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// GetOrAdd returns the value stored under key. If there is none, the value built by fn is stored and returned.
// Concurrent callers for the same key all get the value that won the Add.
func (c *Cache) GetOrAdd(key string, fn func() interface{}) interface{} {
	if v, ok := c.Cache.Get(key); ok {
		return v
	}

	v := fn()
	if err := c.Cache.Add(key, v, cache.DefaultExpiration); err != nil {
		if existing, ok := c.Cache.Get(key); ok {
			return existing
		}
	}

	return v
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyClient(ip string) string {
	return "client:" + ip
}
