// Package cache provides the bounded LRU cache the converter uses to trace
// each distinct cell mask only once.
//
//	c := cache.New[string, outline.Outline](4096)
//	if out, ok := c.Get(key); ok {
//		return out
//	}
//	out := trace(grid)
//	c.Put(key, out)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
