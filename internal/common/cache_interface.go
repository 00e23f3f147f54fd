package common

import "time"

// CacheInterface is the keyed TTL store behind the flight list and status
// caches and the Discord linking-code store. In-memory (go-cache) for a
// single instance, Redis when the bot and API run on separate hosts.
type CacheInterface interface {
	// Set stores a value under key for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key, reporting whether it was present and
	// unexpired.
	Get(key string) (interface{}, bool)

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string)

	// GetOrSet returns the cached value, or runs loader and caches its result
	// for the given duration.
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections.
	Close() error
}
