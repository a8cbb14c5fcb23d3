package cache

// EvictCallback is called when an entry is evicted from the cache.
// Not all providers support eviction callbacks (Redis relies on server-side expiry).
type EvictCallback func(key string, value []byte)

// Logger receives error reports from cache operations that cannot return an error
// to the caller (the Cache interface is deliberately error-free).
type Logger interface {
	Error(msg string, err error)
}

// Cache is a byte-oriented key-value store with LRU semantics, used to hold
// upstream API response bodies keyed by request URL. Implementations may be
// in-memory or backed by Redis/Valkey.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true on a hit.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, overwriting any existing entry.
	Set(key string, value []byte)

	// Len returns the number of entries currently in the cache. For external
	// backends this may reflect the total key count in the configured database.
	Len() int

	// Close releases any resources held by the cache (e.g., network connections).
	// For in-memory caches, this is a no-op.
	Close() error
}
