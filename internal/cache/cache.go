package cache

import "time"

// Cache is a minimal key-value cache with per-entry TTL. Used to hold
// short-lived login challenges between the OTP-request and verify steps.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// Take returns and removes the value in one step, making entries
	// single-use.
	Take(key K) (V, bool)

	// Delete removes a key if present.
	Delete(key K)

	// Len returns the number of non-expired items currently stored.
	Len() int

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}
