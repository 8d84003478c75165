// Package kv defines the durable key-value substrate backing local
// interaction state. The store is injectable so tests run against an
// in-memory map while production uses bbolt.
package kv

// Store is a flat string key-value store. Implementations must be safe for
// concurrent use; an individual Set must be atomic.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set writes a value, overwriting any previous one.
	Set(key, value string) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases underlying resources.
	Close() error
}
