// Package cache is the cache-aside wrapper used by the services: values
// are JSON-encoded strings under flat keys, reads fail open (any error or
// malformed payload is a miss), and writes invalidate explicitly.
//
// Key conventions used by consumers: "<entity>_<id>" for single-entity
// reads and "all_<entities>" for unparameterized list reads.
package cache

import (
	"context"
	"time"
)

// Store is the key/value contract the services consume.
type Store interface {
	// Set serializes value and stores it under key. A positive ttl expires
	// the entry automatically; zero means it lives until deleted or cleared.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Get deserializes the entry into dest and reports whether a usable
	// value was found. A missing or malformed entry is (false, nil);
	// callers fall back to the repository either way.
	Get(ctx context.Context, key string, dest any) (bool, error)

	Delete(ctx context.Context, keys ...string) error

	// Clear flushes the entire cache namespace. Blunt and unscoped.
	Clear(ctx context.Context) error
}

// EntityKey builds the single-entity key, e.g. "product_<id>".
func EntityKey(entity, id string) string {
	return entity + "_" + id
}

// ListKey builds the list-all key, e.g. "all_products".
func ListKey(entities string) string {
	return "all_" + entities
}
