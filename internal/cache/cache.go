// Package cache stores rendered page responses for a short time.
package cache

import (
	"context"
	"time"
)

// Entry is a stored response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseCache keeps entries until their TTL runs out or Clear is called.
// Writes to the underlying data never invalidate an entry.
type ResponseCache interface {
	// Get returns the entry for key; ok is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (entry *Entry, ok bool, err error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Clear(ctx context.Context) error
}
