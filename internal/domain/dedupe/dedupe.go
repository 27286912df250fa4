// Package dedupe defines the interface for idempotency tracking.
package dedupe

import (
	"context"

	"github.com/okian/portalrank/internal/domain/memo"
)

// Deduper records seen transfer IDs to ensure at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an ID from the seen list, allowing it to be retried.
	// Only used when a transfer was marked seen but could not be queued.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps the most recent IDs in a bounded memo cache.
type inMemoryDeduper struct {
	seen *memo.Cache[string, struct{}]
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	s := settings{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&s)
	}
	return &inMemoryDeduper{
		seen: memo.New[string, struct{}](memo.WithMaxSize(s.maxSize)),
	}
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, id string) bool {
	return d.seen.PutIfAbsent(ctx, id, struct{}{})
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, id string) {
	d.seen.Delete(ctx, id)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.seen.Len()
}
