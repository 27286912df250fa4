// Package dedupe defines the interface for idempotency tracking.
package dedupe

const defaultMaxSize = 50_000

type settings struct {
	maxSize int
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*settings)

// WithMaxSize sets the maximum number of transfer IDs to remember.
// If maxSize > 0: bounded, the oldest ID is forgotten first.
// If maxSize <= 0: unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}
