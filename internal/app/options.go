package service

import (
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/okian/portalrank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of transfer workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the transfer queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many transfer IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithCacheSize bounds the team summary memo.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithParallelism bounds concurrent team recomputes during a standings rebuild.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithCurve sets the value curve. Invalid curves are ignored.
func WithCurve(c valuation.Curve) Option {
	return func(s *Service) {
		if c.Validate() == nil {
			s.curve = c
		}
	}
}

// WithLeague seeds the league on first start.
func WithLeague(teams []model.Team) Option {
	return func(s *Service) {
		s.seed = teams
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
