// Package worker values queued transfers and applies them to the league.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/okian/portalrank/pkg/logger"
	"github.com/okian/portalrank/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Valuer values a single player.
type Valuer interface {
	Value(p model.Player) (valuation.Result, error)
}

// Applier records a transfer in the league.
type Applier interface {
	Apply(ctx context.Context, t model.Transfer) error
}

// Queue defines how workers receive transfers.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Transfer
}

// Worker processes transfers using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker without draining the queue.
	Shutdown(ctx context.Context) error
}

// Counters tallies processed and failed transfers.
type Counters struct {
	processed atomic.Int64
	failed    atomic.Int64
}

// Processed returns the number of transfers applied.
func (c *Counters) Processed() int64 { return c.processed.Load() }

// Failed returns the number of transfers rejected.
func (c *Counters) Failed() int64 { return c.failed.Load() }

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	valuer   Valuer
	applier  Applier
	name     string
	counters *Counters

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, valuer Valuer, applier Applier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		valuer:   valuer,
		applier:  applier,
		name:     "worker",
		counters: &Counters{},
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.With(logger.String("worker", w.name))
	}
	return w
}

// Counters returns the worker's counters.
func (w *InMemoryWorker) Counters() *Counters { return w.counters }

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	transfers := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case t, ok := <-transfers:
			if !ok {
				return
			}
			if err := w.process(ctx, t); err != nil {
				w.logger.Warn(ctx, "transfer rejected", logger.String("transfer_id", t.TransferID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process values the transfer's player, then applies the transfer. Players
// that cannot be valued never reach the league, so every stored roster can
// be aggregated.
func (w *InMemoryWorker) process(ctx context.Context, t model.Transfer) error { //nolint:gocritic // hugeParam: passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	valueStart := time.Now()
	res, err := w.valuer.Value(t.Player)
	if err != nil {
		w.fail("valuation_error")
		metrics.RecordValuationError("worker")
		return fmt.Errorf("value %q: %w", t.Player.Name, err)
	}
	metrics.RecordPlayerValued(float64(time.Since(valueStart).Microseconds()) / 1000)

	if err := w.applier.Apply(ctx, t); err != nil {
		w.fail("apply_error")
		return fmt.Errorf("apply %s: %w", t.TransferID, err)
	}

	w.counters.processed.Add(1)
	metrics.RecordTransferApplied(string(t.Direction))
	w.logger.Debug(ctx, "transfer applied",
		logger.String("transfer_id", t.TransferID),
		logger.String("team", t.Team),
		logger.String("direction", string(t.Direction)),
		logger.Float64("score", res.Score),
		logger.Float64("value", res.Value),
	)
	return nil
}

func (w *InMemoryWorker) fail(kind string) {
	w.counters.failed.Add(1)
	metrics.RecordTransferRejected()
	metrics.RecordWorkerError()
	metrics.RecordErrorByComponent("worker", kind)
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	counters *Counters

	logger logger.Logger
}

// NewPool creates a new worker pool. A count below one uses one worker per CPU.
func NewPool(workerCount int, q Queue, valuer Valuer, applier Applier) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		counters: &Counters{},
		logger:   logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(q, valuer, applier,
			WithName("worker-"+strconv.Itoa(i)),
			WithCounters(pool.counters),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Counters returns the counters shared by every worker in the pool.
func (p *Pool) Counters() *Counters { return p.counters }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerActiveCount(len(p.workers))
}

// Shutdown closes the queue and lets workers drain what is left. Workers
// still busy when ctx (capped at 30s) is done are stopped without draining.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut int
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			if err := w.Shutdown(context.Background()); err != nil {
				p.logger.Warn(ctx, "worker shutdown failed", logger.Int("worker_id", i), logger.Error(err))
			}
			timedOut++
		}
	}
	metrics.UpdateWorkerActiveCount(0)

	if timedOut > 0 {
		p.logger.Warn(ctx, "workers stopped before draining the queue", logger.Int("workers", timedOut))
	}
	return nil
}
