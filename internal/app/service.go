// Package service wires the league store, transfer ingestion and standings
// computation behind the operations the HTTP API needs.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/okian/portalrank/internal/adapters/mq/queue"
	"github.com/okian/portalrank/internal/adapters/mq/worker"
	"github.com/okian/portalrank/internal/adapters/repository"
	"github.com/okian/portalrank/internal/domain/dedupe"
	"github.com/okian/portalrank/internal/domain/memo"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/team"
	"github.com/okian/portalrank/internal/domain/types"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/okian/portalrank/internal/roster"
	"github.com/okian/portalrank/pkg/logger"
	"github.com/okian/portalrank/pkg/metrics"
	"github.com/shopspring/decimal"
)

const (
	stopTimeout          = 10 * time.Second
	systemSampleInterval = 10 * time.Second
)

// snapshot is the ranked league at one store version.
type snapshot struct {
	version     uint64
	standings   []team.Standing
	index       map[string]int
	conferences []team.ConferenceTotal
}

// Service implements the API dependencies for the transfer rankings.
type Service struct {
	mu sync.RWMutex

	league   *repository.League
	valuator *valuation.Valuator
	deduper  dedupe.Deduper
	memo     *memo.Cache[uint64, team.Summary]
	queue    *queue.InMemoryQueue
	pool     *worker.Pool

	snap      atomic.Pointer[snapshot]
	rebuildMu sync.Mutex

	workerCount int
	queueSize   int
	dedupeSize  int
	cacheSize   int
	parallelism int
	curve       valuation.Curve
	seed        []model.Team

	started bool
	cancel  context.CancelFunc
	stopCh  chan struct{}

	logger logger.Logger
}

// New constructs a Service. Reads work immediately; ingestion needs Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   10_000,
		dedupeSize:  500_000,
		cacheSize:   4_096,
		parallelism: runtime.NumCPU(),
		curve:       valuation.DefaultCurve(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.league = repository.NewLeague()
	s.valuator = valuation.New(valuation.WithCurve(s.curve))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.memo = memo.New[uint64, team.Summary](memo.WithMaxSize(s.cacheSize))
	return s
}

// Start seeds the league on first start and launches the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if s.seed != nil && s.league.Version() == 0 {
		if _, err := s.summarize(ctx, s.seed); err != nil {
			return fmt.Errorf("seed league: %w", err)
		}
		if err := s.league.Seed(ctx, s.seed); err != nil {
			return fmt.Errorf("seed league: %w", err)
		}
		s.logger.Info(ctx, "league seeded", logger.Int("teams", s.league.Count(ctx)))
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.stopCh = make(chan struct{})

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.valuator, s.league)
	s.pool.Start(runCtx)
	go s.sampleSystem(runCtx, s.stopCh)

	s.started = true
	s.logger.Info(ctx, "portal rankings service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

// Stop drains queued transfers and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping portal rankings service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown failed", logger.Error(err))
	}
	close(s.stopCh)
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "portal rankings service stopped",
		logger.Int64("processed", s.pool.Counters().Processed()),
		logger.Int64("failed", s.pool.Counters().Failed()),
	)
}

// SeenAndRecord atomically checks if a transfer id was seen and records it if not.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordTransferDuplicate()
	}
	return seen
}

// Unrecord forgets a transfer id so it can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of remembered transfer ids.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// Enqueue submits a transfer for asynchronous valuation and application.
func (s *Service) Enqueue(ctx context.Context, t model.Transfer) error {
	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()

	if !started {
		return ErrNotStarted
	}
	if err := q.Enqueue(ctx, t); err != nil {
		return err
	}
	metrics.RecordTransferAccepted()
	return nil
}

// Standings returns every team ranked by net transfer score.
func (s *Service) Standings(ctx context.Context) ([]team.Standing, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return append([]team.Standing(nil), snap.standings...), nil
}

// TopN returns the n best-ranked teams.
func (s *Service) TopN(ctx context.Context, n int) ([]team.Standing, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", repository.ErrInvalidLimit, n)
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	n = min(n, len(snap.standings))
	return append([]team.Standing(nil), snap.standings[:n]...), nil
}

// Rank returns the standing of one team.
func (s *Service) Rank(ctx context.Context, name string) (team.Standing, error) {
	if _, err := s.league.Team(ctx, name); err != nil {
		return team.Standing{}, err
	}
	snap, err := s.current(ctx)
	if err != nil {
		return team.Standing{}, err
	}
	i, ok := snap.index[name]
	if !ok {
		return team.Standing{}, fmt.Errorf("%w: %q", repository.ErrNotFound, name)
	}
	return snap.standings[i], nil
}

// TeamDetail returns a team's standing with every valued player.
func (s *Service) TeamDetail(ctx context.Context, name string) (types.TeamDetail, error) {
	tm, err := s.league.Team(ctx, name)
	if err != nil {
		return types.TeamDetail{}, err
	}
	standing, err := s.Rank(ctx, tm.Name)
	if err != nil {
		return types.TeamDetail{}, err
	}

	in, err := team.ValuePlayers(s.valuator, tm.Inflows)
	if err != nil {
		return types.TeamDetail{}, fmt.Errorf("team %q inflows: %w", tm.Name, err)
	}
	out, err := team.ValuePlayers(s.valuator, tm.Outflows)
	if err != nil {
		return types.TeamDetail{}, fmt.Errorf("team %q outflows: %w", tm.Name, err)
	}

	return types.TeamDetail{
		Standing: team.Standing{Rank: standing.Rank, Summary: team.Summarize(tm.Name, tm.Conference, in, out)},
		Incoming: in,
		Outgoing: out,
	}, nil
}

// Conferences returns per-conference totals.
func (s *Service) Conferences(ctx context.Context) ([]team.ConferenceTotal, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return append([]team.ConferenceTotal(nil), snap.conferences...), nil
}

// Summary returns headline figures across the league.
func (s *Service) Summary(ctx context.Context) (types.LeagueSummary, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return types.LeagueSummary{}, err
	}

	out := types.LeagueSummary{TeamsTracked: len(snap.standings)}
	spent := decimal.Zero
	scores := make(stats.Float64Data, 0, len(snap.standings))
	for _, st := range snap.standings {
		out.TotalInflows += st.InflowCount
		out.TotalOutflows += st.OutflowCount
		spent = spent.Add(decimal.NewFromFloat(st.NILSpent))
		scores = append(scores, st.TotalScore)
	}
	out.TotalTransfers = out.TotalInflows + out.TotalOutflows
	out.TotalNILSpent = spent.Round(2).InexactFloat64()

	if len(scores) == 0 {
		return out, nil
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return types.LeagueSummary{}, fmt.Errorf("average score: %w", err)
	}
	median, err := stats.Median(scores)
	if err != nil {
		return types.LeagueSummary{}, fmt.Errorf("median score: %w", err)
	}
	out.AvgScore = valuation.Round2(mean)
	out.MedianScore = valuation.Round2(median)
	return out, nil
}

// ValuePlayer values a single player outside the league.
func (s *Service) ValuePlayer(_ context.Context, p model.Player) (valuation.Result, error) {
	start := time.Now()
	res, err := s.valuator.Value(p)
	if err != nil {
		metrics.RecordValuationError("api")
		return valuation.Result{}, err
	}
	metrics.RecordPlayerValued(float64(time.Since(start).Microseconds()) / 1000)
	return res, nil
}

// Methodology describes the valuation model in use.
func (s *Service) Methodology() valuation.Methodology {
	return s.valuator.Methodology()
}

// ExportCSV writes every transfer in the league, with values and scores, to w.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	return roster.Write(w, s.league.Teams(ctx), s.valuator)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	hits, misses := s.memo.Stats()
	out := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"cacheSize":     s.cacheSize,
		"teams":         s.league.Count(ctx),
		"leagueVersion": s.league.Version(),
		"dedupeEntries": s.deduper.Size(),
		"memoEntries":   s.memo.Len(),
		"memoHits":      hits,
		"memoMisses":    misses,
	}
	if s.pool != nil {
		out["transfersProcessed"] = s.pool.Counters().Processed()
		out["transfersFailed"] = s.pool.Counters().Failed()
	}
	if s.started {
		out["queueLength"] = s.queue.Len(ctx)
	}
	return out
}

// current returns the snapshot for the latest league version, rebuilding it
// when the league has changed. Concurrent callers share one rebuild.
func (s *Service) current(ctx context.Context) (*snapshot, error) {
	if snap := s.snap.Load(); snap != nil && snap.version == s.league.Version() {
		return snap, nil
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	version := s.league.Version()
	if snap := s.snap.Load(); snap != nil && snap.version == version {
		return snap, nil
	}

	start := time.Now()
	summaries, err := s.summarize(ctx, s.league.Teams(ctx))
	if err != nil {
		return nil, err
	}

	standings := team.Rank(summaries)
	index := make(map[string]int, len(standings))
	for i, st := range standings {
		index[st.Team] = i
	}
	snap := &snapshot{
		version:     version,
		standings:   standings,
		index:       index,
		conferences: team.ByConference(summaries),
	}
	s.snap.Store(snap)

	metrics.RecordStandingsRebuild(float64(time.Since(start).Microseconds()) / 1000)
	return snap, nil
}

// summarize aggregates teams concurrently, at most s.parallelism at a time.
// Unchanged rosters are served from the memo.
func (s *Service) summarize(ctx context.Context, teams []model.Team) ([]team.Summary, error) {
	out := make([]team.Summary, len(teams))
	errs := make([]error, len(teams))
	sem := make(chan struct{}, s.parallelism)

	var wg sync.WaitGroup
	for i := range teams {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i], errs[i] = s.summary(ctx, teams[i])
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) summary(ctx context.Context, tm model.Team) (team.Summary, error) {
	key := team.Fingerprint(tm)
	if sum, ok := s.memo.Get(ctx, key); ok {
		metrics.RecordMemoHit()
		return sum, nil
	}
	metrics.RecordMemoMiss()

	sum, err := team.Aggregate(s.valuator, tm)
	if err != nil {
		return team.Summary{}, err
	}
	s.memo.Put(ctx, key, sum)
	return sum, nil
}

func (s *Service) sampleSystem(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(systemSampleInterval)
	defer ticker.Stop()

	sample := func() {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		metrics.UpdateSystemMemoryUsage(m.HeapAlloc)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}
	sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			sample()
		}
	}
}
