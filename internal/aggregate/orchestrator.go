package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
)

// DefaultBudget bounds a whole aggregation run. Sources that have not
// finished by the deadline are abandoned and the run returns whatever
// arrived in time.
const DefaultBudget = 15 * time.Second

// Stats describes one aggregation run.
type Stats struct {
	RunID       string         `json:"run_id"`
	PerSource   map[string]int `json:"per_source"`
	Total       int            `json:"total"`
	Duplicates  int            `json:"duplicates"`
	InRegion    int            `json:"in_region"`
	OutOfRegion int            `json:"out_of_region"`
	DurationMS  int64          `json:"duration_ms"`
	CacheHit    bool           `json:"cache_hit"`
}

// Result is the output of one aggregation run. BySource is only populated on
// a live run; cache hits return the merged list alone.
type Result struct {
	BySource map[string][]models.Opportunity `json:"by_source,omitempty"`
	Merged   []models.Opportunity            `json:"opportunities"`
	Stats    Stats                           `json:"stats"`
}

// Orchestrator fans fetches out across all registered adapters, normalizes
// and merges what comes back, and caches the merged list.
type Orchestrator struct {
	adapters []sources.Adapter
	cache    *Cache
	budget   time.Duration
	logger   *zap.Logger
}

func NewOrchestrator(adapters []sources.Adapter, cache *Cache, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	return &Orchestrator{
		adapters: adapters,
		cache:    cache,
		budget:   DefaultBudget,
		logger:   logger,
	}
}

// SetBudget overrides the per-run time budget. Useful in tests.
func (o *Orchestrator) SetBudget(d time.Duration) { o.budget = d }

// Run aggregates opportunities from every adapter. A single failing or hung
// adapter never fails the run; its results are simply absent.
func (o *Orchestrator) Run(ctx context.Context, opts sources.FetchOptions) Result {
	started := time.Now()
	key := CacheKey(opts)

	if cached, ok := o.cache.Get(key); ok {
		o.logger.Debug("aggregation cache hit", zap.String("key", key))
		return Result{
			Merged: cached,
			Stats: Stats{
				RunID:      uuid.New().String(),
				Total:      len(cached),
				DurationMS: time.Since(started).Milliseconds(),
				CacheHit:   true,
			},
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	var mu sync.Mutex
	bySource := make(map[string][]models.Opportunity, len(o.adapters))

	g, gctx := errgroup.WithContext(runCtx)
	for _, adapter := range o.adapters {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					o.logger.Error("adapter panicked",
						zap.String("source", adapter.Name()),
						zap.Any("panic", r))
				}
			}()
			records := adapter.Fetch(gctx, opts)
			mu.Lock()
			bySource[adapter.Name()] = records
			mu.Unlock()
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-runCtx.Done():
		o.logger.Warn("aggregation budget exhausted, abandoning slow sources",
			zap.Duration("budget", o.budget))
	}

	// Snapshot under the lock; abandoned adapters may still be writing.
	mu.Lock()
	perSource := make(map[string]int, len(bySource))
	var raw []models.Opportunity
	snapshot := make(map[string][]models.Opportunity, len(bySource))
	for name, records := range bySource {
		perSource[name] = len(records)
		snapshot[name] = records
		raw = append(raw, records...)
	}
	mu.Unlock()

	normalized := Normalize(raw)
	merged, duplicates := Deduplicate(normalized)

	inRegion := len(Apply(merged, KenyanOnly()))

	o.cache.Set(key, merged)

	o.logger.Info("aggregation run complete",
		zap.Int("sources", len(o.adapters)),
		zap.Int("total", len(merged)),
		zap.Int("duplicates", duplicates),
		zap.Duration("took", time.Since(started)))

	return Result{
		BySource: snapshot,
		Merged:   merged,
		Stats: Stats{
			RunID:       uuid.New().String(),
			PerSource:   perSource,
			Total:       len(merged),
			Duplicates:  duplicates,
			InRegion:    inRegion,
			OutOfRegion: len(merged) - inRegion,
			DurationMS:  time.Since(started).Milliseconds(),
		},
	}
}
