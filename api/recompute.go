/*
recompute.go - Batch recomputation of stored projections

PURPOSE:
  Recomputes every stored projection from its config, concurrently.
  Because the engine is a pure function with no shared state, the only
  coordination needed is around the store writes.

DESIGN:
  - RecomputeAllProjections: one-shot concurrent batch, one worker per
    projection, used by the admin endpoint
  - BatchRecomputer: optional background goroutine that runs the batch
    on a configurable interval, keeping cached results fresh after
    schema or engine changes

CONFIGURATION:
  - Interval: How often to run (default: 1 hour)
  - Enabled: Whether the background loop is active (default: false;
    stored results only go stale when the engine itself changes)

USAGE:
  recomputer := NewBatchRecomputer(store)
  recomputer.Start()
  // ... later
  recomputer.Stop()

SEE ALSO:
  - handlers.go: RecomputeAll endpoint (manual batch)
  - engine/simulate.go: The pure function being fanned out
*/
package api

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warp/projection-engine/engine"
	"github.com/warp/projection-engine/factory"
	"github.com/warp/projection-engine/store/sqlite"
)

// =============================================================================
// ONE-SHOT BATCH
// =============================================================================

// RecomputeAllProjections recomputes every stored projection concurrently
// and reports per-projection failures without aborting the batch.
func RecomputeAllProjections(ctx context.Context, store *sqlite.Store) (RecomputeAllResponse, error) {
	records, err := store.ListProjections(ctx)
	if err != nil {
		return RecomputeAllResponse{}, err
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	result := RecomputeAllResponse{}

	for _, rec := range records {
		wg.Add(1)
		go func(rec sqlite.ProjectionRecord) {
			defer wg.Done()

			err := recomputeOne(ctx, store, rec)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rec.ID, err))
				return
			}
			result.Recomputed++
		}(rec)
	}

	wg.Wait()
	return result, nil
}

func recomputeOne(ctx context.Context, store *sqlite.Store, rec sqlite.ProjectionRecord) error {
	cfg, err := factory.ParseConfig(rec.ConfigJSON)
	if err != nil {
		return err
	}
	projection, err := engine.Simulate(cfg)
	if err != nil {
		return err
	}
	return store.ReplaceResults(ctx, rec.ID, projection)
}

// =============================================================================
// BACKGROUND RECOMPUTER
// =============================================================================

// BatchRecomputer periodically refreshes all cached projection results.
type BatchRecomputer struct {
	Store    *sqlite.Store
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewBatchRecomputer creates a recomputer with default settings.
func NewBatchRecomputer(store *sqlite.Store) *BatchRecomputer {
	return &BatchRecomputer{
		Store:    store,
		Interval: 1 * time.Hour,
		stop:     make(chan struct{}),
	}
}

// Start begins the background loop.
func (br *BatchRecomputer) Start() {
	br.mu.Lock()
	defer br.mu.Unlock()

	if !br.Enabled {
		log.Println("[Recomputer] Disabled, not starting")
		return
	}

	br.ticker = time.NewTicker(br.Interval)
	br.wg.Add(1)
	go br.run()

	log.Printf("[Recomputer] Started with interval: %v", br.Interval)
}

// Stop halts the background loop and waits for an in-flight batch.
func (br *BatchRecomputer) Stop() {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.ticker == nil {
		return
	}
	br.ticker.Stop()
	close(br.stop)
	br.wg.Wait()
	br.ticker = nil

	log.Println("[Recomputer] Stopped")
}

func (br *BatchRecomputer) run() {
	defer br.wg.Done()

	for {
		select {
		case <-br.ticker.C:
			result, err := RecomputeAllProjections(context.Background(), br.Store)
			if err != nil {
				log.Printf("[Recomputer] Batch failed: %v", err)
				continue
			}
			log.Printf("[Recomputer] Recomputed %d projections (%d failed)", result.Recomputed, result.Failed)
		case <-br.stop:
			return
		}
	}
}
