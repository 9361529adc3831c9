package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/mrezvani/vocaflash/internal/jobs"
	"github.com/mrezvani/vocaflash/internal/store"
)

// StatsRefreshJob recomputes one collection's aggregate statistics and
// writes them to the cache table.
type StatsRefreshJob struct {
	Stats        store.StatsStore
	CollectionID string
}

func (j *StatsRefreshJob) Name() string { return "stats_refresh" }

func (j *StatsRefreshJob) Run(ctx context.Context) error {
	return j.Stats.RefreshCollectionStats(ctx, j.CollectionID, time.Now().UnixMilli())
}

// StatsQueue implements jobs.Queue on top of a Pool. Stats refreshes are
// best effort; a full queue drops the refresh rather than blocking the
// review path.
type StatsQueue struct {
	pool  *Pool
	stats store.StatsStore
}

// NewStatsQueue creates a queue that schedules stats refresh jobs.
func NewStatsQueue(pool *Pool, stats store.StatsStore) *StatsQueue {
	return &StatsQueue{pool: pool, stats: stats}
}

var _ jobs.Queue = (*StatsQueue)(nil)

func (q *StatsQueue) EnqueueStatsRefresh(collectionID string) error {
	job := &StatsRefreshJob{Stats: q.stats, CollectionID: collectionID}
	if !q.pool.TrySubmit(job) {
		return fmt.Errorf("stats refresh queue full, dropping refresh for %s", collectionID)
	}
	return nil
}
