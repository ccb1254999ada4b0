package worker

import (
	"context"
	"time"

	"github.com/optics-lab/optics/pkg/utils/logging"
)

// SyncFunc runs one snapshot refresh for the given project names. An
// empty list means every non-archived project.
type SyncFunc func(ctx context.Context, names []string) error

// SyncRefreshWorker periodically pulls fresh snapshots from the
// tracker so dashboards read recent data without blocking on upstream.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type SyncRefreshWorker struct {
	sync     SyncFunc
	projects []string
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSyncRefreshWorker creates a worker refreshing the given projects
// on the interval.
func NewSyncRefreshWorker(sync SyncFunc, projects []string, interval time.Duration) *SyncRefreshWorker {
	return &SyncRefreshWorker{
		sync:     sync,
		projects: projects,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial sync and the
// periodic refreshes run in a goroutine, so server startup never
// blocks on the tracker.
func (w *SyncRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("sync refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion.
func (w *SyncRefreshWorker) Stop() {
	logging.Default().Info("sync refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("sync refresh worker stopped")
}

func (w *SyncRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.sync(ctx, w.projects); err != nil {
		logging.Default().Error("initial sync failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.sync(ctx, w.projects); err != nil {
				// Log error but continue worker
				logging.Default().Error("sync failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("sync refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("sync refresh worker context cancelled")
			return
		}
	}
}
