package interfaces

import (
	"context"
	"time"
)

// Repository defines the interface for data persistence
type Repository interface {
	WorkItem() WorkItemRepository
	Sprint() SprintRepository
	Project() ProjectRepository
	Wiki() WikiRepository

	// Sync bookkeeping
	GetLastSync(ctx context.Context) (time.Time, error)
	PutLastSync(ctx context.Context, at time.Time) error

	Close() error
}
