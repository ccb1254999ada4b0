package interfaces

import (
	"context"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type WorkItemRepository interface {
	// BatchPut upserts work items, replacing the project's previous
	// snapshot in one call
	BatchPut(ctx context.Context, projectName string, items []*model.WorkItem) error

	// Get retrieves a work item by ID
	Get(ctx context.Context, id int) (*model.WorkItem, error)

	// List retrieves all work items
	List(ctx context.Context) ([]*model.WorkItem, error)

	// ListByProject retrieves the work items of one project
	ListByProject(ctx context.Context, projectName string) ([]*model.WorkItem, error)
}
