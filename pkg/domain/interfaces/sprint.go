package interfaces

import (
	"context"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type SprintRepository interface {
	// BatchPut upserts sprints, replacing the project's previous
	// snapshot in one call
	BatchPut(ctx context.Context, projectName string, sprints []*model.Sprint) error

	// List retrieves all sprints
	List(ctx context.Context) ([]*model.Sprint, error)

	// ListByProject retrieves the sprints of one project
	ListByProject(ctx context.Context, projectName string) ([]*model.Sprint, error)
}
