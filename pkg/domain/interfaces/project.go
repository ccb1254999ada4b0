package interfaces

import (
	"context"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type ProjectRepository interface {
	// Put upserts a project
	Put(ctx context.Context, project *model.Project) error

	// Get retrieves a project by name
	Get(ctx context.Context, name string) (*model.Project, error)

	// List retrieves all projects
	List(ctx context.Context) ([]*model.Project, error)
}
