package interfaces

import (
	"context"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// TrackerClient is the upstream work item tracker accessed during sync.
type TrackerClient interface {
	Projects(ctx context.Context) ([]*model.Project, error)
	Teams(ctx context.Context, projectName string) ([]*model.Team, error)
	Iterations(ctx context.Context, projectName, teamName string) ([]*model.Sprint, error)
	ProjectWorkItems(ctx context.Context, projectName string) ([]*model.WorkItem, error)
	WikiPage(ctx context.Context, projectName, areaName string) (string, error)
}
