package interfaces

import (
	"context"

	"github.com/optics-lab/optics/pkg/domain/model"
)

type WikiRepository interface {
	// Put stores the parsed wiki report of a project. A nil report
	// clears the stored one
	Put(ctx context.Context, projectName string, report *model.WikiReport) error

	// Get retrieves the parsed wiki report of a project, nil when the
	// project has none
	Get(ctx context.Context, projectName string) (*model.WikiReport, error)
}
