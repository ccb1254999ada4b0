package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/service/report"
)

// BuildReport synthesizes the status report for one project from
// stored work items, sprints and the parsed wiki page.
func (uc *UseCases) BuildReport(ctx context.Context, projectName string) (*report.Report, error) {
	items, err := uc.repo.WorkItem().ListByProject(ctx, projectName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load work items", goerr.V("project", projectName))
	}
	sprints, err := uc.repo.Sprint().ListByProject(ctx, projectName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load sprints", goerr.V("project", projectName))
	}
	wiki, err := uc.repo.Wiki().Get(ctx, projectName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load wiki report", goerr.V("project", projectName))
	}

	return report.Synthesize(projectName, items, sprints, wiki), nil
}

// Projects lists the stored projects.
func (uc *UseCases) Projects(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load projects")
	}
	return projects, nil
}

// WatchList collects the open Issues and Risks of every selected
// project for the attention panel.
func (uc *UseCases) WatchList(ctx context.Context, view ViewState) ([]report.WatchEntry, error) {
	items, _, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}
	return report.Watch(items), nil
}
