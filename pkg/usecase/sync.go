package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/service/wiki"
	"github.com/optics-lab/optics/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Sync pulls fresh snapshots from the tracker for the named projects,
// or for every non-archived project when names is empty. A project
// whose fetch fails is logged and skipped; the remaining projects still
// land, and the sync timestamp advances as long as the run itself
// completed.
func (uc *UseCases) Sync(ctx context.Context, names []string) error {
	if uc.tracker == nil {
		return goerr.New("no tracker client configured")
	}

	runID := uuid.NewString()
	logger := logging.From(ctx).With("sync_run", runID)
	ctx = logging.With(ctx, logger)

	if len(names) == 0 {
		discovered, err := uc.discoverProjects(ctx)
		if err != nil {
			return err
		}
		names = discovered
	}

	var eg errgroup.Group
	for _, name := range names {
		eg.Go(func() error {
			if err := uc.syncProject(ctx, name); err != nil {
				// Partial data beats no data; keep the other
				// projects going.
				logger.Warn("project sync failed", "project", name, "error", err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "sync fan-out failed")
	}

	if err := uc.repo.PutLastSync(ctx, uc.now()); err != nil {
		return goerr.Wrap(err, "failed to record sync timestamp")
	}

	logger.Info("sync completed", "projects", len(names))
	return nil
}

// discoverProjects lists the tracker's projects, stores them, and
// returns the names of those still active.
func (uc *UseCases) discoverProjects(ctx context.Context) ([]string, error) {
	projects, err := uc.tracker.Projects(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to discover projects")
	}

	var names []string
	for _, p := range projects {
		if err := uc.repo.Project().Put(ctx, p); err != nil {
			return nil, goerr.Wrap(err, "failed to store project", goerr.V("name", p.Name))
		}
		if !p.IsArchived {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

func (uc *UseCases) syncProject(ctx context.Context, name string) error {
	items, err := uc.tracker.ProjectWorkItems(ctx, name)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch work items", goerr.V("project", name))
	}
	if err := uc.repo.WorkItem().BatchPut(ctx, name, items); err != nil {
		return goerr.Wrap(err, "failed to store work items", goerr.V("project", name))
	}

	if err := uc.syncSprints(ctx, name); err != nil {
		// Sprints power the velocity and burndown charts; the item
		// snapshot is still useful without them.
		logging.From(ctx).Warn("sprint sync failed", "project", name, "error", err)
	}

	if err := uc.syncWiki(ctx, name); err != nil {
		logging.From(ctx).Warn("wiki sync failed", "project", name, "error", err)
	}

	logging.From(ctx).Info("project synced", "project", name, "items", len(items))
	return nil
}

// syncSprints fetches the iterations of the project's first team. The
// tracker scopes iterations per team; the first team carries the
// project-level cadence.
func (uc *UseCases) syncSprints(ctx context.Context, name string) error {
	teams, err := uc.tracker.Teams(ctx, name)
	if err != nil {
		return goerr.Wrap(err, "failed to list teams")
	}
	if len(teams) == 0 {
		return nil
	}

	sprints, err := uc.tracker.Iterations(ctx, name, teams[0].Name)
	if err != nil {
		return goerr.Wrap(err, "failed to list iterations", goerr.V("team", teams[0].Name))
	}
	return uc.repo.Sprint().BatchPut(ctx, name, sprints)
}

func (uc *UseCases) syncWiki(ctx context.Context, name string) error {
	content, err := uc.tracker.WikiPage(ctx, name, "")
	if err != nil {
		return goerr.Wrap(err, "failed to fetch wiki page")
	}
	return uc.repo.Wiki().Put(ctx, name, wiki.Parse(content))
}
