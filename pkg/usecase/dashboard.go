package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/metrics"
	"github.com/optics-lab/optics/pkg/service/selection"
	"github.com/optics-lab/optics/pkg/service/tree"
)

// Dashboard is the full metrics bundle for one view of the data.
type Dashboard struct {
	Summary           metrics.Summary
	StateDistribution []metrics.DistributionEntry
	TypeDistribution  []metrics.DistributionEntry
	Velocity          metrics.VelocityResult
	Burndown          []metrics.BurndownPoint
	Workload          []metrics.MemberWorkload
	Trends            metrics.SprintTrends
	Raid              RaidBoard
	LastSync          time.Time
}

// RaidBoard is the watch-list chart set of the dashboard.
type RaidBoard struct {
	Summary      metrics.RaidSummary
	AgeBuckets   []metrics.AgeBucket
	Trend        []metrics.TrendWeek
	TypeDist     []metrics.DistributionEntry
	PriorityDist []metrics.DistributionEntry
}

// BuildDashboard loads the stored snapshot for the view's scope and
// reduces it through the aggregation engine.
func (uc *UseCases) BuildDashboard(ctx context.Context, view ViewState) (*Dashboard, error) {
	items, sprints, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	d := &Dashboard{
		Summary:           metrics.Summarize(items),
		StateDistribution: metrics.StateDistribution(items),
		TypeDistribution:  metrics.TypeDistribution(items),
		Velocity:          metrics.Velocity(items, sprints, uc.velocitySprints),
		Burndown:          metrics.Burndown(items, currentSprint(sprints), now),
		Workload:          metrics.TeamWorkload(items),
		Trends:            metrics.ComputeSprintTrends(items, sprints),
	}
	d.Raid = buildRaidBoard(items, now)

	lastSync, err := uc.repo.GetLastSync(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sync timestamp")
	}
	d.LastSync = lastSync

	return d, nil
}

// BuildVelocity computes only the velocity series for the view.
func (uc *UseCases) BuildVelocity(ctx context.Context, view ViewState) (*metrics.VelocityResult, error) {
	items, sprints, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}
	v := metrics.Velocity(items, sprints, uc.velocitySprints)
	return &v, nil
}

// BuildBurndown computes only the current-sprint burndown for the view.
func (uc *UseCases) BuildBurndown(ctx context.Context, view ViewState) ([]metrics.BurndownPoint, error) {
	items, sprints, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}
	return metrics.Burndown(items, currentSprint(sprints), uc.now()), nil
}

// BuildRaid computes only the watch-list charts for the view.
func (uc *UseCases) BuildRaid(ctx context.Context, view ViewState) (*RaidBoard, error) {
	items, _, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}
	board := buildRaidBoard(items, uc.now())
	return &board, nil
}

func buildRaidBoard(items []*model.WorkItem, now time.Time) RaidBoard {
	return RaidBoard{
		Summary:      metrics.SummarizeRaid(items, now),
		AgeBuckets:   metrics.RaidAgeBuckets(items, now),
		Trend:        metrics.RaidTrend(items, now),
		TypeDist:     metrics.RaidTypeDistribution(items),
		PriorityDist: metrics.RaidPriorityDistribution(items),
	}
}

// loadView loads and filters the work items and sprints visible under
// the view's selection and filters.
func (uc *UseCases) loadView(ctx context.Context, view ViewState) ([]*model.WorkItem, []*model.Sprint, error) {
	resolved := selection.Resolve(view.Selection)

	var items []*model.WorkItem
	var sprints []*model.Sprint
	if len(resolved.ProjectNames) == 0 {
		all, err := uc.repo.WorkItem().List(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to load work items")
		}
		items = all

		allSprints, err := uc.repo.Sprint().List(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to load sprints")
		}
		sprints = allSprints
	} else {
		for _, name := range resolved.ProjectNames {
			projectItems, err := uc.repo.WorkItem().ListByProject(ctx, name)
			if err != nil {
				return nil, nil, goerr.Wrap(err, "failed to load work items", goerr.V("project", name))
			}
			items = append(items, projectItems...)

			projectSprints, err := uc.repo.Sprint().ListByProject(ctx, name)
			if err != nil {
				return nil, nil, goerr.Wrap(err, "failed to load sprints", goerr.V("project", name))
			}
			sprints = append(sprints, projectSprints...)
		}
	}

	items = selection.Filter(items, resolved)
	if view.TopLevel != "" {
		items = tree.FilterByTopLevel(items, view.TopLevel)
	}
	items = filterStates(items, view.StateFilter)
	items = filterTypes(items, view.TypeFilter)

	return items, sprints, nil
}

// currentSprint picks the sprint the burndown chart renders: the
// current time frame, preferring one with both dates set.
func currentSprint(sprints []*model.Sprint) *model.Sprint {
	var fallback *model.Sprint
	for _, s := range sprints {
		if s.TimeFrame != types.TimeFrameCurrent {
			continue
		}
		if s.StartDate != nil && s.FinishDate != nil {
			return s
		}
		if fallback == nil {
			fallback = s
		}
	}
	return fallback
}

func filterStates(items []*model.WorkItem, states []types.WorkItemState) []*model.WorkItem {
	if len(states) == 0 {
		return items
	}
	keep := make(map[types.WorkItemState]bool, len(states))
	for _, s := range states {
		keep[s] = true
	}
	var result []*model.WorkItem
	for _, w := range items {
		if keep[w.State] {
			result = append(result, w)
		}
	}
	return result
}

func filterTypes(items []*model.WorkItem, typs []types.WorkItemType) []*model.WorkItem {
	if len(typs) == 0 {
		return items
	}
	keep := make(map[types.WorkItemType]bool, len(typs))
	for _, t := range typs {
		keep[t] = true
	}
	var result []*model.WorkItem
	for _, w := range items {
		if keep[w.Type] {
			result = append(result, w)
		}
	}
	return result
}
