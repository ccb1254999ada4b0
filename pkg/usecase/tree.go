package usecase

import (
	"context"
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/service/tree"
)

// TreeView is one rendered page of the hierarchy table.
type TreeView struct {
	Rows           []tree.Row
	TotalRows      int
	ExpandableKeys []string
	Page           int
	PageSize       int
}

// TimelineView is the hierarchy with an inferred schedule window for
// Gantt-style display.
type TimelineView struct {
	Rows           []tree.Row
	ExpandableKeys []string
	RangeStart     time.Time
	RangeEnd       time.Time
	HasRange       bool
}

// BuildTree loads the view's items, builds the area-grouped forest
// sorted by the view's table sort, and returns the requested page of
// flattened rows.
func (uc *UseCases) BuildTree(ctx context.Context, view ViewState) (*TreeView, error) {
	items, _, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}

	groups := buildGroups(items, tree.ByColumn(view.SortColumn, view.SortDir))
	rows := tree.Flatten(groups, view.Expanded)

	return &TreeView{
		Rows:           tree.Page(rows, view.Page, view.pageSize()),
		TotalRows:      len(rows),
		ExpandableKeys: tree.ExpandableKeys(groups),
		Page:           view.Page,
		PageSize:       view.pageSize(),
	}, nil
}

// BuildTimeline is BuildTree with start-date ordering, no pagination,
// and the overall date range of the visible nodes.
func (uc *UseCases) BuildTimeline(ctx context.Context, view ViewState) (*TimelineView, error) {
	items, _, err := uc.loadView(ctx, view)
	if err != nil {
		return nil, err
	}

	groups := buildGroups(items, tree.ByStartDate())

	lookup := make(map[int]*model.WorkItem, len(items))
	for _, item := range items {
		lookup[item.ID] = item
	}
	now := uc.now()

	result := &TimelineView{
		Rows:           tree.Flatten(groups, view.Expanded),
		ExpandableKeys: tree.ExpandableKeys(groups),
	}
	for _, group := range groups {
		start, end, ok := tree.DateRange(group.Roots, lookup, now)
		if !ok {
			continue
		}
		if !result.HasRange {
			result.RangeStart, result.RangeEnd, result.HasRange = start, end, true
			continue
		}
		if start.Before(result.RangeStart) {
			result.RangeStart = start
		}
		if end.After(result.RangeEnd) {
			result.RangeEnd = end
		}
	}

	return result, nil
}

func buildGroups(items []*model.WorkItem, tiebreak tree.LessFunc) []tree.AreaGroup {
	roots := tree.Build(items)
	groups := tree.GroupByArea(roots)
	tree.SortGroups(groups, tiebreak)
	return groups
}
