package tree_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/tree"
)

var now = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func TestStartDate(t *testing.T) {
	t.Run("activated date wins", func(t *testing.T) {
		w := item(1, nil, types.WorkItemTypeUserStory)
		w.ActivatedDate = ptr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
		gt.Value(t, tree.StartDate(w)).Equal(*w.ActivatedDate)
	})

	t.Run("falls back to created date", func(t *testing.T) {
		w := item(2, nil, types.WorkItemTypeUserStory)
		gt.Value(t, tree.StartDate(w)).Equal(w.CreatedDate)
	})
}

func TestEndDate(t *testing.T) {
	t.Run("closed beats target", func(t *testing.T) {
		w := item(1, nil, types.WorkItemTypeUserStory)
		w.ClosedDate = ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		w.TargetDate = ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		gt.Value(t, tree.EndDate(w, nil, now)).Equal(*w.ClosedDate)
	})

	t.Run("inherits target date from ancestor", func(t *testing.T) {
		grandparent := item(1, nil, types.WorkItemTypeEpic)
		grandparent.TargetDate = ptr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
		parent := item(2, ptr(1), types.WorkItemTypeFeature)
		child := item(3, ptr(2), types.WorkItemTypeUserStory)

		lookup := model.IndexByID([]*model.WorkItem{grandparent, parent, child})
		gt.Value(t, tree.EndDate(child, lookup, now)).Equal(*grandparent.TargetDate)
	})

	t.Run("undated root with no ancestors defaults to now", func(t *testing.T) {
		// spec scenario: Feature with no dates and no parent
		w := item(1, nil, types.WorkItemTypeFeature)
		gt.Value(t, tree.EndDate(w, model.IndexByID([]*model.WorkItem{w}), now)).Equal(now)
	})

	t.Run("parent cycle terminates", func(t *testing.T) {
		a := item(1, ptr(2), types.WorkItemTypeFeature)
		b := item(2, ptr(1), types.WorkItemTypeFeature)
		lookup := model.IndexByID([]*model.WorkItem{a, b})

		gt.Value(t, tree.EndDate(a, lookup, now)).Equal(now)
	})

	t.Run("dangling parent stops the walk", func(t *testing.T) {
		w := item(1, ptr(404), types.WorkItemTypeTask)
		lookup := model.IndexByID([]*model.WorkItem{w})
		gt.Value(t, tree.EndDate(w, lookup, now)).Equal(now)
	})
}

func TestDateRange(t *testing.T) {
	t.Run("covers all descendants", func(t *testing.T) {
		root := item(1, nil, types.WorkItemTypeEpic)
		root.ActivatedDate = ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		root.ClosedDate = ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		child := item(2, ptr(1), types.WorkItemTypeUserStory)
		child.ActivatedDate = ptr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		child.ClosedDate = ptr(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC))

		items := []*model.WorkItem{root, child}
		nodes := tree.Build(items)
		start, end, ok := tree.DateRange(nodes, model.IndexByID(items), now)

		gt.B(t, ok).True()
		gt.Value(t, start).Equal(*child.ActivatedDate)
		gt.Value(t, end).Equal(*child.ClosedDate)
	})

	t.Run("empty forest has no range", func(t *testing.T) {
		_, _, ok := tree.DateRange(nil, nil, now)
		gt.B(t, ok).False()
	})
}
