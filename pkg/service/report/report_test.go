package report_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/report"
)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(id int, typ types.WorkItemType, state types.WorkItemState, points float64) *model.WorkItem {
	return &model.WorkItem{
		ID:          id,
		ProjectName: "Nexus",
		Title:       "item",
		Type:        typ,
		State:       state,
		StoryPoints: &points,
		CreatedDate: date(2024, 1, 1),
		ChangedDate: date(2024, 1, id),
	}
}

func TestSynthesize(t *testing.T) {
	t.Run("progress over user stories only", func(t *testing.T) {
		items := []*model.WorkItem{
			item(1, types.WorkItemTypeUserStory, types.WorkItemStateClosed, 6),
			item(2, types.WorkItemTypeUserStory, types.WorkItemStateActive, 2),
			item(3, types.WorkItemTypeTask, types.WorkItemStateClosed, 100),
		}

		r := report.Synthesize("Nexus", items, nil, nil)

		gt.Number(t, r.ProgressPercent).Equal(75)
		gt.Value(t, r.OverallStatus).Equal(types.HealthStatusGreen)
		gt.Number(t, r.TotalStoryPoints).Equal(108)
	})

	t.Run("status tiers", func(t *testing.T) {
		mid := []*model.WorkItem{
			item(1, types.WorkItemTypeUserStory, types.WorkItemStateClosed, 1),
			item(2, types.WorkItemTypeUserStory, types.WorkItemStateActive, 1),
		}
		r := report.Synthesize("Nexus", mid, nil, nil)
		gt.Value(t, r.OverallStatus).Equal(types.HealthStatusYellow)

		low := []*model.WorkItem{item(1, types.WorkItemTypeUserStory, types.WorkItemStateActive, 1)}
		gt.Value(t, report.Synthesize("Nexus", low, nil, nil).OverallStatus).Equal(types.HealthStatusRed)
	})

	t.Run("missing wiki leaves manager fields empty", func(t *testing.T) {
		r := report.Synthesize("Nexus", nil, nil, nil)
		gt.Value(t, r.ProgramManager).Equal("")
		gt.Value(t, r.ProjectManager).Equal("")
		gt.Value(t, r.WikiFields).NotNil()
	})

	t.Run("end date prefers item targets over sprint finish", func(t *testing.T) {
		withTarget := item(1, types.WorkItemTypeFeature, types.WorkItemStateActive, 0)
		withTarget.TargetDate = ptr(date(2024, 9, 1))
		later := item(2, types.WorkItemTypeFeature, types.WorkItemStateActive, 0)
		later.TargetDate = ptr(date(2024, 11, 15))

		sprints := []*model.Sprint{{
			Name:        "Sprint 4",
			Path:        "S4",
			ProjectName: "Nexus",
			FinishDate:  ptr(date(2024, 7, 1)),
		}}

		r := report.Synthesize("Nexus", []*model.WorkItem{withTarget, later}, sprints, nil)
		gt.Value(t, *r.EndDate).Equal(date(2024, 11, 15))
	})

	t.Run("end date falls back to latest sprint finish", func(t *testing.T) {
		sprints := []*model.Sprint{
			{Name: "Sprint 1", Path: "S1", ProjectName: "Nexus", FinishDate: ptr(date(2024, 5, 1))},
			{Name: "Sprint 2", Path: "S2", ProjectName: "Nexus", FinishDate: ptr(date(2024, 6, 1))},
			{Name: "Other", Path: "O1", ProjectName: "Other", FinishDate: ptr(date(2025, 1, 1))},
		}

		r := report.Synthesize("Nexus", []*model.WorkItem{item(1, types.WorkItemTypeTask, types.WorkItemStateActive, 0)}, sprints, nil)
		gt.Value(t, *r.EndDate).Equal(date(2024, 6, 1))
	})

	t.Run("milestones are active features, undated last", func(t *testing.T) {
		dated := item(1, types.WorkItemTypeFeature, types.WorkItemStateActive, 0)
		dated.TargetDate = ptr(date(2024, 8, 1))
		earlier := item(2, types.WorkItemTypeFeature, types.WorkItemStateActive, 0)
		earlier.TargetDate = ptr(date(2024, 7, 1))
		undated := item(3, types.WorkItemTypeFeature, types.WorkItemStateActive, 0)
		closed := item(4, types.WorkItemTypeFeature, types.WorkItemStateClosed, 0)

		r := report.Synthesize("Nexus", []*model.WorkItem{dated, undated, earlier, closed}, nil, nil)

		gt.Array(t, r.Milestones).Length(3)
		gt.Number(t, r.Milestones[0].ID).Equal(2)
		gt.Number(t, r.Milestones[1].ID).Equal(1)
		gt.Number(t, r.Milestones[2].ID).Equal(3)
	})

	t.Run("watch list excludes closed and removed", func(t *testing.T) {
		open := item(1, types.WorkItemTypeIssue, types.WorkItemStateActive, 0)
		open.Assignee = &model.Assignee{DisplayName: "Chen"}
		resolved := item(2, types.WorkItemTypeRisk, types.WorkItemStateResolved, 0)
		closed := item(3, types.WorkItemTypeIssue, types.WorkItemStateClosed, 0)
		removed := item(4, types.WorkItemTypeRisk, types.WorkItemStateRemoved, 0)

		r := report.Synthesize("Nexus", []*model.WorkItem{open, resolved, closed, removed}, nil, nil)

		gt.Array(t, r.WatchList).Length(2)
		gt.Value(t, r.WatchList[0].Owner).Equal("Chen")
		gt.Value(t, r.WatchList[1].Owner).Equal("Unassigned")
	})

	t.Run("wiki fields merge verbatim even with no items", func(t *testing.T) {
		wiki := &model.WikiReport{
			Fields:          map[string]string{"Program Manager": "Rivera"},
			Accomplishments: "shipped it",
		}

		r := report.Synthesize("Nexus", nil, nil, wiki)

		gt.Value(t, r.ProgramManager).Equal("Rivera")
		gt.Value(t, r.Accomplishments).Equal("shipped it")
		gt.Number(t, r.ProgressPercent).Equal(0)
		gt.Value(t, r.OverallStatus).Equal(types.HealthStatusRed)
		gt.Value(t, r.EndDate).Nil()
	})

	t.Run("last modified is the max changed date", func(t *testing.T) {
		items := []*model.WorkItem{
			item(3, types.WorkItemTypeTask, types.WorkItemStateActive, 0),
			item(9, types.WorkItemTypeTask, types.WorkItemStateActive, 0),
			item(5, types.WorkItemTypeTask, types.WorkItemStateActive, 0),
		}

		r := report.Synthesize("Nexus", items, nil, nil)
		gt.Value(t, *r.LastModified).Equal(date(2024, 1, 9))
	})
}
