// Package report synthesizes the per-project status report from work
// items, sprints and the parsed wiki page.
package report

import (
	"sort"
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// Milestone is one Active Feature listed in the report.
type Milestone struct {
	ID         int
	Name       string
	State      types.WorkItemState
	TargetDate *time.Time
}

// WatchEntry is an open Issue or Risk on the report's watch list.
type WatchEntry struct {
	ID    int
	Type  types.WorkItemType
	Title string
	Owner string
}

// Report is the synthesized project status view.
type Report struct {
	ProjectName      string
	ProgressPercent  int
	OverallStatus    types.HealthStatus
	EndDate          *time.Time
	LastModified     *time.Time
	TotalStoryPoints float64
	Milestones       []Milestone
	WatchList        []WatchEntry

	ProgramManager  string
	ProjectManager  string
	Accomplishments string
	LookAhead       string
	Description     string
	WikiFields      map[string]string
}

// Synthesize builds the report for one project. Progress is completed
// over total story points among User Story items; the status tier
// follows from the percentage. The end date is the latest target date
// across all project items, falling back to the latest sprint finish.
// Wiki free text is merged in verbatim.
func Synthesize(projectName string, allItems []*model.WorkItem, sprints []*model.Sprint, wiki *model.WikiReport) *Report {
	r := &Report{
		ProjectName:   projectName,
		OverallStatus: types.HealthStatusRed,
		WikiFields:    map[string]string{},
		Milestones:    []Milestone{},
		WatchList:     []WatchEntry{},
	}
	if wiki != nil {
		r.ProgramManager = wiki.Field("Program Manager")
		r.ProjectManager = wiki.Field("Project Manager")
		r.Accomplishments = wiki.Accomplishments
		r.LookAhead = wiki.LookAhead
		r.Description = wiki.Description
		if wiki.Fields != nil {
			r.WikiFields = wiki.Fields
		}
	}

	var items []*model.WorkItem
	for _, w := range allItems {
		if w.ProjectName == projectName {
			items = append(items, w)
		}
	}
	if len(items) == 0 {
		return r
	}

	var totalSP, completedSP float64
	for _, w := range items {
		r.TotalStoryPoints += w.Points()
		if w.Type == types.WorkItemTypeUserStory {
			totalSP += w.Points()
			if w.State.IsCompleted() {
				completedSP += w.Points()
			}
		}
	}
	if totalSP > 0 {
		r.ProgressPercent = int(completedSP/totalSP*100 + 0.5)
	}
	r.OverallStatus = types.HealthStatusForProgress(r.ProgressPercent)

	r.EndDate = endDate(items, sprints, projectName)
	r.LastModified = lastModified(items)
	r.Milestones = milestones(items)
	r.WatchList = Watch(items)

	return r
}

// endDate picks the latest target date among the project's items, and
// falls back to the latest finish date of the project's sprints when no
// item carries a target.
func endDate(items []*model.WorkItem, sprints []*model.Sprint, projectName string) *time.Time {
	var latest *time.Time
	for _, w := range items {
		if w.TargetDate == nil {
			continue
		}
		if latest == nil || w.TargetDate.After(*latest) {
			t := *w.TargetDate
			latest = &t
		}
	}
	if latest != nil {
		return latest
	}

	for _, s := range sprints {
		if s.ProjectName != projectName || s.FinishDate == nil {
			continue
		}
		if latest == nil || s.FinishDate.After(*latest) {
			t := *s.FinishDate
			latest = &t
		}
	}
	return latest
}

func lastModified(items []*model.WorkItem) *time.Time {
	var latest *time.Time
	for _, w := range items {
		if latest == nil || w.ChangedDate.After(*latest) {
			t := w.ChangedDate
			latest = &t
		}
	}
	return latest
}

// milestones lists Active Features sorted by target date ascending,
// with undated milestones last.
func milestones(items []*model.WorkItem) []Milestone {
	result := []Milestone{}
	for _, w := range items {
		if w.Type != types.WorkItemTypeFeature || w.State != types.WorkItemStateActive {
			continue
		}
		result = append(result, Milestone{
			ID:         w.ID,
			Name:       w.Title,
			State:      w.State,
			TargetDate: w.TargetDate,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].TargetDate, result[j].TargetDate
		switch {
		case a != nil && b != nil:
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return result
}

// Watch lists Issue and Risk items that are neither Closed nor
// Removed.
func Watch(items []*model.WorkItem) []WatchEntry {
	result := []WatchEntry{}
	for _, w := range items {
		if w.Type != types.WorkItemTypeIssue && w.Type != types.WorkItemTypeRisk {
			continue
		}
		if w.State == types.WorkItemStateClosed || w.State == types.WorkItemStateRemoved {
			continue
		}

		owner := "Unassigned"
		if w.Assignee != nil && w.Assignee.DisplayName != "" {
			owner = w.Assignee.DisplayName
		}
		result = append(result, WatchEntry{
			ID:    w.ID,
			Type:  w.Type,
			Title: w.Title,
			Owner: owner,
		})
	}
	return result
}
