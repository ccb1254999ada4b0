package metrics

import (
	"sort"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// MemberWorkload is one assignee's share of User Story work within the
// current view. Velocity is the member's completed story points within
// the same view, not an average over a trailing window.
type MemberWorkload struct {
	Name             string
	ImageURL         string
	Stories          int
	CompletedStories int
	StoryPoints      float64
	Velocity         float64
}

// TeamWorkload aggregates assigned User Story items per member, sorted
// by total story points descending. Unassigned stories are skipped.
func TeamWorkload(items []*model.WorkItem) []MemberWorkload {
	byName := make(map[string]*MemberWorkload)
	var order []string

	for _, w := range items {
		if w.Type != types.WorkItemTypeUserStory || w.Assignee == nil {
			continue
		}

		name := w.Assignee.DisplayName
		member, ok := byName[name]
		if !ok {
			member = &MemberWorkload{Name: name, ImageURL: w.Assignee.ImageURL}
			byName[name] = member
			order = append(order, name)
		}

		member.Stories++
		member.StoryPoints += w.Points()
		if w.State.IsCompleted() {
			member.CompletedStories++
			member.Velocity += w.Points()
		}
	}

	result := make([]MemberWorkload, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StoryPoints > result[j].StoryPoints
	})
	return result
}
