package ado

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

const hierarchyReverseRel = "System.LinkTypes.Hierarchy-Reverse"

var (
	issueRiskPattern  = regexp.MustCompile(`(?i)/(Issue|Risk)/`)
	relationIDPattern = regexp.MustCompile(`(?i)/workItems/(\d+)$`)
)

// convertWorkItem maps one upstream item onto the domain model.
// typeByID cross-references relation targets fetched in the same sync
// so links to Issue and Risk items are detected even when the relation
// URL itself carries no type.
func convertWorkItem(raw rawWorkItem, typeByID map[int]string) *model.WorkItem {
	f := raw.Fields

	w := &model.WorkItem{
		ID:              raw.ID,
		ProjectName:     f.TeamProject,
		Title:           f.Title,
		State:           types.DecodeWorkItemState(f.State),
		Type:            types.DecodeWorkItemType(f.WorkItemType),
		IterationPath:   f.IterationPath,
		AreaPath:        f.AreaPath,
		CreatedDate:     f.CreatedDate,
		ChangedDate:     f.ChangedDate,
		StateChangeDate: f.StateChangeDate,
		ActivatedDate:   f.ActivatedDate,
		ResolvedDate:    f.ResolvedDate,
		ClosedDate:      f.ClosedDate,
		TargetDate:      f.TargetDate,
		StoryPoints:     f.StoryPoints,
		Priority:        f.Priority,
		Tags:            f.Tags,
		Description:     f.Description,
		Reason:          f.Reason,
	}

	if f.AssignedTo != nil {
		w.Assignee = &model.Assignee{
			DisplayName: f.AssignedTo.DisplayName,
			UniqueName:  f.AssignedTo.UniqueName,
			ImageURL:    f.AssignedTo.ImageURL,
		}
	}

	for _, rel := range raw.Relations {
		if m := issueRiskPattern.FindStringSubmatch(rel.URL); m != nil {
			switch strings.ToLower(m[1]) {
			case "issue":
				w.HasLinkedIssue = true
			case "risk":
				w.HasLinkedRisk = true
			}
		}
		name := strings.ToLower(rel.Attributes.Name)
		if strings.Contains(name, "issue") {
			w.HasLinkedIssue = true
		}
		if strings.Contains(name, "risk") {
			w.HasLinkedRisk = true
		}

		relatedID, ok := relationID(rel.URL)
		if !ok {
			continue
		}
		if rel.Rel == hierarchyReverseRel {
			id := relatedID
			w.ParentID = &id
		}
		switch typeByID[relatedID] {
		case "Issue":
			w.HasLinkedIssue = true
		case "Risk":
			w.HasLinkedRisk = true
		}
	}

	return w
}

func relationID(url string) (int, bool) {
	m := relationIDPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

func convertIteration(raw rawIteration, projectName string) *model.Sprint {
	return &model.Sprint{
		ID:          raw.ID,
		Name:        raw.Name,
		Path:        raw.Path,
		ProjectName: projectName,
		StartDate:   raw.Attributes.StartDate,
		FinishDate:  raw.Attributes.FinishDate,
		TimeFrame:   types.DecodeTimeFrame(raw.Attributes.TimeFrame),
	}
}

// archivedProjectPrefix marks decommissioned projects by naming
// convention.
const archivedProjectPrefix = "z"

func convertProject(raw rawProject) *model.Project {
	name := strings.ToLower(raw.Name)
	return &model.Project{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		State:       raw.State,
		Visibility:  raw.Visibility,
		IsArchived:  strings.HasPrefix(name, archivedProjectPrefix) || strings.Contains(name, "(archived)"),
	}
}
