package model

import (
	"strings"
	"time"

	"github.com/optics-lab/optics/pkg/domain/types"
)

// Assignee identifies the person a work item is assigned to.
type Assignee struct {
	DisplayName string
	UniqueName  string
	ImageURL    string
}

// WorkItem is a single tracked unit of work as normalized from the
// upstream tracker. ParentID is a weak reference: it may point to an
// item that was never fetched, and consumers must treat a dangling
// parent as "no parent".
type WorkItem struct {
	ID          int
	ProjectName string
	Title       string
	State       types.WorkItemState
	Type        types.WorkItemType

	IterationPath string
	AreaPath      string

	CreatedDate     time.Time
	ChangedDate     time.Time
	StateChangeDate *time.Time
	ActivatedDate   *time.Time
	ResolvedDate    *time.Time
	ClosedDate      *time.Time
	TargetDate      *time.Time

	StoryPoints *float64
	Priority    *int

	Assignee *Assignee

	// Tags is the upstream semicolon-delimited tag string.
	Tags string

	Description string
	Reason      string

	ParentID *int

	// Linked Issue/Risk flags are derived once at ingestion from the
	// item's relations; the aggregation engine never re-derives them.
	HasLinkedIssue bool
	HasLinkedRisk  bool
}

// Points returns the item's story points, treating absent as zero.
func (w *WorkItem) Points() float64 {
	if w.StoryPoints == nil {
		return 0
	}
	return *w.StoryPoints
}

// ParseTags splits the semicolon-delimited tag string into trimmed,
// non-empty tags.
func (w *WorkItem) ParseTags() []string {
	if w.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(w.Tags, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// RaidCategory classifies the item for watch-list views. Issue and Risk
// types classify directly; otherwise tags are matched case-insensitively,
// with "critical dependency" taking precedence over "dependency". Returns
// false when the item is not a RAID item.
func (w *WorkItem) RaidCategory() (types.RaidCategory, bool) {
	switch w.Type {
	case types.WorkItemTypeIssue:
		return types.RaidCategoryIssue, true
	case types.WorkItemTypeRisk:
		return types.RaidCategoryRisk, true
	}

	for _, tag := range w.ParseTags() {
		switch strings.ToLower(tag) {
		case "critical dependency":
			return types.RaidCategoryCriticalDependency, true
		case "dependency":
			return types.RaidCategoryDependency, true
		case "decision":
			return types.RaidCategoryDecision, true
		}
	}

	return "", false
}

// IsRaid reports whether the item belongs to any RAID category.
func (w *WorkItem) IsRaid() bool {
	_, ok := w.RaidCategory()
	return ok
}

// CompletionDate returns the date the item counted as done for burndown
// purposes: the closed date for Closed items and the resolved date for
// Resolved items, falling back to the state-change date in either case.
// Returns nil for items in any other state.
func (w *WorkItem) CompletionDate() *time.Time {
	switch w.State {
	case types.WorkItemStateClosed:
		if w.ClosedDate != nil {
			return w.ClosedDate
		}
		return w.StateChangeDate
	case types.WorkItemStateResolved:
		if w.ResolvedDate != nil {
			return w.ResolvedDate
		}
		return w.StateChangeDate
	default:
		return nil
	}
}

// Clone returns a deep copy of the work item.
func (w *WorkItem) Clone() *WorkItem {
	copied := *w
	copied.StateChangeDate = copyTime(w.StateChangeDate)
	copied.ActivatedDate = copyTime(w.ActivatedDate)
	copied.ResolvedDate = copyTime(w.ResolvedDate)
	copied.ClosedDate = copyTime(w.ClosedDate)
	copied.TargetDate = copyTime(w.TargetDate)
	if w.StoryPoints != nil {
		sp := *w.StoryPoints
		copied.StoryPoints = &sp
	}
	if w.Priority != nil {
		p := *w.Priority
		copied.Priority = &p
	}
	if w.Assignee != nil {
		a := *w.Assignee
		copied.Assignee = &a
	}
	if w.ParentID != nil {
		id := *w.ParentID
		copied.ParentID = &id
	}
	return &copied
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// IndexByID builds an id-indexed lookup over the given items. The last
// item wins on duplicate IDs, matching upstream fetch semantics where an
// ID is unique within one snapshot.
func IndexByID(items []*WorkItem) map[int]*WorkItem {
	index := make(map[int]*WorkItem, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index
}
