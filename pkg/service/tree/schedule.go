package tree

import (
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// StartDate resolves an item's effective start: the activated date when
// present, else the created date.
func StartDate(item *model.WorkItem) time.Time {
	if item.ActivatedDate != nil {
		return *item.ActivatedDate
	}
	return item.CreatedDate
}

// EndDate resolves an item's effective end: closed date, else target
// date, else a date inherited from the parent chain, else now ("still
// open, ends today" for range-fitting only). The lookup may be nil to
// skip inheritance. The walk is bounded by a visited set so reference
// cycles terminate.
func EndDate(item *model.WorkItem, lookup map[int]*model.WorkItem, now time.Time) time.Time {
	if item.ClosedDate != nil {
		return *item.ClosedDate
	}
	if item.TargetDate != nil {
		return *item.TargetDate
	}
	if lookup != nil {
		if inherited := inheritedEndDate(item, lookup); inherited != nil {
			return *inherited
		}
	}
	return now
}

func inheritedEndDate(item *model.WorkItem, lookup map[int]*model.WorkItem) *time.Time {
	visited := make(map[int]bool)
	current := item
	for current.ParentID != nil && !visited[*current.ParentID] {
		visited[*current.ParentID] = true
		parent, ok := lookup[*current.ParentID]
		if !ok {
			break
		}
		if parent.ClosedDate != nil {
			return parent.ClosedDate
		}
		if parent.TargetDate != nil {
			return parent.TargetDate
		}
		current = parent
	}
	return nil
}

// DateRange computes the min start and max end across all items
// reachable from the given nodes. Timeline views use it to size group
// bars. ok is false when nodes is empty.
func DateRange(nodes []*Node, lookup map[int]*model.WorkItem, now time.Time) (start, end time.Time, ok bool) {
	for _, node := range nodes {
		s := StartDate(node.Item)
		e := EndDate(node.Item, lookup, now)
		if !ok {
			start, end, ok = s, e, true
		} else {
			if s.Before(start) {
				start = s
			}
			if e.After(end) {
				end = e
			}
		}
		if cs, ce, cok := DateRange(node.Children, lookup, now); cok {
			if cs.Before(start) {
				start = cs
			}
			if ce.After(end) {
				end = ce
			}
		}
	}
	return start, end, ok
}
