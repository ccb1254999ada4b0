package tree

import (
	"sort"
	"strings"
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// LessFunc is a tiebreak comparison between two work items of equal
// hierarchy rank.
type LessFunc func(a, b *model.WorkItem) bool

// SortNodes orders siblings at every level: fixed hierarchy rank first,
// then the caller-supplied tiebreak. Children are sorted recursively and
// independently of parent order.
func SortNodes(nodes []*Node, tiebreak LessFunc) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ri, rj := nodes[i].Item.Type.HierarchyRank(), nodes[j].Item.Type.HierarchyRank()
		if ri != rj {
			return ri < rj
		}
		if tiebreak == nil {
			return false
		}
		return tiebreak(nodes[i].Item, nodes[j].Item)
	})
	for _, node := range nodes {
		if len(node.Children) > 0 {
			SortNodes(node.Children, tiebreak)
		}
	}
}

// SortGroups applies SortNodes to every group's roots.
func SortGroups(groups []AreaGroup, tiebreak LessFunc) {
	for _, g := range groups {
		SortNodes(g.Roots, tiebreak)
	}
}

// ByStartDate orders items by effective start date ascending, the
// tiebreak used by timeline views.
func ByStartDate() LessFunc {
	return func(a, b *model.WorkItem) bool {
		return StartDate(a).Before(StartDate(b))
	}
}

// Column is a user-selectable table sort key.
type Column string

const (
	ColumnID          Column = "id"
	ColumnTitle       Column = "title"
	ColumnState       Column = "state"
	ColumnType        Column = "type"
	ColumnAssignee    Column = "assignee"
	ColumnStoryPoints Column = "storyPoints"
	ColumnChangedDate Column = "changedDate"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ByColumn builds the table tiebreak for a sort key and direction.
func ByColumn(col Column, dir Direction) LessFunc {
	cmp := compareColumn(col)
	if dir == Descending {
		return func(a, b *model.WorkItem) bool { return cmp(b, a) < 0 }
	}
	return func(a, b *model.WorkItem) bool { return cmp(a, b) < 0 }
}

func compareColumn(col Column) func(a, b *model.WorkItem) int {
	switch col {
	case ColumnTitle:
		return func(a, b *model.WorkItem) int { return strings.Compare(a.Title, b.Title) }
	case ColumnState:
		return func(a, b *model.WorkItem) int { return strings.Compare(a.State.String(), b.State.String()) }
	case ColumnType:
		return func(a, b *model.WorkItem) int { return strings.Compare(a.Type.String(), b.Type.String()) }
	case ColumnAssignee:
		return func(a, b *model.WorkItem) int {
			return strings.Compare(assigneeName(a), assigneeName(b))
		}
	case ColumnStoryPoints:
		return func(a, b *model.WorkItem) int { return compareFloat(a.Points(), b.Points()) }
	case ColumnChangedDate:
		return func(a, b *model.WorkItem) int { return compareTime(a.ChangedDate, b.ChangedDate) }
	default:
		return func(a, b *model.WorkItem) int { return a.ID - b.ID }
	}
}

func assigneeName(w *model.WorkItem) string {
	if w.Assignee == nil {
		return ""
	}
	return w.Assignee.DisplayName
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
