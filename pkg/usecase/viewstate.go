package usecase

import (
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/selection"
	"github.com/optics-lab/optics/pkg/service/tree"
)

// DefaultPageSize matches the table's row window.
const DefaultPageSize = 25

// ViewState is the immutable UI state a caller threads through the
// read operations. Transitions return a new value and never modify the
// receiver, so two pages holding the same state cannot interfere with
// each other.
type ViewState struct {
	Selection   []string
	Expanded    map[string]bool
	SortColumn  tree.Column
	SortDir     tree.Direction
	TopLevel    string
	StateFilter []types.WorkItemState
	TypeFilter  []types.WorkItemType
	Page        int
	PageSize    int
}

// NewViewState returns the initial state: nothing selected, nothing
// expanded, first page.
func NewViewState() ViewState {
	return ViewState{
		SortColumn: tree.ColumnID,
		SortDir:    tree.Ascending,
		PageSize:   DefaultPageSize,
	}
}

func (v ViewState) clone() ViewState {
	next := v
	next.Selection = append([]string(nil), v.Selection...)
	next.Expanded = make(map[string]bool, len(v.Expanded))
	for k, on := range v.Expanded {
		next.Expanded[k] = on
	}
	next.StateFilter = append([]types.WorkItemState(nil), v.StateFilter...)
	next.TypeFilter = append([]types.WorkItemType(nil), v.TypeFilter...)
	return next
}

// WithProjectToggled flips a whole-project selection. areas lists the
// project's known area entries so a full set of area selections can
// consolidate into one project entry.
func (v ViewState) WithProjectToggled(project string, areas []string) ViewState {
	next := v.clone()
	next.Selection = selection.ToggleProject(next.Selection, project, areas)
	next.Page = 0
	return next
}

// WithAreaToggled flips one area selection within a project.
func (v ViewState) WithAreaToggled(project, area string, areas []string) ViewState {
	next := v.clone()
	next.Selection = selection.ToggleArea(next.Selection, project, area, areas)
	next.Page = 0
	return next
}

// WithSelectionCleared drops every selection entry.
func (v ViewState) WithSelectionCleared() ViewState {
	next := v.clone()
	next.Selection = nil
	next.Page = 0
	return next
}

// WithExpandToggled flips one expand key (item or group).
func (v ViewState) WithExpandToggled(key string) ViewState {
	next := v.clone()
	if next.Expanded[key] {
		delete(next.Expanded, key)
	} else {
		next.Expanded[key] = true
	}
	return next
}

// WithAllExpanded marks every given key expanded.
func (v ViewState) WithAllExpanded(keys []string) ViewState {
	next := v.clone()
	for _, key := range keys {
		next.Expanded[key] = true
	}
	return next
}

// WithAllCollapsed drops every expand key.
func (v ViewState) WithAllCollapsed() ViewState {
	next := v.clone()
	next.Expanded = map[string]bool{}
	return next
}

// WithSort sets the table sort. Selecting the active column flips the
// direction instead.
func (v ViewState) WithSort(col tree.Column) ViewState {
	next := v.clone()
	if next.SortColumn == col {
		if next.SortDir == tree.Ascending {
			next.SortDir = tree.Descending
		} else {
			next.SortDir = tree.Ascending
		}
	} else {
		next.SortColumn = col
		next.SortDir = tree.Ascending
	}
	return next
}

// WithTopLevel sets the top-level type filter ("" shows all).
func (v ViewState) WithTopLevel(topLevel string) ViewState {
	next := v.clone()
	next.TopLevel = topLevel
	next.Page = 0
	return next
}

// WithStateFilter replaces the state filter.
func (v ViewState) WithStateFilter(states []types.WorkItemState) ViewState {
	next := v.clone()
	next.StateFilter = append([]types.WorkItemState(nil), states...)
	next.Page = 0
	return next
}

// WithTypeFilter replaces the type filter.
func (v ViewState) WithTypeFilter(typs []types.WorkItemType) ViewState {
	next := v.clone()
	next.TypeFilter = append([]types.WorkItemType(nil), typs...)
	next.Page = 0
	return next
}

// WithPage moves to the given page, clamped at zero.
func (v ViewState) WithPage(page int) ViewState {
	next := v.clone()
	if page < 0 {
		page = 0
	}
	next.Page = page
	return next
}

func (v ViewState) pageSize() int {
	if v.PageSize <= 0 {
		return DefaultPageSize
	}
	return v.PageSize
}
