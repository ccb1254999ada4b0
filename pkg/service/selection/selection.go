// Package selection reconciles the scope selector's entry list. An
// entry is either a whole project ("Nexus") or a project/area pair
// ("Nexus\Contracts"). Insertion order is preserved for label display;
// resolution treats the list as a set.
package selection

import (
	"strings"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// Separator splits the project name from the area name in an entry.
const Separator = `\`

// Resolved is the outcome of parsing a selection list: the projects to
// fetch from upstream and, per project, the area entries restricting
// visibility. Projects absent from AreaFilters have no restriction.
type Resolved struct {
	ProjectNames []string
	AreaFilters  map[string][]string
}

// Project returns the project portion of an entry.
func Project(entry string) string {
	if idx := strings.Index(entry, Separator); idx >= 0 {
		return entry[:idx]
	}
	return entry
}

// Area returns the area portion of an entry, with ok=false for
// whole-project entries.
func Area(entry string) (string, bool) {
	idx := strings.Index(entry, Separator)
	if idx < 0 {
		return "", false
	}
	return entry[idx+1:], true
}

// Entry builds a project/area entry string.
func Entry(project, area string) string {
	return project + Separator + area
}

// Resolve parses the selection list. A whole-project entry subsumes any
// area entries of the same project, so those projects carry no area
// filter.
func Resolve(entries []string) Resolved {
	var projects []string
	seen := make(map[string]bool)
	whole := make(map[string]bool)
	areaFilters := make(map[string][]string)

	for _, entry := range entries {
		project := Project(entry)
		if !seen[project] {
			seen[project] = true
			projects = append(projects, project)
		}
		if _, ok := Area(entry); ok {
			areaFilters[project] = append(areaFilters[project], entry)
		} else {
			whole[project] = true
		}
	}

	for project := range whole {
		delete(areaFilters, project)
	}

	return Resolved{ProjectNames: projects, AreaFilters: areaFilters}
}

// Filter keeps the items visible under the resolved selection: items of
// projects without an area filter pass through; otherwise the item's
// area path must exactly equal one of the selected entries. No prefix
// matching.
func Filter(items []*model.WorkItem, resolved Resolved) []*model.WorkItem {
	if len(resolved.AreaFilters) == 0 {
		return items
	}

	var visible []*model.WorkItem
	for _, item := range items {
		filters, restricted := resolved.AreaFilters[item.ProjectName]
		if !restricted {
			visible = append(visible, item)
			continue
		}
		for _, f := range filters {
			if item.AreaPath == f {
				visible = append(visible, item)
				break
			}
		}
	}
	return visible
}
