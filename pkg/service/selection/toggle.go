package selection

import (
	"fmt"
	"strings"
)

// The toggle functions implement the selector's narrowing/consolidation
// contract over an immutable entry slice. Callers pass the known areas
// of the toggled project so completion can be detected.

// IsProjectFullySelected reports whether the project is selected as a
// whole: either a whole-project entry exists, or every known area of the
// project is individually selected.
func IsProjectFullySelected(entries []string, project string, areas []string) bool {
	if contains(entries, project) {
		return true
	}
	if len(areas) == 0 {
		return false
	}
	for _, area := range areas {
		if !contains(entries, Entry(project, area)) {
			return false
		}
	}
	return true
}

// HasAnySelection reports whether the project is selected wholly or in
// part.
func HasAnySelection(entries []string, project string, areas []string) bool {
	if contains(entries, project) {
		return true
	}
	for _, area := range areas {
		if contains(entries, Entry(project, area)) {
			return true
		}
	}
	return false
}

// ToggleProject flips a whole-project selection. Deselecting removes the
// project entry and every area entry of that project; selecting replaces
// any area entries with the single whole-project entry.
func ToggleProject(entries []string, project string, areas []string) []string {
	if IsProjectFullySelected(entries, project, areas) {
		return without(entries, func(e string) bool {
			return e == project || strings.HasPrefix(e, project+Separator)
		})
	}

	cleaned := without(entries, func(e string) bool {
		return e == project || strings.HasPrefix(e, project+Separator)
	})
	return append(cleaned, project)
}

// ToggleArea flips one area of a project.
//
//   - Deselecting a selected area just removes its entry.
//   - Selecting an area while the project is whole-selected narrows the
//     selection to that single area.
//   - Selecting the last remaining unselected area consolidates the
//     project back to a single whole-project entry.
func ToggleArea(entries []string, project, area string, areas []string) []string {
	key := Entry(project, area)

	if contains(entries, key) {
		return without(entries, func(e string) bool { return e == key })
	}

	if contains(entries, project) {
		cleaned := without(entries, func(e string) bool { return e == project })
		return append(cleaned, key)
	}

	next := append(append([]string{}, entries...), key)
	for _, a := range areas {
		if !contains(next, Entry(project, a)) {
			return next
		}
	}
	// All areas now selected: consolidate to the whole project.
	cleaned := without(next, func(e string) bool {
		return strings.HasPrefix(e, project+Separator)
	})
	return append(cleaned, project)
}

// Label builds the selector caption: "No Projects", "All Projects", the
// single project (optionally "Project > Area" or "Project (n areas)"),
// or "<n> Projects".
func Label(entries []string, allSelected bool) string {
	if len(entries) == 0 {
		return "No Projects"
	}
	if allSelected {
		return "All Projects"
	}

	var projects []string
	seen := make(map[string]bool)
	for _, e := range entries {
		p := Project(e)
		if !seen[p] {
			seen[p] = true
			projects = append(projects, p)
		}
	}

	if len(projects) == 1 {
		only := projects[0]
		if contains(entries, only) {
			return only
		}
		var areaEntries []string
		for _, e := range entries {
			if strings.HasPrefix(e, only+Separator) {
				areaEntries = append(areaEntries, e)
			}
		}
		if len(areaEntries) == 1 {
			area, _ := Area(areaEntries[0])
			return fmt.Sprintf("%s > %s", only, area)
		}
		return fmt.Sprintf("%s (%d areas)", only, len(areaEntries))
	}

	return fmt.Sprintf("%d Projects", len(projects))
}

func contains(entries []string, entry string) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}
	return false
}

func without(entries []string, drop func(string) bool) []string {
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if !drop(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
