package tree

import (
	"sort"
	"strings"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// Node wraps a work item with its resolved children. Nodes are rebuilt
// from the flat item collection on every pass and consumed read-only
// downstream.
type Node struct {
	Item     *model.WorkItem
	Children []*Node
}

// AreaGroup is a named bucket of root nodes grouped by the area-path
// suffix relative to the owning project. The ungrouped bucket has an
// empty label.
type AreaGroup struct {
	ID    string
	Label string
	Roots []*Node
}

// Build constructs a forest from a flat item list using parent-id
// back-references. Attachment is a pure index lookup: an item whose
// parent is absent from the input (never fetched, filtered out, or part
// of a reference cycle) becomes a root rather than an error.
func Build(items []*model.WorkItem) []*Node {
	index := make(map[int]*Node, len(items))
	for _, item := range items {
		index[item.ID] = &Node{Item: item}
	}

	var roots []*Node
	for _, item := range items {
		node := index[item.ID]
		if item.ParentID != nil {
			if parent, ok := index[*item.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// Count returns the total number of items reachable from the given
// roots, each item counted once.
func Count(roots []*Node) int {
	total := 0
	for _, root := range roots {
		total += 1 + Count(root.Children)
	}
	return total
}

// displayArea returns the area-path portion after the "Project\" prefix,
// or empty when the item sits directly under the project root.
func displayArea(item *model.WorkItem) string {
	prefix := item.ProjectName + `\`
	if strings.HasPrefix(item.AreaPath, prefix) {
		return item.AreaPath[len(prefix):]
	}
	return ""
}

// GroupByArea buckets roots by their display area. Groups are sorted
// alphabetically by label with the ungrouped bucket last.
func GroupByArea(roots []*Node) []AreaGroup {
	buckets := make(map[string][]*Node)
	for _, root := range roots {
		area := displayArea(root.Item)
		buckets[area] = append(buckets[area], root)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i] == "" {
			return false
		}
		if labels[j] == "" {
			return true
		}
		return labels[i] < labels[j]
	})

	groups := make([]AreaGroup, 0, len(labels))
	for _, label := range labels {
		id := ""
		if label != "" {
			id = GroupKey(label)
		}
		groups = append(groups, AreaGroup{ID: id, Label: label, Roots: buckets[label]})
	}
	return groups
}

// TopLevelAreaPath disables top-level filtering; the tree shows every
// hierarchy level grouped by area.
const TopLevelAreaPath = "Area Path"

// TopLevelOptions returns the selectable top-level values in display
// order.
func TopLevelOptions() []string {
	return []string{TopLevelAreaPath, "Epic", "Feature", "User Story", "Bug", "Task"}
}

// FilterByTopLevel drops items that rank above the chosen top level, so
// a table rooted at Feature hides Epics but keeps everything below.
func FilterByTopLevel(items []*model.WorkItem, topLevel string) []*model.WorkItem {
	if topLevel == TopLevelAreaPath {
		return items
	}
	minRank := rankOfTopLevel(topLevel)
	var filtered []*model.WorkItem
	for _, item := range items {
		if item.Type.HierarchyRank() >= minRank {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func rankOfTopLevel(topLevel string) int {
	t := types.WorkItemType(topLevel)
	if !t.IsValid() {
		return 0
	}
	return t.HierarchyRank()
}
