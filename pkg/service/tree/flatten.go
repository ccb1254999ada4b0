package tree

import (
	"strconv"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// RowKind discriminates flat rows.
type RowKind string

const (
	RowKindItem  RowKind = "item"
	RowKindGroup RowKind = "group"
)

// Row is one display row of a flattened tree: either an area-group
// header or a work item, depth-annotated for indentation.
type Row struct {
	Kind        RowKind
	Item        *model.WorkItem
	GroupID     string
	Label       string
	Depth       int
	HasChildren bool
}

// ItemKey returns the expand-set key of a work item. Item and group keys
// share one set, so they carry distinct prefixes.
func ItemKey(id int) string {
	return "wi:" + strconv.Itoa(id)
}

// GroupKey returns the expand-set key of an area group.
func GroupKey(label string) string {
	return "area:" + label
}

// Flatten projects a grouped forest into display order: pre-order,
// depth-first, group header before members. A node's children appear
// only when its own key is in the expanded set, and a group's members
// only when the group's key is. The projection is deterministic, so
// pagination can slice the result directly.
func Flatten(groups []AreaGroup, expanded map[string]bool) []Row {
	var rows []Row
	for _, group := range groups {
		if group.Label == "" {
			rows = flattenNodes(rows, group.Roots, expanded, 0)
			continue
		}
		rows = append(rows, Row{
			Kind:        RowKindGroup,
			GroupID:     group.ID,
			Label:       group.Label,
			HasChildren: true,
		})
		if expanded[group.ID] {
			rows = flattenNodes(rows, group.Roots, expanded, 1)
		}
	}
	return rows
}

func flattenNodes(rows []Row, nodes []*Node, expanded map[string]bool, depth int) []Row {
	for _, node := range nodes {
		hasChildren := len(node.Children) > 0
		rows = append(rows, Row{
			Kind:        RowKindItem,
			Item:        node.Item,
			Depth:       depth,
			HasChildren: hasChildren,
		})
		if hasChildren && expanded[ItemKey(node.Item.ID)] {
			rows = flattenNodes(rows, node.Children, expanded, depth+1)
		}
	}
	return rows
}

// ExpandableKeys collects every key with at least one child: items with
// children and every non-empty labeled group. It lets expand-all toggle
// without re-walking the tree per click.
func ExpandableKeys(groups []AreaGroup) []string {
	var keys []string
	for _, group := range groups {
		if group.Label != "" {
			keys = append(keys, group.ID)
		}
		keys = collectParentKeys(keys, group.Roots)
	}
	return keys
}

func collectParentKeys(keys []string, nodes []*Node) []string {
	for _, node := range nodes {
		if len(node.Children) > 0 {
			keys = append(keys, ItemKey(node.Item.ID))
			keys = collectParentKeys(keys, node.Children)
		}
	}
	return keys
}

// Page slices rows for one page with a fixed page size. Page numbers are
// zero-based; out-of-range pages yield an empty slice.
func Page(rows []Row, page, size int) []Row {
	if size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
