package tree_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
	"github.com/optics-lab/optics/pkg/service/tree"
)

func buildGroups() []tree.AreaGroup {
	withArea := func(id int, parentID *int, area string) *model.WorkItem {
		w := item(id, parentID, types.WorkItemTypeFeature)
		w.AreaPath = area
		return w
	}

	roots := tree.Build([]*model.WorkItem{
		withArea(1, nil, `Nexus\Platform`),
		withArea(2, ptr(1), `Nexus\Platform`),
		withArea(3, nil, `Nexus`),
		withArea(4, ptr(3), `Nexus`),
	})
	return tree.GroupByArea(roots)
}

func rowIDs(rows []tree.Row) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Kind == tree.RowKindGroup {
			ids = append(ids, r.GroupID)
		} else {
			ids = append(ids, tree.ItemKey(r.Item.ID))
		}
	}
	return ids
}

func TestFlatten(t *testing.T) {
	groups := buildGroups()

	t.Run("collapsed shows headers and ungrouped roots only", func(t *testing.T) {
		rows := tree.Flatten(groups, map[string]bool{})
		gt.Array(t, rowIDs(rows)).Equal([]string{"area:Platform", "wi:3"})
	})

	t.Run("expanded group reveals members, expanded item reveals children", func(t *testing.T) {
		expanded := map[string]bool{
			tree.GroupKey("Platform"): true,
			tree.ItemKey(1):           true,
			tree.ItemKey(3):           true,
		}
		rows := tree.Flatten(groups, expanded)
		gt.Array(t, rowIDs(rows)).Equal([]string{"area:Platform", "wi:1", "wi:2", "wi:3", "wi:4"})

		// depth annotations follow nesting: group members start at 1,
		// ungrouped roots at 0
		gt.Number(t, rows[1].Depth).Equal(1)
		gt.Number(t, rows[2].Depth).Equal(2)
		gt.Number(t, rows[3].Depth).Equal(0)
		gt.Number(t, rows[4].Depth).Equal(1)
	})

	t.Run("same input yields same sequence", func(t *testing.T) {
		expanded := map[string]bool{tree.GroupKey("Platform"): true}
		first := tree.Flatten(groups, expanded)
		second := tree.Flatten(groups, expanded)
		gt.Value(t, rowIDs(first)).Equal(rowIDs(second))
	})
}

func TestExpandableKeys(t *testing.T) {
	groups := buildGroups()
	keys := tree.ExpandableKeys(groups)

	// group header, item 1 (has child 2), item 3 (has child 4)
	gt.Array(t, keys).Equal([]string{"area:Platform", "wi:1", "wi:3"})
}

func TestPage(t *testing.T) {
	groups := buildGroups()
	expanded := map[string]bool{
		tree.GroupKey("Platform"): true,
		tree.ItemKey(1):           true,
		tree.ItemKey(3):           true,
	}
	rows := tree.Flatten(groups, expanded)
	gt.Array(t, rows).Length(5)

	t.Run("first page", func(t *testing.T) {
		gt.Array(t, tree.Page(rows, 0, 2)).Length(2)
	})

	t.Run("last partial page", func(t *testing.T) {
		gt.Array(t, tree.Page(rows, 2, 2)).Length(1)
	})

	t.Run("out of range yields empty", func(t *testing.T) {
		gt.Array(t, tree.Page(rows, 5, 2)).Length(0)
	})
}
