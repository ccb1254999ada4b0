package metrics

import (
	"math"
	"sort"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// DistributionEntry is one slice of a state or type distribution chart.
type DistributionEntry struct {
	Label      string
	Count      int
	Percentage int
}

// StateDistribution counts items per state. Percentages are rounded
// independently per entry, so they sum to roughly 100 for non-empty
// input.
func StateDistribution(items []*model.WorkItem) []DistributionEntry {
	return distribute(items, func(w *model.WorkItem) string { return w.State.String() })
}

// TypeDistribution counts items per work item type.
func TypeDistribution(items []*model.WorkItem) []DistributionEntry {
	return distribute(items, func(w *model.WorkItem) string { return w.Type.String() })
}

func distribute(items []*model.WorkItem, keyOf func(*model.WorkItem) string) []DistributionEntry {
	total := len(items)
	if total == 0 {
		total = 1
	}

	counts := make(map[string]int)
	var order []string
	for _, w := range items {
		key := keyOf(w)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	entries := make([]DistributionEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, DistributionEntry{
			Label:      key,
			Count:      counts[key],
			Percentage: int(math.Round(float64(counts[key]) / float64(total) * 100)),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
