package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// highPriorityThreshold marks priority 1 and 2 items as high priority.
const highPriorityThreshold = 2

// RaidSummary holds the watch-list KPI cards.
type RaidSummary struct {
	OpenIssues     int
	OpenRisks      int
	HighPriority   int
	AverageAgeDays int
	TotalRaidItems int
}

// SummarizeRaid reduces RAID items (type Issue/Risk or a recognized
// tag) to watch-list KPIs. Age counts only open (New/Active) items.
func SummarizeRaid(items []*model.WorkItem, now time.Time) RaidSummary {
	var s RaidSummary
	var totalAge int
	var open int

	for _, w := range items {
		category, ok := w.RaidCategory()
		if !ok {
			continue
		}
		s.TotalRaidItems++

		if !w.State.IsOpen() {
			continue
		}
		open++
		totalAge += ageDays(w.CreatedDate, now)

		switch category {
		case types.RaidCategoryIssue:
			s.OpenIssues++
		case types.RaidCategoryRisk:
			s.OpenRisks++
		}
		if w.Priority != nil && *w.Priority <= highPriorityThreshold {
			s.HighPriority++
		}
	}

	if open > 0 {
		s.AverageAgeDays = int(math.Round(float64(totalAge) / float64(open)))
	}
	return s
}

// AgeBucket is one bar of the watch-list aging chart.
type AgeBucket struct {
	Label string
	Count int
}

// ageBucketBounds are the exclusive upper bounds in days; the last
// bucket catches every remaining age.
var ageBucketBounds = []struct {
	label string
	max   int
}{
	{label: "< 7d", max: 7},
	{label: "7-30d", max: 30},
	{label: "30-90d", max: 90},
	{label: "90d+", max: math.MaxInt},
}

// RaidAgeBuckets buckets open RAID items by days since creation. All
// buckets are emitted even when empty.
func RaidAgeBuckets(items []*model.WorkItem, now time.Time) []AgeBucket {
	counts := make([]int, len(ageBucketBounds))
	for _, w := range items {
		if !w.IsRaid() || !w.State.IsOpen() {
			continue
		}
		age := ageDays(w.CreatedDate, now)
		for i, b := range ageBucketBounds {
			if age < b.max || i == len(ageBucketBounds)-1 {
				counts[i]++
				break
			}
		}
	}

	buckets := make([]AgeBucket, len(ageBucketBounds))
	for i, b := range ageBucketBounds {
		buckets[i] = AgeBucket{Label: b.label, Count: counts[i]}
	}
	return buckets
}

// TrendWeeks is the trailing window of the created-vs-resolved chart.
const TrendWeeks = 12

// TrendWeek is one Monday-aligned week of RAID item flow.
type TrendWeek struct {
	WeekStart time.Time
	Created   int
	Resolved  int
}

// RaidTrend buckets RAID item creations and resolutions into the
// trailing TrendWeeks Monday-aligned weeks ending at now. Weeks with no
// activity are still emitted so the chart series stays dense. Buckets
// are keyed by calendar date, not time.Time, so now and the item dates
// may carry different locations.
func RaidTrend(items []*model.WorkItem, now time.Time) []TrendWeek {
	weeks := make([]TrendWeek, TrendWeeks)
	index := make(map[string]int, TrendWeeks)
	for i := 0; i < TrendWeeks; i++ {
		start := startOfWeek(now.AddDate(0, 0, -7*(TrendWeeks-1-i)))
		weeks[i] = TrendWeek{WeekStart: start}
		index[weekKey(start)] = i
	}

	for _, w := range items {
		if !w.IsRaid() {
			continue
		}

		if i, ok := index[weekKey(startOfWeek(w.CreatedDate))]; ok {
			weeks[i].Created++
		}

		resolved := w.ClosedDate
		if resolved == nil {
			resolved = w.ResolvedDate
		}
		if resolved != nil {
			if i, ok := index[weekKey(startOfWeek(*resolved))]; ok {
				weeks[i].Resolved++
			}
		}
	}

	return weeks
}

// startOfWeek truncates to the Monday beginning the week of t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func weekKey(weekStart time.Time) string {
	return weekStart.Format(time.DateOnly)
}

// RaidTypeDistribution counts RAID items per category, sorted
// descending by count.
func RaidTypeDistribution(items []*model.WorkItem) []DistributionEntry {
	counts := make(map[types.RaidCategory]int)
	var order []types.RaidCategory
	total := 0
	for _, w := range items {
		category, ok := w.RaidCategory()
		if !ok {
			continue
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
		total++
	}
	if total == 0 {
		total = 1
	}

	entries := make([]DistributionEntry, 0, len(order))
	for _, category := range order {
		entries = append(entries, DistributionEntry{
			Label:      category.String(),
			Count:      counts[category],
			Percentage: int(math.Round(float64(counts[category]) / float64(total) * 100)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// RaidPriorityDistribution counts RAID items per priority label (P1..P4
// plus Unset), in priority order, omitting empty labels.
func RaidPriorityDistribution(items []*model.WorkItem) []DistributionEntry {
	counts := make(map[string]int)
	for _, w := range items {
		if !w.IsRaid() {
			continue
		}
		label := "Unset"
		if w.Priority != nil {
			label = fmt.Sprintf("P%d", *w.Priority)
		}
		counts[label]++
	}

	var entries []DistributionEntry
	for _, label := range []string{"P1", "P2", "P3", "P4", "Unset"} {
		if count, ok := counts[label]; ok {
			entries = append(entries, DistributionEntry{Label: label, Count: count})
		}
	}
	return entries
}

func ageDays(created, now time.Time) int {
	days := wholeDays(created, now)
	if days < 0 {
		return 0
	}
	return days
}
