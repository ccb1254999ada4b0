// Package metrics is the aggregation engine: a family of independent,
// pure reducers over an already-filtered work item collection. Every
// function is side-effect free; "now" is always passed in by the caller
// so results are reproducible.
package metrics

import (
	"math"
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// Summary holds the dashboard KPI cards derived from one item snapshot.
type Summary struct {
	TotalItems           int
	NewCount             int
	ActiveCount          int
	ResolvedCount        int
	ClosedCount          int
	RemovedCount         int
	TotalStoryPoints     float64
	CompletedStoryPoints float64
	AverageCycleTimeDays int
}

// Summarize reduces the item list to dashboard KPIs.
func Summarize(items []*model.WorkItem) Summary {
	s := Summary{TotalItems: len(items)}

	for _, w := range items {
		switch w.State {
		case types.WorkItemStateNew:
			s.NewCount++
		case types.WorkItemStateActive:
			s.ActiveCount++
		case types.WorkItemStateResolved:
			s.ResolvedCount++
		case types.WorkItemStateClosed:
			s.ClosedCount++
		case types.WorkItemStateRemoved:
			s.RemovedCount++
		}

		s.TotalStoryPoints += w.Points()
		if w.State.IsCompleted() {
			s.CompletedStoryPoints += w.Points()
		}
	}

	if avg, ok := averageCycleTime(items); ok {
		s.AverageCycleTimeDays = int(math.Round(avg))
	}

	return s
}

// CycleTime returns the mean cycle time in whole days over items with
// both an activated and a closed date and a non-negative difference.
// Items failing either condition are excluded from the average, not
// counted as zero. ok is false when no item qualifies.
func CycleTime(items []*model.WorkItem) (float64, bool) {
	return averageCycleTime(items)
}

func averageCycleTime(items []*model.WorkItem) (float64, bool) {
	var sum float64
	var n int
	for _, w := range items {
		if w.ActivatedDate == nil || w.ClosedDate == nil {
			continue
		}
		days := wholeDays(*w.ActivatedDate, *w.ClosedDate)
		if days < 0 {
			continue
		}
		sum += float64(days)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// wholeDays returns the number of complete days from a to b, negative
// when b precedes a.
func wholeDays(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// round1 rounds to one decimal, the precision used by chart series.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
