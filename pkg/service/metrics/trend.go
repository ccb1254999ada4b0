package metrics

import (
	"math"

	"github.com/optics-lab/optics/pkg/domain/model"
	"github.com/optics-lab/optics/pkg/domain/types"
)

// TrendLabel annotates every sprint-over-sprint delta.
const TrendLabel = "vs prev sprint"

// Trend is one percent delta between the current and previous sprint.
type Trend struct {
	Value int
	Label string
}

// SprintTrends compares the current sprint against the previous one.
// Nil fields mean "no trend": fewer than two started sprints, or a
// zero-to-zero transition where a ratio is undefined.
type SprintTrends struct {
	ActiveItems *Trend
	StoryPoints *Trend
	Velocity    *Trend
	CycleTime   *Trend
}

// ComputeSprintTrends derives percent deltas for active item count,
// active story points, completed velocity, and cycle time between the
// two most recent started sprints. The cycle time delta is
// sign-inverted: a shorter cycle is an improvement.
func ComputeSprintTrends(items []*model.WorkItem, sprints []*model.Sprint) SprintTrends {
	recent := model.StartedSprintsByRecency(sprints)
	if len(recent) < 2 {
		return SprintTrends{}
	}

	currentPaths := make(map[string]bool)
	for _, s := range sprints {
		if s.TimeFrame == types.TimeFrameCurrent {
			currentPaths[s.Path] = true
		}
	}
	prevPath := recent[1].Path

	var current, previous []*model.WorkItem
	for _, w := range items {
		if currentPaths[w.IterationPath] {
			current = append(current, w)
		}
		if w.IterationPath == prevPath {
			previous = append(previous, w)
		}
	}

	trends := SprintTrends{
		ActiveItems: pctTrend(float64(countActive(current)), float64(countActive(previous))),
		StoryPoints: pctTrend(activePoints(current), activePoints(previous)),
		Velocity:    pctTrend(completedPoints(current), completedPoints(previous)),
	}

	curCycle, _ := averageCycleTime(current)
	prevCycle, _ := averageCycleTime(previous)
	if cycle := pctTrend(curCycle, prevCycle); cycle != nil {
		trends.CycleTime = &Trend{Value: -cycle.Value, Label: cycle.Label}
	}

	return trends
}

// pctTrend returns the rounded percent change, with two fixed points:
// a zero-to-positive transition reports 100%, and zero-to-zero reports
// no trend at all.
func pctTrend(current, previous float64) *Trend {
	if previous == 0 {
		if current > 0 {
			return &Trend{Value: 100, Label: TrendLabel}
		}
		return nil
	}
	value := int(math.Round((current - previous) / previous * 100))
	return &Trend{Value: value, Label: TrendLabel}
}

func countActive(items []*model.WorkItem) int {
	n := 0
	for _, w := range items {
		if w.State == types.WorkItemStateActive {
			n++
		}
	}
	return n
}

func activePoints(items []*model.WorkItem) float64 {
	var sum float64
	for _, w := range items {
		if w.State == types.WorkItemStateActive {
			sum += w.Points()
		}
	}
	return sum
}

func completedPoints(items []*model.WorkItem) float64 {
	var sum float64
	for _, w := range items {
		if w.State.IsCompleted() {
			sum += w.Points()
		}
	}
	return sum
}
