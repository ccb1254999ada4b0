package metrics

import (
	"github.com/optics-lab/optics/pkg/domain/model"
)

// DefaultVelocitySprints is the trailing sprint window of the velocity
// chart.
const DefaultVelocitySprints = 6

// VelocityPoint is one sprint's completed work.
type VelocityPoint struct {
	SprintName      string
	SprintPath      string
	CompletedPoints float64
	CompletedItems  int
	// ProjectBreakdown splits the completed points per project for the
	// stacked chart.
	ProjectBreakdown map[string]float64
}

// VelocityResult carries the series plus the mean completed points per
// sprint within the window.
type VelocityResult struct {
	Points  []VelocityPoint
	Average float64
}

// Velocity sums the story points of completed (Closed or Resolved)
// items per sprint for the last lastN started sprints, in chronological
// order. Items join sprints by exact iteration path. lastN <= 0 uses
// DefaultVelocitySprints.
func Velocity(items []*model.WorkItem, sprints []*model.Sprint, lastN int) VelocityResult {
	if lastN <= 0 {
		lastN = DefaultVelocitySprints
	}

	recent := model.StartedSprintsByRecency(sprints)
	if len(recent) > lastN {
		recent = recent[:lastN]
	}
	// Chronological order for the chart.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}

	completedByPath := make(map[string][]*model.WorkItem)
	for _, w := range items {
		if w.State.IsCompleted() {
			completedByPath[w.IterationPath] = append(completedByPath[w.IterationPath], w)
		}
	}

	var result VelocityResult
	var totalPoints float64
	for _, sprint := range recent {
		point := VelocityPoint{
			SprintName:       sprint.Name,
			SprintPath:       sprint.Path,
			ProjectBreakdown: make(map[string]float64),
		}
		for _, w := range completedByPath[sprint.Path] {
			point.CompletedPoints += w.Points()
			point.CompletedItems++
			point.ProjectBreakdown[w.ProjectName] += w.Points()
		}
		totalPoints += point.CompletedPoints
		result.Points = append(result.Points, point)
	}

	if len(result.Points) > 0 {
		result.Average = round1(totalPoints / float64(len(result.Points)))
	}
	return result
}
