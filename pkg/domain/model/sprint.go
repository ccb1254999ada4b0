package model

import (
	"sort"
	"time"

	"github.com/optics-lab/optics/pkg/domain/types"
)

// Sprint is a named, dated time-box. Path joins it to
// WorkItem.IterationPath. StartDate and FinishDate may be nil for
// unscheduled iterations.
type Sprint struct {
	ID          string
	Name        string
	Path        string
	ProjectName string
	StartDate   *time.Time
	FinishDate  *time.Time
	TimeFrame   types.TimeFrame
}

// Clone returns a deep copy of the sprint.
func (s *Sprint) Clone() *Sprint {
	copied := *s
	copied.StartDate = copyTime(s.StartDate)
	copied.FinishDate = copyTime(s.FinishDate)
	return &copied
}

// StartedSprintsByRecency returns the past/current sprints sorted by
// start date descending (most recent first). Sprints without a start
// date sort last.
func StartedSprintsByRecency(sprints []*Sprint) []*Sprint {
	var started []*Sprint
	for _, s := range sprints {
		if s.TimeFrame.IsStarted() {
			started = append(started, s)
		}
	}

	sort.SliceStable(started, func(i, j int) bool {
		return sprintStartUnix(started[i]) > sprintStartUnix(started[j])
	})
	return started
}

func sprintStartUnix(s *Sprint) int64 {
	if s.StartDate == nil {
		return 0
	}
	return s.StartDate.Unix()
}
