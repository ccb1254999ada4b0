package metrics

import (
	"time"

	"github.com/optics-lab/optics/pkg/domain/model"
)

// BurndownPoint is one calendar day of a sprint burndown. Actual is nil
// for days after today: the future is unknowable, not zero, and a nil
// value renders as a gap rather than a drop to the axis.
type BurndownPoint struct {
	Day    int
	Date   time.Time
	Ideal  float64
	Actual *float64
}

// Burndown produces one point per calendar day from sprint start to
// finish inclusive. Ideal decays linearly from the sprint's total story
// points to zero; Actual subtracts the points of items completed on or
// before each day. Returns nil when the sprint lacks either date or the
// range is empty.
func Burndown(items []*model.WorkItem, sprint *model.Sprint, now time.Time) []BurndownPoint {
	if sprint == nil || sprint.StartDate == nil || sprint.FinishDate == nil {
		return nil
	}

	start := startOfDay(*sprint.StartDate)
	finish := startOfDay(*sprint.FinishDate)
	totalDays := wholeDays(start, finish)
	if totalDays <= 0 {
		return nil
	}

	var sprintItems []*model.WorkItem
	var totalPoints float64
	for _, w := range items {
		if w.IterationPath == sprint.Path {
			sprintItems = append(sprintItems, w)
			totalPoints += w.Points()
		}
	}

	today := startOfDay(now)
	points := make([]BurndownPoint, 0, totalDays+1)
	for day := 0; day <= totalDays; day++ {
		date := start.AddDate(0, 0, day)
		point := BurndownPoint{
			Day:   day,
			Date:  date,
			Ideal: round1(totalPoints - totalPoints/float64(totalDays)*float64(day)),
		}

		if !date.After(today) {
			var donePoints float64
			for _, w := range sprintItems {
				done := w.CompletionDate()
				if done != nil && !startOfDay(*done).After(date) {
					donePoints += w.Points()
				}
			}
			actual := round1(totalPoints - donePoints)
			point.Actual = &actual
		}

		points = append(points, point)
	}

	return points
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
