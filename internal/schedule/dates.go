package schedule

import (
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
)

// lectureRunLength is the number of dates in a batch's nominal lecture run.
const lectureRunLength = 15

// CalculateLectureDates produces the batch's nominal 15-date lecture run
// starting from the month of `from`. The result is strictly increasing and
// deterministic for a given month.
//
// Batch A contributes days 1 through min(27, days-in-month) of each month,
// rolling into subsequent months until 15 dates are collected. Batch B's
// first month contributes days 16 through end-of-month, and every later
// month contributes days 1 through 12.
func CalculateLectureDates(batch models.Batch, from time.Time) []time.Time {
	year, month := from.Year(), from.Month()
	dates := make([]time.Time, 0, lectureRunLength)

	for iteration := 0; len(dates) < lectureRunLength; iteration++ {
		lastDay := daysInMonth(year, month)

		var lo, hi int
		switch batch {
		case models.BatchA:
			lo, hi = 1, min(27, lastDay)
		case models.BatchB:
			if iteration == 0 {
				lo, hi = 16, lastDay
			} else {
				lo, hi = 1, 12
			}
		default:
			return nil
		}

		for day := lo; day <= hi && len(dates) < lectureRunLength; day++ {
			dates = append(dates, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return dates
}

// CalculateLectureDatesNow is CalculateLectureDates anchored at the current
// month.
func CalculateLectureDatesNow(batch models.Batch) []time.Time {
	return CalculateLectureDates(batch, time.Now())
}
