// Package schedule implements the date-driven course activation rules shared
// by the scheduling forms and the dashboard. It is the single source of truth
// for the odd/even date rule; both the HTTP validation endpoints and any
// server-side check import this package rather than re-deriving the lists.
//
// Every function here is pure: no I/O, no clock access unless the caller
// passes one in, and no mutation of the rule sets. Dates are interpreted by
// their civil day-of-month only, so results are identical across time zones
// and processes.
package schedule

import (
	"strings"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
)

// oddDateBatchACourses are the 8 titles active for Batch A on odd
// days-of-month (and for Batch B on even days).
var oddDateBatchACourses = []string{
	"Video Editing",
	"Graphic Designing",
	"Web Development",
	"SEO",
	"Content Writing",
	"Digital Marketing",
	"Freelancing",
	"E-Commerce",
}

// oddDateBatchBCourses are the remaining 7 titles, active for Batch B on odd
// days-of-month (and for Batch A on even days). The two lists partition the
// full 15-title catalog exactly once.
var oddDateBatchBCourses = []string{
	"Amazon VA",
	"Affiliate Marketing",
	"YouTube Mastery",
	"Mobile App Development",
	"UI UX Design",
	"Data Entry",
	"Dropshipping",
}

// isOddDate reports whether the civil day-of-month of d is odd. Month and
// year boundaries do not affect the rule.
func isOddDate(d time.Time) bool {
	return d.Day()%2 == 1
}

// CoursesForDate maps a calendar date to the active course titles per batch.
// On odd days Batch A gets the 8-title list and Batch B the 7-title list; on
// even days the assignment flips. The returned slices are fresh copies, so
// callers can never corrupt the rule sets.
func CoursesForDate(date time.Time) map[models.Batch][]string {
	a, b := oddDateBatchACourses, oddDateBatchBCourses
	if !isOddDate(date) {
		a, b = b, a
	}
	return map[models.Batch][]string{
		models.BatchA: append([]string(nil), a...),
		models.BatchB: append([]string(nil), b...),
	}
}

// ShouldCourseHaveLecture reports whether the course title is active for the
// batch on the given date. The title match is case-insensitive and trims
// surrounding whitespace. An unrecognized batch simply yields false; absence
// of a match is not an error.
func ShouldCourseHaveLecture(courseTitle string, batch models.Batch, date time.Time) bool {
	titles, ok := CoursesForDate(date)[batch]
	if !ok {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(courseTitle))
	for _, t := range titles {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

// daysInMonth returns the number of days in the month containing d.
func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
