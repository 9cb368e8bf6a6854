package schedule

import (
	"fmt"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
)

// Result is a validation report for a proposed lecture date. It is a plain
// value: validation never returns an error and never panics; the caller
// surfaces Message as a field-level form error.
type Result struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

func valid() Result {
	return Result{IsValid: true, Message: "Date is valid for this course"}
}

func invalid(msg string) Result {
	return Result{IsValid: false, Message: msg}
}

// ValidateDateForCourse checks a proposed lecture date against the batch
// calendar rules, short-circuiting at the first failing rule. The rule order
// is fixed: Friday leave day, Batch A month window, Batch B 31st leave day,
// Batch B dead zone, then the odd/even membership rule.
func ValidateDateForCourse(date time.Time, courseTitle string, batch models.Batch) Result {
	day := date.Day()

	// Friday is a hard leave day for both batches.
	if date.Weekday() == time.Friday {
		return invalid("Friday is a leave day for both batches")
	}

	if batch == models.BatchA && day > 27 {
		return invalid("Batch A runs from the 1st to the 27th of the month only")
	}

	if batch == models.BatchB {
		if day == 31 && daysInMonth(date.Year(), date.Month()) == 31 {
			return invalid("The 31st is a leave day for Batch B")
		}
		// Batch B lectures run from the 16th into the 12th of the next
		// month; the 13th-15th window belongs to neither half.
		if day < 16 && day > 12 {
			return invalid("Batch B has no lectures between the 13th and the 15th")
		}
	}

	if !ShouldCourseHaveLecture(courseTitle, batch, date) {
		parity := "even"
		if isOddDate(date) {
			parity = "odd"
		}
		return invalid(fmt.Sprintf("%s is not scheduled for %s on %s dates", courseTitle, batch, parity))
	}

	return valid()
}
