package schedule

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCoursesForDate_PartitionInvariant(t *testing.T) {
	// Odd and even days must both yield the full catalog, split across the
	// two batches with no duplicates.
	for _, d := range []time.Time{day(2026, time.June, 3), day(2026, time.June, 4)} {
		active := CoursesForDate(d)

		combined := append(append([]string(nil), active[models.BatchA]...), active[models.BatchB]...)
		require.Len(t, combined, len(models.CatalogTitles))

		seen := make(map[string]bool, len(combined))
		for _, title := range combined {
			assert.False(t, seen[title], "duplicate title %q on %s", title, d)
			seen[title] = true
		}

		want := append([]string(nil), models.CatalogTitles...)
		sort.Strings(want)
		sort.Strings(combined)
		assert.Equal(t, want, combined)
	}
}

func TestCoursesForDate_ParityFlip(t *testing.T) {
	odd := CoursesForDate(day(2026, time.June, 3))
	even := CoursesForDate(day(2026, time.June, 4))

	assert.Equal(t, odd[models.BatchA], even[models.BatchB])
	assert.Equal(t, odd[models.BatchB], even[models.BatchA])

	assert.Len(t, odd[models.BatchA], 8)
	assert.Len(t, odd[models.BatchB], 7)
}

func TestCoursesForDate_Idempotent(t *testing.T) {
	d := day(2026, time.June, 3)
	assert.Equal(t, CoursesForDate(d), CoursesForDate(d))
}

func TestCoursesForDate_ReturnsCopies(t *testing.T) {
	d := day(2026, time.June, 3)
	first := CoursesForDate(d)
	first[models.BatchA][0] = "corrupted"

	second := CoursesForDate(d)
	assert.NotEqual(t, "corrupted", second[models.BatchA][0])
}

func TestCoursesForDate_VideoEditingScenario(t *testing.T) {
	// On June 3rd (odd) Video Editing belongs to Batch A only; on June 4th
	// (even) it swaps to Batch B only.
	assert.True(t, ShouldCourseHaveLecture("Video Editing", models.BatchA, day(2026, time.June, 3)))
	assert.False(t, ShouldCourseHaveLecture("Video Editing", models.BatchB, day(2026, time.June, 3)))

	assert.True(t, ShouldCourseHaveLecture("Video Editing", models.BatchB, day(2026, time.June, 4)))
	assert.False(t, ShouldCourseHaveLecture("Video Editing", models.BatchA, day(2026, time.June, 4)))
}

func TestShouldCourseHaveLecture_CaseAndWhitespaceInsensitive(t *testing.T) {
	d := day(2026, time.June, 3)
	assert.True(t, ShouldCourseHaveLecture("  video editing  ", models.BatchA, d))
	assert.True(t, ShouldCourseHaveLecture("VIDEO EDITING", models.BatchA, d))
}

func TestShouldCourseHaveLecture_UnknownBatch(t *testing.T) {
	// Unknown batch is not an error: it just never matches.
	assert.False(t, ShouldCourseHaveLecture("Video Editing", models.Batch("Batch C"), day(2026, time.June, 3)))
}

func TestValidateDateForCourse_FridayLeaveDay(t *testing.T) {
	// 2026-06-05 is a Friday.
	res := ValidateDateForCourse(day(2026, time.June, 5), "Video Editing", models.BatchA)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message, "Friday")
}

func TestValidateDateForCourse_BatchAMonthWindow(t *testing.T) {
	// 2026-06-28 is a Sunday, past Batch A's 27th cutoff.
	res := ValidateDateForCourse(day(2026, time.June, 28), "Video Editing", models.BatchA)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message, "27th")
}

func TestValidateDateForCourse_BatchB31stBeforeParityRule(t *testing.T) {
	// 2026-01-31 is a Saturday in a 31-day month. The 31st rule must fire
	// before the odd/even membership rule even though the 31st is odd.
	res := ValidateDateForCourse(day(2026, time.January, 31), "Video Editing", models.BatchB)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message, "31st")
	assert.NotContains(t, res.Message, "odd")
}

func TestValidateDateForCourse_BatchBDeadZone(t *testing.T) {
	for _, d := range []int{13, 14, 15} {
		res := ValidateDateForCourse(day(2026, time.June, d), "Amazon VA", models.BatchB)
		assert.False(t, res.IsValid, "day %d", d)
		assert.Contains(t, res.Message, "13th")
	}
}

func TestValidateDateForCourse_ParityMismatch(t *testing.T) {
	// 2026-06-03 is odd; Amazon VA is a Batch B odd-date course, so Batch A
	// must reject it with the parity message.
	res := ValidateDateForCourse(day(2026, time.June, 3), "Amazon VA", models.BatchA)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Message, "odd")
}

func TestValidateDateForCourse_Valid(t *testing.T) {
	// 2026-06-03 (Wednesday, odd): Video Editing is active for Batch A.
	res := ValidateDateForCourse(day(2026, time.June, 3), "Video Editing", models.BatchA)
	assert.True(t, res.IsValid)
}

func TestCalculateLectureDates_Length(t *testing.T) {
	for _, batch := range models.Batches {
		dates := CalculateLectureDates(batch, day(2026, time.June, 1))
		assert.Len(t, dates, 15, "batch %s", batch)
	}
}

func TestCalculateLectureDates_StrictlyIncreasing(t *testing.T) {
	for _, batch := range models.Batches {
		dates := CalculateLectureDates(batch, day(2026, time.June, 1))
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]),
				"batch %s: dates[%d]=%s not after dates[%d]=%s", batch, i, dates[i], i-1, dates[i-1])
		}
	}
}

func TestCalculateLectureDates_BatchANeverPast27th(t *testing.T) {
	dates := CalculateLectureDates(models.BatchA, day(2026, time.June, 1))
	for _, d := range dates {
		assert.LessOrEqual(t, d.Day(), 27)
	}
}

func TestCalculateLectureDates_BatchBFirstMonthStartsOn16th(t *testing.T) {
	dates := CalculateLectureDates(models.BatchB, day(2026, time.June, 1))
	require.NotEmpty(t, dates)

	// June has 30 days, so days 16..30 are exactly the 15-date run.
	assert.Equal(t, 16, dates[0].Day())
	assert.Equal(t, time.June, dates[0].Month())
	assert.Equal(t, 30, dates[len(dates)-1].Day())
}

func TestCalculateLectureDates_BatchBRollsIntoNextMonth(t *testing.T) {
	// Starting from February (28 days in 2026): 16..28 gives 13 dates, so the
	// run must continue with March 1 and 2.
	dates := CalculateLectureDates(models.BatchB, day(2026, time.February, 1))
	require.Len(t, dates, 15)

	assert.Equal(t, day(2026, time.February, 16), dates[0])
	assert.Equal(t, day(2026, time.February, 28), dates[12])
	assert.Equal(t, day(2026, time.March, 1), dates[13])
	assert.Equal(t, day(2026, time.March, 2), dates[14])
}

func TestCalculateLectureDates_Idempotent(t *testing.T) {
	from := day(2026, time.June, 1)
	assert.Equal(t,
		CalculateLectureDates(models.BatchA, from),
		CalculateLectureDates(models.BatchA, from))
}

func TestCalculateLectureDates_UnknownBatch(t *testing.T) {
	assert.Nil(t, CalculateLectureDates(models.Batch("Batch C"), day(2026, time.June, 1)))
}
