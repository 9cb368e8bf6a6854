package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCourseWithLectures(t *testing.T, db *gorm.DB, n int) (models.Course, []models.Lecture) {
	t.Helper()

	course := models.Course{ID: 1, Title: "Web Development", Batch: models.BatchA}
	require.NoError(t, db.Create(&course).Error)

	lectures := make([]models.Lecture, 0, n)
	for i := 0; i < n; i++ {
		lec := models.Lecture{
			CourseID:      course.ID,
			Title:         "Web Development",
			Date:          time.Date(2026, time.June, 1+2*i, 0, 0, 0, 0, time.UTC),
			Time:          "8:00 PM",
			LectureNumber: i + 1,
		}
		require.NoError(t, db.Create(&lec).Error)
		lectures = append(lectures, lec)
	}
	return course, lectures
}

func TestLectureRepository_SetCurrentlyLive_ClearsSiblings(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	_, lectures := seedCourseWithLectures(t, db, 3)

	// Make the first lecture live, then start the second one.
	_, err := repo.SetCurrentlyLive(ctx, lectures[0].ID)
	require.NoError(t, err)

	live, err := repo.SetCurrentlyLive(ctx, lectures[1].ID)
	require.NoError(t, err)
	assert.True(t, live.CurrentlyLive)

	var count int64
	require.NoError(t, db.Model(&models.Lecture{}).
		Where("course_id = ? AND currently_live", live.CourseID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "only one lecture per course may be live")

	var first models.Lecture
	require.NoError(t, db.First(&first, lectures[0].ID).Error)
	assert.False(t, first.CurrentlyLive)
}

func TestLectureRepository_SetCurrentlyLive_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLectureRepository(db)

	_, err := repo.SetCurrentlyLive(context.Background(), 999)
	assert.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestLectureRepository_MarkDelivered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	_, lectures := seedCourseWithLectures(t, db, 1)
	_, err := repo.SetCurrentlyLive(ctx, lectures[0].ID)
	require.NoError(t, err)

	done, err := repo.MarkDelivered(ctx, lectures[0].ID, "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.True(t, done.Delivered)
	assert.False(t, done.CurrentlyLive)
	assert.Equal(t, "dQw4w9WgXcQ", done.YoutubeID)
}

func TestLectureRepository_BeforeSaveDerivesDay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	course := models.Course{ID: 1, Title: "SEO", Batch: models.BatchA}
	require.NoError(t, db.Create(&course).Error)

	lec := models.Lecture{
		CourseID: course.ID,
		Title:    "SEO",
		// 2026-06-01 is a Monday
		Date:          time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		LectureNumber: 1,
	}
	require.NoError(t, repo.Create(ctx, &lec))
	assert.Equal(t, "Monday", lec.Day)

	// Client-supplied Day is overwritten on update too.
	lec.Day = "Someday"
	require.NoError(t, repo.Update(ctx, &lec))
	assert.Equal(t, "Monday", lec.Day)
}

func TestLectureRepository_NextLectureNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewLectureRepository(db)
	ctx := context.Background()

	course := models.Course{ID: 1, Title: "Freelancing", Batch: models.BatchB}
	require.NoError(t, db.Create(&course).Error)

	n, err := repo.NextLectureNumber(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Create(ctx, &models.Lecture{
		CourseID:      course.ID,
		Title:         "Freelancing",
		Date:          time.Date(2026, time.June, 16, 0, 0, 0, 0, time.UTC),
		LectureNumber: n,
	}))

	n, err = repo.NextLectureNumber(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCourseRepository_EnsureCatalogIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureCatalog(ctx))
	require.NoError(t, repo.EnsureCatalog(ctx))

	courses, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 30)

	batchB, err := repo.ListByBatch(ctx, models.BatchB)
	require.NoError(t, err)
	require.Len(t, batchB, 15)
	assert.Equal(t, uint(101), batchB[0].ID)
}
