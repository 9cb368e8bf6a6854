package repository

import (
	"context"
	"errors"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/observability"

	"gorm.io/gorm"
)

// LectureRepository defines persistence operations for lectures.
type LectureRepository interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByID(ctx context.Context, id uint) (*models.Lecture, error)
	GetByCourseID(ctx context.Context, courseID uint, limit, offset int) ([]models.Lecture, error)
	Update(ctx context.Context, lecture *models.Lecture) error
	Delete(ctx context.Context, id uint) error
	SetCurrentlyLive(ctx context.Context, id uint) (*models.Lecture, error)
	ClearCurrentlyLive(ctx context.Context, id uint) error
	MarkDelivered(ctx context.Context, id uint, youtubeURL, youtubeID string) (*models.Lecture, error)
	NextLectureNumber(ctx context.Context, courseID uint) (int, error)
}

type lectureRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLectureRepository returns a new LectureRepository implementation.
func NewLectureRepository(db *gorm.DB) LectureRepository {
	return &lectureRepository{db: db, log: observability.NewRepoLogger("lectures")}
}

func (r *lectureRepository) internalErr(ctx context.Context, err error, operation string) error {
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

func (r *lectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	if err := r.db.WithContext(ctx).Create(lecture).Error; err != nil {
		return r.internalErr(ctx, err, "create")
	}
	return nil
}

func (r *lectureRepository) GetByID(ctx context.Context, id uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := r.db.WithContext(ctx).Preload("Course").First(&lecture, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Lecture", id)
		}
		return nil, r.internalErr(ctx, err, "get_by_id")
	}
	return &lecture, nil
}

func (r *lectureRepository) GetByCourseID(ctx context.Context, courseID uint, limit, offset int) ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("date ASC, lecture_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&lectures).Error
	if err != nil {
		return nil, r.internalErr(ctx, err, "get_by_course_id")
	}
	return lectures, nil
}

func (r *lectureRepository) Update(ctx context.Context, lecture *models.Lecture) error {
	if err := r.db.WithContext(ctx).Save(lecture).Error; err != nil {
		return r.internalErr(ctx, err, "update")
	}
	return nil
}

func (r *lectureRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Lecture{}, id)
	if res.Error != nil {
		return r.internalErr(ctx, res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Lecture", id)
	}
	return nil
}

// SetCurrentlyLive flips the live flag on in a transaction that first clears
// it on every other lecture of the same course, so at most one lecture per
// course is live regardless of interleaved requests.
func (r *lectureRepository) SetCurrentlyLive(ctx context.Context, id uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lecture, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Lecture", id)
			}
			return r.internalErr(ctx, err, "set_currently_live")
		}

		err := tx.Model(&models.Lecture{}).
			Where("course_id = ? AND id <> ? AND currently_live", lecture.CourseID, id).
			Update("currently_live", false).Error
		if err != nil {
			return r.internalErr(ctx, err, "set_currently_live")
		}

		lecture.CurrentlyLive = true
		if err := tx.Save(&lecture).Error; err != nil {
			return r.internalErr(ctx, err, "set_currently_live")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepository) ClearCurrentlyLive(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Lecture{}).
		Where("id = ?", id).
		Update("currently_live", false)
	if res.Error != nil {
		return r.internalErr(ctx, res.Error, "clear_currently_live")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Lecture", id)
	}
	return nil
}

// MarkDelivered ends a lecture: records the recording URL, sets Delivered and
// clears the live flag in one update.
func (r *lectureRepository) MarkDelivered(ctx context.Context, id uint, youtubeURL, youtubeID string) (*models.Lecture, error) {
	var lecture models.Lecture
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lecture, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Lecture", id)
			}
			return r.internalErr(ctx, err, "mark_delivered")
		}

		lecture.Delivered = true
		lecture.CurrentlyLive = false
		if youtubeURL != "" {
			lecture.YoutubeURL = youtubeURL
		}
		if youtubeID != "" {
			lecture.YoutubeID = youtubeID
		}
		if err := tx.Save(&lecture).Error; err != nil {
			return r.internalErr(ctx, err, "mark_delivered")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepository) NextLectureNumber(ctx context.Context, courseID uint) (int, error) {
	var max int64
	err := r.db.WithContext(ctx).Model(&models.Lecture{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(lecture_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, r.internalErr(ctx, err, "next_lecture_number")
	}
	return int(max) + 1, nil
}
