package repository

import (
	"context"
	"errors"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/observability"

	"gorm.io/gorm"
)

// CourseRepository defines persistence operations for the course catalog.
type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	GetByTitleAndBatch(ctx context.Context, title string, batch models.Batch) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByBatch(ctx context.Context, batch models.Batch) ([]models.Course, error)
	EnsureCatalog(ctx context.Context) error
}

type courseRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCourseRepository returns a new CourseRepository implementation.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db, log: observability.NewRepoLogger("courses")}
}

func (r *courseRepository) internalErr(ctx context.Context, err error, operation string) error {
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", id)
		}
		return nil, r.internalErr(ctx, err, "get_by_id")
	}
	return &course, nil
}

func (r *courseRepository) GetByTitleAndBatch(ctx context.Context, title string, batch models.Batch) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Where("title = ? AND batch = ?", title, batch).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Course", 0)
		}
		return nil, r.internalErr(ctx, err, "get_by_title_and_batch")
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Order("id").Find(&courses).Error; err != nil {
		return nil, r.internalErr(ctx, err, "list")
	}
	return courses, nil
}

func (r *courseRepository) ListByBatch(ctx context.Context, batch models.Batch) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Where("batch = ?", batch).Order("id").Find(&courses).Error; err != nil {
		return nil, r.internalErr(ctx, err, "list_by_batch")
	}
	return courses, nil
}

// EnsureCatalog seeds the fixed 30-course catalog. It is idempotent: existing
// rows are left untouched so repeated startups never duplicate courses.
func (r *courseRepository) EnsureCatalog(ctx context.Context) error {
	for _, course := range models.BuildCatalog() {
		c := course
		err := r.db.WithContext(ctx).
			Where(models.Course{ID: c.ID}).
			FirstOrCreate(&c).Error
		if err != nil {
			return r.internalErr(ctx, err, "ensure_catalog")
		}
	}
	return nil
}
