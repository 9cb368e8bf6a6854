package repository

import (
	"context"
	"errors"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/observability"

	"gorm.io/gorm"
)

// AnnouncementRepository defines persistence operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	List(ctx context.Context, limit, offset int) ([]models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAnnouncementRepository returns a new AnnouncementRepository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db, log: observability.NewRepoLogger("announcements")}
}

func (r *announcementRepository) internalErr(ctx context.Context, err error, operation string) error {
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return r.internalErr(ctx, err, "create")
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.WithContext(ctx).Preload("Author").First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Announcement", id)
		}
		return nil, r.internalErr(ctx, err, "get_by_id")
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	var as []models.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&as).Error
	if err != nil {
		return nil, r.internalErr(ctx, err, "list")
	}
	return as, nil
}

func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return r.internalErr(ctx, err, "update")
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return r.internalErr(ctx, res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Announcement", id)
	}
	return nil
}

// NoteRepository defines persistence operations for course notes.
type NoteRepository interface {
	Create(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id uint) (*models.Note, error)
	GetByCourseID(ctx context.Context, courseID uint, limit, offset int) ([]models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewNoteRepository returns a new NoteRepository implementation.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db, log: observability.NewRepoLogger("notes")}
}

func (r *noteRepository) internalErr(ctx context.Context, err error, operation string) error {
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

func (r *noteRepository) Create(ctx context.Context, n *models.Note) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return r.internalErr(ctx, err, "create")
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (*models.Note, error) {
	var n models.Note
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Note", id)
		}
		return nil, r.internalErr(ctx, err, "get_by_id")
	}
	return &n, nil
}

func (r *noteRepository) GetByCourseID(ctx context.Context, courseID uint, limit, offset int) ([]models.Note, error) {
	var ns []models.Note
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ns).Error
	if err != nil {
		return nil, r.internalErr(ctx, err, "get_by_course_id")
	}
	return ns, nil
}

func (r *noteRepository) Update(ctx context.Context, n *models.Note) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return r.internalErr(ctx, err, "update")
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Note{}, id)
	if res.Error != nil {
		return r.internalErr(ctx, res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Note", id)
	}
	return nil
}

// FAQRepository defines persistence operations for the help page FAQ list.
type FAQRepository interface {
	Create(ctx context.Context, f *models.FAQ) error
	GetByID(ctx context.Context, id uint) (*models.FAQ, error)
	List(ctx context.Context) ([]models.FAQ, error)
	Update(ctx context.Context, f *models.FAQ) error
	Delete(ctx context.Context, id uint) error
}

type faqRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFAQRepository returns a new FAQRepository implementation.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db, log: observability.NewRepoLogger("faqs")}
}

func (r *faqRepository) internalErr(ctx context.Context, err error, operation string) error {
	r.log.LogError(ctx, err, operation)
	return models.NewInternalError(err)
}

func (r *faqRepository) Create(ctx context.Context, f *models.FAQ) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return r.internalErr(ctx, err, "create")
	}
	return nil
}

func (r *faqRepository) GetByID(ctx context.Context, id uint) (*models.FAQ, error) {
	var f models.FAQ
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FAQ", id)
		}
		return nil, r.internalErr(ctx, err, "get_by_id")
	}
	return &f, nil
}

func (r *faqRepository) List(ctx context.Context) ([]models.FAQ, error) {
	var fs []models.FAQ
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&fs).Error; err != nil {
		return nil, r.internalErr(ctx, err, "list")
	}
	return fs, nil
}

func (r *faqRepository) Update(ctx context.Context, f *models.FAQ) error {
	if err := r.db.WithContext(ctx).Save(f).Error; err != nil {
		return r.internalErr(ctx, err, "update")
	}
	return nil
}

func (r *faqRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.FAQ{}, id)
	if res.Error != nil {
		return r.internalErr(ctx, res.Error, "delete")
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("FAQ", id)
	}
	return nil
}
