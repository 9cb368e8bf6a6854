package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:        gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		Role:            models.RoleStudent,
		AdmissionStatus: models.AdmissionAdmitted,
		Batch:           models.Batches[f.rng.Intn(len(models.Batches))],
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateStudents creates n students split across both batches, with a
// realistic spread of admission statuses.
func (f *Factory) CreateStudents(n int) ([]*models.User, error) {
	students := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		batch := models.Batches[i%len(models.Batches)]
		status := models.AdmissionAdmitted
		switch {
		case i%7 == 3:
			status = models.AdmissionPending
		case i%23 == 11:
			status = models.AdmissionExpelled
		}
		student, err := f.CreateUser(func(u *models.User) {
			u.Batch = batch
			u.AdmissionStatus = status
		})
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, nil
}

// CreateLectures creates up to perBatch lectures for every course, placed on
// the next schedule-valid dates for that course's batch. Past lectures (in
// seed terms, the first of each course) are marked delivered with a
// recording attached.
func (f *Factory) CreateLectures(perBatch int) (int, error) {
	var courses []models.Course
	if err := f.db.Order("id").Find(&courses).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, course := range courses {
		dates := nextValidDates(course.Title, course.Batch, perBatch)
		for i, date := range dates {
			lecture := &models.Lecture{
				CourseID:      course.ID,
				Title:         course.Title,
				Date:          date,
				Time:          fmt.Sprintf("%02d:00", 14+f.rng.Intn(6)),
				LectureNumber: i + 1,
			}
			if i == 0 {
				lecture.Delivered = true
				lecture.YoutubeID = gofakeit.LetterN(11)
				lecture.YoutubeURL = "https://www.youtube.com/watch?v=" + lecture.YoutubeID
			}
			if err := f.db.Create(lecture).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// CreateAnnouncements posts n announcements authored by the given staff
// user, pinning the first.
func (f *Factory) CreateAnnouncements(author *models.User, n int) error {
	for i := 0; i < n; i++ {
		announcement := &models.Announcement{
			Title:    gofakeit.Sentence(5),
			Body:     gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
			Pinned:   i == 0,
		}
		// spread created_at so the feed looks lived-in
		daysBack := f.rng.Intn(30)
		announcement.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)
		if err := f.db.Create(announcement).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateNotes attaches perCourse study notes to every course.
func (f *Factory) CreateNotes(perCourse int) error {
	var courses []models.Course
	if err := f.db.Order("id").Find(&courses).Error; err != nil {
		return err
	}
	for _, course := range courses {
		for i := 0; i < perCourse; i++ {
			note := &models.Note{
				CourseID: course.ID,
				Title:    fmt.Sprintf("%s — Lesson %d Notes", course.Title, i+1),
				Body:     gofakeit.Paragraph(2, 4, 10, "\n"),
				FileURL:  fmt.Sprintf("https://cdn.learnlms.local/notes/%s.pdf", gofakeit.UUID()),
			}
			if err := f.db.Create(note).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// MustCreateUser is a test helper that panics on factory errors.
func (f *Factory) MustCreateUser(overrides ...func(*models.User)) *models.User {
	user, err := f.CreateUser(overrides...)
	if err != nil {
		log.Panicf("seed: MustCreateUser: %v", err)
	}
	return user
}
