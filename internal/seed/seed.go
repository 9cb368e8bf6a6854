// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/repository"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/schedule"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumStudents      int
	LecturesPerBatch int
	ShouldClean      bool
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Development fast path only.
	SkipBcrypt bool
}

var faqSamples = []models.FAQ{
	{Question: "How do I know which courses run today?", Answer: "Check the Today page. Batch A courses run on odd dates for the first eight titles and even dates for the rest; Batch B runs the opposite way.", Position: 1},
	{Question: "Why can't I create a lecture on some dates?", Answer: "Lecture dates must match the course's schedule parity for your batch. The form shows the next valid dates.", Position: 2},
	{Question: "When does the live chat open?", Answer: "The chat room opens as soon as the instructor starts the lecture. You can join the room early and wait.", Position: 3},
	{Question: "What happens when a lecture ends?", Answer: "A recording link appears on the lecture page shortly after the instructor ends the session.", Position: 4},
	{Question: "My admission still says pending. What do I do?", Answer: "Admissions are reviewed by staff within a few days. You can attend live sessions while pending.", Position: 5},
}

// Seed populates the database with demo data: the fixed course catalog, an
// admin, a handful of instructors, students split across both batches, and
// lectures placed on schedule-valid dates.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d students and %d lectures per batch...",
		opts.NumStudents, opts.LecturesPerBatch)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	courseRepo := repository.NewCourseRepository(db)
	if err := courseRepo.EnsureCatalog(context.Background()); err != nil {
		return fmt.Errorf("failed to seed course catalog: %w", err)
	}
	log.Printf("✓ course catalog ensured (%d courses)", 2*len(models.CatalogTitles))

	f := NewFactory(db, opts)

	admin, err := f.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@learnlms.local"
		u.Role = models.RoleAdmin
		u.AdmissionStatus = models.AdmissionAdmitted
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	instructors := make([]*models.User, 0, 3)
	for i := 0; i < 3; i++ {
		instructor, err := f.CreateUser(func(u *models.User) {
			u.Role = models.RoleInstructor
			u.AdmissionStatus = models.AdmissionAdmitted
		})
		if err != nil {
			return fmt.Errorf("failed to create instructor: %w", err)
		}
		instructors = append(instructors, instructor)
	}
	log.Printf("✓ admin and %d instructors created", len(instructors))

	students, err := f.CreateStudents(opts.NumStudents)
	if err != nil {
		return fmt.Errorf("failed to create students: %w", err)
	}
	log.Printf("✓ %d students created", len(students))

	lectures, err := f.CreateLectures(opts.LecturesPerBatch)
	if err != nil {
		return fmt.Errorf("failed to create lectures: %w", err)
	}
	log.Printf("✓ %d lectures created", lectures)

	if err := f.CreateAnnouncements(admin, 5); err != nil {
		return fmt.Errorf("failed to create announcements: %w", err)
	}
	log.Println("✓ announcements created")

	if err := f.CreateNotes(2); err != nil {
		return fmt.Errorf("failed to create notes: %w", err)
	}
	log.Println("✓ course notes created")

	for i := range faqSamples {
		faq := faqSamples[i]
		if err := db.Where(models.FAQ{Question: faq.Question}).FirstOrCreate(&faq).Error; err != nil {
			return fmt.Errorf("failed to create FAQ: %w", err)
		}
	}
	log.Printf("✓ %d FAQs available", len(faqSamples))

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

// clearData truncates mutable demo tables. The course catalog stays: it is
// fixed and EnsureCatalog is idempotent.
func clearData(db *gorm.DB) error {
	tables := []string{"notes", "announcements", "faqs", "lectures", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// nextValidDates returns up to n schedule-valid dates for the course,
// starting from today.
func nextValidDates(courseTitle string, batch models.Batch, n int) []time.Time {
	dates := make([]time.Time, 0, n)
	day := time.Now().UTC()
	for scanned := 0; len(dates) < n && scanned < 90; scanned++ {
		if schedule.ShouldCourseHaveLecture(courseTitle, batch, day) {
			dates = append(dates, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
		}
		day = day.AddDate(0, 0, 1)
	}
	return dates
}
