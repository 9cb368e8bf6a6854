// Command main runs the database seeder for Learn LMS.
package main

import (
	"flag"
	"log"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/config"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/database"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/seed"
)

func main() {
	numStudents := flag.Int("students", 50, "Number of student accounts to create")
	lecturesPerBatch := flag.Int("lectures", 3, "Number of lectures per course")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing (dev only)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d students, %d lectures per course, clean=%v\n",
		*numStudents, *lecturesPerBatch, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(database.DB, seed.Options{
		NumStudents:      *numStudents,
		LecturesPerBatch: *lecturesPerBatch,
		ShouldClean:      *shouldClean,
		SkipBcrypt:       *skipBcrypt,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
