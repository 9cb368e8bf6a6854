package models

import (
	"time"

	"gorm.io/gorm"
)

// Lecture is a single scheduled class for a course. At most one lecture per
// course is CurrentlyLive at a time; StartLecture clears the flag on every
// sibling lecture in the same transaction.
type Lecture struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CourseID      uint           `gorm:"not null;index" json:"course_id"`
	Course        *Course        `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Date          time.Time      `gorm:"not null;index" json:"date"`
	Time          string         `json:"time"`
	Day           string         `json:"day"`
	YoutubeURL    string         `json:"youtube_url"`
	YoutubeID     string         `json:"youtube_id"`
	LectureNumber int            `gorm:"not null;default:1" json:"lecture_number"`
	Delivered     bool           `gorm:"not null;default:false" json:"delivered"`
	CurrentlyLive bool           `gorm:"not null;default:false;index" json:"currentlyLive"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave derives Day from Date. The field is denormalized for display
// only and is never trusted from client input.
func (l *Lecture) BeforeSave(*gorm.DB) error {
	if !l.Date.IsZero() {
		l.Day = l.Date.Weekday().String()
	}
	return nil
}
