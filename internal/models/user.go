// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role decides chat privileges: admins and instructors may clear
// a lecture's chat; students may only read and post.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Admission statuses carried on each chat message so clients can badge
// participants.
const (
	AdmissionAdmitted = "admitted"
	AdmissionPending  = "pending"
	AdmissionExpelled = "expelled"
)

// User represents an account in the LMS. It is the identity provider for the
// live chat: role and admission status are always read from this record on
// the server, never from client-supplied fields.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"uniqueIndex;not null" json:"username"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	Role            string         `gorm:"not null;default:student" json:"role"`
	AdmissionStatus string         `gorm:"not null;default:pending" json:"admission_status"`
	Batch           Batch          `gorm:"not null" json:"batch"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsStaff reports whether the user holds chat moderation privileges.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleInstructor
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
