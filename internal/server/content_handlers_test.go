package server

import (
	"net/http"
	"testing"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementLifecycle(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	staff, token := createTestUser(t, s, models.RoleInstructor)

	resp := doRequest(t, app, http.MethodPost, "/api/announcements", token, fiber.Map{
		"title":  "Welcome to the new term",
		"body":   "Lectures start next week.",
		"pinned": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Announcement
	decodeBody(t, resp, &created)
	assert.Equal(t, staff.ID, created.AuthorID)
	assert.True(t, created.Pinned)

	// public read
	resp = doRequest(t, app, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Announcement
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)

	// partial update leaves other fields alone
	resp = doRequest(t, app, http.MethodPut, "/api/announcements/1", token, fiber.Map{
		"pinned": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Announcement
	decodeBody(t, resp, &updated)
	assert.False(t, updated.Pinned)
	assert.Equal(t, "Welcome to the new term", updated.Title)

	resp = doRequest(t, app, http.MethodDelete, "/api/announcements/1", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/announcements/1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnnouncementsOrderPinnedFirst(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, token := createTestUser(t, s, models.RoleAdmin)

	for _, a := range []fiber.Map{
		{"title": "old plain", "body": "x"},
		{"title": "pinned one", "body": "x", "pinned": true},
		{"title": "new plain", "body": "x"},
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/announcements", token, a)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Announcement
	decodeBody(t, resp, &list)
	require.Len(t, list, 3)
	assert.Equal(t, "pinned one", list[0].Title)
}

func TestCourseNotes(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	seedCatalog(t, s)
	_, staffToken := createTestUser(t, s, models.RoleInstructor)
	_, studentToken := createTestUser(t, s, models.RoleStudent)

	resp := doRequest(t, app, http.MethodPost, "/api/courses/1/notes", staffToken, fiber.Map{
		"title":    "Week 1 handout",
		"body":     "Read chapters 1-3.",
		"file_url": "https://cdn.learnlms.local/notes/week1.pdf",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var note models.Note
	decodeBody(t, resp, &note)
	assert.Equal(t, uint(1), note.CourseID)

	// students can read notes but not write them
	resp = doRequest(t, app, http.MethodGet, "/api/courses/1/notes", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notes []models.Note
	decodeBody(t, resp, &notes)
	require.Len(t, notes, 1)

	resp = doRequest(t, app, http.MethodPost, "/api/courses/1/notes", studentToken, fiber.Map{
		"title": "nope",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// notes on a course that does not exist
	resp = doRequest(t, app, http.MethodGet, "/api/courses/999/notes", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFAQOrdering(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, token := createTestUser(t, s, models.RoleAdmin)

	for _, f := range []fiber.Map{
		{"question": "Second?", "answer": "Yes.", "position": 2},
		{"question": "First?", "answer": "Yes.", "position": 1},
	} {
		resp := doRequest(t, app, http.MethodPost, "/api/faqs", token, f)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/faqs", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var faqs []models.FAQ
	decodeBody(t, resp, &faqs)
	require.Len(t, faqs, 2)
	assert.Equal(t, "First?", faqs[0].Question)
	assert.Equal(t, "Second?", faqs[1].Question)
}

func TestCoursesEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	seedCatalog(t, s)

	resp := doRequest(t, app, http.MethodGet, "/api/courses/?batch=a&date=2026-09-05", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Date    string `json:"date"`
		Courses []struct {
			models.Course
			ActiveToday bool `json:"active_today"`
		} `json:"courses"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "2026-09-05", body.Date)
	require.Len(t, body.Courses, 15)

	active := 0
	for _, course := range body.Courses {
		require.Equal(t, models.BatchA, course.Batch)
		if course.ActiveToday {
			active++
		}
	}
	// odd date: the 8-title half of the catalog is active for Batch A
	assert.Equal(t, 8, active)
}
