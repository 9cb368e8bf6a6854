package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	user, token := createTestUser(t, s, models.RoleStudent)

	resp := doRequest(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, user.Username, me.Username)
	assert.Empty(t, me.Password, "password hash must never serialize")
}

func TestSetUserRole(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, adminToken := createTestUser(t, s, models.RoleAdmin)
	student, _ := createTestUser(t, s, models.RoleStudent)

	target := "/api/users/" + strconv.FormatUint(uint64(student.ID), 10) + "/role"

	resp := doRequest(t, app, http.MethodPut, target, adminToken, fiber.Map{
		"role": models.RoleInstructor,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.RoleInstructor, updated.Role)

	resp = doRequest(t, app, http.MethodPut, target, adminToken, fiber.Map{
		"role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetUserAdmission(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, adminToken := createTestUser(t, s, models.RoleAdmin)
	student, _ := createTestUser(t, s, models.RoleStudent, func(u *models.User) {
		u.AdmissionStatus = models.AdmissionPending
	})

	target := "/api/users/" + strconv.FormatUint(uint64(student.ID), 10) + "/admission"

	resp := doRequest(t, app, http.MethodPut, target, adminToken, fiber.Map{
		"admission_status": models.AdmissionAdmitted,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.AdmissionAdmitted, updated.AdmissionStatus)

	resp = doRequest(t, app, http.MethodPut, target, adminToken, fiber.Map{
		"admission_status": "waitlisted",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/users/999/admission", adminToken, fiber.Map{
		"admission_status": models.AdmissionAdmitted,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAllUsers(t *testing.T) {
	s, app, _ := newTestServer(t, nil)
	_, adminToken := createTestUser(t, s, models.RoleAdmin)
	createTestUser(t, s, models.RoleStudent)
	createTestUser(t, s, models.RoleStudent)

	resp := doRequest(t, app, http.MethodGet, "/api/users?limit=2", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Users, 2)
}
