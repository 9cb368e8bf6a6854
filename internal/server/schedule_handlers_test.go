package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTodaysCourses(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	t.Run("Odd Date", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/schedule/today?date=2026-09-05", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Date    string              `json:"date"`
			Parity  string              `json:"parity"`
			Courses map[string][]string `json:"courses"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "2026-09-05", body.Date)
		assert.Equal(t, "odd", body.Parity)
		assert.Contains(t, body.Courses["Batch A"], "Video Editing")
		assert.NotContains(t, body.Courses["Batch B"], "Video Editing")
	})

	t.Run("Even Date", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/schedule/today?date=2026-09-06", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Parity  string              `json:"parity"`
			Courses map[string][]string `json:"courses"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "even", body.Parity)
		assert.Contains(t, body.Courses["Batch B"], "Video Editing")
	})

	t.Run("Bad Date", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/schedule/today?date=06-09-2026", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestValidateLectureDate(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	tests := []struct {
		name    string
		target  string
		status  int
		isValid bool
	}{
		{
			name:    "Valid Odd Date Batch A",
			target:  "/api/schedule/validate?course=Video%20Editing&batch=Batch%20A&date=2026-09-05",
			status:  http.StatusOK,
			isValid: true,
		},
		{
			name:   "Wrong Parity Is Still 200",
			target: "/api/schedule/validate?course=Video%20Editing&batch=Batch%20A&date=2026-09-06",
			status: http.StatusOK,
		},
		{
			name:   "Missing Course",
			target: "/api/schedule/validate?batch=Batch%20A&date=2026-09-05",
			status: http.StatusBadRequest,
		},
		{
			name:   "Bad Batch",
			target: "/api/schedule/validate?course=SEO&batch=Batch%20C&date=2026-09-05",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodGet, tt.target, "", nil)
			require.Equal(t, tt.status, resp.StatusCode)

			if tt.status == http.StatusOK {
				var body struct {
					IsValid bool   `json:"is_valid"`
					Message string `json:"message"`
				}
				decodeBody(t, resp, &body)
				assert.Equal(t, tt.isValid, body.IsValid)
				if !tt.isValid {
					assert.NotEmpty(t, body.Message)
				}
			}
		})
	}
}

func TestGetLectureDates(t *testing.T) {
	_, app, _ := newTestServer(t, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/schedule/lecture-dates/a?from=2026-09-01", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Batch string   `json:"batch"`
		From  string   `json:"from"`
		Dates []string `json:"dates"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Batch A", body.Batch)
	assert.Equal(t, "2026-09-01", body.From)
	assert.Len(t, body.Dates, 15)

	resp = doRequest(t, app, http.MethodGet, "/api/schedule/lecture-dates/c", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
