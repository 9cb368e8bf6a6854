package server

import (
	"testing"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseBatch(t *testing.T) {
	tests := []struct {
		in   string
		want models.Batch
		ok   bool
	}{
		{"a", models.BatchA, true},
		{"A", models.BatchA, true},
		{"Batch A", models.BatchA, true},
		{"batch a", models.BatchA, true},
		{" b ", models.BatchB, true},
		{"Batch B", models.BatchB, true},
		{"c", "", false},
		{"", "", false},
		{"batch", "", false},
	}

	for _, tt := range tests {
		got, ok := parseBatch(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "lecture ID", humanizeParam("lectureId"))
	assert.Equal(t, "batch", humanizeParam("batch"))
}

func TestExtractYoutubeID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"Watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Short Link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"Watch With Extra Params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"Empty", "", ""},
		{"Not A URL", "::::", ""},
		{"Unrelated Site", "https://example.com/watch?x=1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractYoutubeID(tt.url))
		})
	}
}

func TestStatusForAppError(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, statusForAppError(models.NewNotFoundError("Lecture", 1)))
	assert.Equal(t, fiber.StatusBadRequest, statusForAppError(models.NewValidationError("bad")))
	assert.Equal(t, fiber.StatusUnauthorized, statusForAppError(models.NewUnauthorizedError("no")))
	assert.Equal(t, fiber.StatusForbidden, statusForAppError(models.NewForbiddenError("denied")))
	assert.Equal(t, fiber.StatusInternalServerError, statusForAppError(assert.AnError))
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 20)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	tests := []struct {
		name   string
		target string
		limit  int
		offset int
	}{
		{"Defaults", "/items", 20, 0},
		{"Explicit", "/items?limit=5&offset=10", 5, 10},
		{"Capped", "/items?limit=500", 100, 0},
		{"Negative", "/items?limit=-1&offset=-5", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, "GET", tt.target, "", nil)
			var body struct {
				Limit  int `json:"limit"`
				Offset int `json:"offset"`
			}
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.limit, body.Limit)
			assert.Equal(t, tt.offset, body.Offset)
		})
	}
}
