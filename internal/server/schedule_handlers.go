package server

import (
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

// GetTodaysCourses handles GET /api/schedule/today[?date=YYYY-MM-DD].
// Returns which courses run for each batch on the given civil date.
func (s *Server) GetTodaysCourses(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	parity := "even"
	if date.Day()%2 == 1 {
		parity = "odd"
	}

	return c.JSON(fiber.Map{
		"date":    date.Format("2006-01-02"),
		"parity":  parity,
		"courses": schedule.CoursesForDate(date),
	})
}

// ValidateLectureDate handles GET /api/schedule/validate?date&course&batch.
// The verdict is always 200: validity is data, not an error.
func (s *Server) ValidateLectureDate(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	course := c.Query("course")
	if course == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("course is required"))
	}

	batch, ok := parseBatch(c.Query("batch"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Batch must be \"Batch A\" or \"Batch B\""))
	}

	result := schedule.ValidateDateForCourse(date, course, batch)
	return c.JSON(fiber.Map{
		"date":     date.Format("2006-01-02"),
		"course":   course,
		"batch":    batch,
		"is_valid": result.IsValid,
		"message":  result.Message,
	})
}

// GetLectureDates handles GET /api/schedule/lecture-dates/:batch[?from=YYYY-MM-DD].
// Returns the batch's next 15 scheduled lecture dates.
func (s *Server) GetLectureDates(c *fiber.Ctx) error {
	batch, ok := parseBatch(c.Params("batch"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Batch must be \"Batch A\" or \"Batch B\""))
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	dates := schedule.CalculateLectureDates(batch, from)
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	return c.JSON(fiber.Map{
		"batch": batch,
		"from":  from.Format("2006-01-02"),
		"dates": formatted,
	})
}
