package server

import (
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

// courseView decorates a catalog course with today's schedule verdict so
// dashboards can sort active courses first without re-implementing the rules.
type courseView struct {
	models.Course
	ActiveToday bool `json:"active_today"`
}

// GetCourses handles GET /api/courses[?batch=][&date=YYYY-MM-DD]
func (s *Server) GetCourses(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var (
		courses []models.Course
		repoErr error
	)
	if raw := c.Query("batch"); raw != "" {
		batch, ok := parseBatch(raw)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Batch must be \"Batch A\" or \"Batch B\""))
		}
		courses, repoErr = s.courseRepo.ListByBatch(c.UserContext(), batch)
	} else {
		courses, repoErr = s.courseRepo.List(c.UserContext())
	}
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	views := make([]courseView, len(courses))
	for i, course := range courses {
		views[i] = courseView{
			Course:      course,
			ActiveToday: schedule.ShouldCourseHaveLecture(course.Title, course.Batch, date),
		}
	}

	return c.JSON(fiber.Map{
		"date":    date.Format("2006-01-02"),
		"courses": views,
	})
}

// GetCourse handles GET /api/courses/:id
func (s *Server) GetCourse(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	course, repoErr := s.courseRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	return c.JSON(courseView{
		Course:      *course,
		ActiveToday: schedule.ShouldCourseHaveLecture(course.Title, course.Batch, nowUTC()),
	})
}

// GetCourseLectures handles GET /api/courses/:id/lectures
func (s *Server) GetCourseLectures(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, repoErr := s.courseRepo.GetByID(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	p := parsePagination(c, 50)
	lectures, repoErr := s.lectureRepo.GetByCourseID(c.UserContext(), id, p.Limit, p.Offset)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	return c.JSON(fiber.Map{"lectures": lectures})
}

// GetCourseNotes handles GET /api/courses/:id/notes
func (s *Server) GetCourseNotes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, repoErr := s.courseRepo.GetByID(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	p := parsePagination(c, 50)
	notes, repoErr := s.noteRepo.GetByCourseID(c.UserContext(), id, p.Limit, p.Offset)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	return c.JSON(fiber.Map{"notes": notes})
}
