package server

import (
	"net/url"
	"strings"
	"time"

	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

// lectureRequest is the write payload for lecture create/update.
type lectureRequest struct {
	CourseID   uint   `json:"course_id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	YoutubeURL string `json:"youtube_url"`
}

// GetLecture handles GET /api/lectures/:id
func (s *Server) GetLecture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	lecture, repoErr := s.lectureRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(lecture)
}

// CreateLecture handles POST /api/lectures (admin). The date must pass the
// schedule rules for the course's batch.
func (s *Server) CreateLecture(c *fiber.Ctx) error {
	var req lectureRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CourseID == 0 || req.Date == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("course_id and date are required"))
	}

	course, repoErr := s.courseRepo.GetByID(c.UserContext(), req.CourseID)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid date, expected YYYY-MM-DD"))
	}

	if verdict := schedule.ValidateDateForCourse(date, course.Title, course.Batch); !verdict.IsValid {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(verdict.Message))
	}

	title := req.Title
	if title == "" {
		title = course.Title
	}

	number, repoErr := s.lectureRepo.NextLectureNumber(c.UserContext(), course.ID)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	lecture := &models.Lecture{
		CourseID:      course.ID,
		Title:         title,
		Date:          date,
		Time:          req.Time,
		YoutubeURL:    req.YoutubeURL,
		YoutubeID:     extractYoutubeID(req.YoutubeURL),
		LectureNumber: number,
	}
	if repoErr := s.lectureRepo.Create(c.UserContext(), lecture); repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	return c.Status(fiber.StatusCreated).JSON(lecture)
}

// UpdateLecture handles PUT /api/lectures/:id (admin)
func (s *Server) UpdateLecture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req lectureRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	lecture, repoErr := s.lectureRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	if req.Date != "" {
		date, parseErr := time.Parse("2006-01-02", req.Date)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid date, expected YYYY-MM-DD"))
		}
		batch := models.BatchA
		title := lecture.Title
		if lecture.Course != nil {
			batch = lecture.Course.Batch
			title = lecture.Course.Title
		}
		if verdict := schedule.ValidateDateForCourse(date, title, batch); !verdict.IsValid {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(verdict.Message))
		}
		lecture.Date = date
	}
	if req.Title != "" {
		lecture.Title = req.Title
	}
	if req.Time != "" {
		lecture.Time = req.Time
	}
	if req.YoutubeURL != "" {
		lecture.YoutubeURL = req.YoutubeURL
		lecture.YoutubeID = extractYoutubeID(req.YoutubeURL)
	}

	if repoErr := s.lectureRepo.Update(c.UserContext(), lecture); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(lecture)
}

// DeleteLecture handles DELETE /api/lectures/:id (admin)
func (s *Server) DeleteLecture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if repoErr := s.lectureRepo.Delete(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StartLecture handles POST /api/lectures/:id/start (admin). Flips the
// lecture live (clearing any sibling) and resets the live session chat.
func (s *Server) StartLecture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	lecture, repoErr := s.lectureRepo.SetCurrentlyLive(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	s.lectureHub.LectureStarted(lecture.ID)
	return c.JSON(lecture)
}

// DeliverLecture handles POST /api/lectures/:id/deliver (admin). Marks the
// lecture delivered, records the recording URL, and ends the live session.
func (s *Server) DeliverLecture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		YoutubeURL string `json:"youtube_url"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	lecture, repoErr := s.lectureRepo.MarkDelivered(
		c.UserContext(), id, req.YoutubeURL, extractYoutubeID(req.YoutubeURL))
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	s.lectureHub.LectureEnded(lecture.ID)
	return c.JSON(lecture)
}

// extractYoutubeID pulls the video ID out of the common YouTube URL shapes
// (watch?v=, youtu.be/, embed/, live/). Returns "" when none is found.
func extractYoutubeID(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	path := strings.Trim(u.Path, "/")
	if host == "youtu.be" {
		if i := strings.IndexByte(path, '/'); i >= 0 {
			path = path[:i]
		}
		return path
	}

	for _, prefix := range []string{"embed/", "live/", "shorts/", "v/"} {
		if strings.HasPrefix(path, prefix) {
			rest := strings.TrimPrefix(path, prefix)
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				rest = rest[:i]
			}
			return rest
		}
	}
	return ""
}
