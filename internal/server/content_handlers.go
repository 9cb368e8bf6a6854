package server

import (
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	announcements, err := s.announcementRepo.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(fiber.Map{"announcements": announcements})
}

// GetAnnouncement handles GET /api/announcements/:id
func (s *Server) GetAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	a, repoErr := s.announcementRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(a)
}

// CreateAnnouncement handles POST /api/announcements (staff)
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title  string `json:"title"`
		Body   string `json:"body"`
		Pinned bool   `json:"pinned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" || req.Body == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and body are required"))
	}

	userID, _ := c.Locals("userID").(uint)
	a := &models.Announcement{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: userID,
		Pinned:   req.Pinned,
	}
	if repoErr := s.announcementRepo.Create(c.UserContext(), a); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// UpdateAnnouncement handles PUT /api/announcements/:id (staff)
func (s *Server) UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title  *string `json:"title"`
		Body   *string `json:"body"`
		Pinned *bool   `json:"pinned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	a, repoErr := s.announcementRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.Pinned != nil {
		a.Pinned = *req.Pinned
	}

	if repoErr := s.announcementRepo.Update(c.UserContext(), a); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(a)
}

// DeleteAnnouncement handles DELETE /api/announcements/:id (staff)
func (s *Server) DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if repoErr := s.announcementRepo.Delete(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateNote handles POST /api/courses/:id/notes (staff)
func (s *Server) CreateNote(c *fiber.Ctx) error {
	courseID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, repoErr := s.courseRepo.GetByID(c.UserContext(), courseID); repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	var req struct {
		Title   string `json:"title"`
		Body    string `json:"body"`
		FileURL string `json:"file_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	note := &models.Note{
		CourseID: courseID,
		Title:    req.Title,
		Body:     req.Body,
		FileURL:  req.FileURL,
	}
	if repoErr := s.noteRepo.Create(c.UserContext(), note); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// UpdateNote handles PUT /api/notes/:id (staff)
func (s *Server) UpdateNote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string `json:"title"`
		Body    *string `json:"body"`
		FileURL *string `json:"file_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	note, repoErr := s.noteRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Body != nil {
		note.Body = *req.Body
	}
	if req.FileURL != nil {
		note.FileURL = *req.FileURL
	}

	if repoErr := s.noteRepo.Update(c.UserContext(), note); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(note)
}

// DeleteNote handles DELETE /api/notes/:id (staff)
func (s *Server) DeleteNote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if repoErr := s.noteRepo.Delete(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFAQs handles GET /api/faqs
func (s *Server) GetFAQs(c *fiber.Ctx) error {
	faqs, err := s.faqRepo.List(c.UserContext())
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(fiber.Map{"faqs": faqs})
}

// CreateFAQ handles POST /api/faqs (staff)
func (s *Server) CreateFAQ(c *fiber.Ctx) error {
	var req struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Position int    `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Question == "" || req.Answer == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Question and answer are required"))
	}

	faq := &models.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}
	if repoErr := s.faqRepo.Create(c.UserContext(), faq); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

// UpdateFAQ handles PUT /api/faqs/:id (staff)
func (s *Server) UpdateFAQ(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
		Position *int    `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	faq, repoErr := s.faqRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	if req.Question != nil {
		faq.Question = *req.Question
	}
	if req.Answer != nil {
		faq.Answer = *req.Answer
	}
	if req.Position != nil {
		faq.Position = *req.Position
	}

	if repoErr := s.faqRepo.Update(c.UserContext(), faq); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(faq)
}

// DeleteFAQ handles DELETE /api/faqs/:id (staff)
func (s *Server) DeleteFAQ(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if repoErr := s.faqRepo.Delete(c.UserContext(), id); repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
