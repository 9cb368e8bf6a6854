package server

import (
	"github.com/mahmedraza1/Learn-LMS-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users (admin)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userRepo.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondRepoError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// SetUserRole handles PUT /api/users/:id/role (admin)
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	switch req.Role {
	case models.RoleAdmin, models.RoleInstructor, models.RoleStudent:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Role must be admin, instructor, or student"))
	}

	user, repoErr := s.userRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	user.Role = req.Role
	if updateErr := s.userRepo.Update(c.UserContext(), user); updateErr != nil {
		return respondRepoError(c, updateErr)
	}

	return c.JSON(user)
}

// SetUserAdmission handles PUT /api/users/:id/admission (admin)
func (s *Server) SetUserAdmission(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		AdmissionStatus string `json:"admission_status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	switch req.AdmissionStatus {
	case models.AdmissionAdmitted, models.AdmissionPending, models.AdmissionExpelled:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admission status must be admitted, pending, or expelled"))
	}

	if repoErr := s.userRepo.SetAdmissionStatus(c.UserContext(), id, req.AdmissionStatus); repoErr != nil {
		return respondRepoError(c, repoErr)
	}

	user, repoErr := s.userRepo.GetByID(c.UserContext(), id)
	if repoErr != nil {
		return respondRepoError(c, repoErr)
	}
	return c.JSON(user)
}
