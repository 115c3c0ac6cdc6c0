package server

import (
	"bichar/internal/models"
	"bichar/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateConfession handles POST /api/confessions
func (s *Server) CreateConfession(c *fiber.Ctx) error {
	var req struct {
		Content   string `json:"content"`
		Persona   string `json:"persona"`
		JudgeMood string `json:"judgeMood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	confession, err := s.confessionService.CreateConfession(c.UserContext(), service.CreateConfessionInput{
		Content:   req.Content,
		Persona:   req.Persona,
		JudgeMood: req.JudgeMood,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(confession)
}

// GetTrendingConfessions handles GET /api/confessions/trending
func (s *Server) GetTrendingConfessions(c *fiber.Ctx) error {
	confessions, err := s.confessionService.ListTrending(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(confessions)
}

// AddReaction handles POST /api/confessions/:id/reaction
func (s *Server) AddReaction(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	confession, serviceErr := s.confessionService.AddReaction(c.UserContext(), id, req.Type)
	if serviceErr != nil {
		return respondServiceError(c, serviceErr)
	}

	return c.JSON(confession)
}

// GetRandomConfession handles GET /api/confessions/random
func (s *Server) GetRandomConfession(c *fiber.Ctx) error {
	confession, err := s.confessionService.GetRandomConfession(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(confession)
}
