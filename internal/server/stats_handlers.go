package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetDailyCount handles GET /api/stats/daily-count
func (s *Server) GetDailyCount(c *fiber.Ctx) error {
	count, err := s.confessionService.GetDailyCount(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"count": count})
}
