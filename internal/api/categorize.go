package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/statement-points/internal/categorize"
	"github.com/insightdelivered/statement-points/internal/logger"
)

// CategorizeRequest is the body of /api/categorize.
type CategorizeRequest struct {
	Descriptions []string `json:"descriptions"`
}

// CategorizeResponse holds one category (or null) per description.
type CategorizeResponse struct {
	Categories []*string `json:"categories"`
}

func (s *Server) handleCategorize(c *fiber.Ctx) error {
	var req CategorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if len(req.Descriptions) == 0 {
		return writeError(c, fiber.StatusBadRequest, "descriptions must be a non-empty array")
	}

	ctx := c.UserContext()
	cats, err := s.batcher.Run(ctx, req.Descriptions)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Int("descriptions", len(req.Descriptions)).Msg("categorize request failed")
		return writeError(c, categorizeStatus(err), err.Error())
	}
	return c.JSON(CategorizeResponse{Categories: cats})
}

func categorizeStatus(err error) int {
	if errors.Is(err, categorize.ErrNotConfigured) {
		return fiber.StatusNotImplemented
	}
	return fiber.StatusBadGateway
}
