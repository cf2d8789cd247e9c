package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tasnees/IBM-hackathon/internal/api/dto"
	"github.com/tasnees/IBM-hackathon/internal/service"
	apperrors "github.com/tasnees/IBM-hackathon/pkg/util"
)

// SupportHandler serves the incident pipeline endpoint.
type SupportHandler struct {
	service *service.SupportService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(supportService *service.SupportService) *SupportHandler {
	return &SupportHandler{service: supportService}
}

// GetSupport POST /get_support.
func (h *SupportHandler) GetSupport(c *fiber.Ctx) error {
	var req dto.SupportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ShortDescription) == "" || strings.TrimSpace(req.UrgencyValue) == "" {
		return apperrors.NewValidationError("short_description and urgency_value required", nil)
	}

	resp := h.service.HandleSupportRequest(c.UserContext(), req.ToDomain())
	return c.JSON(dto.FromDomain(resp))
}
