package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tasnees/IBM-hackathon/internal/servicenow"
)

// CatalogHandler serves the reference-data enumeration endpoints.
type CatalogHandler struct {
	client *servicenow.Client
	logger *zap.Logger
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(client *servicenow.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{client: client, logger: logger}
}

// AssignmentGroups GET /assignment_groups. A lookup failure yields an empty
// list, not an error.
func (h *CatalogHandler) AssignmentGroups(c *fiber.Ctx) error {
	groups, err := h.client.ListAssignmentGroups(c.UserContext())
	if err != nil {
		h.logger.Error("failed to fetch assignment groups", zap.Error(err))
		groups = []servicenow.AssignmentGroup{}
	}
	return c.JSON(fiber.Map{"assignment_groups": groups})
}

// Categories GET /categories.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": servicenow.Categories()})
}

// Impacts GET /impacts.
func (h *CatalogHandler) Impacts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"impacts": servicenow.Impacts()})
}

// Urgencies GET /urgencies.
func (h *CatalogHandler) Urgencies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"urgencies": servicenow.Urgencies()})
}
