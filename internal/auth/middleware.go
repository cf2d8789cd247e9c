package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/tasnees/IBM-hackathon/pkg/util"
)

const apiKeyHeader = "X-API-Key"

// APIKeyMiddleware gates routes behind a shared secret. An empty configured
// key disables the gate (open mode).
type APIKeyMiddleware struct {
	apiKey string
}

// NewAPIKeyMiddleware constructs middleware.
func NewAPIKeyMiddleware(apiKey string) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: apiKey}
}

// Handle rejects requests whose X-API-Key header is missing or mismatched.
func (m *APIKeyMiddleware) Handle(c *fiber.Ctx) error {
	if m.apiKey == "" {
		return c.Next()
	}

	provided := c.Get(apiKeyHeader)
	if provided == "" {
		return apperrors.NewUnauthorized("missing API key")
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(m.apiKey)) != 1 {
		return apperrors.NewUnauthorized("invalid API key")
	}
	return c.Next()
}
