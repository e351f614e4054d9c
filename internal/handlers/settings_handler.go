package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-copilot/internal/config"
	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

// SettingsHandler manages runtime AI provider credentials. Keys live in the
// credential store only and are never echoed back.
type SettingsHandler struct {
	credStore *config.CredentialStore
}

func NewSettingsHandler(credStore *config.CredentialStore) *SettingsHandler {
	return &SettingsHandler{credStore: credStore}
}

func (h *SettingsHandler) HandleSaveAPIKeys(c *fiber.Ctx) error {
	var req models.SaveAPIKeysRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Provider != "" && req.Provider != "gemini" && req.Provider != "openai" {
		return badRequest(c, fmt.Sprintf("invalid provider %q (must be gemini or openai)", req.Provider))
	}

	creds := h.credStore.Update(config.Credentials{
		Provider:     req.Provider,
		GeminiAPIKey: req.GeminiAPIKey,
		OpenAIAPIKey: req.OpenAIAPIKey,
	})

	return c.JSON(fiber.Map{
		"message":  "API keys saved successfully",
		"provider": creds.Provider,
	})
}

func (h *SettingsHandler) HandleGetAPIKeys(c *fiber.Ctx) error {
	creds := h.credStore.Get()

	return c.JSON(fiber.Map{
		"ai_provider":       creds.Provider,
		"gemini_configured": creds.GeminiAPIKey != "",
		"openai_configured": creds.OpenAIAPIKey != "",
	})
}

// HandleTestConnection checks the submitted credentials with a minimal
// generation call. Provider failures come back as success=false with a 200,
// so the settings UI can show the message inline.
func (h *SettingsHandler) HandleTestConnection(c *fiber.Ctx) error {
	var req models.TestConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	creds := config.Credentials{
		Provider:     req.Provider,
		GeminiAPIKey: req.GeminiAPIKey,
		OpenAIAPIKey: req.OpenAIAPIKey,
	}
	if creds.Provider == "" {
		creds.Provider = h.credStore.Get().Provider
	}

	if !creds.Configured() {
		return badRequest(c, fmt.Sprintf("%s API key is required", creds.Provider))
	}

	if err := services.TestConnection(c.Context(), creds); err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("%s connection failed: %v", creds.Provider, err),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%s connection successful!", creds.Provider),
	})
}
