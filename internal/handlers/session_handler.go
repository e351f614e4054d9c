package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

// SessionHandler serves the live interview flow: analysis, responses,
// detection and completion.
type SessionHandler struct {
	analysisService      services.AnalysisService
	transcriptionService services.TranscriptionService
}

func NewSessionHandler(
	analysisService services.AnalysisService,
	transcriptionService services.TranscriptionService,
) *SessionHandler {
	return &SessionHandler{
		analysisService:      analysisService,
		transcriptionService: transcriptionService,
	}
}

func (h *SessionHandler) HandleAnalyze(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	result, err := h.analysisService.Analyze(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":             "Analysis completed successfully",
		"analysis":            result.Analysis,
		"generated_questions": result.GeneratedQuestions,
		"total_questions":     result.TotalQuestions,
		"used_fallback":       result.UsedFallback,
	})
}

func (h *SessionHandler) HandleSaveResponse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.SaveResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.analysisService.SaveResponse(c.Context(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":             "Response saved successfully",
		"response":            result.Response,
		"analysis":            result.Insights,
		"follow_up_questions": result.FollowUps,
	})
}

func (h *SessionHandler) HandleAnalyzeLive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.AnalyzeLiveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	analysis, err := h.analysisService.AnalyzeLive(c.Context(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(analysis)
}

func (h *SessionHandler) HandleDetectQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.DetectQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.analysisService.DetectQuestion(c.Context(), id, req.SpokenText)
	if err != nil {
		return serviceError(c, err)
	}

	if !result.Matched {
		return c.JSON(fiber.Map{
			"matched": false,
			"message": "No matching question found",
		})
	}

	return c.JSON(fiber.Map{
		"matched":     true,
		"question":    result.Question,
		"confidence":  result.Confidence,
		"exact_match": result.ExactMatch,
	})
}

func (h *SessionHandler) HandleTranscribe(c *fiber.Ctx) error {
	if _, err := parseIDParam(c, "id"); err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.TranscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.AudioData == "" {
		return badRequest(c, "no audio data provided")
	}

	result := h.transcriptionService.Transcribe(req.AudioData)

	return c.JSON(fiber.Map{
		"transcription": result.Text,
		"speaker":       result.Speaker,
		"confidence":    result.Confidence,
		"timestamp":     result.Timestamp,
	})
}

func (h *SessionHandler) HandleComplete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	result, err := h.analysisService.Complete(c.Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":          "Interview completed successfully",
		"interview":        result.Interview,
		"final_evaluation": result.FinalEvaluation,
	})
}
