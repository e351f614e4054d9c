package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
}

func NewDocumentHandler(documentService services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) HandleUpload(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "no file provided")
	}

	docType := c.FormValue("document_type")
	if docType == "" {
		return badRequest(c, "document_type is required")
	}

	document, err := h.documentService.Upload(c.Context(), id, file, docType)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document uploaded successfully",
		"document": document,
	})
}

func (h *DocumentHandler) HandleUploadBase64(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.Base64UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	document, err := h.documentService.UploadBase64(c.Context(), id, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document uploaded successfully",
		"document": document,
	})
}

// HandleAddJobURL records a job posting URL without fetching it.
func (h *DocumentHandler) HandleAddJobURL(c *fiber.Ctx) error {
	return h.addJobURL(c, false)
}

// HandleAddJobURLEnhanced downloads the job posting page and stores its text.
func (h *DocumentHandler) HandleAddJobURLEnhanced(c *fiber.Ctx) error {
	return h.addJobURL(c, true)
}

func (h *DocumentHandler) addJobURL(c *fiber.Ctx, fetch bool) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	var req models.JobURLRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	document, err := h.documentService.AddJobURL(c.Context(), id, req.URL, fetch)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Job URL processed successfully",
		"document": document,
	})
}

func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	documents, err := h.documentService.ListByInterview(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"documents": documents,
	})
}
