package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

type InterviewHandler struct {
	interviewService services.InterviewService
}

func NewInterviewHandler(interviewService services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

func (h *InterviewHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	interview, err := h.interviewService.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Interview created successfully",
		"interview": interview,
	})
}

func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	interview, err := h.interviewService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"interview": models.NewInterviewView(*interview),
	})
}

func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	interviews, err := h.interviewService.List()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"interviews": interviews,
	})
}

func (h *InterviewHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	if err := h.interviewService.Delete(id); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Interview deleted successfully",
	})
}

func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	interview, err := h.interviewService.Start(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   "Interview started successfully",
		"interview": interview,
	})
}

func (h *InterviewHandler) HandleListQuestions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}

	questions, err := h.interviewService.Questions(id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"questions": questions,
	})
}

func (h *InterviewHandler) HandleAskQuestion(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid interview id")
	}
	questionID, err := parseIDParam(c, "questionId")
	if err != nil {
		return badRequest(c, "invalid question id")
	}

	question, err := h.interviewService.AskQuestion(id, questionID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Question marked as asked",
		"question": question,
	})
}

func (h *InterviewHandler) HandleCommonQuestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"questions": services.CommonQuestions(),
	})
}
