package handlers

import (
	"strings"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/dto"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QuestionHandler struct {
	qaService *service.QAService
	logger    *zap.Logger
}

func NewQuestionHandler(qaService *service.QAService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		qaService: qaService,
		logger:    logger,
	}
}

// Ask godoc
// @Summary Ask a question about the processed documents
// @Description Rule-based answer with optional generative fallback when confidence is low
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.AskRequest true "Question and scope ('all' or a file name)"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/ask [post]
func (h *QuestionHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}
	if req.Scope == "" {
		req.Scope = service.ScopeAll
	}

	resp := h.qaService.Ask(c.Context(), req.Question, req.Scope)
	return c.JSON(resp)
}

// Conversation godoc
// @Summary Conversation history
// @Produce json
// @Success 200 {array} models.ConversationTurn
// @Router /api/v1/conversation [get]
func (h *QuestionHandler) Conversation(c *fiber.Ctx) error {
	turns := h.qaService.Conversation()
	if turns == nil {
		turns = make([]models.ConversationTurn, 0)
	}
	return c.JSON(turns)
}
