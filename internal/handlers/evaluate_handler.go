package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"annotet/contract-analyzer/internal/models"
	"annotet/contract-analyzer/internal/services"
)

type EvaluationHandler struct {
	evaluator            services.EvaluatorService
	defaultLLMWeight     float64
	defaultKeywordWeight float64
}

func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	defaultLLMWeight, defaultKeywordWeight float64,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator:            evaluator,
		defaultLLMWeight:     defaultLLMWeight,
		defaultKeywordWeight: defaultKeywordWeight,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.GroundTruthContent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ground_truth_content is required",
		})
	}

	llmWeight, keywordWeight := h.resolveWeights(req.LLMWeight, req.KeywordWeight)

	report, err := h.evaluator.EvaluateDocuments(c.Context(), req.GroundTruthContent, req.GeneratedContent, llmWeight, keywordWeight)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"evaluation": report,
	})
}

// HandleEvaluateFile handles POST /evaluate-file: the two Q&A documents
// arrive as uploaded files instead of JSON fields.
func (h *EvaluationHandler) HandleEvaluateFile(c *fiber.Ctx) error {
	groundTruth, err := readFormFile(c, "ground_truth")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read ground_truth file: %v", err),
		})
	}

	generated, err := readFormFile(c, "generated")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read generated file: %v", err),
		})
	}

	report, err := h.evaluator.EvaluateDocuments(c.Context(), groundTruth, generated, h.defaultLLMWeight, h.defaultKeywordWeight)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"evaluation": report,
		"report":     report.RenderText(),
	})
}

// HandleEvaluatePair handles POST /evaluate-pair
func (h *EvaluationHandler) HandleEvaluatePair(c *fiber.Ctx) error {
	var req models.EvaluatePairRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	llmWeight, keywordWeight := h.resolveWeights(req.LLMWeight, req.KeywordWeight)

	score, err := h.evaluator.EvaluateQAPair(c.Context(), req.Question, req.GroundTruthAnswer, req.GeneratedAnswer, llmWeight, keywordWeight)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"result": score,
	})
}

// resolveWeights falls back to the configured defaults when the request
// leaves both weights unset.
func (h *EvaluationHandler) resolveWeights(llmWeight, keywordWeight float64) (float64, float64) {
	if llmWeight == 0 && keywordWeight == 0 {
		return h.defaultLLMWeight, h.defaultKeywordWeight
	}
	return llmWeight, keywordWeight
}

func readFormFile(c *fiber.Ctx, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%s file is required", field)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fileHeader.Filename, err)
	}

	return string(content), nil
}
