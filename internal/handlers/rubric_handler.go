package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"annotet/contract-analyzer/internal/services"
)

type RubricHandler struct {
	storageService  services.StorageService
	pdfParser       services.PDFParserService
	rubricEvaluator services.RubricEvaluatorService
	rubricContent   string
	maxFileSize     int64
}

func NewRubricHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	rubricEvaluator services.RubricEvaluatorService,
	rubricContent string,
	maxFileSize int64,
) *RubricHandler {
	return &RubricHandler{
		storageService:  storageService,
		pdfParser:       pdfParser,
		rubricEvaluator: rubricEvaluator,
		rubricContent:   rubricContent,
		maxFileSize:     maxFileSize,
	}
}

// HandleEvaluateRubric handles POST /evaluate-rubric: scores the uploaded
// contract PDF against the configured rubric.
func (h *RubricHandler) HandleEvaluateRubric(c *fiber.Ctx) error {
	if h.rubricContent == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Evaluation rubric not loaded",
		})
	}

	file, err := c.FormFile("contract")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "contract file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Contract file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveContract(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save contract file: %v", err),
		})
	}

	content, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to extract contract text: %v", err),
		})
	}

	assessment, err := h.rubricEvaluator.EvaluateContract(c.Context(), content.Text, h.rubricContent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to evaluate rubric: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"status":          "success",
		"filename":        file.Filename,
		"risk_assessment": assessment,
	})
}
