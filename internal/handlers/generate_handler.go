package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"annotet/contract-analyzer/internal/models"
	"annotet/contract-analyzer/internal/services"
)

type GenerateHandler struct {
	storageService services.StorageService
	pdfParser      services.PDFParserService
	qaGenerator    services.QAGeneratorService
	maxFileSize    int64
}

func NewGenerateHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	qaGenerator services.QAGeneratorService,
	maxFileSize int64,
) *GenerateHandler {
	return &GenerateHandler{
		storageService: storageService,
		pdfParser:      pdfParser,
		qaGenerator:    qaGenerator,
		maxFileSize:    maxFileSize,
	}
}

// HandleGenerateQA handles POST /generate-qa: extracts text from the
// uploaded contract PDF and converts it into a Q&A document.
func (h *GenerateHandler) HandleGenerateQA(c *fiber.Ctx) error {
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

	qaContent, chunksProcessed, err := h.qaGenerator.GenerateFromText(c.Context(), content.Text)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to generate Q&A pairs: %v", err),
		})
	}

	return c.JSON(models.GenerateQAResponse{
		Filename:        filename,
		TextLength:      len(content.Text),
		ChunksProcessed: chunksProcessed,
		QAContent:       qaContent,
	})
}
