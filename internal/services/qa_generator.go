package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type QAGeneratorService interface {
	GenerateFromText(ctx context.Context, contractText string) (string, int, error)
}

type qaGeneratorService struct {
	gemini        GeminiService
	chunker       TextChunker
	promptBuilder *PromptBuilder
	maxChunkSize  int
	maxRetries    int
}

func NewQAGeneratorService(gemini GeminiService, chunker TextChunker, maxChunkSize, maxRetries int) QAGeneratorService {
	return &qaGeneratorService{
		gemini:        gemini,
		chunker:       chunker,
		promptBuilder: NewPromptBuilder(),
		maxChunkSize:  maxChunkSize,
		maxRetries:    maxRetries,
	}
}

// GenerateFromText implements QAGeneratorService. Large contracts are
// chunked at clause boundaries and each chunk is converted separately;
// chunk outputs are joined with a separator line, which the Q&A parser
// treats as structural noise. Returns the generated document and the
// number of chunks processed.
func (g *qaGeneratorService) GenerateFromText(ctx context.Context, contractText string) (string, int, error) {
	chunks := g.chunker.ChunkContract(contractText, g.maxChunkSize)
	log.Printf("📄 Contract split into %d chunk(s)\n", len(chunks))

	responses := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		log.Printf("🤖 Generating Q&A pairs for chunk %d/%d (%d characters)\n", i+1, len(chunks), len(chunk))

		prompt := g.promptBuilder.BuildQAGenerationPrompt(chunk)
		response, err := g.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, g.maxRetries)
		if err != nil {
			return "", 0, fmt.Errorf("failed to generate Q&A pairs for chunk %d/%d: %w", i+1, len(chunks), err)
		}

		responses = append(responses, strings.TrimSpace(response))
	}

	return strings.Join(responses, "\n\n---\n\n"), len(chunks), nil
}
