package main

import (
	"context"
	"log"
	"os"

	"annotet/contract-analyzer/internal/config"
	"annotet/contract-analyzer/internal/services"
)

// Evaluates a generated Q&A document against a ground-truth document and
// prints the text report.
//
// Usage: go run scripts/evaluate_files.go <ground_truth.md> <generated.md>
func main() {
	if len(os.Args) != 3 {
		log.Println("Usage: evaluate_files <ground_truth.md> <generated.md>")
		os.Exit(1)
	}

	groundTruthPath := os.Args[1]
	generatedPath := os.Args[2]

	groundTruth, err := os.ReadFile(groundTruthPath)
	if err != nil {
		log.Fatalf("❌ Failed to read ground truth file: %v", err)
	}

	generated, err := os.ReadFile(generatedPath)
	if err != nil {
		log.Fatalf("❌ Failed to read generated file: %v", err)
	}

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	keywordScorer := services.NewKeywordScorer(services.KeywordConfig{
		MinTokenLength: cfg.Evaluation.MinKeywordLength,
		Stopwords:      services.DefaultKeywordConfig().Stopwords,
	})

	matcher, err := services.NewPairMatcher(keywordScorer, cfg.Evaluation.MatchThreshold)
	if err != nil {
		log.Fatalf("❌ Invalid matcher configuration: %v", err)
	}

	evaluator := services.NewEvaluatorService(
		services.NewQAParserService(),
		keywordScorer,
		matcher,
		services.NewGeminiJudge(geminiService, cfg.Evaluation.RetryMaxAttempts),
		cfg.Evaluation.JudgeConcurrency,
		cfg.Evaluation.JudgeTimeout,
	)

	log.Println("🚀 Running evaluation...")

	report, err := evaluator.EvaluateDocuments(
		context.Background(),
		string(groundTruth),
		string(generated),
		cfg.Evaluation.LLMWeight,
		cfg.Evaluation.KeywordWeight,
	)
	if err != nil {
		log.Fatalf("❌ Evaluation failed: %v", err)
	}

	os.Stdout.WriteString(report.RenderText())

	log.Printf("✅ Match Rate: %.2f%%\n", report.MatchRate*100)
	log.Printf("✅ Average Combined Score: %.3f\n", report.AverageCombinedScore)
}
