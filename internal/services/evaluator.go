package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

type EvaluatorService interface {
	EvaluateDocuments(ctx context.Context, groundTruth, generated string, llmWeight, keywordWeight float64) (*EvaluationReport, error)
	EvaluateQAPair(ctx context.Context, question, groundTruthAnswer, generatedAnswer string, llmWeight, keywordWeight float64) (*PairScore, error)
}

type evaluatorService struct {
	parser       QAParserService
	scorer       KeywordScorer
	matcher      PairMatcher
	judge        Judge
	concurrency  int
	judgeTimeout time.Duration
}

func NewEvaluatorService(
	parser QAParserService,
	scorer KeywordScorer,
	matcher PairMatcher,
	judge Judge,
	concurrency int,
	judgeTimeout time.Duration,
) EvaluatorService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &evaluatorService{
		parser:       parser,
		scorer:       scorer,
		matcher:      matcher,
		judge:        judge,
		concurrency:  concurrency,
		judgeTimeout: judgeTimeout,
	}
}

func validateWeights(llmWeight, keywordWeight float64) error {
	if llmWeight < 0 || llmWeight > 1 {
		return fmt.Errorf("llm_weight must be in [0, 1], got %g", llmWeight)
	}
	if keywordWeight < 0 || keywordWeight > 1 {
		return fmt.Errorf("keyword_weight must be in [0, 1], got %g", keywordWeight)
	}
	return nil
}

// EvaluateDocuments implements EvaluatorService.
//
// Pairs are scored independently and concurrently; the number of in-flight
// judge calls is bounded by the configured concurrency. The report lists
// results in ground-truth document order regardless of completion order.
func (e *evaluatorService) EvaluateDocuments(ctx context.Context, groundTruth, generated string, llmWeight, keywordWeight float64) (*EvaluationReport, error) {
	if err := validateWeights(llmWeight, keywordWeight); err != nil {
		return nil, err
	}

	groundTruthPairs := e.parser.ParseQAPairs(groundTruth)
	generatedPairs := e.parser.ParseQAPairs(generated)

	log.Printf("📋 Found %d ground truth pairs and %d generated pairs\n", len(groundTruthPairs), len(generatedPairs))

	match := e.matcher.Match(groundTruthPairs, generatedPairs)

	scores := make([]PairScore, len(match.Pairs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for i := range match.Pairs {
		wg.Add(1)
		go func(i int, mp MatchedPair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scores[i] = e.scorePair(ctx,
				mp.GroundTruth.Question,
				mp.GroundTruth.Answer,
				mp.Generated.Answer,
				mp.GroundTruth.Section,
				llmWeight, keywordWeight,
			)
		}(i, match.Pairs[i])
	}
	wg.Wait()

	return BuildEvaluationReport(match.TotalGroundTruth, match.TotalGenerated, scores), nil
}

// EvaluateQAPair implements EvaluatorService. Scoring semantics are
// identical to a pair evaluated through EvaluateDocuments.
func (e *evaluatorService) EvaluateQAPair(ctx context.Context, question, groundTruthAnswer, generatedAnswer string, llmWeight, keywordWeight float64) (*PairScore, error) {
	if err := validateWeights(llmWeight, keywordWeight); err != nil {
		return nil, err
	}

	score := e.scorePair(ctx, question, groundTruthAnswer, generatedAnswer, "", llmWeight, keywordWeight)
	return &score, nil
}

func (e *evaluatorService) scorePair(ctx context.Context, question, reference, candidate, section string, llmWeight, keywordWeight float64) PairScore {
	judgeCtx := ctx
	if e.judgeTimeout > 0 {
		var cancel context.CancelFunc
		judgeCtx, cancel = context.WithTimeout(ctx, e.judgeTimeout)
		defer cancel()
	}

	llmScore, judgment, err := e.judge.Judge(judgeCtx, question, reference, candidate)
	if err != nil {
		log.Printf("⚠️  Judgment failed for question %q: %v\n", truncateText(question, 60), err)
		llmScore = NeutralJudgeScore
		judgment = fmt.Sprintf("Judgment unavailable, using neutral score: %v", err)
	}

	keywordScore, matched, missing := e.scorer.Score(reference, candidate)

	return PairScore{
		Section:           section,
		Question:          question,
		GroundTruthAnswer: reference,
		GeneratedAnswer:   candidate,
		LLMScore:          llmScore,
		KeywordScore:      keywordScore,
		CombinedScore:     llmWeight*llmScore + keywordWeight*keywordScore,
		LLMJudgment:       judgment,
		MatchedKeywords:   matched,
		MissingKeywords:   missing,
	}
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
