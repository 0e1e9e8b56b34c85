package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// RubricScoreScale labels rubric assessments. Rubric questions are scored
// on a 1-5 scale with its own risk thresholds, separate from the 0-1
// document-to-document scale.
const RubricScoreScale = "1-5"

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevelForScore maps a 1-5 score to a risk level. Boundaries are
// inclusive on the favourable side: 4.5 is LOW, 3.5 is MEDIUM, 2.5 is HIGH.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 4.5:
		return RiskLow
	case score >= 3.5:
		return RiskMedium
	case score >= 2.5:
		return RiskHigh
	default:
		return RiskCritical
	}
}

type RubricQuestion struct {
	Category       string `json:"category"`
	CategoryNumber int    `json:"category_number"`
	QuestionNumber int    `json:"question_number"`
	Question       string `json:"question"`
	Guidance       string `json:"guidance"`
}

type RubricAnswer struct {
	Category       string    `json:"category"`
	CategoryNumber int       `json:"category_number"`
	QuestionNumber int       `json:"question_number"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Score          float64   `json:"score"`
	Reasoning      string    `json:"reasoning"`
	RiskLevel      RiskLevel `json:"risk_level"`
}

type CategoryScore struct {
	Category       string         `json:"category"`
	CategoryNumber int            `json:"category_number"`
	AverageScore   float64        `json:"average_score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Questions      []RubricAnswer `json:"questions"`
}

type RiskAssessment struct {
	Scale             string          `json:"scale"`
	OverallScore      float64         `json:"overall_score"`
	OverallRiskLevel  RiskLevel       `json:"overall_risk_level"`
	TotalQuestions    int             `json:"total_questions"`
	AnsweredQuestions int             `json:"answered_questions"`
	CriticalRisks     []string        `json:"critical_risks"`
	CategoryScores    []CategoryScore `json:"category_scores"`
}

var (
	rubricCategoryRegex = regexp.MustCompile(`^#{1,6}\s+(?:(\d+)\.\s*)?(.+)$`)
	rubricQuestionRegex = regexp.MustCompile(`^Q(\d+):\s*(.+)$`)
	rubricGuidanceRegex = regexp.MustCompile(`^A:\s*(.+)$`)
)

// ParseRubric extracts rubric questions from a rubric document. A heading
// line opens a category (an optional leading "N." sets its number); a
// "Qn:" line opens a question and the following "A:" line supplies its
// evaluation guidance. Questions without guidance are dropped.
func ParseRubric(content string) []RubricQuestion {
	var questions []RubricQuestion

	currentCategory := ""
	categoryNumber := 0

	var pending *RubricQuestion

	for _, rawLine := range strings.Split(content, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := rubricCategoryRegex.FindStringSubmatch(line); m != nil {
			pending = nil
			if m[1] != "" {
				categoryNumber, _ = strconv.Atoi(m[1])
			} else {
				categoryNumber++
			}
			currentCategory = strings.TrimSpace(m[2])
			continue
		}

		if m := rubricQuestionRegex.FindStringSubmatch(line); m != nil {
			number, _ := strconv.Atoi(m[1])
			pending = &RubricQuestion{
				Category:       currentCategory,
				CategoryNumber: categoryNumber,
				QuestionNumber: number,
				Question:       strings.TrimSpace(m[2]),
			}
			continue
		}

		if m := rubricGuidanceRegex.FindStringSubmatch(line); m != nil && pending != nil {
			pending.Guidance = strings.TrimSpace(m[1])
			questions = append(questions, *pending)
			pending = nil
		}
	}

	return questions
}

type RubricEvaluatorService interface {
	EvaluateContract(ctx context.Context, contractText, rubricContent string) (*RiskAssessment, error)
}

type rubricEvaluatorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	concurrency   int
	maxRetries    int
}

func NewRubricEvaluatorService(gemini GeminiService, concurrency, maxRetries int) RubricEvaluatorService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &rubricEvaluatorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		concurrency:   concurrency,
		maxRetries:    maxRetries,
	}
}

type rubricResponse struct {
	Answer    string  `json:"answer"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	RiskLevel string  `json:"risk_level"`
}

// EvaluateContract implements RubricEvaluatorService. Questions are
// evaluated concurrently with bounded parallelism; a failed question falls
// back to a neutral 3.0/MEDIUM answer instead of failing the assessment.
func (r *rubricEvaluatorService) EvaluateContract(ctx context.Context, contractText, rubricContent string) (*RiskAssessment, error) {
	questions := ParseRubric(rubricContent)
	if len(questions) == 0 {
		return nil, fmt.Errorf("rubric contains no questions")
	}

	log.Printf("📋 Evaluating contract against %d rubric questions\n", len(questions))

	answers := make([]RubricAnswer, len(questions))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.concurrency)

	for i := range questions {
		wg.Add(1)
		go func(i int, q RubricQuestion) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			answers[i] = r.evaluateQuestion(ctx, q, contractText)
		}(i, questions[i])
	}
	wg.Wait()

	return buildRiskAssessment(questions, answers), nil
}

func (r *rubricEvaluatorService) evaluateQuestion(ctx context.Context, question RubricQuestion, contractText string) RubricAnswer {
	answer := RubricAnswer{
		Category:       question.Category,
		CategoryNumber: question.CategoryNumber,
		QuestionNumber: question.QuestionNumber,
		Question:       question.Question,
	}

	prompt := r.promptBuilder.BuildRubricQuestionPrompt(question, contractText)

	response, err := r.gemini.GenerateTextWithRetry(ctx, prompt, 0, r.maxRetries)
	if err != nil {
		log.Printf("⚠️  Failed to evaluate %s Q%d: %v\n", question.Category, question.QuestionNumber, err)
		answer.Answer = fmt.Sprintf("Evaluation failed: %v", err)
		answer.Score = 3.0
		answer.Reasoning = "Could not evaluate due to error"
		answer.RiskLevel = RiskMedium
		return answer
	}

	parsed := parseRubricResponse(response)
	answer.Answer = parsed.Answer
	answer.Score = clampRubricScore(parsed.Score)
	answer.Reasoning = parsed.Reasoning
	answer.RiskLevel = normalizeRiskLevel(parsed.RiskLevel, answer.Score)

	return answer
}

func parseRubricResponse(response string) rubricResponse {
	var parsed rubricResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err == nil && parsed.Answer != "" {
		return parsed
	}

	// Salvage what we can from a non-JSON response.
	parsed = rubricResponse{
		Answer:    truncateText(response, 500),
		Score:     3.0,
		Reasoning: response,
		RiskLevel: string(RiskMedium),
	}
	if score, ok := extractScore(response); ok {
		parsed.Score = score
	}
	return parsed
}

func clampRubricScore(score float64) float64 {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

func normalizeRiskLevel(raw string, score float64) RiskLevel {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(raw))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	case RiskCritical:
		return RiskCritical
	default:
		return RiskLevelForScore(score)
	}
}

// buildRiskAssessment groups answers by category in declaration order and
// derives category and overall risk levels from score averages. The
// overall score is the mean of the category averages.
func buildRiskAssessment(questions []RubricQuestion, answers []RubricAnswer) *RiskAssessment {
	var categoryOrder []string
	grouped := make(map[string][]RubricAnswer)

	for _, answer := range answers {
		if _, seen := grouped[answer.Category]; !seen {
			categoryOrder = append(categoryOrder, answer.Category)
		}
		grouped[answer.Category] = append(grouped[answer.Category], answer)
	}

	var categoryScores []CategoryScore
	var criticalRisks []string
	categorySum := 0.0

	for _, category := range categoryOrder {
		members := grouped[category]

		sum := 0.0
		for _, qa := range members {
			sum += qa.Score
		}
		average := sum / float64(len(members))
		level := RiskLevelForScore(average)

		categoryScores = append(categoryScores, CategoryScore{
			Category:       category,
			CategoryNumber: members[0].CategoryNumber,
			AverageScore:   average,
			RiskLevel:      level,
			Questions:      members,
		})
		categorySum += average

		if level == RiskHigh || level == RiskCritical {
			criticalRisks = append(criticalRisks, category)
		}
	}

	overallScore := 0.0
	if len(categoryScores) > 0 {
		overallScore = categorySum / float64(len(categoryScores))
	}

	return &RiskAssessment{
		Scale:             RubricScoreScale,
		OverallScore:      overallScore,
		OverallRiskLevel:  RiskLevelForScore(overallScore),
		TotalQuestions:    len(questions),
		AnsweredQuestions: len(answers),
		CriticalRisks:     criticalRisks,
		CategoryScores:    categoryScores,
	}
}
