package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NeutralJudgeScore is substituted when a judgment cannot be obtained or
// parsed. One bad judgment degrades that pair only, never the batch.
const NeutralJudgeScore = 0.5

// Judge scores how well a candidate answer matches a reference answer for
// the same question. Implementations return a score in [0, 1] plus a
// free-text justification.
type Judge interface {
	Judge(ctx context.Context, question, reference, candidate string) (float64, string, error)
}

type geminiJudge struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewGeminiJudge(gemini GeminiService, maxRetries int) Judge {
	return &geminiJudge{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

type judgeResponse struct {
	Score              float64  `json:"score"`
	Reasoning          string   `json:"reasoning"`
	KeyPointsMatched   []string `json:"key_points_matched"`
	KeyPointsMissing   []string `json:"key_points_missing"`
	KeyPointsIncorrect []string `json:"key_points_incorrect"`
}

// Judge implements Judge.
func (j *geminiJudge) Judge(ctx context.Context, question, reference, candidate string) (float64, string, error) {
	prompt := j.promptBuilder.BuildJudgePrompt(question, reference, candidate)

	response, err := j.gemini.GenerateTextWithRetry(ctx, prompt, 0, j.maxRetries)
	if err != nil {
		return 0, "", fmt.Errorf("failed to generate judgment: %w", err)
	}

	var parsed judgeResponse
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		// The model wandered off the JSON format. Try to salvage a bare
		// score before falling back to the neutral default.
		if score, ok := extractScore(response); ok {
			return clampScore(score), response, nil
		}
		return NeutralJudgeScore, response, nil
	}

	return clampScore(parsed.Score), formatJudgment(parsed), nil
}

func formatJudgment(r judgeResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %.2f\nReasoning: %s", r.Score, r.Reasoning)

	if len(r.KeyPointsMatched) > 0 {
		fmt.Fprintf(&b, "\nMatched Points: %s", strings.Join(r.KeyPointsMatched, ", "))
	}
	if len(r.KeyPointsMissing) > 0 {
		fmt.Fprintf(&b, "\nMissing Points: %s", strings.Join(r.KeyPointsMissing, ", "))
	}
	if len(r.KeyPointsIncorrect) > 0 {
		fmt.Fprintf(&b, "\nIncorrect Points: %s", strings.Join(r.KeyPointsIncorrect, ", "))
	}

	return b.String()
}

var scoreRegex = regexp.MustCompile(`(?i)score["']?\s*[:=]\s*([0-9]*\.?[0-9]+)`)

func extractScore(text string) (float64, bool) {
	m := scoreRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// extractJSON pulls a JSON object or array out of text that might wrap it
// in markdown fences or prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
