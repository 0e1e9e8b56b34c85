package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGemini returns canned responses without touching the network. When
// byPromptSubstring is set, the first substring found in the prompt picks
// the response; otherwise the fixed response is returned.
type stubGemini struct {
	response          string
	byPromptSubstring map[string]string
	err               error
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.GenerateTextWithRetry(ctx, prompt, temperature, 1)
}

func (s *stubGemini) GenerateTextWithRetry(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	for substring, response := range s.byPromptSubstring {
		if strings.Contains(prompt, substring) {
			return response, nil
		}
	}
	return s.response, nil
}

func TestJudgeParsesJSONResponse(t *testing.T) {
	gemini := &stubGemini{response: "```json\n" + `{
		"score": 0.85,
		"reasoning": "Close match on payment terms.",
		"key_points_matched": ["thirty day deadline"],
		"key_points_missing": ["late fee clause"]
	}` + "\n```"}
	judge := NewGeminiJudge(gemini, 1)

	score, judgment, err := judge.Judge(context.Background(), "q", "ref", "cand")
	require.NoError(t, err)
	assert.Equal(t, 0.85, score)
	assert.Contains(t, judgment, "Close match on payment terms.")
	assert.Contains(t, judgment, "Matched Points: thirty day deadline")
	assert.Contains(t, judgment, "Missing Points: late fee clause")
}

func TestJudgeSalvagesBareScore(t *testing.T) {
	gemini := &stubGemini{response: "The answers mostly agree. Score: 0.7 overall."}
	judge := NewGeminiJudge(gemini, 1)

	score, judgment, err := judge.Judge(context.Background(), "q", "ref", "cand")
	require.NoError(t, err)
	assert.Equal(t, 0.7, score)
	assert.Equal(t, gemini.response, judgment)
}

func TestJudgeFallsBackToNeutralOnGarbage(t *testing.T) {
	gemini := &stubGemini{response: "I cannot assess these answers."}
	judge := NewGeminiJudge(gemini, 1)

	score, judgment, err := judge.Judge(context.Background(), "q", "ref", "cand")
	require.NoError(t, err)
	assert.Equal(t, NeutralJudgeScore, score)
	assert.Equal(t, gemini.response, judgment)
}

func TestJudgeClampsOutOfRangeScore(t *testing.T) {
	gemini := &stubGemini{response: `{"score": 1.4, "reasoning": "overenthusiastic"}`}
	judge := NewGeminiJudge(gemini, 1)

	score, _, err := judge.Judge(context.Background(), "q", "ref", "cand")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestJudgePropagatesGenerationError(t *testing.T) {
	gemini := &stubGemini{err: errors.New("quota exceeded")}
	judge := NewGeminiJudge(gemini, 1)

	_, _, err := judge.Judge(context.Background(), "q", "ref", "cand")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": 1}`, extractJSON("Here you go: {\"a\": 1} enjoy"))
	assert.Equal(t, `[1, 2]`, extractJSON("result: [1, 2]"))
	assert.Equal(t, "no json here", extractJSON("no json here"))
}
