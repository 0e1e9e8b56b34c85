package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRubric = `## 1. LIABILITY STRUCTURE

Q1: Does the contract cap aggregate liability?
A: Look for caps tied to fees paid in the preceding twelve months.

Q2: Are consequential damages excluded?
A: Check for waivers of indirect and consequential damages.

## 2. INDEMNIFICATION

Q1: Is the indemnification obligation mutual?
A: Both parties should indemnify for third-party claims.

Q2: Question with no guidance line?
`

func TestParseRubric(t *testing.T) {
	questions := ParseRubric(sampleRubric)
	require.Len(t, questions, 3)

	assert.Equal(t, "LIABILITY STRUCTURE", questions[0].Category)
	assert.Equal(t, 1, questions[0].CategoryNumber)
	assert.Equal(t, 1, questions[0].QuestionNumber)
	assert.Equal(t, "Does the contract cap aggregate liability?", questions[0].Question)
	assert.Equal(t, "Look for caps tied to fees paid in the preceding twelve months.", questions[0].Guidance)

	assert.Equal(t, 2, questions[1].QuestionNumber)

	assert.Equal(t, "INDEMNIFICATION", questions[2].Category)
	assert.Equal(t, 2, questions[2].CategoryNumber)
}

func TestParseRubricUnnumberedHeadings(t *testing.T) {
	questions := ParseRubric(`## GOVERNING LAW

Q1: Which jurisdiction governs?
A: Prefer the client's home jurisdiction.

## DISPUTE RESOLUTION

Q1: Is arbitration mandatory?
A: Flag mandatory arbitration clauses.
`)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].CategoryNumber)
	assert.Equal(t, 2, questions[1].CategoryNumber)
}

func TestParseRubricEmptyContent(t *testing.T) {
	assert.Empty(t, ParseRubric(""))
	assert.Empty(t, ParseRubric("prose without any rubric structure"))
}

func TestRiskLevelForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{5.0, RiskLow},
		{4.5, RiskLow},
		{4.49, RiskMedium},
		{3.5, RiskMedium},
		{3.49, RiskHigh},
		{2.5, RiskHigh},
		{2.49, RiskCritical},
		{1.0, RiskCritical},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskLevelForScore(tc.score), "score %g", tc.score)
	}
}

func TestNormalizeRiskLevel(t *testing.T) {
	assert.Equal(t, RiskLow, normalizeRiskLevel("low", 1.0))
	assert.Equal(t, RiskHigh, normalizeRiskLevel(" HIGH ", 5.0))
	// Unrecognized levels are derived from the score instead.
	assert.Equal(t, RiskCritical, normalizeRiskLevel("bogus", 1.5))
	assert.Equal(t, RiskLow, normalizeRiskLevel("", 4.8))
}

func TestEvaluateContract(t *testing.T) {
	gemini := &stubGemini{byPromptSubstring: map[string]string{
		"cap aggregate liability": `{"answer": "Yes, capped at twelve months of fees.", "score": 5, "reasoning": "Strong cap.", "risk_level": "LOW"}`,
		"consequential damages":   `{"answer": "Yes, both parties waive them.", "score": 4, "reasoning": "Standard waiver.", "risk_level": "LOW"}`,
		"indemnification obligation mutual": `{"answer": "No, only the client indemnifies.", "score": 2, "reasoning": "One-sided.", "risk_level": "HIGH"}`,
	}}
	evaluator := NewRubricEvaluatorService(gemini, 2, 1)

	assessment, err := evaluator.EvaluateContract(context.Background(), "contract text", sampleRubric)
	require.NoError(t, err)

	assert.Equal(t, RubricScoreScale, assessment.Scale)
	assert.Equal(t, 3, assessment.TotalQuestions)
	assert.Equal(t, 3, assessment.AnsweredQuestions)

	require.Len(t, assessment.CategoryScores, 2)

	liability := assessment.CategoryScores[0]
	assert.Equal(t, "LIABILITY STRUCTURE", liability.Category)
	assert.InDelta(t, 4.5, liability.AverageScore, 1e-9)
	assert.Equal(t, RiskLow, liability.RiskLevel)
	require.Len(t, liability.Questions, 2)
	assert.Equal(t, RiskLow, liability.Questions[0].RiskLevel)

	indemnification := assessment.CategoryScores[1]
	assert.Equal(t, "INDEMNIFICATION", indemnification.Category)
	assert.InDelta(t, 2.0, indemnification.AverageScore, 1e-9)
	assert.Equal(t, RiskCritical, indemnification.RiskLevel)

	// Overall score is the mean of the category averages.
	assert.InDelta(t, 3.25, assessment.OverallScore, 1e-9)
	assert.Equal(t, RiskHigh, assessment.OverallRiskLevel)
	assert.Equal(t, []string{"INDEMNIFICATION"}, assessment.CriticalRisks)
}

func TestEvaluateContractFailedQuestionFallsBack(t *testing.T) {
	gemini := &stubGemini{err: errors.New("model unavailable")}
	evaluator := NewRubricEvaluatorService(gemini, 1, 1)

	rubric := `## 1. TERMINATION

Q1: Can the client terminate for convenience?
A: Look for termination rights without cause.
`
	assessment, err := evaluator.EvaluateContract(context.Background(), "contract text", rubric)
	require.NoError(t, err)

	require.Len(t, assessment.CategoryScores, 1)
	answer := assessment.CategoryScores[0].Questions[0]
	assert.Contains(t, answer.Answer, "Evaluation failed")
	assert.Equal(t, 3.0, answer.Score)
	assert.Equal(t, RiskMedium, answer.RiskLevel)

	assert.InDelta(t, 3.0, assessment.OverallScore, 1e-9)
	assert.Equal(t, RiskMedium, assessment.OverallRiskLevel)
	assert.Empty(t, assessment.CriticalRisks)
}

func TestEvaluateContractEmptyRubric(t *testing.T) {
	evaluator := NewRubricEvaluatorService(&stubGemini{}, 1, 1)

	_, err := evaluator.EvaluateContract(context.Background(), "contract text", "")
	assert.Error(t, err)
}

func TestParseRubricResponseSalvage(t *testing.T) {
	parsed := parseRubricResponse("The cap is weak. Score: 2 based on the fee clause.")
	assert.Equal(t, 2.0, parsed.Score)
	assert.Contains(t, parsed.Answer, "The cap is weak.")
	assert.Equal(t, string(RiskMedium), parsed.RiskLevel)
}

func TestClampRubricScore(t *testing.T) {
	assert.Equal(t, 1.0, clampRubricScore(0.0))
	assert.Equal(t, 5.0, clampRubricScore(7.0))
	assert.Equal(t, 3.5, clampRubricScore(3.5))
}
