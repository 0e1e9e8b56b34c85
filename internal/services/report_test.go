package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvaluationReportAverages(t *testing.T) {
	scores := []PairScore{
		{LLMScore: 1.0, KeywordScore: 1.0, CombinedScore: 1.0},
		{LLMScore: 0.5, KeywordScore: 0.4, CombinedScore: 0.47},
	}

	report := BuildEvaluationReport(3, 3, scores)

	assert.Equal(t, DocumentScoreScale, report.Scale)
	assert.Equal(t, 2, report.MatchedPairs)
	assert.Equal(t, 1, report.UnmatchedGroundTruth)
	assert.Equal(t, 1, report.UnmatchedGenerated)
	assert.InDelta(t, 2.0/3.0, report.MatchRate, 1e-9)
	assert.InDelta(t, 0.75, report.AverageLLMScore, 1e-9)
	assert.InDelta(t, 0.7, report.AverageKeywordScore, 1e-9)
	assert.InDelta(t, 0.735, report.AverageCombinedScore, 1e-9)
}

func TestMatchRateConventions(t *testing.T) {
	// No ground truth and no generated pairs is vacuously complete.
	report := BuildEvaluationReport(0, 0, nil)
	assert.Equal(t, 1.0, report.MatchRate)
	assert.Equal(t, 0.0, report.AverageCombinedScore)

	// Generated pairs with nothing to anchor them score zero.
	report = BuildEvaluationReport(0, 2, nil)
	assert.Equal(t, 0.0, report.MatchRate)
	assert.Equal(t, 2, report.UnmatchedGenerated)

	// No matches against real ground truth.
	report = BuildEvaluationReport(4, 4, nil)
	assert.Equal(t, 0.0, report.MatchRate)
	assert.Equal(t, 0.0, report.AverageLLMScore)
}

func TestRenderText(t *testing.T) {
	report := BuildEvaluationReport(2, 2, []PairScore{
		{
			Question:          "What are the payment terms?",
			GroundTruthAnswer: "Net thirty days.",
			GeneratedAnswer:   "Net sixty days.",
			LLMScore:          0.4,
			KeywordScore:      0.5,
			CombinedScore:     0.43,
			LLMJudgment:       "Deadline differs.",
			MatchedKeywords:   []string{"days"},
			MissingKeywords:   []string{"thirty"},
		},
	})

	text := report.RenderText()
	require.NotEmpty(t, text)

	assert.Contains(t, text, "EVALUATION REPORT")
	assert.Contains(t, text, "Matched Pairs: 1")
	assert.Contains(t, text, "Match Rate: 50.00%")
	assert.Contains(t, text, "--- Pair 1 ---")
	// Empty section renders as N/A.
	assert.Contains(t, text, "Section: N/A")
	assert.Contains(t, text, "Deadline differs.")
	assert.Contains(t, text, "Missing Keywords (1): thirty")
}
