package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestScorer() KeywordScorer {
	return NewKeywordScorer(DefaultKeywordConfig())
}

func TestKeywordScoreBothEmpty(t *testing.T) {
	scorer := newTestScorer()

	similarity, matched, missing := scorer.Score("", "")
	assert.Equal(t, 1.0, similarity)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestKeywordScoreOneEmpty(t *testing.T) {
	scorer := newTestScorer()

	similarity, matched, missing := scorer.Score("substantive text here", "")
	assert.Equal(t, 0.0, similarity)
	assert.Empty(t, matched)
	assert.ElementsMatch(t, []string{"here", "substantive", "text"}, missing)

	// Reference empty: nothing can be missing from the candidate's view.
	similarity, _, missing = scorer.Score("", "substantive text here")
	assert.Equal(t, 0.0, similarity)
	assert.Empty(t, missing)
}

func TestKeywordScoreIdentityAndSymmetry(t *testing.T) {
	scorer := newTestScorer()

	texts := []string{
		"payment obligations under invoice schedules",
		"liability caps limit aggregate damages",
	}

	for _, text := range texts {
		similarity, _, missing := scorer.Score(text, text)
		assert.Equal(t, 1.0, similarity)
		assert.Empty(t, missing)
	}

	forward, _, _ := scorer.Score(texts[0], texts[1])
	backward, _, _ := scorer.Score(texts[1], texts[0])
	assert.Equal(t, forward, backward)
	assert.GreaterOrEqual(t, forward, 0.0)
	assert.LessOrEqual(t, forward, 1.0)
}

func TestKeywordScoreDirectionality(t *testing.T) {
	scorer := newTestScorer()

	similarity, matched, missing := scorer.Score("payment invoice schedule", "payment receipt")
	assert.InDelta(t, 0.25, similarity, 1e-9)
	assert.Equal(t, []string{"payment"}, matched)
	// Missing is reference-minus-candidate; candidate extras never appear.
	assert.Equal(t, []string{"invoice", "schedule"}, missing)
	assert.NotContains(t, missing, "receipt")
}

func TestExtractKeywordsFiltering(t *testing.T) {
	scorer := newTestScorer()

	// Stopwords and tokens shorter than four characters are dropped.
	keywords := scorer.ExtractKeywords("The cat is on a mat with this and that")
	assert.Empty(t, keywords)

	keywords = scorer.ExtractKeywords("Indemnification obligations survive termination")
	assert.Len(t, keywords, 4)
	assert.Contains(t, keywords, "indemnification")
}
